// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// errors.go — sentinel errors for sampling, plus re-exports of the
// subpackage sentinels so callers branch on one import.
//
// Error policy (explicit and strict):
//   - Only sentinel variables are exposed; branch with errors.Is.
//   - Sample-time failures are returned, never panicked.
//   - Registration-time programmer errors (bad grammar, nil predicates,
//     inverted ranges) panic from the registering call.

package arbitrary

import (
	"errors"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/gen"
	"github.com/katalvlaran/specimen/pathexpr"
)

// ErrRecursionLimit indicates a self-referential type exceeded the
// configured generation depth without a nullable member to absorb the cut.
// Usage: if errors.Is(err, ErrRecursionLimit) { /* raise the limit or add a pointer */ }.
var ErrRecursionLimit = errors.New("arbitrary: recursion depth limit exceeded")

// ErrUnsatisfiable indicates the postcondition retry budget was exhausted
// without producing an instance satisfying every registered predicate.
// Usage: if errors.Is(err, ErrUnsatisfiable) { /* weaken the predicate or raise WithRetryLimit */ }.
var ErrUnsatisfiable = errors.New("arbitrary: postcondition retry budget exhausted")

// errDepthEscape travels up from a depth-limited record until a nullable
// ancestor absorbs it as nil; reaching the root turns it into
// ErrRecursionLimit. Never visible to callers.
var errDepthEscape = errors.New("arbitrary: depth escape")

// Re-exported subpackage sentinels.
var (
	// ErrInvalidPath mirrors pathexpr.ErrInvalidPath.
	ErrInvalidPath = pathexpr.ErrInvalidPath

	// ErrUnsupportedType mirrors core.ErrUnsupportedType.
	ErrUnsupportedType = core.ErrUnsupportedType

	// ErrConstraintConflict mirrors gen.ErrConstraintConflict.
	ErrConstraintConflict = gen.ErrConstraintConflict
)
