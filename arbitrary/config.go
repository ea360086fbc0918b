// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// config.go — the two-phase Config: build-time registration, then read-only
// concurrent use.
//
// Design:
//   - Config is the single source of truth for all sampling knobs.
//   - NewConfig applies options in order (later overrides earlier), builds
//     the Introspector and Registry once, and seals the result; nothing on a
//     Config mutates afterwards, so one instance serves any number of
//     concurrent builders and Sample calls.
//   - Defaults are deterministic and documented in gen/defaults.go;
//     no globals beyond the lazily built package default Config.

package arbitrary

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/gen"
)

// Named sampling defaults.
const (
	// DefaultRetryLimit bounds whole-instance regeneration attempts when
	// postconditions fail.
	DefaultRetryLimit = 1000

	// DefaultRecursionDepth bounds how many times one type may appear on the
	// active generation stack before the engine cuts the branch.
	DefaultRecursionDepth = 3
)

// Config carries the immutable sampling configuration shared by builders.
// Construct with NewConfig; the zero value is not usable.
type Config struct {
	seed           uint64
	hasSeed        bool
	retryLimit     int
	recursionDepth int
	introspector   *core.Introspector
	registry       *gen.Registry
}

// settings accumulates option effects before the immutable Config is built.
type settings struct {
	seed           uint64
	hasSeed        bool
	retryLimit     int
	recursionDepth int
	defaultNotNull bool
	defaults       gen.Defaults
	coreOpts       []core.Option
	registrations  []func(*gen.Registry) error
}

// Option customizes a Config under construction. See options.go.
type Option func(*settings)

// NewConfig builds a sealed Config from the given options.
//
// Option constructors validate eagerly and panic on meaningless values; the
// only construction-time failure left is a registered per-type generator
// producing values of the wrong type, which also panics (registration-time
// constraint conflicts are programmer errors, not sampling outcomes).
//
// Complexity: O(len(opts)) plus one probe per registered generator.
func NewConfig(opts ...Option) *Config {
	s := settings{
		retryLimit:     DefaultRetryLimit,
		recursionDepth: DefaultRecursionDepth,
		defaults:       gen.NewDefaults(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.defaultNotNull {
		s.defaults.NullChance = 0
	}

	reg, err := gen.NewRegistry(s.defaults)
	if err != nil {
		// Unreachable through the published options; they validate ranges.
		panic(fmt.Errorf("arbitrary: NewConfig: %w", err))
	}
	for _, register := range s.registrations {
		if err := register(reg); err != nil {
			panic(fmt.Errorf("arbitrary: NewConfig: %w", err))
		}
	}

	return &Config{
		seed:           s.seed,
		hasSeed:        s.hasSeed,
		retryLimit:     s.retryLimit,
		recursionDepth: s.recursionDepth,
		introspector:   core.NewIntrospector(s.coreOpts...),
		registry:       reg,
	}
}

// defaultConfig is the process-wide configuration used when callers pass a
// nil *Config; built once, read-only afterwards.
var defaultConfig = sync.OnceValue(func() *Config { return NewConfig() })

// Default returns the shared default Config.
func Default() *Config { return defaultConfig() }
