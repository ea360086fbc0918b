// SPDX-License-Identifier: MIT
// Package: specimen/gen
//
// registry.go — the per-type Generator registry and its built-ins.
//
// Contract (strict):
//   - Register is confined to the configuration phase; a Registry handed to
//     concurrent samplers is read-only.
//   - A registered Generator must produce values assignable to its type;
//     Register probes the generator once and rejects mismatches with
//     ErrConstraintConflict, so broken overrides fail at registration time
//     rather than mid-sample.
//   - time.Time and uuid.UUID generators are pre-registered; both draw only
//     from the sample's Source, so seeded runs reproduce them exactly.

package gen

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// ErrConstraintConflict indicates an empty/inverted range or a registered
// per-type override incompatible with the type it was registered for.
// Usage: if errors.Is(err, ErrConstraintConflict) { /* fix the registration */ }.
var ErrConstraintConflict = errors.New("gen: generation constraint conflict")

// probeSeed feeds the one-off registration probe of user generators.
const probeSeed = 1

// Default generation window for time.Time values.
var (
	defaultTimeMin = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	defaultTimeMax = time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// Registry resolves per-type Generator overrides and carries the kind-level
// Defaults. Construct with NewRegistry; populate before first concurrent use.
type Registry struct {
	defaults Defaults
	perType  map[reflect.Type]Generator
}

// NewRegistry builds a Registry around the given defaults and pre-registers
// the built-in opaque-type generators.
// Complexity: O(1).
func NewRegistry(d Defaults) (*Registry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{defaults: d, perType: make(map[reflect.Type]Generator)}
	r.perType[reflect.TypeOf(time.Time{})] = func(s *Source) (any, error) {
		return s.Faker().DateRange(defaultTimeMin, defaultTimeMax), nil
	}
	r.perType[reflect.TypeOf(uuid.UUID{})] = func(s *Source) (any, error) {
		id, err := uuid.NewRandomFromReader(s)
		if err != nil {
			return nil, fmt.Errorf("gen: uuid generator: %w", err)
		}

		return id, nil
	}

	return r, nil
}

// Defaults returns the kind-level bounds of this registry.
func (r *Registry) Defaults() Defaults { return r.defaults }

// Register binds g as the generator for type t, replacing any previous
// binding (including built-ins). The generator is probed once with a fixed
// seed; output not assignable to t fails with ErrConstraintConflict.
// Complexity: O(1) plus one probe invocation of g.
func (r *Registry) Register(t reflect.Type, g Generator) error {
	if t == nil {
		return fmt.Errorf("gen: Register: nil type: %w", ErrConstraintConflict)
	}
	if g == nil {
		return fmt.Errorf("gen: Register: nil generator for %s: %w", t, ErrConstraintConflict)
	}

	probe, err := g(NewSource(probeSeed))
	if err != nil {
		return fmt.Errorf("gen: Register: probe of %s generator failed: %v: %w", t, err, ErrConstraintConflict)
	}
	pt := reflect.TypeOf(probe)
	if pt == nil || !pt.AssignableTo(t) {
		return fmt.Errorf("gen: Register: generator for %s produces %v: %w", t, pt, ErrConstraintConflict)
	}

	r.perType[t] = g

	return nil
}

// Lookup returns the per-type generator for t, if one is registered.
// Safe for unsynchronized concurrent use once registration is complete.
func (r *Registry) Lookup(t reflect.Type) (Generator, bool) {
	g, ok := r.perType[t]

	return g, ok
}
