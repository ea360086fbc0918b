// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// options.go — functional options for Config construction.
//
// Contract (strict):
//   - Option constructors VALIDATE and PANIC on meaningless inputs;
//     Sample itself never panics.
//   - Registration effects are confined to NewConfig; options never touch
//     live configurations.
//   - Determinism is explicit: seed via WithSeed, nothing else.

package arbitrary

import (
	"fmt"
	"reflect"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/gen"
)

// WithSeed fixes the randomness of every Sample produced under this Config:
// Sample always draws from the seeded stream, and SampleList derives one
// independent stream per element (seed+index). Use in tests to lock outcomes.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
		s.hasSeed = true
	}
}

// WithRetryLimit sets the maximum number of whole-instance generation
// attempts when postconditions fail; exceeding it surfaces ErrUnsatisfiable.
// Panics if n < 1.
func WithRetryLimit(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("arbitrary: WithRetryLimit(%d)", n))
	}
	return func(s *settings) {
		s.retryLimit = n
	}
}

// WithRecursionDepth sets how many times a single type may appear on the
// active generation stack before the branch is cut (nil for nullable
// members, ErrRecursionLimit otherwise). Panics if n < 1.
func WithRecursionDepth(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("arbitrary: WithRecursionDepth(%d)", n))
	}
	return func(s *settings) {
		s.recursionDepth = n
	}
}

// WithDefaultNotNull forces non-null generation for every nullable member
// unless an explicit SetNull customization targets it.
func WithDefaultNotNull(notNull bool) Option {
	return func(s *settings) {
		s.defaultNotNull = notNull
	}
}

// WithNullChance sets the probability of generating nil for nullable
// members. Panics unless p ∈ [0,1].
func WithNullChance(p float64) Option {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("arbitrary: WithNullChance(%g)", p))
	}
	return func(s *settings) {
		s.defaults.NullChance = p
	}
}

// WithCollectionSizeRange sets the default element count range for
// collections and maps. Panics on a negative or inverted range.
func WithCollectionSizeRange(lo, hi int) Option {
	if lo < 0 || lo > hi {
		panic(fmt.Sprintf("arbitrary: WithCollectionSizeRange(%d,%d)", lo, hi))
	}
	return func(s *settings) {
		s.defaults.SizeMin, s.defaults.SizeMax = lo, hi
	}
}

// WithStringLengthRange sets the default generated string length range.
// Panics on a negative or inverted range.
func WithStringLengthRange(lo, hi int) Option {
	if lo < 0 || lo > hi {
		panic(fmt.Sprintf("arbitrary: WithStringLengthRange(%d,%d)", lo, hi))
	}
	return func(s *settings) {
		s.defaults.StringMin, s.defaults.StringMax = lo, hi
	}
}

// WithCharset sets the character set default strings draw from.
// Panics on an empty charset.
func WithCharset(charset string) Option {
	if charset == "" {
		panic("arbitrary: WithCharset(\"\")")
	}
	return func(s *settings) {
		s.defaults.Charset = charset
	}
}

// WithWords switches default string generation from charset runes to
// realistic words drawn from the seeded faker.
func WithWords() Option {
	return func(s *settings) {
		s.defaults.Words = true
	}
}

// WithIntRange sets the default signed integer range (clamped per member
// bit width). Panics on an inverted range.
func WithIntRange(lo, hi int64) Option {
	if lo > hi {
		panic(fmt.Sprintf("arbitrary: WithIntRange(%d,%d)", lo, hi))
	}
	return func(s *settings) {
		s.defaults.IntMin, s.defaults.IntMax = lo, hi
	}
}

// WithFloatRange sets the default float range. Panics on an inverted range.
func WithFloatRange(lo, hi float64) Option {
	if lo > hi {
		panic(fmt.Sprintf("arbitrary: WithFloatRange(%g,%g)", lo, hi))
	}
	return func(s *settings) {
		s.defaults.FloatMin, s.defaults.FloatMax = lo, hi
	}
}

// WithGenerator registers g as the generator for type t, overriding the
// kind default (and built-ins such as time.Time). The generator is probed
// during NewConfig; a type-mismatched generator panics there with
// ErrConstraintConflict, before any sampling begins.
// Panics immediately on nil arguments.
func WithGenerator(t reflect.Type, g gen.Generator) Option {
	if t == nil {
		panic("arbitrary: WithGenerator(nil type)")
	}
	if g == nil {
		panic(fmt.Sprintf("arbitrary: WithGenerator(%s, nil)", t))
	}
	return func(s *settings) {
		s.registrations = append(s.registrations, func(r *gen.Registry) error {
			return r.Register(t, g)
		})
	}
}

// WithGeneratorFor is the typed convenience form of WithGenerator.
// Panics on a nil function.
func WithGeneratorFor[T any](fn func(*gen.Source) (T, error)) Option {
	if fn == nil {
		panic("arbitrary: WithGeneratorFor(nil)")
	}

	return WithGenerator(core.TypeOf[T](), func(s *gen.Source) (any, error) {
		return fn(s)
	})
}

// WithEnum registers a closed value set for the dynamic type of the given
// values; generation selects uniformly over them. Panics on an empty or
// mixed-type set.
func WithEnum(values ...any) Option {
	opt := core.WithEnum(values...)
	return func(s *settings) {
		s.coreOpts = append(s.coreOpts, opt)
	}
}

// WithSubstitute registers the concrete type C to stand in for the abstract
// type I during description and generation. Panics when I is not an
// interface type or C does not implement it.
func WithSubstitute[I, C any]() Option {
	opt := core.WithSubstitute(core.TypeOf[I](), core.TypeOf[C]())
	return func(s *settings) {
		s.coreOpts = append(s.coreOpts, opt)
	}
}

// WithStrategies replaces the introspection strategy chain; the first
// strategy that fully describes a struct type wins. Panics on an empty
// chain or a nil strategy.
func WithStrategies(chain ...core.Strategy) Option {
	opt := core.WithStrategies(chain...)
	return func(s *settings) {
		s.coreOpts = append(s.coreOpts, opt)
	}
}

// WithOpaque marks a type as atomic for introspection; pair it with
// WithGenerator to supply its values. Panics on a nil type.
func WithOpaque(t reflect.Type) Option {
	opt := core.WithOpaque(t)
	return func(s *settings) {
		s.coreOpts = append(s.coreOpts, opt)
	}
}
