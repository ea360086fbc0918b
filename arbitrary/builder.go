// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// builder.go — Builder[T]: the immutable, fluent customization accumulator.
//
// Design contract (strict):
//   - Every chaining method returns a NEW builder value; the receiver stays
//     valid and unaffected, so builder values are safe to share, fork, and
//     sample from concurrently.
//   - Customizations form an append-only ordered log interpreted at sample
//     time; later registrations win over earlier ones on identical paths.
//   - Path grammar is validated eagerly here (panic wrapping ErrInvalidPath,
//     a programmer error); whether the path resolves against T's shape is
//     answered by the engine at sample time.

package arbitrary

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"slices"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/gen"
	"github.com/katalvlaran/specimen/pathexpr"
)

// opKind discriminates customization operations in the builder log.
type opKind uint8

const (
	opSet opKind = iota
	opSetGen
	opSetNull
	opSize
)

// customization is one path-scoped override in the ordered log.
type customization struct {
	path  pathexpr.Path
	op    opKind
	value any           // opSet
	genFn gen.Generator // opSetGen
	// opSize bounds; lo == hi means an exact size.
	sizeLo, sizeHi int
}

// exact reports whether the size customization pins one exact count.
func (c customization) exact() bool { return c.sizeLo == c.sizeHi }

// Builder accumulates path-scoped customizations for T before sampling.
// Obtain one from GiveMeBuilder; the zero value is not usable.
type Builder[T any] struct {
	cfg     *Config
	desc    *core.TypeDescriptor
	descErr error
	customs []customization
	posts   []func(T) bool
}

// clone returns a detached copy; the shared log prefix is never mutated.
func (b *Builder[T]) clone() *Builder[T] {
	nb := *b
	nb.customs = slices.Clone(b.customs)
	nb.posts = slices.Clone(b.posts)

	return &nb
}

// parsePath validates path grammar eagerly. Malformed grammar is a
// programmer error and panics with an error wrapping ErrInvalidPath.
func parsePath(method, path string) pathexpr.Path {
	p, err := pathexpr.Parse(path)
	if err != nil {
		panic(fmt.Errorf("arbitrary: %s(%q): %w", method, path, err))
	}

	return p
}

// Set pins the node at path to the literal value v in every sample; the
// subtree below it consumes no randomness. A nil v behaves like SetNull.
// Returns a new builder value.
// Complexity: O(len(log)) for the copy.
func (b *Builder[T]) Set(path string, v any) *Builder[T] {
	nb := b.clone()
	nb.customs = append(nb.customs, customization{path: parsePath("Set", path), op: opSet, value: v})

	return nb
}

// SetGenerator sources the node at path from g instead of the default
// generator; nested customizations beneath the produced value still apply.
// Panics on a nil generator. Returns a new builder value.
func (b *Builder[T]) SetGenerator(path string, g gen.Generator) *Builder[T] {
	if g == nil {
		panic(fmt.Sprintf("arbitrary: SetGenerator(%q, nil)", path))
	}
	nb := b.clone()
	nb.customs = append(nb.customs, customization{path: parsePath("SetGenerator", path), op: opSetGen, genFn: g})

	return nb
}

// SetNull pins the node at path to nil. Sampling fails with ErrInvalidPath
// when the addressed member is not nullable. Returns a new builder value.
func (b *Builder[T]) SetNull(path string) *Builder[T] {
	nb := b.clone()
	nb.customs = append(nb.customs, customization{path: parsePath("SetNull", path), op: opSetNull})

	return nb
}

// Size pins the element count of the collection or map at path.
// Panics if n < 0. Returns a new builder value.
func (b *Builder[T]) Size(path string, n int) *Builder[T] {
	if n < 0 {
		panic(fmt.Sprintf("arbitrary: Size(%q, %d)", path, n))
	}

	return b.sizeCustom("Size", path, n, n)
}

// SizeRange bounds the element count of the collection or map at path;
// each sample draws uniformly from [lo, hi]. Panics on a negative or
// inverted range. Returns a new builder value.
func (b *Builder[T]) SizeRange(path string, lo, hi int) *Builder[T] {
	if lo < 0 || lo > hi {
		panic(fmt.Sprintf("arbitrary: SizeRange(%q, %d, %d)", path, lo, hi))
	}

	return b.sizeCustom("SizeRange", path, lo, hi)
}

func (b *Builder[T]) sizeCustom(method, path string, lo, hi int) *Builder[T] {
	nb := b.clone()
	nb.customs = append(nb.customs, customization{path: parsePath(method, path), op: opSize, sizeLo: lo, sizeHi: hi})

	return nb
}

// SetPostCondition requires every sampled instance to satisfy pred; failing
// instances are discarded and regenerated until the retry limit, after
// which Sample returns ErrUnsatisfiable. Panics on a nil predicate.
// Returns a new builder value.
func (b *Builder[T]) SetPostCondition(pred func(T) bool) *Builder[T] {
	if pred == nil {
		panic("arbitrary: SetPostCondition(nil)")
	}
	nb := b.clone()
	nb.posts = append(nb.posts, pred)

	return nb
}

// WithConfig re-roots the builder onto another configuration, keeping the
// customization log. The receiver is unaffected. A nil cfg selects the
// package default.
func (b *Builder[T]) WithConfig(cfg *Config) *Builder[T] {
	if cfg == nil {
		cfg = Default()
	}
	nb := b.clone()
	nb.cfg = cfg
	nb.desc, nb.descErr = cfg.introspector.Describe(core.TypeOf[T]())

	return nb
}

// Sample performs exactly one generation with a fresh, exclusively owned
// generation context.
//
// Errors: ErrUnsupportedType, ErrInvalidPath, ErrRecursionLimit,
// ErrConstraintConflict are fatal to the call and never retried; only
// postcondition failures retry, bounded by the configured limit
// (ErrUnsatisfiable past it). No partial instance is ever returned.
//
// Complexity: O(size of the generated tree) per attempt.
func (b *Builder[T]) Sample() (T, error) {
	var zero T
	if b.descErr != nil {
		return zero, b.descErr
	}

	return b.sample(b.seedFor(0))
}

// SampleList performs n independent generations, each with its own context
// (independent randomness, independent retry budget). Elements are not
// guaranteed distinct unless customizations make them so. Panics if n < 0.
func (b *Builder[T]) SampleList(n int) ([]T, error) {
	if n < 0 {
		panic(fmt.Sprintf("arbitrary: SampleList(%d)", n))
	}
	if b.descErr != nil {
		return nil, b.descErr
	}

	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := b.sample(b.seedFor(uint64(i)))
		if err != nil {
			return nil, fmt.Errorf("arbitrary: SampleList element %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

// MustSample is Sample for fixtures that must exist; it panics on error.
func (b *Builder[T]) MustSample() T {
	v, err := b.Sample()
	if err != nil {
		panic(err)
	}

	return v
}

// Fixed samples once and returns a builder with every top-level member of a
// record pinned to the sampled value, so subsequent samples replay it.
// Fails with ErrUnsupportedType when T is not a record.
func (b *Builder[T]) Fixed() (*Builder[T], error) {
	if b.descErr != nil {
		return nil, b.descErr
	}
	if b.desc.Kind != core.KindRecord {
		return nil, fmt.Errorf("arbitrary: Fixed: %s is not a record: %w", b.desc.Type, ErrUnsupportedType)
	}

	v, err := b.Sample()
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(v)
	nb := b
	for _, m := range b.desc.Members {
		if m.FieldIndex < 0 {
			return nil, fmt.Errorf("arbitrary: Fixed: setter-built %s is not addressable: %w", b.desc.Type, ErrUnsupportedType)
		}
		nb = nb.Set(m.Name, rv.Field(m.FieldIndex).Interface())
	}

	return nb, nil
}

// seedFor derives the seed of the i-th generation context. Configured seeds
// replay exactly; unseeded builders draw fresh entropy per sample.
func (b *Builder[T]) seedFor(i uint64) uint64 {
	if b.cfg.hasSeed {
		return b.cfg.seed + i
	}

	return rand.Uint64()
}

// sample runs the retry loop around the engine with one context.
func (b *Builder[T]) sample(seed uint64) (T, error) {
	var zero T
	eng := newEngine(b.cfg, b.desc, b.customs)
	if err := eng.validatePaths(); err != nil {
		return zero, err
	}

	ctx := newGenContext(seed, len(b.customs))
	for attempt := 1; ; attempt++ {
		v, err := eng.generate(ctx)
		if err != nil {
			return zero, err
		}
		out := v.Interface().(T)
		if b.satisfied(out) {
			return out, nil
		}
		if attempt >= b.cfg.retryLimit {
			return zero, fmt.Errorf("arbitrary: Sample: %d failed attempts: %w", attempt, ErrUnsatisfiable)
		}
		ctx.nextAttempt()
	}
}

// satisfied evaluates every postcondition against the completed instance.
func (b *Builder[T]) satisfied(v T) bool {
	for _, pred := range b.posts {
		if !pred(v) {
			return false
		}
	}

	return true
}
