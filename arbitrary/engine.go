// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// engine.go — the sampling engine: one depth-first descriptor walk per
// generation attempt.
//
// Algorithm per attempt, at every tree position:
//  1. Resolve the winning set-family customization (exact beats wildcard,
//     later beats earlier) — a literal short-circuits the subtree, a
//     generator produces the value and interior customizations still apply,
//     SetNull yields nil or fails on non-nullable members.
//  2. Otherwise fall through to the registry: per-type override first, then
//     the structural kind default (sized collections/maps, uniform enums,
//     recursive records, bounded primitives).
//  3. Records push their type on the active stack; re-entry at the depth
//     limit cuts the branch, which the nearest nullable ancestor absorbs as
//     nil (ErrRecursionLimit if none exists).
//
// After the walk, every non-wildcard customization must have matched at
// least one realized position; a leftover (for example an exact index into
// a collection realized shorter) fails the sample with ErrInvalidPath
// rather than being silently ignored.

package arbitrary

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/gen"
	"github.com/katalvlaran/specimen/pathexpr"
)

// keyRetryFactor bounds distinct-key draws per requested map entry.
const keyRetryFactor = 10

// genContext is the ephemeral, exclusively owned state of one Sample call:
// a private random source, the active-type recursion stack, and per-attempt
// customization match marks. Never shared across concurrent samples.
type genContext struct {
	src      *gen.Source
	stack    []reflect.Type
	consumed []bool
}

func newGenContext(seed uint64, customs int) *genContext {
	return &genContext{src: gen.NewSource(seed), consumed: make([]bool, customs)}
}

// nextAttempt resets match marks for a retry; the random stream continues,
// so the next attempt draws fresh values.
func (c *genContext) nextAttempt() {
	for i := range c.consumed {
		c.consumed[i] = false
	}
}

func (c *genContext) push(t reflect.Type) { c.stack = append(c.stack, t) }

func (c *genContext) pop() { c.stack = c.stack[:len(c.stack)-1] }

// depthOf counts how often t already appears on the active stack.
func (c *genContext) depthOf(t reflect.Type) int {
	n := 0
	for _, s := range c.stack {
		if s == t {
			n++
		}
	}

	return n
}

// engine binds one descriptor tree to one customization log; it is
// stateless across attempts and safe to rebuild per Sample call.
type engine struct {
	cfg     *Config
	root    *core.TypeDescriptor
	customs []customization
}

func newEngine(cfg *Config, root *core.TypeDescriptor, customs []customization) *engine {
	return &engine{cfg: cfg, root: root, customs: customs}
}

// generate runs one full attempt: walk, construct, leftover check.
func (e *engine) generate(ctx *genContext) (reflect.Value, error) {
	v, err := e.value(ctx, e.root, nil)
	if err != nil {
		if errors.Is(err, errDepthEscape) {
			return reflect.Value{}, fmt.Errorf("arbitrary: %s exceeds recursion depth %d with no nullable escape: %w",
				e.root.Type, e.cfg.recursionDepth, ErrRecursionLimit)
		}

		return reflect.Value{}, err
	}

	for i := range e.customs {
		if ctx.consumed[i] || e.customs[i].path.Wildcarded() {
			continue
		}

		return reflect.Value{}, fmt.Errorf("arbitrary: customization %q matched no realized position: %w",
			e.customs[i].path.String(), ErrInvalidPath)
	}

	return v, nil
}

// value resolves the winning customization for this position, then falls
// through to structural generation.
func (e *engine) value(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	idx, ok := e.winner(path)
	if !ok {
		return e.structural(ctx, desc, path)
	}

	c := &e.customs[idx]
	// Every customization addressing this position is accounted for, not
	// just the winner: an overridden duplicate and a same-path Size are
	// shadowed, never "unmatched".
	for i := range e.customs {
		if e.customs[i].path.Matches(path) {
			ctx.consumed[i] = true
		}
	}
	switch c.op {
	case opSet:
		v, err := coerce(c.value, desc)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("arbitrary: Set(%q): %w", c.path.String(), err)
		}
		// A literal subtree consumes no randomness; interior customizations
		// beneath it are shadowed.
		e.consumeInterior(ctx, path)

		return v, nil

	case opSetGen:
		return e.fromGenerator(ctx, c.genFn, desc, path)

	default: // opSetNull
		if !desc.Nullable() {
			return reflect.Value{}, fmt.Errorf("arbitrary: SetNull(%q): %s is not nullable: %w",
				c.path.String(), desc.Type, ErrInvalidPath)
		}

		return reflect.Zero(desc.Type), nil
	}
}

// winner picks the set-family customization addressing this concrete
// position: exact segments beat wildcards leftmost-first, registration
// order breaks full ties (later wins).
// Complexity: O(customs · len(path)).
func (e *engine) winner(path pathexpr.Path) (int, bool) {
	best := -1
	for i := range e.customs {
		c := &e.customs[i]
		if c.op == opSize || !c.path.Matches(path) {
			continue
		}
		if best < 0 || pathexpr.Compare(c.path, e.customs[best].path) >= 0 {
			best = i
		}
	}

	return best, best >= 0
}

// hasInterior reports whether any customization addresses a position inside
// the subtree at path; nullable ancestors of customized positions are kept
// non-nil so the customization can land.
func (e *engine) hasInterior(path pathexpr.Path) bool {
	for i := range e.customs {
		if e.customs[i].path.Within(path) {
			return true
		}
	}

	return false
}

// consumeInterior marks every customization inside the subtree at path as
// matched (the subtree was short-circuited by a literal).
func (e *engine) consumeInterior(ctx *genContext, path pathexpr.Path) {
	for i := range e.customs {
		if e.customs[i].path.Within(path) {
			ctx.consumed[i] = true
		}
	}
}

// fromGenerator produces the value at this position from g, then applies
// interior customizations onto the produced value.
func (e *engine) fromGenerator(ctx *genContext, g gen.Generator, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	raw, err := g(ctx.src)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("arbitrary: generator at %q: %w", path.String(), err)
	}
	v, err := coerce(raw, desc)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("arbitrary: generator at %q: %w", path.String(), err)
	}
	if !e.hasInterior(path) {
		return v, nil
	}

	nv := reflect.New(desc.Type).Elem()
	nv.Set(v)
	if err := e.applyInterior(ctx, nv, desc, path); err != nil {
		return reflect.Value{}, err
	}

	return nv, nil
}

// structural generates by descriptor kind, consulting the per-type registry
// tier first.
func (e *engine) structural(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	if g, ok := e.cfg.registry.Lookup(desc.Type); ok {
		return e.fromGenerator(ctx, g, desc, path)
	}

	switch desc.Kind {
	case core.KindPrimitive:
		v, err := e.cfg.registry.Defaults().Primitive(desc.Type, ctx.src)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("arbitrary: at %q: %w", path.String(), err)
		}

		return v, nil

	case core.KindEnum:
		return desc.EnumValues[ctx.src.Rand().IntN(len(desc.EnumValues))], nil

	case core.KindPointer:
		return e.pointer(ctx, desc, path)

	case core.KindRecord:
		return e.record(ctx, desc, path)

	case core.KindCollection:
		return e.collection(ctx, desc, path)

	case core.KindMap:
		return e.mapping(ctx, desc, path)

	default:
		return reflect.Value{}, fmt.Errorf("arbitrary: at %q: kind %s: %w", path.String(), desc.Kind, ErrUnsupportedType)
	}
}

// pointer decides null-vs-value, generates the pointee, and absorbs depth
// escapes from below as nil.
func (e *engine) pointer(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	chance := e.cfg.registry.Defaults().NullChance
	if chance > 0 && !e.hasInterior(path) && ctx.src.Rand().Float64() < chance {
		return reflect.Zero(desc.Type), nil
	}

	// The pointee shares the pointer's path: paths address members, and
	// pointer wrapping is transparent to addressing.
	ev, err := e.structural(ctx, desc.Elem, path)
	if errors.Is(err, errDepthEscape) {
		return reflect.Zero(desc.Type), nil
	}
	if err != nil {
		return reflect.Value{}, err
	}

	pv := reflect.New(desc.Elem.Type)
	pv.Elem().Set(ev)

	return pv, nil
}

// record generates every member depth-first, then constructs the instance
// with the strategy the Introspector chose.
func (e *engine) record(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	if ctx.depthOf(desc.Type) >= e.cfg.recursionDepth {
		return reflect.Value{}, fmt.Errorf("%s: %w", desc.Type, errDepthEscape)
	}
	ctx.push(desc.Type)
	defer ctx.pop()

	vals := make([]reflect.Value, len(desc.Members))
	for i, m := range desc.Members {
		mv, err := e.value(ctx, m.Desc, childPath(path, m.Name))
		if err != nil {
			return reflect.Value{}, err
		}
		vals[i] = mv
	}

	if desc.Construct == core.ConstructSetters {
		pv := reflect.New(desc.Type)
		for i, m := range desc.Members {
			pv.MethodByName(m.Setter).Call([]reflect.Value{vals[i]})
		}

		return pv.Elem(), nil
	}

	v := reflect.New(desc.Type).Elem()
	for i, m := range desc.Members {
		v.Field(m.FieldIndex).Set(vals[i])
	}

	return v, nil
}

// collection resolves the realized size, then generates every element with
// its concrete indexed path.
func (e *engine) collection(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	size, _, err := e.resolveSize(ctx, desc, path)
	if err != nil {
		return reflect.Value{}, err
	}

	if desc.ArrayLen >= 0 {
		v := reflect.New(desc.Type).Elem()
		for i := 0; i < desc.ArrayLen; i++ {
			ev, err := e.value(ctx, desc.Elem, elemPath(path, i))
			if err != nil {
				return reflect.Value{}, err
			}
			v.Index(i).Set(ev)
		}

		return v, nil
	}

	v := reflect.MakeSlice(desc.Type, 0, size)
	for i := 0; i < size; i++ {
		ev, err := e.value(ctx, desc.Elem, elemPath(path, i))
		if errors.Is(err, errDepthEscape) {
			// Nullable escape for the whole slice.
			return reflect.Zero(desc.Type), nil
		}
		if err != nil {
			return reflect.Value{}, err
		}
		v = reflect.Append(v, ev)
	}

	return v, nil
}

// mapping resolves the realized size, draws distinct keys (bounded), and
// generates one value per realized key with its concrete keyed path.
func (e *engine) mapping(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (reflect.Value, error) {
	size, exact, err := e.resolveSize(ctx, desc, path)
	if err != nil {
		return reflect.Value{}, err
	}

	v := reflect.MakeMapWithSize(desc.Type, size)
	for tries := 0; v.Len() < size && tries < size*keyRetryFactor+keyRetryFactor; tries++ {
		kv, err := e.value(ctx, desc.Key, nil)
		if errors.Is(err, errDepthEscape) {
			return reflect.Zero(desc.Type), nil
		}
		if err != nil {
			return reflect.Value{}, err
		}
		if v.MapIndex(kv).IsValid() {
			continue // duplicate key; redraw
		}
		ev, err := e.value(ctx, desc.Value, keyPath(path, kv))
		if errors.Is(err, errDepthEscape) {
			return reflect.Zero(desc.Type), nil
		}
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetMapIndex(kv, ev)
	}
	if exact && v.Len() < size {
		return reflect.Value{}, fmt.Errorf("arbitrary: at %q: could not realize %d distinct %s keys: %w",
			path.String(), size, desc.Key.Type, ErrConstraintConflict)
	}

	return v, nil
}

// resolveSize applies size customization precedence for the collection/map
// at path: path specificity first, then exact-count over range, then
// registration order; falling back to the configured default range.
// Arrays have a fixed length; incompatible size customizations conflict.
func (e *engine) resolveSize(ctx *genContext, desc *core.TypeDescriptor, path pathexpr.Path) (int, bool, error) {
	best := -1
	for i := range e.customs {
		c := &e.customs[i]
		if c.op != opSize || !c.path.Matches(path) {
			continue
		}
		// Losing size customizations matched this position too; they are
		// overridden, not unmatched.
		ctx.consumed[i] = true
		if best < 0 {
			best = i

			continue
		}
		b := &e.customs[best]
		switch cmp := pathexpr.Compare(c.path, b.path); {
		case cmp > 0:
			best = i
		case cmp < 0:
			// keep best
		case c.exact() || !b.exact():
			// equal specificity: exact count beats range, later beats earlier
			best = i
		}
	}

	if best < 0 {
		if desc.ArrayLen >= 0 {
			return desc.ArrayLen, true, nil
		}

		return e.cfg.registry.Defaults().SampleSize(ctx.src), false, nil
	}

	c := &e.customs[best]
	if desc.ArrayLen >= 0 {
		if desc.ArrayLen < c.sizeLo || desc.ArrayLen > c.sizeHi {
			return 0, false, fmt.Errorf("arbitrary: Size(%q): array %s has fixed length %d: %w",
				c.path.String(), desc.Type, desc.ArrayLen, ErrConstraintConflict)
		}

		return desc.ArrayLen, true, nil
	}
	if c.exact() {
		return c.sizeLo, true, nil
	}

	return gen.SampleRange(ctx.src, c.sizeLo, c.sizeHi), false, nil
}

// childPath extends a record position with a member segment.
func childPath(path pathexpr.Path, name string) pathexpr.Path {
	return append(slices.Clone(path), pathexpr.Segment{Name: name})
}

// elemPath turns a collection position into its i-th element position.
// Elements of unaddressable collections (the root, or nested one level past
// an index — the grammar has no double indexing) carry no path.
func elemPath(path pathexpr.Path, i int) pathexpr.Path {
	if len(path) == 0 || path[len(path)-1].Kind != pathexpr.IndexNone {
		return nil
	}
	p := slices.Clone(path)
	p[len(p)-1].Kind = pathexpr.IndexExact
	p[len(p)-1].Index = i

	return p
}

// keyPath turns a map position into the position of one realized entry.
func keyPath(path pathexpr.Path, key reflect.Value) pathexpr.Path {
	if len(path) == 0 || path[len(path)-1].Kind != pathexpr.IndexNone {
		return nil
	}
	p := slices.Clone(path)
	p[len(p)-1].Kind = pathexpr.IndexKey
	p[len(p)-1].Key = formatKey(key)

	return p
}

// formatKey renders a realized map key in the form path key literals use.
func formatKey(key reflect.Value) string {
	return fmt.Sprintf("%v", key.Interface())
}
