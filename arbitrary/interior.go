// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// interior.go — applying customizations inside generator-produced values,
// plus literal coercion.
//
// When a per-type override or SetGenerator sources a composite value, paths
// targeting its interior still apply: the engine navigates the produced
// value by reflection and assigns the customized positions in place.
// Precedence holds by application order: wildcard-path customizations land
// first, exact-path ones after (an exact index overwrites a wildcard on the
// same element), registration order within each phase.

package arbitrary

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/gen"
	"github.com/katalvlaran/specimen/pathexpr"
)

// applyInterior lands every customization addressing the subtree of the
// produced value v (addressable) rooted at path.
func (e *engine) applyInterior(ctx *genContext, v reflect.Value, desc *core.TypeDescriptor, path pathexpr.Path) error {
	// Phase 1: wildcard paths; phase 2: exact paths overwrite on overlap.
	for _, wildcards := range []bool{true, false} {
		for i := range e.customs {
			c := &e.customs[i]
			if c.path.Wildcarded() != wildcards || !c.path.Within(path) {
				continue
			}
			if c.op == opSize {
				return fmt.Errorf("arbitrary: Size(%q) cannot resize a generator-produced value: %w",
					c.path.String(), gen.ErrConstraintConflict)
			}
			matched, err := e.applyWithin(ctx, c, v, desc, path)
			if err != nil {
				return err
			}
			if matched {
				ctx.consumed[i] = true
			}
		}
	}

	return nil
}

// applyWithin routes one interior customization: paths that index into the
// position's own final segment navigate v as the collection/map itself;
// plain extensions navigate v as a record.
func (e *engine) applyWithin(ctx *genContext, c *customization, v reflect.Value, desc *core.TypeDescriptor, path pathexpr.Path) (bool, error) {
	n := len(path)
	if n > 0 && path[n-1].Kind == pathexpr.IndexNone && len(c.path) >= n && c.path[n-1].Kind != pathexpr.IndexNone {
		return e.applyIndexed(ctx, c, v, desc, c.path[n-1:])
	}

	return e.applyAt(ctx, c, v, desc, c.path[n:])
}

// applyAt navigates one segment of rest inside v and either assigns the
// terminal position or recurses. Returns whether any position was assigned;
// unmatched exact positions surface through the engine's leftover check.
func (e *engine) applyAt(ctx *genContext, c *customization, v reflect.Value, desc *core.TypeDescriptor, rest pathexpr.Path) (bool, error) {
	// Pointer wrapping is transparent; a nil link means nothing to address.
	for desc.Kind == core.KindPointer {
		if v.IsNil() {
			return false, nil
		}
		v = v.Elem()
		desc = desc.Elem
	}
	if desc.Kind != core.KindRecord {
		return false, fmt.Errorf("arbitrary: path %q: %s has no members: %w",
			c.path.String(), desc.Type, ErrInvalidPath)
	}

	seg := rest[0]
	m, ok := desc.Member(seg.Name)
	if !ok {
		return false, fmt.Errorf("arbitrary: path %q: %s has no member %q: %w",
			c.path.String(), desc.Type, seg.Name, ErrInvalidPath)
	}
	if m.FieldIndex < 0 {
		return false, fmt.Errorf("arbitrary: path %q: setter-built %s is not addressable inside a generated value: %w",
			c.path.String(), desc.Type, ErrInvalidPath)
	}
	fv := v.Field(m.FieldIndex)

	if seg.Kind == pathexpr.IndexNone {
		if len(rest) == 1 {
			return true, e.assignTerminal(ctx, c, fv, m.Desc)
		}

		return e.applyAt(ctx, c, fv, m.Desc, rest[1:])
	}

	return e.applyIndexed(ctx, c, fv, m.Desc, rest)
}

// applyIndexed lands rest on the element(s) of the collection/map member fv
// selected by its leading indexed segment.
func (e *engine) applyIndexed(ctx *genContext, c *customization, fv reflect.Value, desc *core.TypeDescriptor, rest pathexpr.Path) (bool, error) {
	for desc.Kind == core.KindPointer {
		if fv.IsNil() {
			return false, nil
		}
		fv = fv.Elem()
		desc = desc.Elem
	}
	seg := rest[0]

	switch desc.Kind {
	case core.KindCollection:
		lo, hi := 0, fv.Len()
		if seg.Kind == pathexpr.IndexExact {
			if seg.Index >= fv.Len() {
				return false, nil
			}
			lo, hi = seg.Index, seg.Index+1
		}
		matched := false
		for i := lo; i < hi; i++ {
			m, err := e.applyElem(ctx, c, fv.Index(i), desc.Elem, rest)
			if err != nil {
				return false, err
			}
			matched = matched || m
		}

		return matched, nil

	case core.KindMap:
		matched := false
		for _, kv := range fv.MapKeys() {
			if !interiorKeyMatches(seg, kv) {
				continue
			}
			// Map values are not addressable: copy out, modify, store back.
			tmp := reflect.New(desc.Value.Type).Elem()
			tmp.Set(fv.MapIndex(kv))
			m, err := e.applyElem(ctx, c, tmp, desc.Value, rest)
			if err != nil {
				return false, err
			}
			if m {
				fv.SetMapIndex(kv, tmp)
				matched = true
			}
		}

		return matched, nil

	default:
		return false, fmt.Errorf("arbitrary: path %q: %s is not indexable: %w",
			c.path.String(), desc.Type, ErrInvalidPath)
	}
}

// applyElem assigns or recurses at one selected element.
func (e *engine) applyElem(ctx *genContext, c *customization, ev reflect.Value, desc *core.TypeDescriptor, rest pathexpr.Path) (bool, error) {
	if len(rest) == 1 {
		return true, e.assignTerminal(ctx, c, ev, desc)
	}

	return e.applyAt(ctx, c, ev, desc, rest[1:])
}

// assignTerminal writes the customized value into the addressed position.
func (e *engine) assignTerminal(ctx *genContext, c *customization, target reflect.Value, desc *core.TypeDescriptor) error {
	switch c.op {
	case opSet:
		cv, err := coerce(c.value, desc)
		if err != nil {
			return fmt.Errorf("arbitrary: Set(%q): %w", c.path.String(), err)
		}
		target.Set(cv)

	case opSetGen:
		raw, err := c.genFn(ctx.src)
		if err != nil {
			return fmt.Errorf("arbitrary: generator at %q: %w", c.path.String(), err)
		}
		cv, err := coerce(raw, desc)
		if err != nil {
			return fmt.Errorf("arbitrary: generator at %q: %w", c.path.String(), err)
		}
		target.Set(cv)

	default: // opSetNull
		if !desc.Nullable() {
			return fmt.Errorf("arbitrary: SetNull(%q): %s is not nullable: %w",
				c.path.String(), desc.Type, ErrInvalidPath)
		}
		target.Set(reflect.Zero(desc.Type))
	}

	return nil
}

// interiorKeyMatches compares one realized map key against a pattern
// segment the way match.go does for engine positions.
func interiorKeyMatches(seg pathexpr.Segment, key reflect.Value) bool {
	switch seg.Kind {
	case pathexpr.IndexWildcard:
		return true
	case pathexpr.IndexExact:
		return strconv.Itoa(seg.Index) == formatKey(key)
	case pathexpr.IndexKey:
		return seg.Key == formatKey(key)
	default:
		return false
	}
}

// coerce adapts a caller-supplied literal (or generator output) to the
// descriptor's type: direct assignment, pointer wrapping, and same-class
// numeric or string conversions. Anything else conflicts.
func coerce(val any, desc *core.TypeDescriptor) (reflect.Value, error) {
	t := desc.Type
	if val == nil {
		if !desc.Nullable() {
			return reflect.Value{}, fmt.Errorf("nil for non-nullable %s: %w", t, ErrInvalidPath)
		}

		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case t.Kind() == reflect.Pointer && rv.Type().AssignableTo(t.Elem()):
		pv := reflect.New(t.Elem())
		pv.Elem().Set(rv)

		return pv, nil
	case convertCompatible(rv.Type(), t):
		return rv.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("value of type %s does not fit %s: %w", rv.Type(), t, gen.ErrConstraintConflict)
	}
}

// convertCompatible permits conversions that preserve the value's class:
// numeric to numeric and string-kind to string-kind. Cross-class
// conversions Go would allow (int to string) are rejected as mistakes.
func convertCompatible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	if isNumeric(from.Kind()) && isNumeric(to.Kind()) {
		return true
	}

	return from.Kind() == reflect.String && to.Kind() == reflect.String
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
