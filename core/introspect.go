// introspect.go — the Introspector: kind dispatch, strategy chain, memo cache.
//
// Design contract (strict):
//   - Describe(t) resolves a type exactly once; results are cached in a
//     sync.Map and shared read-only afterwards.
//   - Structural kinds (primitive/pointer/slice/array/map) are resolved
//     directly; struct and interface types go through the ordered strategy
//     chain — the first strategy that fully describes the type wins.
//   - Self-referential types are supported: an in-progress placeholder is
//     recorded per describe walk, so cyclic shapes resolve to a cyclic
//     descriptor graph instead of recursing forever.
//   - Registration (enums, substitutes, opaque types, strategies) happens in
//     NewIntrospector only; an Introspector is immutable after construction
//     and safe for unsynchronized concurrent Describe calls.

package core

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Introspector resolves Go types into cached TypeDescriptors.
// Construct with NewIntrospector; the zero value is not usable.
type Introspector struct {
	chain  []Strategy
	enums  map[reflect.Type][]reflect.Value
	subs   map[reflect.Type]reflect.Type
	opaque map[reflect.Type]struct{}
	cache  sync.Map // reflect.Type -> *TypeDescriptor
}

// NewIntrospector builds an Introspector from the given options.
// Defaults: strategy chain [fields, setters]; time.Time and uuid.UUID are
// opaque primitives (they carry unexported fields and are generated
// atomically by the gen package).
// Complexity: O(len(opts)).
func NewIntrospector(opts ...Option) *Introspector {
	in := &Introspector{
		chain:  []Strategy{FieldsStrategy{}, SettersStrategy{}},
		enums:  make(map[reflect.Type][]reflect.Value),
		subs:   make(map[reflect.Type]reflect.Type),
		opaque: make(map[reflect.Type]struct{}),
	}
	in.opaque[reflect.TypeOf(time.Time{})] = struct{}{}
	in.opaque[reflect.TypeOf(uuid.UUID{})] = struct{}{}
	for _, opt := range opts {
		opt(in)
	}

	return in
}

// defaultIntrospector backs the package-level Describe.
var defaultIntrospector = NewIntrospector()

// Describe resolves t with the package-level default Introspector.
// Results are cached; repeated calls for the same type return the same
// *TypeDescriptor pointer.
func Describe(t reflect.Type) (*TypeDescriptor, error) {
	return defaultIntrospector.Describe(t)
}

// Describe resolves t into its TypeDescriptor, memoized per type.
//
// Errors:
//   - ErrNilType for a nil type.
//   - ErrUnsupportedType (wrapped with the failing type and, when available,
//     the last strategy failure) when no strategy can describe the type.
//
// Complexity: O(size of the type shape) on first call, O(1) cached.
func (in *Introspector) Describe(t reflect.Type) (*TypeDescriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("core: Describe: %w", ErrNilType)
	}
	if cached, ok := in.cache.Load(t); ok {
		return cached.(*TypeDescriptor), nil
	}

	d, err := in.describe(t, make(map[reflect.Type]*TypeDescriptor))
	if err != nil {
		return nil, err
	}

	return d, nil
}

// describe is the recursive worker behind Describe. visiting maps types that
// are mid-resolution in this walk to their placeholder descriptors, so a
// self-referential member resolves to the placeholder instead of recursing.
func (in *Introspector) describe(t reflect.Type, visiting map[reflect.Type]*TypeDescriptor) (*TypeDescriptor, error) {
	// Fast path: a previous Describe call already resolved this type.
	if cached, ok := in.cache.Load(t); ok {
		return cached.(*TypeDescriptor), nil
	}
	// Cycle guard: hand back the in-progress placeholder; it is fully
	// populated by the time the outermost frame returns.
	if ph, ok := visiting[t]; ok {
		return ph, nil
	}

	// Abstract types resolve to their registered concrete substitute's
	// descriptor wholesale; generated concrete values are assignable to the
	// interface slot, so no separate shape is needed.
	if t.Kind() == reflect.Interface {
		impl, ok := in.subs[t]
		if !ok {
			return nil, fmt.Errorf("core: interface %s has no registered substitute: %w", t, ErrUnsupportedType)
		}
		sub, err := in.describe(impl, visiting)
		if err != nil {
			return nil, err
		}
		actual, _ := in.cache.LoadOrStore(t, sub)

		return actual.(*TypeDescriptor), nil
	}

	ph := &TypeDescriptor{Type: t, ArrayLen: -1}
	visiting[t] = ph
	defer delete(visiting, t)

	if err := in.fill(ph, t, visiting); err != nil {
		return nil, err
	}

	// Publish only fully built descriptors; concurrent duplicate builds
	// collapse onto whichever landed first.
	actual, _ := in.cache.LoadOrStore(t, ph)

	return actual.(*TypeDescriptor), nil
}

// fill populates the placeholder in place so that cyclic references taken
// during member resolution stay valid.
func (in *Introspector) fill(d *TypeDescriptor, t reflect.Type, visiting map[reflect.Type]*TypeDescriptor) error {
	// Registered enums win over structural resolution: the declared value
	// set fully defines generation for the type.
	if vals, ok := in.enums[t]; ok {
		d.Kind = KindEnum
		d.EnumValues = vals

		return nil
	}
	// Opaque well-known types (time.Time, uuid.UUID, user-registered) are
	// generated atomically and never descended into.
	if _, ok := in.opaque[t]; ok {
		d.Kind = KindPrimitive

		return nil
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		d.Kind = KindPrimitive

		return nil

	case reflect.Pointer:
		elem, err := in.describe(t.Elem(), visiting)
		if err != nil {
			return err
		}
		d.Kind = KindPointer
		d.Elem = elem

		return nil

	case reflect.Slice, reflect.Array:
		elem, err := in.describe(t.Elem(), visiting)
		if err != nil {
			return err
		}
		d.Kind = KindCollection
		d.Elem = elem
		if t.Kind() == reflect.Array {
			d.ArrayLen = t.Len()
		}

		return nil

	case reflect.Map:
		key, err := in.describe(t.Key(), visiting)
		if err != nil {
			return err
		}
		val, err := in.describe(t.Elem(), visiting)
		if err != nil {
			return err
		}
		d.Kind = KindMap
		d.Key = key
		d.Value = val

		return nil

	case reflect.Struct:
		return in.runChain(d, t, visiting)

	default:
		// chan, func, uintptr, unsafe.Pointer: nothing sensible to generate.
		return fmt.Errorf("core: cannot describe %s (%s): %w", t, t.Kind(), ErrUnsupportedType)
	}
}

// runChain applies the strategy chain in order; the first strategy that
// fully describes t wins and later strategies are not attempted.
func (in *Introspector) runChain(d *TypeDescriptor, t reflect.Type, visiting map[reflect.Type]*TypeDescriptor) error {
	res := resolverFunc(func(mt reflect.Type) (*TypeDescriptor, error) {
		return in.describe(mt, visiting)
	})

	var lastErr error
	for _, s := range in.chain {
		got, err := s.Describe(t, res)
		if err != nil {
			lastErr = err

			continue
		}
		// Copy into the placeholder so cyclic references stay valid.
		d.Kind = got.Kind
		d.Members = got.Members
		d.Construct = got.Construct

		return nil
	}

	return fmt.Errorf("core: no strategy describes %s (last: %v): %w", t, lastErr, ErrUnsupportedType)
}
