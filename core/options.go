// options.go — functional options for Introspector construction.
//
// Contract (strict):
//   - Options are functional (type Option func(*Introspector)).
//   - Option constructors VALIDATE and PANIC on meaningless inputs;
//     Describe itself never panics.
//   - Registration is confined to NewIntrospector; once constructed, an
//     Introspector is read-only and safe for concurrent Describe calls.

package core

import (
	"fmt"
	"reflect"
)

// Option customizes an Introspector before first use.
// Complexity: applying N options costs O(N) time.
type Option func(*Introspector)

// WithStrategies replaces the introspection strategy chain. Order matters:
// the first strategy that fully describes a struct type wins.
// Panics on an empty chain or a nil strategy.
func WithStrategies(chain ...Strategy) Option {
	if len(chain) == 0 {
		panic("core: WithStrategies: empty chain")
	}
	for i, s := range chain {
		if s == nil {
			panic(fmt.Sprintf("core: WithStrategies: nil strategy at index %d", i))
		}
	}
	return func(in *Introspector) {
		in.chain = chain
	}
}

// WithEnum registers a closed value set for the dynamic type of the given
// values; the type is described as KindEnum and generation selects uniformly
// over the declared values.
// Panics on an empty set or on values of differing types.
func WithEnum(values ...any) Option {
	if len(values) == 0 {
		panic("core: WithEnum: empty value set")
	}
	t := reflect.TypeOf(values[0])
	if t == nil {
		panic("core: WithEnum: untyped nil value")
	}
	vals := make([]reflect.Value, len(values))
	for i, v := range values {
		rv := reflect.ValueOf(v)
		if rv.Type() != t {
			panic(fmt.Sprintf("core: WithEnum: mixed value types %s and %s", t, rv.Type()))
		}
		vals[i] = rv
	}
	return func(in *Introspector) {
		in.enums[t] = vals
	}
}

// WithSubstitute registers a concrete type to stand in for an abstract
// (interface) type during description and generation.
// Panics when iface is not an interface type or impl does not implement it.
func WithSubstitute(iface, impl reflect.Type) Option {
	if iface == nil || impl == nil {
		panic("core: WithSubstitute: nil type")
	}
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("core: WithSubstitute: %s is not an interface", iface))
	}
	if !impl.Implements(iface) {
		panic(fmt.Sprintf("core: WithSubstitute: %s does not implement %s", impl, iface))
	}
	return func(in *Introspector) {
		in.subs[iface] = impl
	}
}

// WithOpaque marks a type as an atomic primitive: the Introspector will not
// descend into it, and generation must come from a registered per-type
// generator. time.Time and uuid.UUID are opaque out of the box.
// Panics on a nil type.
func WithOpaque(t reflect.Type) Option {
	if t == nil {
		panic("core: WithOpaque: nil type")
	}
	return func(in *Introspector) {
		in.opaque[t] = struct{}{}
	}
}
