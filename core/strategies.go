// strategies.go — the introspection strategy chain for record types.
//
// Contract (strict):
//   - A Strategy either FULLY describes a struct type (every member resolves
//     to a concrete descriptor) or returns an error; partial descriptions are
//     never produced.
//   - The Introspector tries strategies in chain order; the first success
//     wins and later strategies are not attempted.
//   - Strategies recurse through the supplied Resolver only, never through
//     the Introspector directly, so mid-walk cycle placeholders stay intact.

package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Resolver resolves member types during a single describe walk.
// Implementations are supplied by the Introspector and must not be retained
// past the Describe call that produced them.
type Resolver interface {
	Resolve(t reflect.Type) (*TypeDescriptor, error)
}

// resolverFunc adapts a closure to the Resolver interface.
type resolverFunc func(t reflect.Type) (*TypeDescriptor, error)

func (f resolverFunc) Resolve(t reflect.Type) (*TypeDescriptor, error) { return f(t) }

// Strategy describes one way of turning a struct type into a KindRecord
// descriptor. See FieldsStrategy and SettersStrategy for the built-in chain.
type Strategy interface {
	// Name identifies the strategy in error messages.
	Name() string

	// Describe returns a fully populated KindRecord descriptor for t, or an
	// error when t is outside this strategy's reach.
	Describe(t reflect.Type, r Resolver) (*TypeDescriptor, error)
}

// FieldsStrategy describes a struct through its exported fields and
// materializes instances by direct field assignment.
//
// The strategy refuses structs with unexported fields: they could not be
// assigned afterwards, so the description would not be full.
type FieldsStrategy struct{}

// Name implements Strategy.
func (FieldsStrategy) Name() string { return "fields" }

// Describe implements Strategy.
// Complexity: O(NumField) plus recursive member resolution.
func (FieldsStrategy) Describe(t reflect.Type, r Resolver) (*TypeDescriptor, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("core: fields strategy: %s is not a struct", t)
	}

	n := t.NumField()
	members := make([]Member, 0, n)
	for i := 0; i < n; i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// Unexported field: the instance could not be fully assigned.
			return nil, fmt.Errorf("core: fields strategy: %s.%s is unexported", t, f.Name)
		}
		md, err := r.Resolve(f.Type)
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Name: f.Name, FieldIndex: i, Desc: md})
	}

	return &TypeDescriptor{Type: t, Kind: KindRecord, Members: members, Construct: ConstructFields, ArrayLen: -1}, nil
}

// SettersStrategy describes a struct through its pointer-receiver
// Set<Name>(value) methods and materializes instances by calling them in
// member order. It is the fallback for types that keep state unexported but
// expose mutators.
type SettersStrategy struct{}

// Name implements Strategy.
func (SettersStrategy) Name() string { return "setters" }

// Describe implements Strategy.
// A usable setter takes exactly one argument and returns nothing; member
// order follows reflect's alphabetical method order, which is stable.
// Complexity: O(NumMethod) plus recursive member resolution.
func (SettersStrategy) Describe(t reflect.Type, r Resolver) (*TypeDescriptor, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("core: setters strategy: %s is not a struct", t)
	}

	pt := reflect.PointerTo(t)
	var members []Member
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if !strings.HasPrefix(m.Name, "Set") || len(m.Name) == len("Set") {
			continue
		}
		// NumIn counts the receiver for method values obtained from a type.
		if m.Type.NumIn() != 2 || m.Type.NumOut() != 0 {
			continue
		}
		md, err := r.Resolve(m.Type.In(1))
		if err != nil {
			return nil, err
		}
		members = append(members, Member{
			Name:       m.Name[len("Set"):],
			FieldIndex: -1,
			Setter:     m.Name,
			Desc:       md,
		})
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("core: setters strategy: %s exposes no Set<Name> methods", t)
	}

	return &TypeDescriptor{Type: t, Kind: KindRecord, Members: members, Construct: ConstructSetters, ArrayLen: -1}, nil
}
