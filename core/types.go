// Package core defines the central TypeDescriptor model and the Introspector
// that resolves Go types into structural descriptions used by the generation
// engine.
//
// A TypeDescriptor is built once per reflect.Type, cached, and never mutated
// afterwards; every other subpackage shares it read-only. All descriptor
// queries are therefore safe for unsynchronized concurrent use.
//
// This file declares Kind, Member, TypeDescriptor, sentinel errors, and the
// small helpers the rest of the module leans on.
//
// Errors:
//
//	ErrUnsupportedType - no introspection strategy could describe the type.
//	ErrNilType         - a nil reflect.Type was passed to Describe.
package core

import (
	"errors"
	"reflect"
)

// Sentinel errors for type introspection.
var (
	// ErrUnsupportedType indicates that every strategy in the introspection
	// chain failed to fully describe the requested type.
	// Usage: if errors.Is(err, ErrUnsupportedType) { /* register a generator or substitute */ }.
	ErrUnsupportedType = errors.New("core: unsupported type")

	// ErrNilType indicates a nil reflect.Type was passed to Describe.
	ErrNilType = errors.New("core: nil type")
)

// Kind is the closed structural variant of a TypeDescriptor.
// All components dispatch on Kind rather than on ad hoc reflect queries.
type Kind uint8

const (
	// KindPrimitive covers bools, integers, floats, complex numbers, strings,
	// and opaque well-known types (time.Time, uuid.UUID) generated atomically.
	KindPrimitive Kind = iota

	// KindRecord covers struct types described member-by-member.
	// Instantiated generic types arrive through reflect as ordinary named
	// struct types and take this path too.
	KindRecord

	// KindCollection covers slices and arrays.
	KindCollection

	// KindMap covers map types.
	KindMap

	// KindEnum covers types registered with a declared, closed value set;
	// generation selects uniformly over those values.
	KindEnum

	// KindPointer covers pointer types; the only nullable wrapper that can
	// absorb a recursion-limit escape during generation.
	KindPointer
)

// String returns the canonical lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindRecord:
		return "record"
	case KindCollection:
		return "collection"
	case KindMap:
		return "map"
	case KindEnum:
		return "enum"
	case KindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// ConstructStrategy selects how a KindRecord instance is materialized once
// all member values exist.
type ConstructStrategy uint8

const (
	// ConstructFields assigns exported struct fields directly.
	ConstructFields ConstructStrategy = iota

	// ConstructSetters calls pointer-receiver Set<Member> methods in member
	// order; chosen when fields are not accessible but setters are.
	ConstructSetters
)

// Member is one named, typed position of a KindRecord descriptor.
// Members keep declaration order; paths address them by Name.
type Member struct {
	// Name is the exported field name (or the setter suffix for
	// ConstructSetters records).
	Name string

	// FieldIndex is the struct field index for ConstructFields records;
	// -1 for setter-backed members.
	FieldIndex int

	// Setter is the full setter method name ("Set" + Name) for
	// ConstructSetters records; empty otherwise.
	Setter string

	// Desc is the member's own descriptor, shared read-only.
	Desc *TypeDescriptor
}

// TypeDescriptor is the immutable structural description of one Go type.
//
// It is built once by an Introspector, cached per type, and shared read-only
// by every builder and sampling call. Self-referential types are permitted:
// the descriptor graph may contain cycles, and the generation engine bounds
// recursion depth instead.
type TypeDescriptor struct {
	// Type is the described reflect.Type.
	Type reflect.Type

	// Kind is the closed structural variant of this descriptor.
	Kind Kind

	// Members holds the ordered named members of a KindRecord.
	Members []Member

	// Construct selects the record materialization strategy.
	Construct ConstructStrategy

	// Elem is the element descriptor of a KindCollection or the pointee of a
	// KindPointer.
	Elem *TypeDescriptor

	// Key and Value are the key/value descriptors of a KindMap.
	Key   *TypeDescriptor
	Value *TypeDescriptor

	// EnumValues holds the declared value set of a KindEnum.
	EnumValues []reflect.Value

	// ArrayLen is the fixed length for array-backed collections, or -1 for
	// slices (length resolved per sample).
	ArrayLen int
}

// Nullable reports whether a generated value of this descriptor can be nil.
// Pointers, slices, and maps are nullable; arrays, records, and primitives
// are not.
// Complexity: O(1).
func (d *TypeDescriptor) Nullable() bool {
	switch d.Kind {
	case KindPointer, KindMap:
		return true
	case KindCollection:
		return d.ArrayLen < 0 // slices only; arrays are value types
	default:
		return false
	}
}

// Member returns the named member of a KindRecord descriptor, or false when
// the name does not exist or the descriptor is not a record.
// Complexity: O(len(Members)); member counts are small by construction.
func (d *TypeDescriptor) Member(name string) (Member, bool) {
	if d.Kind != KindRecord {
		return Member{}, false
	}
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}

	return Member{}, false
}

// Indexable reports whether path index segments may be applied to this
// descriptor (collections take integer indices, maps take key literals).
// Complexity: O(1).
func (d *TypeDescriptor) Indexable() bool {
	return d.Kind == KindCollection || d.Kind == KindMap
}

// TypeOf is a small generic convenience returning the reflect.Type of T
// without requiring a value of T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
