// Package core contains unit tests for the Introspector: kind resolution,
// strategy chain failover, caching, and registration options.
package core

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string
	Age   int
	Tags  []string
	Attrs map[string]int
	Grid  [4]float64
	Prev  *profile
}

// counter keeps state unexported and exposes a setter; only the setters
// strategy can describe it.
type counter struct {
	n int
}

func (c *counter) SetN(n int) { c.n = n }

// N reads the counter value back (used by engine-level tests).
func (c *counter) N() int { return c.n }

type hidden struct {
	a int // no exported fields, no setters
}

type status string

type payer interface {
	Pay() status
}

type cardPayer struct {
	Limit int
}

func (cardPayer) Pay() status { return "paid" }

func TestDescribeKinds(t *testing.T) {
	t.Parallel()

	in := NewIntrospector()
	d, err := in.Describe(reflect.TypeOf(profile{}))
	require.NoError(t, err)
	require.Equal(t, KindRecord, d.Kind)
	require.Equal(t, ConstructFields, d.Construct)
	require.Len(t, d.Members, 6)

	name, ok := d.Member("Name")
	require.True(t, ok)
	require.Equal(t, KindPrimitive, name.Desc.Kind)

	tags, ok := d.Member("Tags")
	require.True(t, ok)
	require.Equal(t, KindCollection, tags.Desc.Kind)
	require.Equal(t, -1, tags.Desc.ArrayLen)
	require.Equal(t, KindPrimitive, tags.Desc.Elem.Kind)
	require.True(t, tags.Desc.Nullable())

	attrs, ok := d.Member("Attrs")
	require.True(t, ok)
	require.Equal(t, KindMap, attrs.Desc.Kind)
	require.Equal(t, KindPrimitive, attrs.Desc.Key.Kind)
	require.Equal(t, KindPrimitive, attrs.Desc.Value.Kind)

	grid, ok := d.Member("Grid")
	require.True(t, ok)
	require.Equal(t, KindCollection, grid.Desc.Kind)
	require.Equal(t, 4, grid.Desc.ArrayLen)
	require.False(t, grid.Desc.Nullable())

	prev, ok := d.Member("Prev")
	require.True(t, ok)
	require.Equal(t, KindPointer, prev.Desc.Kind)
	require.True(t, prev.Desc.Nullable())
}

func TestDescribeSelfReference(t *testing.T) {
	t.Parallel()

	in := NewIntrospector()
	d, err := in.Describe(reflect.TypeOf(profile{}))
	require.NoError(t, err)

	// The pointee of Prev is the record itself: one descriptor, cyclic graph.
	prev, _ := d.Member("Prev")
	require.Same(t, d, prev.Desc.Elem)
}

func TestDescribeCached(t *testing.T) {
	t.Parallel()

	in := NewIntrospector()
	a, err := in.Describe(reflect.TypeOf(profile{}))
	require.NoError(t, err)
	b, err := in.Describe(reflect.TypeOf(profile{}))
	require.NoError(t, err)
	require.Same(t, a, b)
}

func TestDescribeOpaqueBuiltins(t *testing.T) {
	t.Parallel()

	in := NewIntrospector()
	for _, typ := range []reflect.Type{reflect.TypeOf(time.Time{}), reflect.TypeOf(uuid.UUID{})} {
		d, err := in.Describe(typ)
		require.NoError(t, err)
		require.Equal(t, KindPrimitive, d.Kind, "type %s", typ)
	}
}

func TestSettersStrategyFallback(t *testing.T) {
	t.Parallel()

	in := NewIntrospector()
	d, err := in.Describe(reflect.TypeOf(counter{}))
	require.NoError(t, err)
	require.Equal(t, KindRecord, d.Kind)
	require.Equal(t, ConstructSetters, d.Construct)
	require.Len(t, d.Members, 1)
	require.Equal(t, "N", d.Members[0].Name)
	require.Equal(t, "SetN", d.Members[0].Setter)
	require.Equal(t, -1, d.Members[0].FieldIndex)
}

func TestDescribeUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"nothing accessible", reflect.TypeOf(hidden{})},
		{"channel", reflect.TypeOf(make(chan int))},
		{"func", reflect.TypeOf(func() {})},
		{"interface without substitute", TypeOf[payer]()},
		{"struct with channel member", reflect.TypeOf(struct{ C chan int }{})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := NewIntrospector()
			_, err := in.Describe(tc.typ)
			require.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestDescribeNilType(t *testing.T) {
	t.Parallel()

	_, err := NewIntrospector().Describe(nil)
	require.ErrorIs(t, err, ErrNilType)
}

func TestWithEnum(t *testing.T) {
	t.Parallel()

	in := NewIntrospector(WithEnum(status("init"), status("paid"), status("void")))
	d, err := in.Describe(reflect.TypeOf(status("")))
	require.NoError(t, err)
	require.Equal(t, KindEnum, d.Kind)
	require.Len(t, d.EnumValues, 3)
	require.Equal(t, "init", d.EnumValues[0].String())
}

func TestWithSubstitute(t *testing.T) {
	t.Parallel()

	in := NewIntrospector(WithSubstitute(TypeOf[payer](), reflect.TypeOf(cardPayer{})))
	d, err := in.Describe(TypeOf[payer]())
	require.NoError(t, err)
	require.Equal(t, KindRecord, d.Kind)
	require.Equal(t, reflect.TypeOf(cardPayer{}), d.Type)
}

func TestStrategyChainOrder(t *testing.T) {
	t.Parallel()

	// With only the setters strategy, plain exported structs become
	// unsupported: the first (and only) strategy must fully describe.
	in := NewIntrospector(WithStrategies(SettersStrategy{}))
	_, err := in.Describe(reflect.TypeOf(struct{ A int }{}))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { WithStrategies() })
	require.Panics(t, func() { WithStrategies(nil) })
	require.Panics(t, func() { WithEnum() })
	require.Panics(t, func() { WithEnum(status("a"), 1) })
	require.Panics(t, func() { WithSubstitute(reflect.TypeOf(0), reflect.TypeOf(0)) })
	require.Panics(t, func() { WithSubstitute(TypeOf[payer](), reflect.TypeOf(hidden{})) })
	require.Panics(t, func() { WithOpaque(nil) })
}

func TestDescribePackageLevel(t *testing.T) {
	t.Parallel()

	d, err := Describe(reflect.TypeOf(profile{}))
	require.NoError(t, err)
	require.Equal(t, KindRecord, d.Kind)

	_, err = Describe(reflect.TypeOf(make(chan int)))
	require.True(t, errors.Is(err, ErrUnsupportedType))
}
