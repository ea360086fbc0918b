// Package pathexpr contains unit tests for the path grammar and the
// matching/precedence rules applied by the sampling engine.
package pathexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAccepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr string
		want Path
	}{
		{"name", Path{{Name: "name"}}},
		{"owner.name", Path{{Name: "owner"}, {Name: "name"}}},
		{"tags[0]", Path{{Name: "tags", Kind: IndexExact, Index: 0}}},
		{"tags[12]", Path{{Name: "tags", Kind: IndexExact, Index: 12}}},
		{"tags[*]", Path{{Name: "tags", Kind: IndexWildcard}}},
		{"attrs[en]", Path{{Name: "attrs", Kind: IndexKey, Key: "en"}}},
		{"attrs[-1]", Path{{Name: "attrs", Kind: IndexKey, Key: "-1"}}},
		{"items[3].sku", Path{{Name: "items", Kind: IndexExact, Index: 3}, {Name: "sku"}}},
		{"_a1.B2[*].c", Path{{Name: "_a1"}, {Name: "B2", Kind: IndexWildcard}, {Name: "c"}}},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, tc.expr, got.String(), "canonical form must round-trip")
		})
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	exprs := []string{
		"",
		".",
		"a.",
		".a",
		"a..b",
		"1a",
		"a-b",
		"a[",
		"a[]",
		"a[1",
		"a[*",
		"a[x.y]",
		"a[x[0]]",
		"a[0]b",
		"a b",
	}
	for _, expr := range exprs {
		t.Run("reject "+expr, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(expr)
			require.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { MustParse("a..b") })
	require.NotPanics(t, func() { MustParse("a.b[0]") })
}

func TestWildcarded(t *testing.T) {
	t.Parallel()

	require.True(t, MustParse("a[*].b").Wildcarded())
	require.False(t, MustParse("a[0].b[k]").Wildcarded())
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern  string
		position string
		want     bool
	}{
		{"name", "name", true},
		{"name", "email", false},
		{"owner.name", "owner.name", true},
		{"owner.name", "owner", false},
		{"owner", "owner.name", false},
		{"tags[0]", "tags[0]", true},
		{"tags[0]", "tags[1]", false},
		{"tags[*]", "tags[7]", true},
		{"tags[*]", "tags", false},
		{"attrs[en]", "attrs[en]", true},
		{"attrs[en]", "attrs[de]", false},
		{"attrs[*]", "attrs[en]", true},
		// Integer patterns also address map entries keyed by the same
		// decimal form.
		{"scores[3]", "scores[3]", true},
		{"items[*].sku", "items[2].sku", true},
		{"items[2].sku", "items[2].qty", false},
	}
	for _, tc := range tests {
		t.Run(tc.pattern+" vs "+tc.position, func(t *testing.T) {
			t.Parallel()

			p := MustParse(tc.pattern)
			c := MustParse(tc.position)
			require.Equal(t, tc.want, p.Matches(c))
		})
	}
}

func TestExactPatternMatchesFormattedMapKey(t *testing.T) {
	t.Parallel()

	pat := Path{{Name: "scores", Kind: IndexExact, Index: 3}}
	pos := Path{{Name: "scores", Kind: IndexKey, Key: "3"}}
	require.True(t, pat.Matches(pos))

	pos[0].Key = "03"
	require.False(t, pat.Matches(pos))
}

func TestWithin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern  string
		position string
		want     bool
	}{
		// Plain extension below a record position.
		{"owner.name", "owner", true},
		{"owner.addr.city", "owner", true},
		{"owner", "owner", false},
		{"other.name", "owner", false},
		// Indexing into the position's own collection/map segment.
		{"tags[0]", "tags", true},
		{"tags[*]", "tags", true},
		{"attrs[en]", "attrs", true},
		{"tags[0].x", "tags", true},
		{"tags", "tags", false},
		{"tags[0]", "tags[0]", false},
		// Below a realized element position.
		{"items[2].sku", "items[2]", true},
		{"items[3].sku", "items[2]", false},
		{"items[*].sku", "items[2]", true},
	}
	for _, tc := range tests {
		t.Run(tc.pattern+" within "+tc.position, func(t *testing.T) {
			t.Parallel()

			p := MustParse(tc.pattern)
			c := MustParse(tc.position)
			require.Equal(t, tc.want, p.Within(c))
		})
	}
}

func TestWithinRoot(t *testing.T) {
	t.Parallel()

	require.True(t, MustParse("a").Within(nil))
	require.False(t, Path(nil).Within(nil))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"tags[0]", "tags[*]", +1},
		{"tags[*]", "tags[0]", -1},
		{"tags[0]", "tags[0]", 0},
		{"tags[*]", "tags[*]", 0},
		{"attrs[en]", "attrs[*]", +1},
		// Leftmost segment decides even when later segments disagree.
		{"items[1].parts[*]", "items[*].parts[2]", +1},
		{"items[*].parts[2]", "items[1].parts[*]", -1},
	}
	for _, tc := range tests {
		t.Run(tc.a+" vs "+tc.b, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, Compare(MustParse(tc.a), MustParse(tc.b)))
		})
	}
}
