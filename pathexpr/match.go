// match.go — pattern matching and precedence between registered paths and
// concrete generation positions.
//
// Contract (strict):
//   - A concrete position is a Path whose segments carry only IndexNone,
//     IndexExact, or IndexKey (wildcards never appear in realized positions).
//   - Precedence is leftmost-first: at the first segment where one pattern
//     is exact and the other is a wildcard, the exact pattern wins.
//     Full ties are broken by registration order (later wins), which the
//     engine enforces by scanning its customization log in order.

package pathexpr

import "strconv"

// Matches reports whether the pattern p addresses the concrete position c.
// Segment counts and names must agree exactly; wildcards match any realized
// index or key; integer patterns also match map keys whose formatted form is
// the same decimal string.
// Complexity: O(len(p)).
func (p Path) Matches(c Path) bool {
	if len(p) != len(c) {
		return false
	}
	for i := range p {
		if !segmentMatches(p[i], c[i]) {
			return false
		}
	}

	return true
}

// Within reports whether the pattern p addresses a position strictly inside
// the subtree rooted at the concrete position c. Two shapes qualify: p
// extends c with further segments, or p indexes into c's final unindexed
// segment ("Tags[0]" is within position "Tags"). The engine uses this to
// keep nullable ancestors of a customized position non-nil and to shadow
// interior customizations under literal sets.
// Complexity: O(len(c)).
func (p Path) Within(c Path) bool {
	n := len(c)
	if n == 0 {
		return len(p) > 0
	}
	if len(p) < n || !p[:n-1].Matches(c[:n-1]) {
		return false
	}
	last, cl := p[n-1], c[n-1]
	if last.Name != cl.Name {
		return false
	}
	if len(p) == n {
		// Same depth: inside only when p indexes into the unindexed
		// collection/map position c.
		return cl.Kind == IndexNone && last.Kind != IndexNone
	}

	return segmentMatches(last, cl) || (cl.Kind == IndexNone && last.Kind != IndexNone)
}

// Compare orders two patterns that both match the same concrete position.
// It returns +1 when a is more specific than b, -1 when b is more specific,
// and 0 on a tie. Exactness is compared leftmost-first; an exact index or
// key beats a wildcard at the first segment where they differ.
// Complexity: O(min(len(a), len(b))).
func Compare(a, b Path) int {
	for i := range a {
		if i >= len(b) {
			break
		}
		aw := a[i].Kind == IndexWildcard
		bw := b[i].Kind == IndexWildcard
		switch {
		case aw && !bw:
			return -1
		case !aw && bw:
			return +1
		}
	}

	return 0
}

func segmentMatches(pat, con Segment) bool {
	if pat.Name != con.Name {
		return false
	}
	switch pat.Kind {
	case IndexNone:
		return con.Kind == IndexNone
	case IndexWildcard:
		return con.Kind == IndexExact || con.Kind == IndexKey
	case IndexExact:
		if con.Kind == IndexExact {
			return pat.Index == con.Index
		}
		// Numeric patterns address map entries keyed by the same decimal
		// form (map[int]V positions are realized as formatted keys).
		return con.Kind == IndexKey && strconv.Itoa(pat.Index) == con.Key
	case IndexKey:
		return con.Kind == IndexKey && pat.Key == con.Key
	default:
		return false
	}
}
