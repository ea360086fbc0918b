// pathexpr.go — path segments, the parser, and canonical formatting.
//
// Contract (strict):
//   - Parse validates the full grammar eagerly and returns errors wrapping
//     ErrInvalidPath with position context; it never panics.
//   - A parsed Path is an immutable value; callers share it freely.
//   - Formatting round-trips: Parse(p.String()) reproduces p.

package pathexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath indicates a malformed path expression or, at generation
// time, a path that does not resolve against the concrete type shape.
// Usage: if errors.Is(err, ErrInvalidPath) { /* fix the registered path */ }.
var ErrInvalidPath = errors.New("pathexpr: invalid path")

// IndexKind classifies the bracket part of a segment.
type IndexKind uint8

const (
	// IndexNone means the segment carries no bracket ("tags").
	IndexNone IndexKind = iota

	// IndexExact addresses one collection element by position ("tags[2]").
	IndexExact

	// IndexWildcard addresses every realized element or key ("tags[*]").
	IndexWildcard

	// IndexKey addresses one map entry by formatted key ("attrs[en]").
	IndexKey
)

// Segment is one dot-separated component of a path.
type Segment struct {
	// Name is the member identifier.
	Name string

	// Kind classifies the bracket suffix, if any.
	Kind IndexKind

	// Index is the exact element position for IndexExact.
	Index int

	// Key is the formatted map key for IndexKey.
	Key string
}

// Path is an ordered list of segments. The zero value is the empty path,
// which addresses the root and matches nothing.
type Path []Segment

// Parse validates and parses a path expression.
//
// Errors wrap ErrInvalidPath and pinpoint the offending byte offset.
// Complexity: O(len(s)) time, O(segments) space.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("pathexpr: empty expression: %w", ErrInvalidPath)
	}

	var path Path
	i := 0
	for {
		seg, next, err := parseSegment(s, i)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
		if next == len(s) {
			return path, nil
		}
		if s[next] != '.' {
			return nil, fmt.Errorf("pathexpr: %q: unexpected %q at offset %d: %w", s, s[next], next, ErrInvalidPath)
		}
		i = next + 1
		if i == len(s) {
			return nil, fmt.Errorf("pathexpr: %q: trailing dot: %w", s, ErrInvalidPath)
		}
	}
}

// MustParse is Parse for known-good literals; it panics on malformed input.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

// parseSegment scans one segment starting at offset i and returns it with
// the offset just past it.
func parseSegment(s string, i int) (Segment, int, error) {
	start := i
	for i < len(s) && isIdentByte(s[i], i > start) {
		i++
	}
	if i == start {
		return Segment{}, 0, fmt.Errorf("pathexpr: %q: expected identifier at offset %d: %w", s, start, ErrInvalidPath)
	}
	seg := Segment{Name: s[start:i]}

	if i == len(s) || s[i] != '[' {
		return seg, i, nil
	}

	close := strings.IndexByte(s[i:], ']')
	if close < 0 {
		return Segment{}, 0, fmt.Errorf("pathexpr: %q: unterminated index at offset %d: %w", s, i, ErrInvalidPath)
	}
	tok := s[i+1 : i+close]
	i += close + 1

	switch {
	case tok == "":
		return Segment{}, 0, fmt.Errorf("pathexpr: %q: empty index: %w", s, ErrInvalidPath)
	case tok == "*":
		seg.Kind = IndexWildcard
	case isDigits(tok):
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Segment{}, 0, fmt.Errorf("pathexpr: %q: index %q out of range: %w", s, tok, ErrInvalidPath)
		}
		seg.Kind = IndexExact
		seg.Index = n
	default:
		if strings.ContainsAny(tok, ".[") {
			return Segment{}, 0, fmt.Errorf("pathexpr: %q: malformed key %q: %w", s, tok, ErrInvalidPath)
		}
		seg.Kind = IndexKey
		seg.Key = tok
	}

	return seg, i, nil
}

func isIdentByte(b byte, tail bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return true
	case b >= '0' && b <= '9':
		return tail
	default:
		return false
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// String renders the canonical form of the path.
// Complexity: O(total segment length).
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Name)
		switch seg.Kind {
		case IndexExact:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		case IndexWildcard:
			b.WriteString("[*]")
		case IndexKey:
			b.WriteByte('[')
			b.WriteString(seg.Key)
			b.WriteByte(']')
		}
	}

	return b.String()
}

// Wildcarded reports whether any segment uses a '*' index. Wildcard paths
// are exempt from the realized-match requirement: matching zero elements of
// an empty collection is a valid outcome.
func (p Path) Wildcarded() bool {
	for _, seg := range p {
		if seg.Kind == IndexWildcard {
			return true
		}
	}

	return false
}
