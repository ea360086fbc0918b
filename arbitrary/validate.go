// SPDX-License-Identifier: MIT
// Package: specimen/arbitrary
//
// validate.go — sample-time semantic validation of registered paths against
// the concrete descriptor tree.
//
// Grammar was validated at registration; here each path must actually walk
// the type shape: every segment names an existing record member, indexing
// lands on a collection or map, SetNull targets something nullable, and
// Size targets something sized. Realized-count questions (does index 2
// exist in THIS sample?) stay with the engine's leftover check.

package arbitrary

import (
	"fmt"

	"github.com/katalvlaran/specimen/core"
	"github.com/katalvlaran/specimen/pathexpr"
)

// validatePaths checks every customization path against the descriptor
// tree. Failures abort the Sample call (never retried).
// Complexity: O(customs · path length).
func (e *engine) validatePaths() error {
	for i := range e.customs {
		if err := e.validatePath(&e.customs[i]); err != nil {
			return err
		}
	}

	return nil
}

func (e *engine) validatePath(c *customization) error {
	node := e.root
	for _, seg := range c.path {
		rec := deref(node)
		if rec.Kind != core.KindRecord {
			return fmt.Errorf("arbitrary: path %q: %s has no members: %w",
				c.path.String(), rec.Type, ErrInvalidPath)
		}
		m, ok := rec.Member(seg.Name)
		if !ok {
			return fmt.Errorf("arbitrary: path %q: %s has no member %q: %w",
				c.path.String(), rec.Type, seg.Name, ErrInvalidPath)
		}
		node = m.Desc

		if seg.Kind == pathexpr.IndexNone {
			continue
		}
		idx := deref(node)
		switch idx.Kind {
		case core.KindCollection:
			if seg.Kind == pathexpr.IndexKey {
				return fmt.Errorf("arbitrary: path %q: key %q indexes collection %s: %w",
					c.path.String(), seg.Key, idx.Type, ErrInvalidPath)
			}
			if seg.Kind == pathexpr.IndexExact && idx.ArrayLen >= 0 && seg.Index >= idx.ArrayLen {
				return fmt.Errorf("arbitrary: path %q: index %d outside array %s: %w",
					c.path.String(), seg.Index, idx.Type, ErrInvalidPath)
			}
			node = idx.Elem
		case core.KindMap:
			node = idx.Value
		default:
			return fmt.Errorf("arbitrary: path %q: %s is not indexable: %w",
				c.path.String(), idx.Type, ErrInvalidPath)
		}
	}

	switch c.op {
	case opSetNull:
		if !node.Nullable() {
			return fmt.Errorf("arbitrary: SetNull(%q): %s is not nullable: %w",
				c.path.String(), node.Type, ErrInvalidPath)
		}
	case opSize:
		if !deref(node).Indexable() {
			return fmt.Errorf("arbitrary: Size(%q): %s is not a collection or map: %w",
				c.path.String(), node.Type, ErrInvalidPath)
		}
	}

	return nil
}

// deref unwraps pointer descriptors; addressing is pointer-transparent.
func deref(d *core.TypeDescriptor) *core.TypeDescriptor {
	for d.Kind == core.KindPointer {
		d = d.Elem
	}

	return d
}
