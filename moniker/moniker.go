// Package moniker identifies component instances by their path from the
// root of the instance tree.
package moniker

import (
	"strings"

	"github.com/wippyai/component-manager/errors"
)

// Moniker identifies a component instance by its path from the root of the
// instance tree. The zero value is the root moniker.
//
// Monikers are immutable; derivation methods return new values.
type Moniker struct {
	segments []string
}

// Root is the moniker of the tree root.
var Root = Moniker{}

// New builds a moniker from path segments. The segment slice is copied.
func New(segments ...string) Moniker {
	if len(segments) == 0 {
		return Root
	}
	s := make([]string, len(segments))
	copy(s, segments)
	return Moniker{segments: s}
}

// Parse converts a slash-separated path into a moniker.
// "/" and "" both name the root. Empty segments are rejected.
func Parse(path string) (Moniker, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Root, nil
	}
	segments := strings.Split(trimmed, "/")
	for _, seg := range segments {
		if seg == "" {
			return Root, errors.InvalidInput(errors.PhaseLookup,
				"moniker "+path+" has an empty segment")
		}
	}
	return Moniker{segments: segments}, nil
}

// IsRoot reports whether m names the tree root.
func (m Moniker) IsRoot() bool {
	return len(m.segments) == 0
}

// Len returns the number of path segments.
func (m Moniker) Len() int {
	return len(m.segments)
}

// Path returns a copy of the segment sequence.
func (m Moniker) Path() []string {
	if len(m.segments) == 0 {
		return nil
	}
	s := make([]string, len(m.segments))
	copy(s, m.segments)
	return s
}

// Child returns the moniker of m's child with the given name.
func (m Moniker) Child(name string) Moniker {
	s := make([]string, len(m.segments)+1)
	copy(s, m.segments)
	s[len(m.segments)] = name
	return Moniker{segments: s}
}

// Parent returns the moniker with the last segment removed.
// The parent of the root is the root.
func (m Moniker) Parent() Moniker {
	if len(m.segments) == 0 {
		return Root
	}
	return New(m.segments[:len(m.segments)-1]...)
}

// Leaf returns the last segment, or "" for the root.
func (m Moniker) Leaf() string {
	if len(m.segments) == 0 {
		return ""
	}
	return m.segments[len(m.segments)-1]
}

// Equal reports whether two monikers name the same instance.
func (m Moniker) Equal(other Moniker) bool {
	if len(m.segments) != len(other.segments) {
		return false
	}
	for i, seg := range m.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

// String renders the moniker as an absolute slash-separated path.
// The root renders as "/".
func (m Moniker) String() string {
	if len(m.segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(m.segments, "/")
}
