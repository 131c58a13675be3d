package ast

import "strings"

// Path is a qualified reference such as buffer::buffer_t.
type Path struct {
	Segments []string
}

// MakePath builds a path from segments.
func MakePath(segments ...string) Path {
	return Path{Segments: append([]string(nil), segments...)}
}

// ParsePath splits a rendered path back into segments.
func ParsePath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path{Segments: strings.Split(s, "::")}
}

func (p Path) String() string { return strings.Join(p.Segments, "::") }

func (p Path) Equal(o Path) bool {
	if len(p.Segments) != len(o.Segments) {
		return false
	}
	for i, seg := range p.Segments {
		if seg != o.Segments[i] {
			return false
		}
	}
	return true
}

func (p Path) Clone() Path {
	return Path{Segments: append([]string(nil), p.Segments...)}
}

// Normalize strips relative segments (self, super) so paths can be compared
// across nesting levels. A single-segment path is kept as-is: `use self;`
// still needs its one segment.
func (p Path) Normalize() Path {
	if len(p.Segments) <= 1 {
		return p.Clone()
	}
	out := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if seg == "self" || seg == "super" {
			continue
		}
		out = append(out, seg)
	}
	return Path{Segments: out}
}
