package ast

import "strings"

// Attr is one piece of metadata the translator attaches to a declaration,
// e.g. header_src = "/usr/include/stdio.h".
type Attr struct {
	Name  string
	Value string
}

// AttrOriginHeader marks a namespace synthesized from a translated header.
const AttrOriginHeader = "header_src"

// HasAttr reports whether attrs contains an attribute with the given name.
func HasAttr(attrs []Attr, name string) bool {
	for _, a := range attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// AttrValue returns the value of the named attribute, if present.
func AttrValue(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasOriginHeader reports whether the declaration was generated from a
// header file.
func HasOriginHeader(attrs []Attr) bool { return HasAttr(attrs, AttrOriginHeader) }

// IsStdOrigin reports whether any attribute value points into one of the
// standard library include roots.
func IsStdOrigin(attrs []Attr, prefixes []string) bool {
	for _, a := range attrs {
		for _, prefix := range prefixes {
			if prefix != "" && strings.Contains(a.Value, prefix) {
				return true
			}
		}
	}
	return false
}
