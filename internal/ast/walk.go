package ast

// Walk calls fn for every declaration in the tree, preorder.
func Walk(c *Crate, fn func(*Decl)) {
	if c == nil {
		return
	}
	for _, d := range c.Decls {
		walkDecl(d, fn)
	}
}

func walkDecl(d *Decl, fn func(*Decl)) {
	fn(d)
	if d.Kind == DeclNamespace && d.Ns != nil {
		for _, child := range d.Ns.Decls {
			walkDecl(child, fn)
		}
	}
}

// WalkNamespaces calls fn for every namespace declaration, preorder.
func WalkNamespaces(c *Crate, fn func(*Decl)) {
	Walk(c, func(d *Decl) {
		if d.Kind == DeclNamespace {
			fn(d)
		}
	})
}

// Fold rebuilds the tree bottom-up. Children are folded first, then fn
// receives the rebuilt declaration (always a clone; the input tree is never
// touched) and returns its replacement: the decl itself, a substitute, or
// nil to delete it.
func Fold(c *Crate, fn func(*Decl) []*Decl) *Crate {
	out := &Crate{}
	if c == nil {
		return out
	}
	for _, d := range c.Decls {
		out.Decls = append(out.Decls, foldDecl(d, fn)...)
	}
	return out
}

func foldDecl(d *Decl, fn func(*Decl) []*Decl) []*Decl {
	var c *Decl
	if d.Kind == DeclNamespace && d.Ns != nil {
		cc := *d
		if d.Attrs != nil {
			cc.Attrs = append([]Attr(nil), d.Attrs...)
		}
		ns := &Namespace{Inline: d.Ns.Inline}
		for _, child := range d.Ns.Decls {
			ns.Decls = append(ns.Decls, foldDecl(child, fn)...)
		}
		cc.Ns = ns
		c = &cc
	} else {
		c = d.Clone()
	}
	return fn(c)
}
