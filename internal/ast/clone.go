package ast

// Clone returns a deep copy of the declaration. The copy keeps every DeclID,
// including those of nested declarations and foreign symbols.
func (d *Decl) Clone() *Decl {
	if d == nil {
		return nil
	}
	c := *d
	if d.Attrs != nil {
		c.Attrs = append([]Attr(nil), d.Attrs...)
	}
	switch {
	case d.Ns != nil:
		ns := &Namespace{Inline: d.Ns.Inline}
		if d.Ns.Decls != nil {
			ns.Decls = make([]*Decl, 0, len(d.Ns.Decls))
			for _, child := range d.Ns.Decls {
				ns.Decls = append(ns.Decls, child.Clone())
			}
		}
		c.Ns = ns
	case d.Use != nil:
		u := d.Use.Clone()
		c.Use = &u
	case d.Foreign != nil:
		c.Foreign = &ForeignBlock{
			ABI:   d.Foreign.ABI,
			Items: append([]ForeignItem(nil), d.Foreign.Items...),
		}
	case d.Alias != nil:
		a := *d.Alias
		c.Alias = &a
	case d.Const != nil:
		k := *d.Const
		c.Const = &k
	}
	return &c
}

// Clone returns a deep copy of the use tree.
func (u UseTree) Clone() UseTree {
	c := u
	c.Prefix = u.Prefix.Clone()
	if len(u.Children) > 0 {
		c.Children = make([]UseTree, len(u.Children))
		for i, child := range u.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the whole tree.
func (c *Crate) Clone() *Crate {
	if c == nil {
		return nil
	}
	out := &Crate{Decls: make([]*Decl, 0, len(c.Decls))}
	for _, d := range c.Decls {
		out.Decls = append(out.Decls, d.Clone())
	}
	return out
}
