package ast

// NewNamespaceDecl builds a public inline namespace with the given body.
func NewNamespaceDecl(id DeclID, name string, decls []*Decl) *Decl {
	return &Decl{
		ID:     id,
		Kind:   DeclNamespace,
		Name:   name,
		Public: true,
		Ns:     &Namespace{Decls: decls, Inline: true},
	}
}

// NewGroupedUse builds `use prefix::{names...};`.
func NewGroupedUse(id DeclID, prefix Path, names []string) *Decl {
	children := make([]UseTree, 0, len(names))
	for _, name := range names {
		children = append(children, UseTree{Kind: UseSimple, Prefix: MakePath(name)})
	}
	return &Decl{
		ID:   id,
		Kind: DeclUse,
		Use:  &UseTree{Kind: UseNested, Prefix: prefix.Clone(), Children: children},
	}
}
