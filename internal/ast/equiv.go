package ast

// Equiv reports structural equivalence: same kind, name, visibility and
// payload. IDs and attributes never participate; attributes are metadata
// about where a declaration came from, not part of what it says.
func Equiv(a, b *Decl) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Public != b.Public {
		return false
	}
	switch a.Kind {
	case DeclNamespace:
		if a.Ns == nil || b.Ns == nil {
			return a.Ns == b.Ns
		}
		if a.Ns.Inline != b.Ns.Inline || len(a.Ns.Decls) != len(b.Ns.Decls) {
			return false
		}
		for i, child := range a.Ns.Decls {
			if !Equiv(child, b.Ns.Decls[i]) {
				return false
			}
		}
		return true
	case DeclUse:
		if a.Use == nil || b.Use == nil {
			return a.Use == b.Use
		}
		return UseTreeEqual(*a.Use, *b.Use)
	case DeclForeign:
		if a.Foreign == nil || b.Foreign == nil {
			return a.Foreign == b.Foreign
		}
		if a.Foreign.ABI != b.Foreign.ABI || len(a.Foreign.Items) != len(b.Foreign.Items) {
			return false
		}
		for i, item := range a.Foreign.Items {
			other := b.Foreign.Items[i]
			if item.Name != other.Name || item.Sig != other.Sig {
				return false
			}
		}
		return true
	case DeclTypeAlias:
		if a.Alias == nil || b.Alias == nil {
			return a.Alias == b.Alias
		}
		return a.Alias.Target == b.Alias.Target
	case DeclConst:
		if a.Const == nil || b.Const == nil {
			return a.Const == b.Const
		}
		return a.Const.Type == b.Const.Type && a.Const.Value == b.Const.Value
	default:
		return a.Text == b.Text
	}
}

// UseTreeEqual compares two use trees structurally.
func UseTreeEqual(a, b UseTree) bool {
	if a.Kind != b.Kind || a.Alias != b.Alias || !a.Prefix.Equal(b.Prefix) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i, child := range a.Children {
		if !UseTreeEqual(child, b.Children[i]) {
			return false
		}
	}
	return true
}
