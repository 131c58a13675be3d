package ast

import "testing"

func TestCloneIsDeep(t *testing.T) {
	orig := &Decl{
		ID:   1,
		Kind: DeclNamespace,
		Name: "buffer",
		Attrs: []Attr{
			{Name: AttrOriginHeader, Value: "/some/path/buffer.h"},
		},
		Ns: &Namespace{
			Inline: true,
			Decls: []*Decl{
				{ID: 2, Kind: DeclOther, Name: "buffer_t", Text: "struct buffer_t;"},
				{ID: 3, Kind: DeclForeign, Foreign: &ForeignBlock{
					ABI:   "C",
					Items: []ForeignItem{{ID: 4, Name: "malloc", Sig: "fn malloc(size: usize)"}},
				}},
			},
		},
	}

	clone := orig.Clone()
	if clone.ID != orig.ID {
		t.Fatalf("clone changed the ID: %d != %d", clone.ID, orig.ID)
	}
	if !Equiv(clone, orig) {
		t.Fatalf("clone is not equivalent to the original")
	}

	clone.Attrs[0].Value = "/elsewhere.h"
	clone.Ns.Decls[0].Name = "changed"
	clone.Ns.Decls[1].Foreign.Items[0].Name = "free"

	if orig.Attrs[0].Value != "/some/path/buffer.h" {
		t.Fatalf("clone shares attrs with the original")
	}
	if orig.Ns.Decls[0].Name != "buffer_t" {
		t.Fatalf("clone shares children with the original")
	}
	if orig.Ns.Decls[1].Foreign.Items[0].Name != "malloc" {
		t.Fatalf("clone shares foreign items with the original")
	}
}

func TestCloneKeepsNestedIDs(t *testing.T) {
	crate := &Crate{Decls: []*Decl{
		{ID: 1, Kind: DeclNamespace, Name: "a", Ns: &Namespace{Decls: []*Decl{
			{ID: 2, Kind: DeclOther, Name: "x", Text: "struct x;"},
		}}},
	}}
	clone := crate.Clone()
	var ids []DeclID
	Walk(clone, func(d *Decl) { ids = append(ids, d.ID) })
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("cloned IDs = %v, want [1 2]", ids)
	}
}
