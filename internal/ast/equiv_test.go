package ast

import "testing"

func TestEquivTable(t *testing.T) {
	cases := []struct {
		name string
		a, b *Decl
		want bool
	}{
		{
			name: "same text different ids",
			a:    &Decl{ID: 1, Kind: DeclOther, Name: "buffer_t", Text: "struct buffer_t;"},
			b:    &Decl{ID: 2, Kind: DeclOther, Name: "buffer_t", Text: "struct buffer_t;"},
			want: true,
		},
		{
			name: "different names",
			a:    &Decl{Kind: DeclOther, Name: "a", Text: "struct a;"},
			b:    &Decl{Kind: DeclOther, Name: "b", Text: "struct a;"},
			want: false,
		},
		{
			name: "attrs are metadata",
			a:    &Decl{Kind: DeclOther, Name: "x", Text: "struct x;", Attrs: []Attr{{Name: AttrOriginHeader, Value: "/a.h"}}},
			b:    &Decl{Kind: DeclOther, Name: "x", Text: "struct x;"},
			want: true,
		},
		{
			name: "alias targets differ",
			a:    &Decl{Kind: DeclTypeAlias, Name: "Foo", Alias: &AliasDef{Target: "unnamed"}},
			b:    &Decl{Kind: DeclTypeAlias, Name: "Foo", Alias: &AliasDef{Target: "unnamed_0"}},
			want: false,
		},
		{
			name: "const values equal",
			a:    &Decl{Kind: DeclConst, Name: "N", Const: &ConstDef{Type: "usize", Value: "4"}},
			b:    &Decl{Kind: DeclConst, Name: "N", Const: &ConstDef{Type: "usize", Value: "4"}},
			want: true,
		},
		{
			name: "visibility differs",
			a:    &Decl{Kind: DeclConst, Name: "N", Public: true, Const: &ConstDef{Type: "usize", Value: "4"}},
			b:    &Decl{Kind: DeclConst, Name: "N", Const: &ConstDef{Type: "usize", Value: "4"}},
			want: false,
		},
		{
			name: "foreign blocks item-wise",
			a: &Decl{Kind: DeclForeign, Foreign: &ForeignBlock{ABI: "C", Items: []ForeignItem{
				{ID: 10, Name: "malloc", Sig: "fn malloc(size: usize) -> *mut c_void"},
			}}},
			b: &Decl{Kind: DeclForeign, Foreign: &ForeignBlock{ABI: "C", Items: []ForeignItem{
				{ID: 20, Name: "malloc", Sig: "fn malloc(size: usize) -> *mut c_void"},
			}}},
			want: true,
		},
		{
			name: "foreign signatures differ",
			a: &Decl{Kind: DeclForeign, Foreign: &ForeignBlock{ABI: "C", Items: []ForeignItem{
				{Name: "free", Sig: "fn free(ptr: *mut c_void)"},
			}}},
			b: &Decl{Kind: DeclForeign, Foreign: &ForeignBlock{ABI: "C", Items: []ForeignItem{
				{Name: "free", Sig: "fn free(ptr: *mut u8)"},
			}}},
			want: false,
		},
		{
			name: "uses compare whole trees",
			a:    &Decl{Kind: DeclUse, Use: &UseTree{Kind: UseSimple, Prefix: MakePath("foo", "item")}},
			b:    &Decl{Kind: DeclUse, Use: &UseTree{Kind: UseSimple, Prefix: MakePath("foo", "item")}},
			want: true,
		},
		{
			name: "use prefixes not normalized here",
			a:    &Decl{Kind: DeclUse, Use: &UseTree{Kind: UseSimple, Prefix: MakePath("self", "foo", "item")}},
			b:    &Decl{Kind: DeclUse, Use: &UseTree{Kind: UseSimple, Prefix: MakePath("foo", "item")}},
			want: false,
		},
		{
			name: "namespaces recurse",
			a: &Decl{Kind: DeclNamespace, Name: "m", Ns: &Namespace{Inline: true, Decls: []*Decl{
				{ID: 5, Kind: DeclOther, Name: "x", Text: "struct x;"},
			}}},
			b: &Decl{Kind: DeclNamespace, Name: "m", Ns: &Namespace{Inline: true, Decls: []*Decl{
				{ID: 6, Kind: DeclOther, Name: "x", Text: "struct x;"},
			}}},
			want: true,
		},
	}
	for _, tc := range cases {
		if got := Equiv(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: Equiv = %v, want %v", tc.name, got, tc.want)
		}
		if got := Equiv(tc.b, tc.a); got != tc.want {
			t.Fatalf("%s: Equiv is not symmetric", tc.name)
		}
	}
}
