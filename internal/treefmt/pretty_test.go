package treefmt

import (
	"strings"
	"testing"

	"refactor/internal/ast"
)

func sampleCrate() *ast.Crate {
	ns := ast.NewNamespaceDecl(1, "buffer", []*ast.Decl{
		{ID: 2, Kind: ast.DeclUse, Use: &ast.UseTree{
			Kind:   ast.UseNested,
			Prefix: ast.MakePath("foo"),
			Children: []ast.UseTree{
				{Kind: ast.UseSimple, Prefix: ast.MakePath("item")},
				{Kind: ast.UseSimple, Prefix: ast.MakePath("item2")},
			},
		}},
		{ID: 3, Kind: ast.DeclTypeAlias, Name: "Foo", Public: true, Alias: &ast.AliasDef{Target: "unnamed"}},
		{ID: 4, Kind: ast.DeclConst, Name: "MAX", Const: &ast.ConstDef{Type: "u32", Value: "16"}},
		{ID: 5, Kind: ast.DeclForeign, Foreign: &ast.ForeignBlock{
			ABI:   "C",
			Items: []ast.ForeignItem{{ID: 9, Name: "malloc", Sig: "fn malloc(size: usize) -> *mut c_void"}},
		}},
		{ID: 6, Kind: ast.DeclOther, Name: "buffer_t", Text: "struct buffer_t {\n    data: i32,\n}"},
	})
	ns.Attrs = []ast.Attr{{Name: ast.AttrOriginHeader, Value: "/some/path/buffer.h"}}
	return &ast.Crate{Decls: []*ast.Decl{ns}}
}

func TestPretty(t *testing.T) {
	var sb strings.Builder
	if err := Pretty(&sb, sampleCrate()); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := `#[header_src = "/some/path/buffer.h"]
pub mod buffer {
    use foo::{item, item2};
    pub type Foo = unnamed;
    const MAX: u32 = 16;
    extern "C" {
        fn malloc(size: usize) -> *mut c_void;
    }
    struct buffer_t {
        data: i32,
    }
}
`
	if got := sb.String(); got != want {
		t.Fatalf("render mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyUseForms(t *testing.T) {
	crate := &ast.Crate{Decls: []*ast.Decl{
		{ID: 1, Kind: ast.DeclUse, Use: &ast.UseTree{Kind: ast.UseSimple, Prefix: ast.MakePath("libc")}},
		{ID: 2, Kind: ast.DeclUse, Use: &ast.UseTree{Kind: ast.UseGlob, Prefix: ast.MakePath("foo", "bar")}},
		{ID: 3, Kind: ast.DeclUse, Use: &ast.UseTree{Kind: ast.UseSimple, Prefix: ast.MakePath("foo", "item"), Alias: "thing"}},
	}}
	var sb strings.Builder
	if err := Pretty(&sb, crate); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "use libc;\n\nuse foo::bar::*;\n\nuse foo::item as thing;\n"
	if got := sb.String(); got != want {
		t.Fatalf("render mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestTreeShowsIDs(t *testing.T) {
	var sb strings.Builder
	if err := Tree(&sb, sampleCrate()); err != nil {
		t.Fatalf("Tree: %v", err)
	}
	out := sb.String()
	for _, needle := range []string{
		"1 namespace buffer",
		`#[header_src = "/some/path/buffer.h"]`,
		"9 symbol malloc",
		"3 type_alias Foo",
	} {
		if !strings.Contains(out, needle) {
			t.Fatalf("tree dump missing %q:\n%s", needle, out)
		}
	}
}

func TestJSONRoundTripsKinds(t *testing.T) {
	var sb strings.Builder
	if err := JSON(&sb, sampleCrate()); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, `"Kind": "type_alias"`) {
		t.Fatalf("JSON dump does not carry textual kinds:\n%s", out)
	}
}
