// Package treefmt renders crates for human inspection. None of the
// output formats round-trip; snapshots stay the only machine format.
package treefmt

import (
	"fmt"
	"io"
	"strings"

	"refactor/internal/ast"
)

const indentStep = "    "

// Pretty writes the crate in a Rust-like surface syntax.
func Pretty(w io.Writer, crate *ast.Crate) error {
	p := &printer{w: w}
	for i, d := range crate.Decls {
		if i > 0 {
			p.line(0, "")
		}
		p.decl(0, d)
	}
	return p.err
}

// printer accumulates the first write error so the render methods can
// stay unconditional.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, s string) {
	if p.err != nil {
		return
	}
	indent := strings.Repeat(indentStep, depth)
	if s == "" {
		indent = ""
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", indent, s)
}

func (p *printer) decl(depth int, d *ast.Decl) {
	for _, attr := range d.Attrs {
		p.line(depth, fmt.Sprintf("#[%s = %q]", attr.Name, attr.Value))
	}
	vis := ""
	if d.Public {
		vis = "pub "
	}
	switch d.Kind {
	case ast.DeclNamespace:
		if d.Ns == nil {
			p.line(depth, fmt.Sprintf("%smod %s;", vis, d.Name))
			return
		}
		if len(d.Ns.Decls) == 0 {
			p.line(depth, fmt.Sprintf("%smod %s {}", vis, d.Name))
			return
		}
		p.line(depth, fmt.Sprintf("%smod %s {", vis, d.Name))
		for _, child := range d.Ns.Decls {
			p.decl(depth+1, child)
		}
		p.line(depth, "}")
	case ast.DeclUse:
		if d.Use == nil {
			return
		}
		p.line(depth, fmt.Sprintf("%suse %s;", vis, useTree(*d.Use)))
	case ast.DeclForeign:
		if d.Foreign == nil {
			return
		}
		if len(d.Foreign.Items) == 0 {
			p.line(depth, fmt.Sprintf("%sextern %q {}", vis, d.Foreign.ABI))
			return
		}
		p.line(depth, fmt.Sprintf("%sextern %q {", vis, d.Foreign.ABI))
		for _, item := range d.Foreign.Items {
			p.line(depth+1, item.Sig+";")
		}
		p.line(depth, "}")
	case ast.DeclTypeAlias:
		if d.Alias == nil {
			return
		}
		p.line(depth, fmt.Sprintf("%stype %s = %s;", vis, d.Name, d.Alias.Target))
	case ast.DeclConst:
		if d.Const == nil {
			return
		}
		p.line(depth, fmt.Sprintf("%sconst %s: %s = %s;", vis, d.Name, d.Const.Type, d.Const.Value))
	default:
		for _, text := range strings.Split(d.Text, "\n") {
			p.line(depth, text)
		}
	}
}

func useTree(u ast.UseTree) string {
	var sb strings.Builder
	sb.WriteString(u.Prefix.String())
	switch u.Kind {
	case ast.UseGlob:
		sb.WriteString("::*")
	case ast.UseNested:
		sb.WriteString("::{")
		for i, child := range u.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(useTree(child))
		}
		sb.WriteString("}")
	}
	if u.Alias != "" {
		sb.WriteString(" as ")
		sb.WriteString(u.Alias)
	}
	return sb.String()
}
