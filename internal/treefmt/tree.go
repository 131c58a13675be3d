package treefmt

import (
	"fmt"
	"io"
	"strings"

	"refactor/internal/ast"
)

// Tree writes a structural dump: one line per declaration with its ID,
// kind, name and attributes. Meant for debugging transform output.
func Tree(w io.Writer, crate *ast.Crate) error {
	p := &printer{w: w}
	for _, d := range crate.Decls {
		p.node(0, d)
	}
	return p.err
}

func (p *printer) node(depth int, d *ast.Decl) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s", d.ID, d.Kind)
	if d.Name != "" {
		fmt.Fprintf(&sb, " %s", d.Name)
	}
	if d.Kind == ast.DeclUse && d.Use != nil {
		fmt.Fprintf(&sb, " %s", useTree(*d.Use))
	}
	for _, attr := range d.Attrs {
		fmt.Fprintf(&sb, " #[%s = %q]", attr.Name, attr.Value)
	}
	p.line(depth, sb.String())

	if d.Foreign != nil {
		for _, item := range d.Foreign.Items {
			p.line(depth+1, fmt.Sprintf("%d symbol %s", item.ID, item.Name))
		}
	}
	if d.Ns != nil {
		for _, child := range d.Ns.Decls {
			p.node(depth+1, child)
		}
	}
}
