package treefmt

import (
	"encoding/json"
	"io"

	"refactor/internal/ast"
)

// JSON writes the crate as indented JSON, for piping into jq and friends.
func JSON(w io.Writer, crate *ast.Crate) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(crate)
}
