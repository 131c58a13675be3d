package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"refactor/internal/ast"
	"refactor/internal/command"
)

func sampleCrate() *ast.Crate {
	return &ast.Crate{Decls: []*ast.Decl{
		ast.NewNamespaceDecl(1, "buffer", []*ast.Decl{
			{ID: 2, Kind: ast.DeclOther, Name: "buffer_t", Text: "struct buffer_t;"},
			{ID: 3, Kind: ast.DeclForeign, Foreign: &ast.ForeignBlock{
				ABI:   "C",
				Items: []ast.ForeignItem{{ID: 9, Name: "malloc", Sig: "fn malloc(size: usize)"}},
			}},
		}),
	}}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer"+Ext)
	in := &Snapshot{
		Phase:      command.PhaseResolved,
		SourceFile: "/proj/src/buffer.c",
		Crate:      sampleCrate(),
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Schema != SchemaVersion {
		t.Fatalf("Schema = %d, want %d", out.Schema, SchemaVersion)
	}
	if out.Phase != command.PhaseResolved || out.SourceFile != in.SourceFile {
		t.Fatalf("metadata mismatch: %+v", out)
	}
	if out.DeclCount != 3 {
		t.Fatalf("DeclCount = %d, want 3", out.DeclCount)
	}
	if len(out.Crate.Decls) != 1 || out.Crate.Decls[0].Name != "buffer" {
		t.Fatalf("crate did not survive the round trip")
	}
}

func TestLoadSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old"+Ext)
	stale := &Snapshot{
		Schema:    SchemaVersion + 1,
		Phase:     command.PhaseResolved,
		DeclCount: 1,
		Crate:     &ast.Crate{Decls: []*ast.Decl{{ID: 1, Kind: ast.DeclOther, Name: "x"}}},
	}
	raw, err := msgpack.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestLoadCorruptCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+Ext)
	lying := &Snapshot{
		Schema:    SchemaVersion,
		Phase:     command.PhaseResolved,
		DeclCount: 42,
		Crate:     sampleCrate(),
	}
	raw, err := msgpack.Marshal(lying)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}
}

func TestMaxDeclID(t *testing.T) {
	if got := MaxDeclID(sampleCrate()); got != 9 {
		t.Fatalf("MaxDeclID = %d, want 9 (foreign symbol IDs count)", got)
	}
	if got := MaxDeclID(&ast.Crate{}); got != ast.NoDeclID {
		t.Fatalf("MaxDeclID of empty crate = %d, want 0", got)
	}
}
