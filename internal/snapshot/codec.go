package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"refactor/internal/ast"
	"refactor/internal/command"
)

// SchemaVersion is bumped whenever the Snapshot layout changes; old files
// are rejected rather than misread.
const SchemaVersion uint16 = 1

// Ext is the file extension snapshots are written with.
const Ext = ".mp"

var (
	ErrSchemaMismatch = errors.New("snapshot schema mismatch")
	ErrCorrupt        = errors.New("snapshot is corrupt")
)

// Snapshot is the on-disk unit the driver moves between tools: one crate
// plus enough metadata to validate it and to seed a session.
type Snapshot struct {
	Schema uint16

	// Phase the producing tool left the tree in.
	Phase command.Phase

	// SourceFile is the translation unit the crate came from, when known.
	SourceFile string

	// DeclCount is a cheap integrity check: the number of declarations in
	// Crate, verified on load.
	DeclCount uint32

	Crate *ast.Crate
}

// Load reads and validates a snapshot file.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if snap.Schema != SchemaVersion {
		return nil, fmt.Errorf("%s: %w: file has schema %d, tool expects %d", path, ErrSchemaMismatch, snap.Schema, SchemaVersion)
	}
	if snap.Crate == nil {
		return nil, fmt.Errorf("%s: %w: missing crate", path, ErrCorrupt)
	}
	if got := countDecls(snap.Crate); got != snap.DeclCount {
		return nil, fmt.Errorf("%s: %w: declares %d declarations, found %d", path, ErrCorrupt, snap.DeclCount, got)
	}
	return &snap, nil
}

// Save writes the snapshot atomically: encode to a temp file in the target
// directory, then rename over the destination. Schema and DeclCount are
// filled in here, callers never set them.
func Save(path string, snap *Snapshot) error {
	if snap.Crate == nil {
		return fmt.Errorf("%s: %w: missing crate", path, ErrCorrupt)
	}
	snap.Schema = SchemaVersion
	snap.DeclCount = countDecls(snap.Crate)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// Best effort: gone already after a successful rename.
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// MaxDeclID returns the highest ID used anywhere in the crate, including
// symbols inside foreign blocks. Fresh-ID allocators are seeded past it.
func MaxDeclID(crate *ast.Crate) ast.DeclID {
	var maxID ast.DeclID
	ast.Walk(crate, func(d *ast.Decl) {
		if d.ID > maxID {
			maxID = d.ID
		}
		if d.Foreign != nil {
			for _, item := range d.Foreign.Items {
				if item.ID > maxID {
					maxID = item.ID
				}
			}
		}
	})
	return maxID
}

func countDecls(crate *ast.Crate) uint32 {
	n := 0
	ast.Walk(crate, func(*ast.Decl) { n++ })
	count, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("declaration count overflow: %w", err))
	}
	return count
}
