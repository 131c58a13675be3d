package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[project]\nsource = \"src/main.c\"\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("Find = %q, %v; want %q, true", got, ok, want)
	}
}

func TestFindMissing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty tree")
	}
}

func TestDiscoverSource(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nsource = \"src/main.c\"\n")

	m, ok, err := Discover(root)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if want := filepath.Join(root, "src", "main.c"); m.Source() != want {
		t.Fatalf("Source() = %q, want %q", m.Source(), want)
	}
}

func TestStdPrefixesTristate(t *testing.T) {
	root := t.TempDir()

	writeManifest(t, root, "[project]\nsource = \"main.c\"\n")
	m, _, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if _, defined := m.StdPrefixes(); defined {
		t.Fatalf("absent key reported as defined")
	}

	writeManifest(t, root, "[reorganize]\nstd_prefixes = [\"/opt/include\"]\n")
	m, _, err = Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	prefixes, defined := m.StdPrefixes()
	if !defined || len(prefixes) != 1 || prefixes[0] != "/opt/include" {
		t.Fatalf("StdPrefixes() = %v, %v", prefixes, defined)
	}

	writeManifest(t, root, "[reorganize]\nstd_prefixes = []\n")
	m, _, err = Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	prefixes, defined = m.StdPrefixes()
	if !defined || prefixes == nil || len(prefixes) != 0 {
		t.Fatalf("empty list should stay a defined empty list, got %v, %v", prefixes, defined)
	}
}

func TestLoadBadToml(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[project\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
