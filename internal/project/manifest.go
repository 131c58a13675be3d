package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a refactoring project root.
const ManifestName = "refactor.toml"

// Manifest is a parsed refactor.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config

	stdDefined bool
}

type Config struct {
	Project    ProjectConfig    `toml:"project"`
	Reorganize ReorganizeConfig `toml:"reorganize"`
}

type ProjectConfig struct {
	// Source is the translation unit the snapshots were produced from,
	// relative to the manifest directory. Optional; snapshots usually
	// carry their own.
	Source string `toml:"source"`
}

type ReorganizeConfig struct {
	// StdPrefixes overrides the header path prefixes treated as standard
	// library. An explicitly empty list disables the stdlib rule.
	StdPrefixes []string `toml:"std_prefixes"`
}

// Find walks up from startDir to locate refactor.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return &Manifest{
		Path:       path,
		Root:       filepath.Dir(path),
		Config:     cfg,
		stdDefined: meta.IsDefined("reorganize", "std_prefixes"),
	}, nil
}

// Discover finds and parses the nearest manifest above startDir. ok is
// false when no manifest exists, which is not an error.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Source returns the configured source file resolved against the project
// root, or "" when unset.
func (m *Manifest) Source() string {
	if m == nil || m.Config.Project.Source == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Project.Source))
}

// StdPrefixes reports the configured prefixes and whether the key was
// present at all; an absent key means "use the defaults", unlike a
// present-but-empty list.
func (m *Manifest) StdPrefixes() ([]string, bool) {
	if m == nil || !m.stdDefined {
		return nil, false
	}
	if m.Config.Reorganize.StdPrefixes == nil {
		return []string{}, true
	}
	return m.Config.Reorganize.StdPrefixes, true
}
