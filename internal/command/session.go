package command

import (
	"path/filepath"
	"strings"
)

// DefaultStdPrefixes marks which origin paths count as standard library
// when nothing else is configured.
var DefaultStdPrefixes = []string{"/usr/include"}

// Session exposes the read-only facts about the translation unit a
// transform may consult: the originating source file and the include roots
// that identify standard-library headers.
type Session struct {
	sourcePath  string
	stdPrefixes []string
}

// NewSession builds a session. A nil stdPrefixes slice selects the
// defaults; an empty non-nil slice disables standard-library detection.
func NewSession(sourcePath string, stdPrefixes []string) *Session {
	if stdPrefixes == nil {
		stdPrefixes = DefaultStdPrefixes
	}
	return &Session{
		sourcePath:  sourcePath,
		stdPrefixes: append([]string(nil), stdPrefixes...),
	}
}

// SourcePath returns the originating source file path, possibly empty.
func (s *Session) SourcePath() string { return s.sourcePath }

// SourceName returns the file stem of the originating source. It serves as
// the display name for namespaces that have none of their own.
func (s *Session) SourceName() string {
	if s.sourcePath == "" {
		return ""
	}
	base := filepath.Base(s.sourcePath)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StdPrefixes returns the configured standard-library include roots.
func (s *Session) StdPrefixes() []string { return s.stdPrefixes }
