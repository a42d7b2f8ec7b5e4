package workspace

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/logfields"
)

// Manager owns one scratch directory for the lifetime of a run.
type Manager struct {
	baseDir string
	tempDir string
}

// NewManager creates a manager whose scratch directory will live under baseDir
// (os.TempDir when empty). Nothing touches the disk until Create.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create makes the scratch directory. Calling it again is a no-op.
func (m *Manager) Create() error {
	if m.tempDir != "" {
		return nil
	}
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return errors.FileSystemError("failed to create workspace base directory").WithCause(err).
			WithContext("path", m.baseDir).
			Build()
	}
	tempDir, err := os.MkdirTemp(m.baseDir, "avtag-")
	if err != nil {
		return errors.FileSystemError("failed to create workspace directory").WithCause(err).
			WithContext("path", m.baseDir).
			Build()
	}
	m.tempDir = tempDir
	slog.Debug("Created workspace", logfields.Path(tempDir))
	return nil
}

// GetPath returns the path to the workspace directory, or "" before Create.
func (m *Manager) GetPath() string {
	return m.tempDir
}

// File returns the path of name inside the workspace.
func (m *Manager) File(name string) (string, error) {
	if m.tempDir == "" {
		return "", errors.InternalError("workspace not created").Build()
	}
	return filepath.Join(m.tempDir, name), nil
}

// Cleanup removes the workspace directory. It is safe to call more than once.
func (m *Manager) Cleanup() error {
	if m.tempDir == "" {
		return nil
	}
	if err := os.RemoveAll(m.tempDir); err != nil {
		return errors.FileSystemError("failed to cleanup workspace").WithCause(err).
			WithContext("path", m.tempDir).
			Build()
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.tempDir))
	m.tempDir = ""
	return nil
}
