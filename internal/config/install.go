package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

//go:embed default_config.toml
var defaultConfig []byte

// Install writes the bundled configuration to path unless a file already exists there.
// It reports whether a file was written.
func Install(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, derrors.FileSystemError("failed to stat config file").WithCause(err).
			WithContext("path", path).
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, derrors.FileSystemError("failed to create config directory").WithCause(err).
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, defaultConfig, 0o600); err != nil {
		return false, derrors.FileSystemError("failed to write default config").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return true, nil
}
