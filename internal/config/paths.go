package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName        = "avtag"
	configFileName = "config.toml"
)

// ExpandTilde replaces a leading "~" or "~/" with the user's home directory.
// Paths without a tilde, and "~user" forms, are returned unchanged.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Dir returns the avtag configuration directory:
// $XDG_CONFIG_HOME/avtag, or ~/.config/avtag when XDG_CONFIG_HOME is unset.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return filepath.Join(ExpandTilde(base), appName)
}

// DefaultPath returns the path of the default configuration file.
func DefaultPath() string {
	return filepath.Join(Dir(), configFileName)
}
