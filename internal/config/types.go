package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Regexp is a regular expression compiled while the configuration is decoded,
// so an invalid pattern fails the load instead of the first match.
type Regexp struct {
	*regexp.Regexp
}

// MustCompileRegexp is a convenience for tests and static defaults.
func MustCompileRegexp(pattern string) *Regexp {
	return &Regexp{Regexp: regexp.MustCompile(pattern)}
}

// UnmarshalText implements encoding.TextUnmarshaler (used by the TOML decoder).
func (r *Regexp) UnmarshalText(text []byte) error {
	re, err := regexp.Compile(string(text))
	if err != nil {
		return fmt.Errorf("invalid regular expression %q: %w", string(text), err)
	}
	r.Regexp = re
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Regexp) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: regular expression must be a string", value.Line)
	}
	return r.UnmarshalText([]byte(value.Value))
}

// MarshalText implements encoding.TextMarshaler.
func (r Regexp) MarshalText() ([]byte, error) {
	if r.Regexp == nil {
		return nil, nil
	}
	return []byte(r.String()), nil
}

// Duration is a time.Duration written as a Go duration string ("30s", "2m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if parsed < 0 {
		return fmt.Errorf("duration %q must not be negative", raw)
	}
	d.Duration = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string", value.Line)
	}
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Backend selects how tags are listed.
type Backend string

const (
	// BackendGoGit lists tags in-process with go-git.
	BackendGoGit Backend = "go-git"
	// BackendGit shells out to the git CLI, picking up the user's credential helpers and ssh setup.
	BackendGit Backend = "git"
)

// NormalizeBackend maps user input to a Backend, returning empty string for unknown values.
func NormalizeBackend(raw string) Backend {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(BackendGoGit), "gogit":
		return BackendGoGit
	case string(BackendGit), "cli":
		return BackendGit
	default:
		return ""
	}
}
