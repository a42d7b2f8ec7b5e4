package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

const (
	// DefaultCatalogTimeout bounds the version catalog fetch when [bin-list] sets no timeout.
	DefaultCatalogTimeout = 30 * time.Second
	// DefaultRepoTimeout bounds remote and local tag listing of a single repository.
	DefaultRepoTimeout = 60 * time.Second
)

// Config is the decoded configuration file.
type Config struct {
	BinList  BinList     `toml:"bin-list" yaml:"bin-list"`
	Defaults Defaults    `toml:"defaults" yaml:"defaults"`
	Retry    RetryConfig `toml:"retry" yaml:"retry"`
	Repos    []RepoEntry `toml:"repos" yaml:"repos"`
}

// BinList configures the version catalog of already built packages.
type BinList struct {
	URL        string   `toml:"url" yaml:"url"`
	ExtractCmd []string `toml:"extract-cmd" yaml:"extract-cmd"`
	Timeout    Duration `toml:"timeout" yaml:"timeout"`
}

// Enabled reports whether a catalog source is configured.
func (b BinList) Enabled() bool {
	return strings.TrimSpace(b.URL) != ""
}

// FetchTimeout returns the configured timeout or DefaultCatalogTimeout.
func (b BinList) FetchTimeout() time.Duration {
	if b.Timeout.Duration > 0 {
		return b.Timeout.Duration
	}
	return DefaultCatalogTimeout
}

// Defaults holds the values every [[repos]] entry falls back to.
type Defaults struct {
	Remote       string   `toml:"remote" yaml:"remote"`
	MaxTags      *int     `toml:"max-tags" yaml:"max-tags"`
	ReposDir     string   `toml:"repos-dir" yaml:"repos-dir"`
	TagsFormatRe *Regexp  `toml:"tags-format-re" yaml:"tags-format-re"`
	IgnoreTagsRe *Regexp  `toml:"ignore-tags-re" yaml:"ignore-tags-re"`
	Backend      Backend  `toml:"backend" yaml:"backend"`
	Timeout      Duration `toml:"timeout" yaml:"timeout"`
}

// RepoEntry is one [[repos]] record; unset fields fall back to Defaults.
type RepoEntry struct {
	Path           string  `toml:"path" yaml:"path"`
	Remote         *string `toml:"remote" yaml:"remote"`
	MaxTags        *int    `toml:"max-tags" yaml:"max-tags"`
	BinPackageName *string `toml:"bin-package-name" yaml:"bin-package-name"`
	DisplayName    *string `toml:"display-name" yaml:"display-name"`
	TagsFormatRe   *Regexp `toml:"tags-format-re" yaml:"tags-format-re"`
	IgnoreTagsRe   *Regexp `toml:"ignore-tags-re" yaml:"ignore-tags-re"`
}

// Load reads, decodes and validates the configuration file at path.
// The format is chosen by extension: .yaml/.yml use YAML, anything else TOML.
// A .env file next to the config is loaded first without overriding the environment.
func Load(path string) (*Config, error) {
	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to load environment file").
			WithContext("path", envFile).
			Build()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	expanded, unsafe := expandEnv(data)
	if unsafe != "" {
		return nil, derrors.ConfigError("environment variable contains a quote or line break and cannot be substituted").
			WithContext("variable", unsafe).
			WithContext("path", path).
			Build()
	}
	cfg, err := Parse(expanded, formatFor(path))
	if err != nil {
		if classified, ok := derrors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Format identifies a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes data in the given format and validates the result.
// Unknown keys are rejected in both formats.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse YAML config").Build()
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse TOML config").Build()
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, derrors.ConfigError(fmt.Sprintf("unknown field(s): %s", strings.Join(keys, ", "))).
				WithContext("fields", keys).
				Build()
		}
	}

	cfg.Defaults.ReposDir = ExpandTilde(cfg.Defaults.ReposDir)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR} references. Bare $VAR is left alone because
// regular expressions in the file routinely contain '$'. Values are spliced
// into the raw file text before decoding, so a value containing a quote or a
// line break is reported by name rather than corrupting the surrounding string.
func expandEnv(data []byte) (expanded []byte, unsafe string) {
	expanded = envRefPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		name := string(envRefPattern.FindSubmatch(m)[1])
		value := os.Getenv(name)
		if unsafe == "" && strings.ContainsAny(value, "\"'\n\r") {
			unsafe = name
		}
		return []byte(value)
	})
	return expanded, unsafe
}

func (c *Config) applyDefaults() {
	c.Defaults.Backend = NormalizeBackend(string(c.Defaults.Backend))
	if c.Defaults.Timeout.Duration == 0 {
		c.Defaults.Timeout.Duration = DefaultRepoTimeout
	}
	if c.Retry.Backoff != "" {
		c.Retry.Backoff = NormalizeRetryBackoff(string(c.Retry.Backoff))
	}
}

// Repositories resolves every [[repos]] entry against Defaults, in file order.
func (c *Config) Repositories() []Repository {
	repos := make([]Repository, 0, len(c.Repos))
	for _, entry := range c.Repos {
		repos = append(repos, Resolve(entry, c.Defaults))
	}
	return repos
}
