package config

import (
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"
)

// Repository is a [[repos]] entry merged with Defaults. It is immutable once resolved.
type Repository struct {
	Path    string
	Remote  string
	MaxTags int
	Backend Backend
	Timeout time.Duration

	binPackageName string
	displayName    string
	accept         *regexp.Regexp
	ignore         *regexp.Regexp
}

// Resolve merges entry with defaults. It performs no I/O.
func Resolve(entry RepoEntry, defaults Defaults) Repository {
	repo := Repository{
		Path:    resolvePath(entry.Path, defaults.ReposDir),
		Remote:  defaults.Remote,
		Backend: NormalizeBackend(string(defaults.Backend)),
		Timeout: defaults.Timeout.Duration,
		accept:  compiled(entry.TagsFormatRe, defaults.TagsFormatRe),
		ignore:  compiled(entry.IgnoreTagsRe, defaults.IgnoreTagsRe),
	}
	if defaults.MaxTags != nil {
		repo.MaxTags = *defaults.MaxTags
	}
	if entry.Remote != nil {
		repo.Remote = *entry.Remote
	}
	if entry.MaxTags != nil {
		repo.MaxTags = *entry.MaxTags
	}
	if entry.BinPackageName != nil {
		repo.binPackageName = *entry.BinPackageName
	}
	if entry.DisplayName != nil {
		repo.displayName = *entry.DisplayName
	}
	return repo
}

func resolvePath(path, reposDir string) string {
	if filepath.IsAbs(path) || reposDir == "" {
		return ExpandTilde(path)
	}
	return filepath.Join(reposDir, path)
}

// compiled picks the override pattern when present, else the default; each filter falls back on its own.
func compiled(override, fallback *Regexp) *regexp.Regexp {
	if override != nil && override.Regexp != nil {
		return override.Regexp
	}
	if fallback != nil {
		return fallback.Regexp
	}
	return nil
}

// AcceptTag reports whether tag matches the accept filter (if any) and not the ignore filter (if any).
func (r Repository) AcceptTag(tag string) bool {
	if r.accept != nil && !r.accept.MatchString(tag) {
		return false
	}
	if r.ignore != nil && r.ignore.MatchString(tag) {
		return false
	}
	return true
}

// BinPackageName is the name looked up in the version catalog.
func (r Repository) BinPackageName() string {
	if r.binPackageName != "" {
		return r.binPackageName
	}
	return r.name()
}

// DisplayName is the name shown in the report.
func (r Repository) DisplayName() string {
	if r.displayName != "" {
		return r.displayName
	}
	return r.name()
}

// name is the final path segment, or the whole path when there is none (e.g. "/").
func (r Repository) name() string {
	base := filepath.Base(r.Path)
	switch base {
	case ".", "..", string(filepath.Separator), "":
		return r.Path
	}
	return base
}

// Compare orders repositories by path, component by component.
func (r Repository) Compare(other Repository) int {
	return slices.Compare(pathComponents(r.Path), pathComponents(other.Path))
}

// Equal reports whether both repositories refer to the same path.
func (r Repository) Equal(other Repository) bool {
	return r.Compare(other) == 0
}

func pathComponents(path string) []string {
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == "/" {
		return []string{""}
	}
	return strings.Split(clean, "/")
}

// SortRepositories sorts repos by path in place. The sort is stable so
// duplicate paths keep their configuration order.
func SortRepositories(repos []Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Compare(repos[j]) < 0
	})
}
