package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

const maxLineSize = 1 << 20

// Catalog maps package names to the highest built version. It is immutable after Parse.
// A nil *Catalog behaves as an empty catalog that needs every tag.
type Catalog struct {
	versions map[string]string // canonical "v"-prefixed semver, build metadata kept
}

// Parse reads catalog lines from r.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{versions: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.CatalogError(fmt.Sprintf("can't parse line %d: expected package name and versioned file name", lineNo)).
				WithContext("line", lineNo).
				WithContext("content", line).
				Build()
		}
		idx := strings.LastIndex(fields[1], "-")
		if idx < 0 {
			continue
		}
		v, ok := parseVersion(fields[1][idx+1:])
		if !ok {
			continue
		}
		c.versions[fields[0]] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryCatalog, fmt.Sprintf("can't read line %d", lineNo+1)).Fatal().Build()
	}
	return c, nil
}

// parseVersion accepts exactly MAJOR.MINOR.PATCH[-pre][+build] and returns it "v"-prefixed.
// Shorthands semver would otherwise complete ("1", "1.2") are rejected.
func parseVersion(s string) (string, bool) {
	v := "v" + s
	if !semver.IsValid(v) {
		return "", false
	}
	if semver.Canonical(v)+semver.Build(v) != v {
		return "", false
	}
	return v, true
}

// NeedTag reports whether tag is newer than what is built for pkg.
// Unknown packages and tags that are not semantic versions (after dropping
// leading 'v's) are always needed.
func (c *Catalog) NeedTag(pkg, tag string) bool {
	if c == nil {
		return true
	}
	built, ok := c.versions[pkg]
	if !ok {
		return true
	}
	tagVersion, ok := parseVersion(strings.TrimLeft(tag, "v"))
	if !ok {
		return true
	}
	return semver.Compare(built, tagVersion) < 0
}

// BuiltVersion returns the version recorded for pkg as written in the catalog.
func (c *Catalog) BuiltVersion(pkg string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.versions[pkg]
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(v, "v"), true
}

// Len returns the number of packages in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.versions)
}
