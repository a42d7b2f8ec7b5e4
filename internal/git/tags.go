package git

import (
	"sort"
	"strings"
)

// TagPrefix is the namespace of tag references.
const TagPrefix = "refs/tags/"

// TagRef is a tag reference and the object id it points to.
type TagRef struct {
	Hash string // hex object id
	Name string // full reference name, e.g. "refs/tags/v1.0.0"
}

// ShortName returns the tag name without the refs/tags/ prefix.
func (t TagRef) ShortName() string {
	return strings.TrimPrefix(t.Name, TagPrefix)
}

// SortByHash orders refs by object id. Refs sharing an id are ordered by name
// so the result does not depend on listing order.
func SortByHash(refs []TagRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Hash != refs[j].Hash {
			return refs[i].Hash < refs[j].Hash
		}
		return refs[i].Name < refs[j].Name
	})
}

// Diff returns the remote refs whose object id does not appear in local.
// Both inputs must be sorted with SortByHash; the result keeps remote order.
func Diff(remote, local []TagRef) []TagRef {
	out := make([]TagRef, 0, len(remote))
	j := 0
	for _, r := range remote {
		for j < len(local) && local[j].Hash < r.Hash {
			j++
		}
		if j < len(local) && local[j].Hash == r.Hash {
			continue
		}
		out = append(out, r)
	}
	return out
}

// TagNames strips the refs/tags/ prefix from every ref, keeping order.
func TagNames(refs []TagRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.ShortName())
	}
	return names
}

// isTagRef reports whether name is a tag reference that is not a peeled entry.
func isTagRef(name string) bool {
	return strings.HasPrefix(name, TagPrefix) && !strings.HasSuffix(name, "^{}")
}
