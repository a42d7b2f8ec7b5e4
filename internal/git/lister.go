package git

import (
	"context"

	"git.home.luguber.info/inful/avtag/internal/config"
)

// TagLister lists tag references. Implementations return refs sorted with SortByHash.
type TagLister interface {
	// RemoteTags lists the tags advertised by remote, which is either a remote
	// name configured in the repository at repoPath or a URL/path.
	RemoteTags(ctx context.Context, repoPath, remote string) ([]TagRef, error)
	// LocalTags lists the tag references of the repository at repoPath.
	LocalTags(ctx context.Context, repoPath string) ([]TagRef, error)
}

// NewLister returns the lister for backend, defaulting to go-git.
func NewLister(backend config.Backend) TagLister {
	if backend == config.BackendGit {
		return NewCLILister()
	}
	return NewGoGitLister()
}
