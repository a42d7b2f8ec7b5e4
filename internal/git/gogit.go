package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
)

// GoGitLister lists tags in-process with go-git.
type GoGitLister struct{}

// NewGoGitLister creates a go-git backed TagLister.
func NewGoGitLister() *GoGitLister {
	return &GoGitLister{}
}

// RemoteTags implements TagLister. Nothing is fetched: the remote is listed
// through an in-memory storage, the local repository is only read for its
// remote configuration.
func (l *GoGitLister) RemoteTags(ctx context.Context, repoPath, remote string) ([]TagRef, error) {
	repo, err := openRepository(repoPath)
	if err != nil {
		return nil, ClassifyGitError(err, "open repository", "")
	}

	remoteConfig := &config.RemoteConfig{Name: "origin", URLs: []string{resolveURL(repoPath, remote)}}
	if rc, lookupErr := repo.Remote(remote); lookupErr == nil {
		urls := make([]string, 0, len(rc.Config().URLs))
		for _, u := range rc.Config().URLs {
			urls = append(urls, resolveURL(repoPath, u))
		}
		remoteConfig = &config.RemoteConfig{Name: remote, URLs: urls}
	}

	refs, err := git.NewRemote(memory.NewStorage(), remoteConfig).ListContext(ctx, &git.ListOptions{
		PeelingOption: git.IgnorePeeled,
	})
	if err != nil {
		if stderrors.Is(err, transport.ErrEmptyRemoteRepository) {
			return []TagRef{}, nil
		}
		return nil, ClassifyGitError(err, "list remote tags", remote)
	}

	tags := make([]TagRef, 0, len(refs))
	for _, ref := range refs {
		// Skip symbolic references
		if ref.Type() == plumbing.SymbolicReference {
			continue
		}
		name := ref.Name().String()
		if !isTagRef(name) {
			continue
		}
		tags = append(tags, TagRef{Hash: ref.Hash().String(), Name: name})
	}
	SortByHash(tags)
	return tags, nil
}

// LocalTags implements TagLister using the hashes stored in the tag references
// themselves (annotated tags are not dereferenced).
func (l *GoGitLister) LocalTags(ctx context.Context, repoPath string) ([]TagRef, error) {
	repo, err := openRepository(repoPath)
	if err != nil {
		return nil, ClassifyGitError(err, "open repository", "")
	}
	iter, err := repo.Tags()
	if err != nil {
		return nil, ClassifyGitError(err, "list local tags", "")
	}
	defer iter.Close()

	var tags []TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		tags = append(tags, TagRef{Hash: ref.Hash().String(), Name: ref.Name().String()})
		return nil
	})
	if err != nil {
		return nil, ClassifyGitError(err, "list local tags", "")
	}
	if tags == nil {
		tags = []TagRef{}
	}
	SortByHash(tags)
	return tags, nil
}

// openRepository refuses missing directories; DetectDotGit would otherwise
// walk up into an enclosing repository.
func openRepository(path string) (*git.Repository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("repository path %s does not exist: %w", path, err)
	}
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

// resolveURL makes relative local paths relative to the repository, the way
// git resolves them when run inside it. transport.NewEndpoint would resolve
// them against the process working directory instead.
func resolveURL(repoPath, remote string) string {
	if remote == "" || filepath.IsAbs(remote) || strings.Contains(remote, "://") || isSCPLike(remote) {
		return remote
	}
	return filepath.Join(repoPath, remote)
}

// isSCPLike reports whether remote has the user@host:path form.
func isSCPLike(remote string) bool {
	colon := strings.Index(remote, ":")
	if colon <= 0 {
		return false
	}
	slash := strings.Index(remote, "/")
	return slash < 0 || colon < slash
}
