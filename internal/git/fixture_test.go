package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var testSignature = object.Signature{Name: "tester", Email: "t@example.com", When: time.Unix(1700000000, 0)}

// requireUploadPack skips tests that list a local path remote; go-git's file
// transport runs git-upload-pack.
func requireUploadPack(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not available")
	}
}

// helper to add a file and commit returning hash.
func addCommit(t *testing.T, repo *git.Repository, repoPath, filename, content, msg string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, filename), []byte(content), 0o600))
	_, err = wt.Add(filename)
	require.NoError(t, err)
	sig := testSignature
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: &sig})
	require.NoError(t, err)
	return hash
}

type tagFixture struct {
	remotePath string
	localPath  string
	remote     *git.Repository
	local      *git.Repository
}

// newTagFixture builds an upstream repository tagged v1.0.0 (lightweight),
// v1.1.0 (annotated) and v2.0.0 (lightweight), and a local copy that only
// knows v1.0.0 and has "origin" pointing at the upstream path.
func newTagFixture(t *testing.T) *tagFixture {
	t.Helper()
	base := t.TempDir()
	remotePath := filepath.Join(base, "upstream")
	remote, err := git.PlainInit(remotePath, false)
	require.NoError(t, err)

	c1 := addCommit(t, remote, remotePath, "a.txt", "A", "first")
	_, err = remote.CreateTag("v1.0.0", c1, nil)
	require.NoError(t, err)
	c2 := addCommit(t, remote, remotePath, "b.txt", "B", "second")
	sig := testSignature
	_, err = remote.CreateTag("v1.1.0", c2, &git.CreateTagOptions{Tagger: &sig, Message: "release 1.1.0"})
	require.NoError(t, err)
	c3 := addCommit(t, remote, remotePath, "c.txt", "C", "third")
	_, err = remote.CreateTag("v2.0.0", c3, nil)
	require.NoError(t, err)

	localPath := filepath.Join(base, "local")
	require.NoError(t, os.CopyFS(localPath, os.DirFS(remotePath)))
	local, err := git.PlainOpen(localPath)
	require.NoError(t, err)
	require.NoError(t, local.DeleteTag("v1.1.0"))
	require.NoError(t, local.DeleteTag("v2.0.0"))
	_, err = local.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{remotePath}})
	require.NoError(t, err)

	return &tagFixture{remotePath: remotePath, localPath: localPath, remote: remote, local: local}
}

func (f *tagFixture) tagHash(t *testing.T, name string) string {
	t.Helper()
	ref, err := f.remote.Tag(name)
	require.NoError(t, err)
	return ref.Hash().String()
}
