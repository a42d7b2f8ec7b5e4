package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func hashOf(c byte) string { return strings.Repeat(string(c), 40) }

func ref(c byte, name string) TagRef {
	return TagRef{Hash: hashOf(c), Name: TagPrefix + name}
}

func TestDiff(t *testing.T) {
	remote := []TagRef{ref('1', "v1.0.0"), ref('3', "v1.1.0"), ref('5', "v2.0.0"), ref('7', "v2.1.0")}
	local := []TagRef{ref('3', "v1.1.0"), ref('4', "local-only"), ref('7', "renamed")}

	require.Equal(t, []TagRef{ref('1', "v1.0.0"), ref('5', "v2.0.0")}, Diff(remote, local))
}

func TestDiffKeysOnObjectID(t *testing.T) {
	// a local tag with the same name but another target does not hide the remote tag
	remote := []TagRef{ref('2', "v1.0.0")}
	local := []TagRef{ref('1', "v1.0.0")}
	require.Equal(t, remote, Diff(remote, local))
}

func TestDiffKeepsRemoteDuplicates(t *testing.T) {
	remote := []TagRef{ref('1', "a"), ref('1', "b"), ref('2', "c")}
	require.Equal(t, remote, Diff(remote, nil))
	require.Equal(t, []TagRef{ref('2', "c")}, Diff(remote, []TagRef{ref('1', "x")}))
}

func TestDiffIdenticalSetsIsEmpty(t *testing.T) {
	refs := []TagRef{ref('1', "v1"), ref('2', "v2"), ref('9', "v3")}
	require.Empty(t, Diff(refs, refs))
	require.Empty(t, Diff(nil, refs))
}

func TestDiffIsIdempotent(t *testing.T) {
	remote := []TagRef{ref('1', "v1"), ref('2', "v2"), ref('9', "v3")}
	local := []TagRef{ref('2', "v2")}
	require.Equal(t, Diff(remote, local), Diff(remote, local))
}

func TestSortByHash(t *testing.T) {
	refs := []TagRef{ref('9', "z"), ref('1', "b"), ref('5', "m"), ref('1', "a")}
	SortByHash(refs)
	require.Equal(t, []TagRef{ref('1', "a"), ref('1', "b"), ref('5', "m"), ref('9', "z")}, refs)
}

func TestTagNames(t *testing.T) {
	names := TagNames([]TagRef{ref('9', "v2.0.0"), ref('1', "release/1.0")})
	require.Equal(t, []string{"v2.0.0", "release/1.0"}, names)
	require.Empty(t, TagNames(nil))
}

func TestIsTagRef(t *testing.T) {
	require.True(t, isTagRef("refs/tags/v1.0.0"))
	require.False(t, isTagRef("refs/tags/v1.0.0^{}"))
	require.False(t, isTagRef("refs/heads/main"))
	require.False(t, isTagRef("HEAD"))
}

func TestParseRefLines(t *testing.T) {
	out := []byte(hashOf('b') + "\trefs/tags/v2\n" +
		hashOf('a') + " refs/tags/v1\n" +
		hashOf('c') + "\trefs/tags/v1^{}\n" +
		hashOf('d') + "\trefs/heads/main\n\n")
	refs, err := parseRefLines(out)
	require.NoError(t, err)
	require.Equal(t, []TagRef{
		{Hash: hashOf('a'), Name: "refs/tags/v1"},
		{Hash: hashOf('b'), Name: "refs/tags/v2"},
	}, refs)

	_, err = parseRefLines([]byte("garbage\n"))
	require.Error(t, err)

	refs, err = parseRefLines(nil)
	require.NoError(t, err)
	require.Empty(t, refs)
}
