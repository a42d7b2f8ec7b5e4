package resolver

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/avtag/internal/catalog"
	"git.home.luguber.info/inful/avtag/internal/config"
	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/git"
	"git.home.luguber.info/inful/avtag/internal/metrics"
)

type fakeLister struct {
	remote map[string][]git.TagRef
	local  map[string][]git.TagRef
	errs   map[string]error
}

func (f *fakeLister) RemoteTags(_ context.Context, repoPath, _ string) ([]git.TagRef, error) {
	if err := f.errs[repoPath]; err != nil {
		return nil, err
	}
	return f.remote[repoPath], nil
}

func (f *fakeLister) LocalTags(_ context.Context, repoPath string) ([]git.TagRef, error) {
	return f.local[repoPath], nil
}

func tagRef(hashChar byte, name string) git.TagRef {
	return git.TagRef{Hash: strings.Repeat(string(hashChar), 40), Name: git.TagPrefix + name}
}

func repoAt(path string, maxTags int, entry config.RepoEntry) config.Repository {
	entry.Path = path
	return config.Resolve(entry, config.Defaults{Remote: "origin", MaxTags: &maxTags})
}

func mustCatalog(t *testing.T, content string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse(strings.NewReader(content))
	require.NoError(t, err)
	return c
}

// remote listing in object id order: v2.0.0, v1.0.0-rc1, v1.1.0, v0.9.0, v1.0.0
var widgetRemote = []git.TagRef{
	tagRef('1', "v2.0.0"),
	tagRef('2', "v1.0.0-rc1"),
	tagRef('3', "v1.1.0"),
	tagRef('4', "v0.9.0"),
	tagRef('5', "v1.0.0"),
}

func TestResolveKeepsObjectIDOrder(t *testing.T) {
	lister := &fakeLister{
		remote: map[string][]git.TagRef{"/src/widget": widgetRemote},
		local:  map[string][]git.TagRef{"/src/widget": {tagRef('4', "v0.9.0")}},
	}
	r := New(lister)

	tags, err := r.Resolve(context.Background(), repoAt("/src/widget", 10, config.RepoEntry{}))
	require.NoError(t, err)
	require.Equal(t, []string{"v2.0.0", "v1.0.0-rc1", "v1.1.0", "v1.0.0"}, tags)

	again, err := r.Resolve(context.Background(), repoAt("/src/widget", 10, config.RepoEntry{}))
	require.NoError(t, err)
	require.Equal(t, tags, again)
}

func TestResolveAppliesFiltersCatalogAndLimit(t *testing.T) {
	lister := &fakeLister{
		remote: map[string][]git.TagRef{"/src/widget": widgetRemote},
		local:  map[string][]git.TagRef{},
	}
	cat := mustCatalog(t, "widget widget-1.0.0\n")
	r := New(lister, WithCatalog(cat))

	repo := repoAt("/src/widget", 2, config.RepoEntry{IgnoreTagsRe: config.MustCompileRegexp(`-rc`)})
	tags, err := r.Resolve(context.Background(), repo)
	require.NoError(t, err)
	// v1.0.0-rc1 ignored, v0.9.0 and v1.0.0 already built, limit 2
	require.Equal(t, []string{"v2.0.0", "v1.1.0"}, tags)
}

func TestResolveLocalEqualsRemoteIsEmpty(t *testing.T) {
	lister := &fakeLister{
		remote: map[string][]git.TagRef{"/src/widget": widgetRemote},
		local:  map[string][]git.TagRef{"/src/widget": widgetRemote},
	}
	tags, err := New(lister).Resolve(context.Background(), repoAt("/src/widget", 10, config.RepoEntry{}))
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestSelectTags(t *testing.T) {
	candidates := []string{"v3.0.0", "release-1", "v2.0.0-rc1", "v2.0.0", "v1.0.0", "v0.1.0"}
	accept := config.MustCompileRegexp(`^v\d+\.`)

	cases := []struct {
		name    string
		maxTags int
		entry   config.RepoEntry
		catalog string
		want    []string
	}{
		{"no filters", 10, config.RepoEntry{}, "", candidates},
		{"truncate keeps prefix", 3, config.RepoEntry{}, "", []string{"v3.0.0", "release-1", "v2.0.0-rc1"}},
		{"zero max tags", 0, config.RepoEntry{}, "", []string{}},
		{"accept filter", 10, config.RepoEntry{TagsFormatRe: accept}, "", []string{"v3.0.0", "v2.0.0-rc1", "v2.0.0", "v1.0.0", "v0.1.0"}},
		{"catalog hides built", 10, config.RepoEntry{TagsFormatRe: accept}, "widget widget-2.0.0\n", []string{"v3.0.0"}},
		{"catalog keyed by bin package name", 10, config.RepoEntry{TagsFormatRe: accept, BinPackageName: strPtr("other")}, "widget widget-2.0.0\n", []string{"v3.0.0", "v2.0.0-rc1", "v2.0.0", "v1.0.0", "v0.1.0"}},
		{"catalog keeps unparseable tags", 2, config.RepoEntry{}, "widget widget-9.0.0\n", []string{"release-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cat *catalog.Catalog
			if tc.catalog != "" {
				cat = mustCatalog(t, tc.catalog)
			}
			got := SelectTags(repoAt("/src/widget", tc.maxTags, tc.entry), cat, candidates)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSelectTagsTruncationIsPrefixOfFiltered(t *testing.T) {
	candidates := []string{"a", "b", "c", "d", "e"}
	full := SelectTags(repoAt("/r", 100, config.RepoEntry{}), nil, candidates)
	for k := 0; k <= len(candidates); k++ {
		got := SelectTags(repoAt("/r", k, config.RepoEntry{}), nil, candidates)
		require.Len(t, got, k)
		require.Equal(t, full[:k], got)
	}
}

type recordingRecorder struct {
	metrics.NoopRecorder
	results map[string]metrics.ResultLabel
}

func (r *recordingRecorder) ObserveRepository(_, path string, _ time.Duration, _ int, result metrics.ResultLabel) {
	r.results[path] = result
}

func TestResolveAllIsolatesFailures(t *testing.T) {
	lister := &fakeLister{
		remote: map[string][]git.TagRef{
			"/src/a": {tagRef('1', "v1.0.0")},
			"/src/c": {tagRef('2', "v2.0.0")},
		},
		local: map[string][]git.TagRef{},
		errs: map[string]error{
			"/src/b": errors.NetworkError("connection refused").Build(),
		},
	}
	var logs bytes.Buffer
	rec := &recordingRecorder{results: map[string]metrics.ResultLabel{}}
	r := New(lister, WithRecorder(rec), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	repos := []config.Repository{
		repoAt("/src/a", 5, config.RepoEntry{}),
		repoAt("/src/b", 5, config.RepoEntry{}),
		repoAt("/src/c", 5, config.RepoEntry{}),
	}
	results := r.ResolveAll(context.Background(), repos)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.Equal(t, []string{"v1.0.0"}, results[0].Tags)
	require.Error(t, results[1].Err)
	require.Nil(t, results[1].Tags)
	require.NoError(t, results[2].Err)
	require.Equal(t, []string{"v2.0.0"}, results[2].Tags)

	failed := Failed(results)
	require.Len(t, failed, 1)
	require.Equal(t, "/src/b", failed[0].Repository.Path)

	classified, ok := errors.AsClassified(failed[0].Err)
	require.True(t, ok)
	repoName, _ := classified.Context().GetString("repository")
	require.Equal(t, "b", repoName)

	require.Contains(t, logs.String(), "Failed to resolve tags")
	require.Contains(t, logs.String(), "repository=b")
	require.Equal(t, metrics.ResultFailed, rec.results["/src/b"])
	require.Equal(t, metrics.ResultSuccess, rec.results["/src/a"])
}

func TestResolveWrapsUnclassifiedErrors(t *testing.T) {
	lister := &fakeLister{errs: map[string]error{"/src/a": context.DeadlineExceeded}}
	_, err := New(lister).Resolve(context.Background(), repoAt("/src/a", 1, config.RepoEntry{}))
	require.True(t, errors.HasCategory(err, errors.CategoryGit))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func strPtr(s string) *string { return &s }
