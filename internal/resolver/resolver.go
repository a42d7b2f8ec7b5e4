package resolver

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/avtag/internal/catalog"
	"git.home.luguber.info/inful/avtag/internal/config"
	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/git"
	"git.home.luguber.info/inful/avtag/internal/logfields"
	"git.home.luguber.info/inful/avtag/internal/metrics"
)

// Resolver runs the tag pipeline against a TagLister and an optional catalog.
type Resolver struct {
	lister   git.TagLister
	catalog  *catalog.Catalog
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCatalog enables filtering against already built versions.
func WithCatalog(c *catalog.Catalog) Option {
	return func(r *Resolver) { r.catalog = c }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Resolver listing tags through lister.
func New(lister git.TagLister, opts ...Option) *Resolver {
	r := &Resolver{
		lister:   lister,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the tags of repo that exist on its remote but not locally,
// filtered and truncated. The order is the object id order of the remote listing.
func (r *Resolver) Resolve(ctx context.Context, repo config.Repository) ([]string, error) {
	if repo.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, repo.Timeout)
		defer cancel()
	}

	remote, err := r.lister.RemoteTags(ctx, repo.Path, repo.Remote)
	if err != nil {
		return nil, annotate(err, repo)
	}
	local, err := r.lister.LocalTags(ctx, repo.Path)
	if err != nil {
		return nil, annotate(err, repo)
	}

	candidates := git.TagNames(git.Diff(remote, local))
	tags := SelectTags(repo, r.catalog, candidates)
	r.logger.Debug("Resolved tags",
		logfields.Repository(repo.DisplayName()),
		logfields.Remote(repo.Remote),
		slog.Int("remote_tags", len(remote)),
		slog.Int("local_tags", len(local)),
		slog.Int("candidates", len(candidates)),
		logfields.TagCount(len(tags)))
	return tags, nil
}

// SelectTags keeps candidates accepted by repo's filters and needed according
// to cat (nil means no catalog), then truncates to repo.MaxTags preserving order.
func SelectTags(repo config.Repository, cat *catalog.Catalog, candidates []string) []string {
	tags := make([]string, 0, min(len(candidates), repo.MaxTags))
	for _, tag := range candidates {
		if len(tags) >= repo.MaxTags {
			break
		}
		if !repo.AcceptTag(tag) {
			continue
		}
		if !cat.NeedTag(repo.BinPackageName(), tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func annotate(err error, repo config.Repository) error {
	if classified, ok := errors.AsClassified(err); ok {
		return classified.
			WithContext("repository", repo.DisplayName()).
			WithContext("path", repo.Path)
	}
	return errors.WrapError(err, errors.CategoryGit, "tag resolution failed").
		WithContext("repository", repo.DisplayName()).
		WithContext("path", repo.Path).
		Build()
}

// Result is the outcome of resolving one repository.
type Result struct {
	Repository config.Repository
	Tags       []string
	Err        error
	Duration   time.Duration
}

// ResolveAll resolves repos sequentially. Failures are isolated per repository.
func (r *Resolver) ResolveAll(ctx context.Context, repos []config.Repository) []Result {
	results := make([]Result, 0, len(repos))
	for _, repo := range repos {
		start := time.Now()
		tags, err := r.Resolve(ctx, repo)
		res := Result{Repository: repo, Tags: tags, Err: err, Duration: time.Since(start)}
		results = append(results, res)

		r.recorder.ObserveRepository(repo.DisplayName(), repo.Path, res.Duration, len(tags), metrics.ResultFor(err))
		if err != nil {
			r.logger.Warn("Failed to resolve tags",
				logfields.Repository(repo.DisplayName()),
				logfields.Path(repo.Path),
				logfields.Remote(repo.Remote),
				logfields.Category(string(errors.GetCategory(err))),
				logfields.Error(err))
		}
	}
	return results
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
