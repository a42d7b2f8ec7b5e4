package git

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
	"git.home.luguber.info/inful/avtag/internal/logfields"
	"git.home.luguber.info/inful/avtag/internal/retry"
)

// RetryingLister retries transient failures of another TagLister.
type RetryingLister struct {
	inner  TagLister
	policy retry.Policy
	logger *slog.Logger
}

// WithRetry wraps inner so network-classified failures are retried per policy.
func WithRetry(inner TagLister, policy retry.Policy, logger *slog.Logger) *RetryingLister {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryingLister{inner: inner, policy: policy, logger: logger}
}

// RemoteTags implements TagLister.
func (r *RetryingLister) RemoteTags(ctx context.Context, repoPath, remote string) ([]TagRef, error) {
	var tags []TagRef
	err := retry.Do(ctx, r.policy, errors.IsRetryable, r.onRetry(repoPath, remote), func(ctx context.Context) error {
		var err error
		tags, err = r.inner.RemoteTags(ctx, repoPath, remote)
		return err
	})
	return tags, err
}

// LocalTags implements TagLister. Local listing touches only the disk and is not retried.
func (r *RetryingLister) LocalTags(ctx context.Context, repoPath string) ([]TagRef, error) {
	return r.inner.LocalTags(ctx, repoPath)
}

func (r *RetryingLister) onRetry(repoPath, remote string) func(int, error) {
	return func(attempt int, err error) {
		r.logger.Warn("Retrying remote tag listing",
			logfields.Path(repoPath),
			logfields.Remote(remote),
			logfields.Attempt(attempt),
			logfields.Error(err))
	}
}
