package git

import (
	"context"
	stderrors "errors"
	"strings"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

// GitError simplifies creating a git-scoped ClassifiedError.
func GitError(message string) *errors.ErrorBuilder {
	return errors.NewError(errors.CategoryGit, message)
}

// ClassifyGitError translates go-git or command-line git errors into ClassifiedErrors.
func ClassifyGitError(err error, op, remote string) error {
	if err == nil {
		return nil
	}

	// Already classified
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	builder := GitError(op + " failed").
		WithCause(err).
		WithContext("op", op)
	if remote != "" {
		builder.WithContext("remote", remote)
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return builder.WithCategory(errors.CategoryNetwork).
			WithContext("timeout", true).
			Build()
	}
	if stderrors.Is(err, context.Canceled) {
		return builder.WithCategory(errors.CategoryRuntime).Build()
	}

	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "not authorized") || strings.Contains(l, "could not read username") ||
		strings.Contains(l, "invalid credentials") || strings.Contains(l, "permission denied"):
		builder.WithCategory(errors.CategoryAuth).UserAction()
	case strings.Contains(l, "repository not found") || strings.Contains(l, "not found") || strings.Contains(l, "does not exist") ||
		strings.Contains(l, "not a git repository") || strings.Contains(l, "does not appear to be a git repository"):
		builder.WithCategory(errors.CategoryNotFound)
	case strings.Contains(l, "rate limit") || strings.Contains(l, "too many requests"):
		builder.WithCategory(errors.CategoryNetwork).RateLimit()
	case strings.Contains(l, "remote hung up") || strings.Contains(l, "connection reset") || strings.Contains(l, "connection refused") ||
		strings.Contains(l, "timeout") || strings.Contains(l, "timed out") || strings.Contains(l, "no route to host") ||
		strings.Contains(l, "could not resolve host") || strings.Contains(l, "temporary failure"):
		builder.WithCategory(errors.CategoryNetwork).Retryable()
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported") || strings.Contains(l, "unsupported scheme"):
		builder.WithCategory(errors.CategoryConfig)
	}

	return builder.Build()
}
