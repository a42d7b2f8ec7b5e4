package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/avtag/internal/foundation/errors"
)

func TestClassifyGitError(t *testing.T) {
	cases := []struct {
		msg       string
		category  errors.ErrorCategory
		retryable bool
	}{
		{"authentication required", errors.CategoryAuth, false},
		{"fatal: could not read Username for 'https://example.org'", errors.CategoryAuth, false},
		{"repository not found", errors.CategoryNotFound, false},
		{"fatal: not a git repository (or any of the parent directories): .git", errors.CategoryNotFound, false},
		{"dial tcp: i/o timeout", errors.CategoryNetwork, true},
		{"fatal: unable to access: Could not resolve host: example.org", errors.CategoryNetwork, true},
		{"429 too many requests", errors.CategoryNetwork, true},
		{"unsupported scheme \"gopher\"", errors.CategoryConfig, false},
		{"something odd", errors.CategoryGit, false},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			err := ClassifyGitError(stderrors.New(tc.msg), "list remote tags", "origin")
			classified, ok := errors.AsClassified(err)
			require.True(t, ok)
			require.Equal(t, tc.category, classified.Category())
			require.Equal(t, tc.retryable, classified.IsTransient())
			remote, _ := classified.Context().GetString("remote")
			require.Equal(t, "origin", remote)
		})
	}
}

func TestClassifyGitErrorContext(t *testing.T) {
	err := ClassifyGitError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded), "list remote tags", "origin")
	require.True(t, errors.HasCategory(err, errors.CategoryNetwork))
	require.False(t, errors.IsRetryable(err))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	err = ClassifyGitError(context.Canceled, "list local tags", "")
	require.True(t, errors.HasCategory(err, errors.CategoryRuntime))
}

func TestClassifyGitErrorPassThrough(t *testing.T) {
	require.NoError(t, ClassifyGitError(nil, "op", ""))

	already := errors.AuthError("denied").Build()
	require.Same(t, already, ClassifyGitError(already, "op", ""))
}
