// Package errors provides the classified error primitives used across avtag.
//
// Every failure that can reach the CLI boundary is expressed as a
// ClassifiedError carrying a category (config, catalog, git, ...), a severity
// and a retry strategy. The CLI adapter turns those into exit codes and
// user-facing messages; the resolver uses the retry strategy to decide whether
// a listing failure is worth another attempt.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryGit, "listing remote tags failed").
//		WithRetry(errors.RetryBackoff).
//		WithContext("remote", remote).
//		WithCause(originalErr).
//		Build()
package errors
