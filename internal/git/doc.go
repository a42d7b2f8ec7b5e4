// Package git lists tag references of a local repository and of its remote
// and computes which remote tags are not yet known locally.
//
// This package handles:
//   - Remote tag listing (ls-remote semantics, peeled entries dropped)
//   - Local tag listing (show-ref semantics)
//   - Sorted-merge difference keyed by object id
//   - Two interchangeable backends: in-process go-git and the git CLI
//   - Error classification and retries for transient failures
package git
