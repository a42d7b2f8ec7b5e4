// Package workspace manages the process-wide scratch directory.
//
// A single Manager is created at startup, handed to every component that
// needs intermediate files (the version catalog writes bin_list_raw and
// bin_list there) and removed with Cleanup on every exit path. Runs do not
// share scratch directories: each Create makes a fresh avtag-* directory.
package workspace
