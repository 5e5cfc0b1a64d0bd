// Package vcs initializes a git repository in a freshly created project and
// records an initial commit. Initialization is best effort: a project is
// still usable without a repository, so callers report failures as warnings.
package vcs
