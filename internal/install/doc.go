// Package install detects the package manager a project should use and runs
// its install command inside the project directory. The working directory
// of the current process is never changed; the project root is passed to
// the child process instead.
package install
