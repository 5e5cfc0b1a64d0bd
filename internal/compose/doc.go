// Package compose rewrites the image name in a project's docker compose
// files. Each target pairs a deployment label with a compose file; the first
// image: line in the file becomes <project>-<label>. Missing files are
// skipped.
package compose
