package vcs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrGitNotFound is returned when git is not on PATH.
var ErrGitNotFound = errors.New("git is required but not found in PATH")

// Git initializes repositories with the git binary.
type Git struct {
	// Message is the initial commit message.
	Message string
	// Branch is checked out when git has no init.defaultBranch configured.
	Branch string
}

// Init creates a repository at root and commits every file in it. It
// reports false with a nil error when root already belongs to a git or
// mercurial work tree. When any step after "git init" fails, the new .git
// directory is removed again.
func (g *Git) Init(ctx context.Context, root string) (bool, error) {
	if err := ensureGit(); err != nil {
		return false, err
	}
	if insideGitWorkTree(ctx, root) || insideMercurialRepo(ctx, root) {
		return false, nil
	}

	if err := run(ctx, root, "init"); err != nil {
		return false, err
	}

	if err := g.commit(ctx, root); err != nil {
		_ = os.RemoveAll(filepath.Join(root, ".git"))
		return false, err
	}
	return true, nil
}

func (g *Git) commit(ctx context.Context, root string) error {
	if !hasDefaultBranch(ctx, root) {
		branch := g.Branch
		if branch == "" {
			branch = "main"
		}
		if err := run(ctx, root, "checkout", "-b", branch); err != nil {
			return err
		}
	}
	if err := run(ctx, root, "add", "-A"); err != nil {
		return err
	}
	msg := g.Message
	if msg == "" {
		msg = "Initial commit"
	}
	return run(ctx, root, "commit", "-m", msg)
}

// run executes git with args in dir.
func run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func insideGitWorkTree(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

func insideMercurialRepo(ctx context.Context, dir string) bool {
	if _, err := exec.LookPath("hg"); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, "hg", "--cwd", ".", "root")
	cmd.Dir = dir
	return cmd.Run() == nil
}

func hasDefaultBranch(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "config", "init.defaultBranch")
	cmd.Dir = dir
	out, err := cmd.Output()
	return err == nil && strings.TrimSpace(string(out)) != ""
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}
