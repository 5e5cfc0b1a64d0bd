//go:build integration

package integration_test

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/techpix-labs/create-techpix-app/internal/engine"
	"github.com/techpix-labs/create-techpix-app/internal/install"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME for config and git
	BinDir  string // prepended to PATH for fake package managers
	WorkDir string // parent of the projects under test
}

// setupTestEnv creates isolated temp directories and points HOME, git and
// PATH at them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Techpix Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@techpix.dev")
	t.Setenv("GIT_COMMITTER_NAME", "Techpix Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@techpix.dev")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("TECHPIX_UPDATE_CHECK", "false")

	return env
}

// writeFakeManager installs a shell script named after the package manager
// that runs body. It skips the test where shell scripts cannot run.
func writeFakeManager(t *testing.T, env *testEnv, name, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package managers need a POSIX shell")
	}
	path := filepath.Join(env.BinDir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}
}

// runnerInstaller feeds an engine install plan to install.Runner.
type runnerInstaller struct {
	runner *install.Runner
}

func (i *runnerInstaller) Install(ctx context.Context, plan engine.InstallPlan) error {
	return i.runner.Install(ctx, plan.Root)
}

func newRunnerInstaller(pm install.PackageManager) *runnerInstaller {
	return &runnerInstaller{runner: &install.Runner{Manager: pm, Stdout: io.Discard, Stderr: io.Discard}}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
