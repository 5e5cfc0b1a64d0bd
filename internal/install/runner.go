package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner runs "<manager> install" in a project directory.
type Runner struct {
	Manager PackageManager
	// Offline makes yarn install from its offline cache.
	Offline bool
	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs the package manager with root as its working directory.
func (r *Runner) Install(ctx context.Context, root string) error {
	manager := r.Manager
	if manager == "" {
		manager = NPM
	}

	bin, err := exec.LookPath(string(manager))
	if err != nil {
		return fmt.Errorf("%s not found: %w", manager, err)
	}

	cmd := exec.CommandContext(ctx, bin, installArgs(manager, r.Offline)...)
	cmd.Dir = root
	cmd.Env = installEnv(os.Environ())
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s install exited with code %d: %w", manager, exitErr.ExitCode(), err)
		}
		return fmt.Errorf("running %s install: %w", manager, err)
	}
	return nil
}

// installArgs returns the arguments passed to the package manager binary.
func installArgs(manager PackageManager, offline bool) []string {
	args := []string{"install"}
	if manager == Yarn && offline {
		args = append(args, "--offline")
	}
	return args
}

// installEnv adds the variables that silence postinstall banners and keep
// devDependencies installed.
func installEnv(env []string) []string {
	env = setEnv(env, "ADBLOCK", "1")
	env = setEnv(env, "NODE_ENV", "development")
	env = setEnv(env, "DISABLE_OPENCOLLECTIVE", "1")
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
