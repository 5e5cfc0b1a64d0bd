package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
	"github.com/techpix-labs/create-techpix-app/internal/capability"
	"github.com/techpix-labs/create-techpix-app/internal/config"
	"github.com/techpix-labs/create-techpix-app/internal/engine"
	"github.com/techpix-labs/create-techpix-app/internal/install"
	"github.com/techpix-labs/create-techpix-app/internal/platform"
	"github.com/techpix-labs/create-techpix-app/internal/updater"
	"github.com/techpix-labs/create-techpix-app/internal/vcs"
)

func runCreate(cmd *cobra.Command, args []string, opts *createOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var dir string
	if len(args) > 0 {
		dir = strings.TrimSpace(args[0])
	}
	if dir == "" {
		printUsageHint(errOut)
		return errReported
	}

	variant, err := resolveAPIClient(cmd, opts)
	if err != nil {
		return err
	}

	spec, err := engine.NewProjectSpec(dir, variant)
	if err != nil {
		return err
	}
	if verr := validateProjectName(spec.Name); verr != nil {
		printValidationError(errOut, verr)
		return errReported
	}
	if conflicts, err := platform.FolderConflicts(spec.Root); err == nil && len(conflicts) > 0 {
		printConflicts(errOut, &engine.ConflictError{Root: spec.Root, Entries: conflicts})
		return errReported
	}

	// Ask only after the cheap checks pass.
	if variant == "" {
		v, err := promptAPIClient(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		spec.Capability = v
	}
	spec.SkipInstall = viper.GetBool(config.KeySkipInstall)
	spec.SkipGit = viper.GetBool(config.KeyDisableGit)

	pm, err := resolvePackageManager(opts)
	if err != nil {
		return err
	}

	eng := &engine.Engine{
		Installer: &runnerInstaller{
			out: out,
			runner: &install.Runner{
				Manager: pm,
				Offline: config.GetBool(config.KeyOffline),
				Stdout:  out,
				Stderr:  errOut,
			},
		},
		Logger: newLogger(errOut, opts.verbose),
	}
	if !spec.SkipGit {
		eng.Repo = &vcs.Git{Message: branding.CommitMessage()}
	}

	fmt.Fprintf(out, "Creating a new Next.js app in %s.\n", green(spec.Root))
	if spec.Capability != capability.None {
		fmt.Fprintf(out, "Adding %s.\n", bold(spec.Capability.Title()))
	}

	result, err := eng.Create(cmd.Context(), spec)
	if err != nil {
		var conflict *engine.ConflictError
		switch {
		case errors.As(err, &conflict):
			printConflicts(errOut, conflict)
		case errors.Is(err, engine.ErrNotWriteable):
			fmt.Fprintf(errOut, "The application path is not writable, please check folder permissions and try again.\n")
			fmt.Fprintln(errOut, "It is likely you do not have write permissions for this folder.")
		default:
			printAbort(errOut, err)
		}
		return errReported
	}

	switch {
	case result.GitInitialized:
		fmt.Fprintln(out, "Initialized a git repository.")
	case result.GitError != nil:
		fmt.Fprintf(errOut, "%s git init failed: %v\n", cyan("Note:"), result.GitError)
	}
	fmt.Fprintln(out)
	printSuccess(out, result, dir, pm)

	if config.GetBool(config.KeyUpdateCheck) {
		checkForUpdate(cmd.Context(), errOut)
	}
	return nil
}

// resolveAPIClient reads --api-client or the api_client setting. It returns
// an empty variant when neither is set so the caller can prompt.
func resolveAPIClient(cmd *cobra.Command, opts *createOptions) (capability.Variant, error) {
	value := opts.apiClient
	if !cmd.Flags().Changed("api-client") {
		value = viper.GetString(config.KeyAPIClient)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	v, ok := capability.Parse(value)
	if !ok {
		return "", fmt.Errorf("unknown API client %q: use none, axios, react-query or graphql", value)
	}
	return v, nil
}

// resolvePackageManager picks the package manager from the --use-* flags,
// then the package_manager setting, then the environment.
func resolvePackageManager(opts *createOptions) (install.PackageManager, error) {
	switch {
	case opts.useNPM:
		return install.NPM, nil
	case opts.usePNPM:
		return install.PNPM, nil
	case opts.useYarn:
		return install.Yarn, nil
	case opts.useBun:
		return install.Bun, nil
	}
	if value := config.Get(config.KeyPackageManager); value != "" {
		pm, ok := install.Parse(value)
		if !ok {
			return "", fmt.Errorf("unknown package manager %q in %s", value, config.FilePath())
		}
		return pm, nil
	}
	return install.DetectFromEnv(), nil
}

// runnerInstaller adapts install.Runner to the engine.
type runnerInstaller struct {
	out    io.Writer
	runner *install.Runner
}

func (i *runnerInstaller) Install(ctx context.Context, plan engine.InstallPlan) error {
	printDependencies(i.out, plan)
	return i.runner.Install(ctx, plan.Root)
}

func checkForUpdate(ctx context.Context, w io.Writer) {
	notice, err := updater.New(buildVersion).Check(ctx, config.Dir())
	if err != nil || notice == nil {
		return
	}
	updater.PrintUpdateBanner(w, notice)
}
