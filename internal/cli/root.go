package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
	"github.com/techpix-labs/create-techpix-app/internal/config"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// errReported marks an error whose details were already printed.
var errReported = errors.New("reported")

// createOptions holds the root command's flags.
type createOptions struct {
	apiClient   string
	useNPM      bool
	usePNPM     bool
	useYarn     bool
	useBun      bool
	skipInstall bool
	disableGit  bool
	verbose     bool
	noColor     bool
}

func newRootCmd() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [directory]",
		Short: branding.Description(),
		Long: branding.Description() + `.

The new project is created from a built-in Next.js template. Optionally an
API client (Axios, React Query or GraphQL) is added. If any step fails, the
directory is left exactly as it was found.`,
		Example: fmt.Sprintf("  %s my-techpix-app\n  %s my-techpix-app --api-client react-query --use-pnpm",
			branding.CLIName(), branding.CLIName()),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			if opts.noColor || os.Getenv("NO_COLOR") != "" {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.apiClient, "api-client", "", "API client to add: none, axios, react-query or graphql")
	flags.BoolVar(&opts.useNPM, "use-npm", false, "Install dependencies with npm")
	flags.BoolVar(&opts.usePNPM, "use-pnpm", false, "Install dependencies with pnpm")
	flags.BoolVar(&opts.useYarn, "use-yarn", false, "Install dependencies with Yarn")
	flags.BoolVar(&opts.useBun, "use-bun", false, "Install dependencies with Bun")
	flags.BoolVar(&opts.skipInstall, "skip-install", false, "Do not install dependencies")
	flags.BoolVar(&opts.disableGit, "disable-git", false, "Do not initialize a git repository")
	cmd.MarkFlagsMutuallyExclusive("use-npm", "use-pnpm", "use-yarn", "use-bun")

	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log each scaffolding stage")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	// Flags override the config file and TECHPIX_* variables.
	_ = viper.BindPFlag(config.KeyAPIClient, flags.Lookup("api-client"))
	_ = viper.BindPFlag(config.KeySkipInstall, flags.Lookup("skip-install"))
	_ = viper.BindPFlag(config.KeyDisableGit, flags.Lookup("disable-git"))

	cmd.AddCommand(newVersionCmd(), newConfigCmd())
	return cmd
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM cancel the run, which rolls back a partial project.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	}
	return err
}
