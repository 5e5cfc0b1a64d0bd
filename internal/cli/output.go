package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
	"github.com/techpix-labs/create-techpix-app/internal/engine"
	"github.com/techpix-labs/create-techpix-app/internal/install"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func printUsageHint(w io.Writer) {
	name := branding.CLIName()
	fmt.Fprintf(w, "\nPlease specify the project directory:\n  %s %s\n", cyan(name), green("<project-directory>"))
	fmt.Fprintf(w, "For example:\n  %s %s\n\n", cyan(name), green("my-techpix-app"))
	fmt.Fprintf(w, "Run %s for all options.\n", cyan(name+" --help"))
}

func printValidationError(w io.Writer, err *ValidationError) {
	fmt.Fprintf(w, "Could not create a project called %s because of npm naming restrictions:\n", red(fmt.Sprintf("%q", err.Value)))
	for _, p := range err.Problems {
		fmt.Fprintf(w, "    %s %s\n", red("*"), p)
	}
	if err.Suggestion != "" {
		fmt.Fprintf(w, "%s try %s\n", cyan("Suggestion:"), err.Suggestion)
	}
}

func printConflicts(w io.Writer, err *engine.ConflictError) {
	fmt.Fprintf(w, "The directory %s contains files that could conflict:\n\n", green(filepath.Base(err.Root)))
	for _, entry := range err.Entries {
		fmt.Fprintf(w, "  %s\n", entry)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Either try using a new directory name, or remove the files listed above.")
}

func printDependencies(w io.Writer, plan engine.InstallPlan) {
	fmt.Fprintln(w, "\nInstalling dependencies:")
	for _, dep := range plan.Dependencies {
		fmt.Fprintf(w, "- %s\n", cyan(dep))
	}
	if len(plan.DevDependencies) > 0 {
		fmt.Fprintln(w, "\nInstalling devDependencies:")
		for _, dep := range plan.DevDependencies {
			fmt.Fprintf(w, "- %s\n", cyan(dep))
		}
	}
	fmt.Fprintln(w)
}

func printAbort(w io.Writer, err error) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Aborting installation.")
	var se *engine.StageError
	if errors.As(err, &se) {
		fmt.Fprintf(w, "  %s failed: %v\n", cyan(string(se.Stage)), se.Err)
	} else {
		fmt.Fprintf(w, "%s %v\n", red("Unexpected error. Please report it as a bug:"), err)
	}
	fmt.Fprintln(w)
}

// printSuccess prints the next steps. The cd path is the bare project name
// when the project was created directly under the working directory.
func printSuccess(w io.Writer, result *engine.Result, appPath string, pm install.PackageManager) {
	cdPath := appPath
	if wd, err := os.Getwd(); err == nil && filepath.Join(wd, result.Name) == result.Root {
		cdPath = result.Name
	}

	fmt.Fprintf(w, "%s Created %s at %s\n\n", green("Success!"), result.Name, result.Root)
	fmt.Fprintln(w, "Inside that directory, you can run several commands:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", cyan(pm.RunScript("dev")))
	fmt.Fprintln(w, "    Starts the development server.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", cyan(pm.RunScript("build")))
	fmt.Fprintln(w, "    Builds the app for production.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", cyan(string(pm)+" start"))
	fmt.Fprintln(w, "    Runs the built app in production mode.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "We suggest that you begin by typing:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", cyan("cd"), cdPath)
	if !result.Installed {
		fmt.Fprintf(w, "  %s\n", cyan(string(pm)+" install"))
	}
	fmt.Fprintf(w, "  %s\n\n", cyan(pm.RunScript("dev")))
}
