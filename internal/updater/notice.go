package updater

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
	"github.com/techpix-labs/create-techpix-app/internal/install"
)

// Notice describes an available update.
type Notice struct {
	Current string
	Latest  string
	URL     string
}

// Check returns a Notice when a newer release exists, or nil. A stale cache
// is refreshed first, bounded by the checker's timeout; lookup failures fall
// back to whatever the cache held. Development builds never get a notice.
func (u *Checker) Check(ctx context.Context, configDir string) (*Notice, error) {
	if !isReleaseBuild(u.currentVersion) {
		return nil, nil
	}

	cache, err := LoadCache(configDir)
	if err != nil {
		// A corrupt cache is rebuilt below.
		cache = nil
	}

	if IsCacheStale(cache, u.currentVersion, u.maxAge) {
		fresh, refreshErr := u.refresh(ctx)
		if refreshErr == nil {
			cache = fresh
			if err := SaveCache(configDir, cache); err != nil {
				return nil, err
			}
		} else if cache == nil || cache.CurrentVersion != u.currentVersion {
			return nil, refreshErr
		}
	}

	if !cache.UpdateAvailable {
		return nil, nil
	}
	return &Notice{Current: u.currentVersion, Latest: cache.LatestVersion, URL: cache.ReleaseURL}, nil
}

// refresh looks up the latest release and builds a cache entry from it.
func (u *Checker) refresh(ctx context.Context) (*VersionCache, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	release, err := u.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	available, err := newerRelease(u.currentVersion, release.Version)
	if err != nil {
		return nil, err
	}

	return &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		ReleaseURL:      release.HTMLURL,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	}, nil
}

// PrintUpdateBanner prints the update notification to w. Without a release
// URL it suggests rerunning the latest version through the package manager
// that launched this one.
func PrintUpdateBanner(w io.Writer, n *Notice) {
	if n == nil {
		return
	}
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(w, "\n%s %s -> %s\n", yellow("A new version of "+branding.CLIName()+" is available:"), n.Current, n.Latest)
	if n.URL != "" {
		fmt.Fprintf(w, "    Download it from %s\n\n", cyan(n.URL))
		return
	}
	fmt.Fprintf(w, "    Run %s to use it\n\n", cyan(upgradeCommand(install.DetectFromEnv())))
}

// upgradeCommand returns the command that runs the latest published CLI.
func upgradeCommand(pm install.PackageManager) string {
	name := branding.CLIName()
	switch pm {
	case install.PNPM:
		return "pnpm dlx " + name + "@latest"
	case install.Yarn:
		return "yarn create " + strings.TrimPrefix(name, "create-")
	case install.Bun:
		return "bunx " + name + "@latest"
	default:
		return "npx " + name + "@latest"
	}
}
