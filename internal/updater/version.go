package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/techpix-labs/create-techpix-app/internal/branding"
)

// releaseVersion parses a release tag. Tags may carry a "v" prefix or the
// npm-style "<package>@" prefix used when the CLI is published from a
// workspace, e.g. "create-techpix-app@1.4.0".
func releaseVersion(tag string) (*semver.Version, error) {
	tag = strings.TrimPrefix(tag, branding.CLIName()+"@")
	tag = strings.TrimPrefix(tag, "v")
	v, err := semver.NewVersion(tag)
	if err != nil {
		return nil, fmt.Errorf("parsing release tag %q: %w", tag, err)
	}
	return v, nil
}

// isReleaseBuild reports whether version identifies a published release.
// Local builds report "dev" and never look for updates.
func isReleaseBuild(version string) bool {
	_, err := releaseVersion(version)
	return err == nil
}

// newerRelease reports whether the tag latest should be offered to a user
// running current. Prereleases are only offered to users already running a
// prerelease.
func newerRelease(current, latest string) (bool, error) {
	cv, err := releaseVersion(current)
	if err != nil {
		return false, err
	}
	lv, err := releaseVersion(latest)
	if err != nil {
		return false, err
	}
	if lv.Prerelease() != "" && cv.Prerelease() == "" {
		return false, nil
	}
	return cv.LessThan(lv), nil
}
