package install

import (
	"os"
	"strings"
)

// PackageManager is a supported Node.js package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// All returns the supported package managers.
func All() []PackageManager {
	return []PackageManager{NPM, PNPM, Yarn, Bun}
}

// Parse converts a string to a PackageManager, returning false if invalid.
func Parse(s string) (PackageManager, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "npm":
		return NPM, true
	case "pnpm":
		return PNPM, true
	case "yarn":
		return Yarn, true
	case "bun":
		return Bun, true
	default:
		return "", false
	}
}

// Detect picks the package manager from an npm_config_user_agent value such
// as "pnpm/9.1.0 npm/? node/v20.11.0 darwin arm64". Unknown or empty agents
// fall back to npm.
func Detect(userAgent string) PackageManager {
	switch {
	case strings.HasPrefix(userAgent, "yarn"):
		return Yarn
	case strings.HasPrefix(userAgent, "pnpm"):
		return PNPM
	case strings.HasPrefix(userAgent, "bun"):
		return Bun
	default:
		return NPM
	}
}

// DetectFromEnv reads npm_config_user_agent from the environment.
func DetectFromEnv() PackageManager {
	return Detect(os.Getenv("npm_config_user_agent"))
}

// RunScript returns the command line that runs a package.json script.
// Yarn runs scripts directly; the others need "run".
func (pm PackageManager) RunScript(script string) string {
	if pm == Yarn {
		return string(pm) + " " + script
	}
	return string(pm) + " run " + script
}
