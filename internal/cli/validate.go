package cli

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/techpix-labs/create-techpix-app/internal/capability"
	"github.com/techpix-labs/create-techpix-app/internal/config"
	"github.com/techpix-labs/create-techpix-app/internal/install"
)

const maxNameLength = 214

var blacklistedNames = []string{"node_modules", "favicon.ico"}

// coreModules are Node.js built-in module names that npm refuses as new
// package names.
var coreModules = []string{
	"assert", "buffer", "child_process", "cluster", "crypto", "dgram", "dns",
	"events", "fs", "http", "http2", "https", "net", "os", "path", "process",
	"querystring", "readline", "stream", "string_decoder", "timers", "tls",
	"tty", "url", "util", "v8", "vm", "worker_threads", "zlib",
}

// ValidationError is a rejected user input with an optional hint.
type ValidationError struct {
	Field      string
	Value      string
	Problems   []string
	Suggestion string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, strings.Join(e.Problems, "; "))
}

// validateProjectName applies the npm package naming rules to name.
func validateProjectName(name string) *ValidationError {
	var problems []string

	if name == "" {
		problems = append(problems, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		problems = append(problems, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		problems = append(problems, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		problems = append(problems, "name cannot contain leading or trailing spaces")
	}
	lower := strings.ToLower(name)
	if slices.Contains(blacklistedNames, lower) {
		problems = append(problems, fmt.Sprintf("%s is a blacklisted name", name))
	}
	if slices.Contains(coreModules, lower) {
		problems = append(problems, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > maxNameLength {
		problems = append(problems, fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	}
	if lower != name {
		problems = append(problems, "name can no longer contain capital letters")
	}
	if strings.ContainsAny(name, "~'!()*") {
		problems = append(problems, `name can no longer contain special characters ("~'!()*")`)
	}
	if url.PathEscape(name) != name {
		problems = append(problems, "name can only contain URL-friendly characters")
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{
		Field:      "project name",
		Value:      name,
		Problems:   problems,
		Suggestion: suggestName(name),
	}
}

// suggestName derives a valid-looking name from an invalid one.
func suggestName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '.':
			b.WriteRune('-')
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" || slices.Contains(coreModules, s) || slices.Contains(blacklistedNames, s) {
		return ""
	}
	if len(s) > maxNameLength {
		s = s[:maxNameLength]
	}
	return s
}

// validateConfigValue checks enumerated config values before they are saved.
func validateConfigValue(key, value string) error {
	switch key {
	case config.KeyPackageManager:
		if _, ok := install.Parse(value); !ok {
			return fmt.Errorf("unknown package manager %q (valid: npm, pnpm, yarn, bun)", value)
		}
	case config.KeyAPIClient:
		if _, ok := capability.Parse(value); !ok {
			return capability.Variant(value).Validate()
		}
	}
	return nil
}
