package platform

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// harmlessEntries may already exist in a target directory without blocking
// a new project from being created there.
var harmlessEntries = map[string]bool{
	".DS_Store":      true,
	".git":           true,
	".gitattributes": true,
	".gitignore":     true,
	".gitlab-ci.yml": true,
	".hg":            true,
	".hgcheck":       true,
	".hgignore":      true,
	".idea":          true,
	".npmignore":     true,
	".travis.yml":    true,
	".yarn":          true,
	".yarnrc.yml":    true,
	"LICENSE":        true,
	"Thumbs.db":      true,
	"docs":           true,
	"mkdocs.yml":     true,
	"npm-debug.log":  true,
	"yarn-debug.log": true,
	"yarn-error.log": true,
}

// logPrefixes cover rotated package-manager debug logs.
var logPrefixes = []string{"npm-debug.log", "yarn-debug.log", "yarn-error.log"}

// FolderConflicts lists the entries of root that would conflict with a new
// project. A missing root has no conflicts.
func FolderConflicts(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	var conflicts []string
	for _, entry := range entries {
		name := entry.Name()
		if isHarmless(name) {
			continue
		}
		if entry.IsDir() {
			name += "/"
		}
		conflicts = append(conflicts, name)
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

// IsFolderEmpty reports whether root holds nothing but harmless entries.
func IsFolderEmpty(root string) (bool, error) {
	conflicts, err := FolderConflicts(root)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

func isHarmless(name string) bool {
	if harmlessEntries[name] {
		return true
	}
	// IntelliJ module files.
	if strings.HasSuffix(name, ".iml") {
		return true
	}
	for _, prefix := range logPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
