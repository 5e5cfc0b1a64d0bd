package engine

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/techpix-labs/create-techpix-app/internal/capability"
)

// ProjectSpec describes one project to create. It is built once by the
// caller and passed by value.
type ProjectSpec struct {
	// Root is the absolute target directory.
	Root string
	// Name is the last element of Root.
	Name string
	// Capability is the selected optional API client.
	Capability capability.Variant
	// SkipInstall leaves dependency installation to the user.
	SkipInstall bool
	// SkipGit disables repository initialization.
	SkipGit bool
}

// NewProjectSpec resolves path to an absolute directory and derives the
// project name from it.
func NewProjectSpec(path string, v capability.Variant) (ProjectSpec, error) {
	if path == "" {
		return ProjectSpec{}, errors.New("project directory is required")
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return ProjectSpec{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := v.Validate(); err != nil {
		return ProjectSpec{}, err
	}
	if v == "" {
		v = capability.None
	}
	return ProjectSpec{
		Root:       root,
		Name:       filepath.Base(root),
		Capability: v,
	}, nil
}

func (s ProjectSpec) validate() error {
	if s.Root == "" || !filepath.IsAbs(s.Root) {
		return fmt.Errorf("project root %q must be an absolute path", s.Root)
	}
	if s.Name == "" {
		return errors.New("project name is required")
	}
	return s.Capability.Validate()
}
