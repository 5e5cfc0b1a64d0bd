package capability

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/techpix-labs/create-techpix-app/internal/manifest"
	"github.com/techpix-labs/create-techpix-app/internal/rollback"
	"github.com/techpix-labs/create-techpix-app/internal/scaffold"
)

// Result lists what Compose added to a project.
type Result struct {
	Variant      Variant
	Dirs         []string
	Files        []string
	Dependencies []Dependency
}

// Compose applies the module for v to the project at root. optional is the
// optional template tree that FileCopy sources are resolved against. The
// module's dependencies are set on m in memory; the caller saves it.
// Compose with None is a no-op.
func Compose(ctx context.Context, optional fs.FS, root string, v Variant, m *manifest.Manifest, rec rollback.Recorder) (*Result, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	result := &Result{Variant: v}
	mod, ok := Lookup(v)
	if !ok {
		return result, nil
	}
	if rec == nil {
		rec = rollback.Discard
	}

	// Constraints are checked before anything touches disk or the manifest.
	for _, dep := range mod.Dependencies {
		if _, err := semver.NewConstraint(dep.Constraint); err != nil {
			return nil, fmt.Errorf("invalid constraint %q for %s: %w", dep.Constraint, dep.Name, err)
		}
	}

	for _, dir := range mod.Dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		abs := filepath.Join(root, filepath.FromSlash(dir))
		if err := rec.BeforeMkdir(abs); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(abs, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
		result.Dirs = append(result.Dirs, dir)
	}

	for _, f := range mod.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dst := filepath.Join(root, filepath.FromSlash(f.Dest))
		// Parents beyond the declared dirs are still created.
		parent := filepath.Dir(dst)
		if err := rec.BeforeMkdir(parent); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(parent, 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", f.Dest, err)
		}
		if err := scaffold.CopyFile(optional, path.Clean(f.Source), dst, rec); err != nil {
			return nil, fmt.Errorf("copying %s module file: %w", v, err)
		}
		result.Files = append(result.Files, f.Dest)
	}

	for _, dep := range mod.Dependencies {
		if err := m.SetDependency(dep.Name, dep.Constraint); err != nil {
			return nil, fmt.Errorf("adding dependency %s: %w", dep.Name, err)
		}
		result.Dependencies = append(result.Dependencies, dep)
	}

	return result, nil
}
