package compose

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"go.yaml.in/yaml/v3"
	"golang.org/x/sync/errgroup"

	"github.com/techpix-labs/create-techpix-app/internal/rollback"
)

// Target is a compose file and the deployment label embedded in its image name.
type Target struct {
	Label string
	Path  string
}

// DefaultTargets returns the development and production compose files of
// the project at root.
func DefaultTargets(root string) []Target {
	return []Target{
		{Label: "development", Path: filepath.Join(root, "docker", "development", "compose.yaml")},
		{Label: "production", Path: filepath.Join(root, "docker", "production", "compose.yaml")},
	}
}

// Outcome is what happened to one target.
type Outcome int

const (
	// Skipped means the file does not exist.
	Skipped Outcome = iota
	// Unchanged means the file exists but the rewrite changed nothing.
	Unchanged
	// Rewritten means the file was written with a new image line.
	Rewritten
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Unchanged:
		return "unchanged"
	case Rewritten:
		return "rewritten"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result pairs a target with its outcome.
type Result struct {
	Target  Target
	Outcome Outcome
}

// imageLine matches the first image: key, capturing indentation and the key
// itself. The value runs to the end of the line; a trailing \r is kept.
var imageLine = regexp.MustCompile(`(?m)^([ \t]*image:[ \t]*)[^\r\n]+`)

// ImageName is the image value written for a project and label.
func ImageName(project, label string) string {
	return project + "-" + label
}

// RewriteImage replaces the value of the first image: line in content.
// It reports whether the content changed.
func RewriteImage(content []byte, image string) ([]byte, bool) {
	loc := imageLine.FindSubmatchIndex(content)
	if loc == nil {
		return content, false
	}
	prefixEnd := loc[3]
	out := make([]byte, 0, len(content)+len(image))
	out = append(out, content[:prefixEnd]...)
	out = append(out, image...)
	out = append(out, content[loc[1]:]...)
	return out, string(out) != string(content)
}

// PatchImage rewrites the image line of one target. A missing file is
// reported as Skipped. An existing file that cannot be read or is not valid
// YAML is an error.
func PatchImage(t Target, project string, rec rollback.Recorder) (Outcome, error) {
	data, err := os.ReadFile(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Skipped, nil
	}
	if err != nil {
		return Unchanged, fmt.Errorf("reading %s compose file: %w", t.Label, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Unchanged, fmt.Errorf("parsing %s compose file %s: %w", t.Label, t.Path, err)
	}

	updated, changed := RewriteImage(data, ImageName(project, t.Label))
	if !changed {
		return Unchanged, nil
	}

	if rec == nil {
		rec = rollback.Discard
	}
	if err := rec.BeforeWrite(t.Path); err != nil {
		return Unchanged, err
	}
	info, err := os.Stat(t.Path)
	if err != nil {
		return Unchanged, fmt.Errorf("inspecting %s: %w", t.Path, err)
	}
	if err := os.WriteFile(t.Path, updated, info.Mode().Perm()); err != nil {
		return Unchanged, fmt.Errorf("writing %s compose file: %w", t.Label, err)
	}
	return Rewritten, nil
}

// PatchAll patches every target concurrently and waits for all of them.
// The first error is returned; results are in target order. rec must be
// safe for concurrent use.
func PatchAll(ctx context.Context, targets []Target, project string, rec rollback.Recorder) ([]Result, error) {
	results := make([]Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := PatchImage(t, project, rec)
			if err != nil {
				return err
			}
			results[i] = Result{Target: t, Outcome: outcome}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
