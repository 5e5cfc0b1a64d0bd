package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/techpix-labs/create-techpix-app/internal/capability"
	"github.com/techpix-labs/create-techpix-app/internal/compose"
	"github.com/techpix-labs/create-techpix-app/internal/manifest"
	"github.com/techpix-labs/create-techpix-app/internal/platform"
	"github.com/techpix-labs/create-techpix-app/internal/rollback"
	"github.com/techpix-labs/create-techpix-app/internal/scaffold"
)

// Stage names one step of Create.
type Stage string

const (
	StageDirectory       Stage = "directory-creation"
	StageEmptiness       Stage = "emptiness-check"
	StageCopy            Stage = "copy"
	StageManifestName    Stage = "manifest-name-set"
	StageCapability      Stage = "capability-composition"
	StageManifestRewrite Stage = "manifest-rewrite"
	StageEnvPatch        Stage = "environment-patch"
	StageManifestFinal   Stage = "manifest-final-write"
	StageInstall         Stage = "install"
)

// InstallPlan is what the installer is asked to install.
type InstallPlan struct {
	Root            string
	Dependencies    []string
	DevDependencies []string
}

// Installer installs a project's dependencies. It must use plan.Root as the
// working directory of anything it runs.
type Installer interface {
	Install(ctx context.Context, plan InstallPlan) error
}

// RepoInitializer creates a version control repository in a new project.
// It reports false when initialization was skipped.
type RepoInitializer interface {
	Init(ctx context.Context, root string) (bool, error)
}

// Engine creates projects. The zero value uses the embedded templates and
// neither installs dependencies nor initializes a repository.
type Engine struct {
	// Templates holds scaffold.BaseDir and scaffold.OptionalDir. Nil means
	// scaffold.Templates().
	Templates fs.FS
	Installer Installer
	Repo      RepoInitializer
	Logger    *slog.Logger
}

// Result describes a created project.
type Result struct {
	Root       string
	Name       string
	Capability capability.Variant
	// CreatedRoot is false when the target directory already existed.
	CreatedRoot bool
	// Files are the slash-separated paths written, relative to Root.
	Files          []string
	Compose        []compose.Result
	ManifestWrites int
	Plan           InstallPlan
	Installed      bool
	GitInitialized bool
	// GitError is the reason repository initialization failed, if it did.
	GitError error
}

// Create scaffolds the project described by spec. On failure every change
// the run made is undone before the error is returned.
func (e *Engine) Create(ctx context.Context, spec ProjectSpec) (*Result, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if err := checkWriteable(spec.Root); err != nil {
		return nil, err
	}

	log := e.logger().With("root", spec.Root)
	r := &run{
		spec:      spec,
		templates: e.templates(),
		log:       log,
		ledger:    rollback.New(log),
		result: &Result{
			Root:       spec.Root,
			Name:       spec.Name,
			Capability: spec.Capability,
		},
	}

	stages := []step{
		{StageDirectory, r.createDirectory},
		{StageEmptiness, r.checkEmpty},
		{StageCopy, r.copyTemplate},
		{StageManifestName, r.setName},
	}
	if spec.Capability != capability.None {
		stages = append(stages,
			step{StageCapability, r.composeCapability},
			step{StageManifestRewrite, r.saveManifest},
		)
	}
	stages = append(stages,
		step{StageEnvPatch, r.patchEnv},
		step{StageManifestFinal, r.saveManifest},
	)
	if !spec.SkipInstall && e.Installer != nil {
		stages = append(stages, step{StageInstall, func(ctx context.Context) error {
			return r.install(ctx, e.Installer)
		}})
	}

	for _, s := range stages {
		err := ctx.Err()
		if err == nil {
			log.Debug("running stage", "stage", s.stage)
			err = s.fn(ctx)
		}
		if err != nil {
			log.Warn("scaffolding failed, rolling back", "stage", s.stage, "error", err)
			r.ledger.Rollback()
			return nil, &StageError{Stage: s.stage, Err: err}
		}
	}
	r.ledger.Discard()

	if !spec.SkipGit && e.Repo != nil {
		ok, err := e.Repo.Init(ctx, spec.Root)
		if err != nil {
			log.Warn("repository initialization failed", "error", err)
			r.result.GitError = err
		}
		r.result.GitInitialized = ok
	}

	log.Debug("project created", "files", len(r.result.Files), "manifest_writes", r.result.ManifestWrites)
	return r.result, nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Engine) templates() fs.FS {
	if e.Templates == nil {
		return scaffold.Templates()
	}
	return e.Templates
}

// step is one stage of a run.
type step struct {
	stage Stage
	fn    func(context.Context) error
}

// run holds the state of one Create call.
type run struct {
	spec      ProjectSpec
	templates fs.FS
	log       *slog.Logger
	ledger    *rollback.Ledger
	// recorder is told about individual writes. It is the ledger when the
	// target pre-existed and rollback.Discard when the whole target is
	// already tracked for removal.
	recorder rollback.Recorder
	manifest *manifest.Manifest
	result   *Result
}

func (r *run) createDirectory(context.Context) error {
	info, err := os.Stat(r.spec.Root)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", r.spec.Root)
		}
		r.recorder = r.ledger
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspecting %s: %w", r.spec.Root, err)
	}

	// Track the outermost directory MkdirAll is about to create.
	if err := r.ledger.BeforeMkdir(r.spec.Root); err != nil {
		return err
	}
	if err := os.MkdirAll(r.spec.Root, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", r.spec.Root, err)
	}
	r.recorder = rollback.Discard
	r.result.CreatedRoot = true
	return nil
}

func (r *run) checkEmpty(context.Context) error {
	conflicts, err := platform.FolderConflicts(r.spec.Root)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{Root: r.spec.Root, Entries: conflicts}
	}
	return nil
}

func (r *run) copyTemplate(ctx context.Context) error {
	written, err := scaffold.CopyTree(ctx, r.templates, scaffold.BaseDir, r.spec.Root, scaffold.CopyOptions{
		Rename:   scaffold.RenameTemplateFile,
		Recorder: r.recorder,
	})
	r.result.Files = append(r.result.Files, written...)
	if err != nil {
		return fmt.Errorf("copying template: %w", err)
	}
	return nil
}

func (r *run) setName(ctx context.Context) error {
	m, err := manifest.Load(manifest.Path(r.spec.Root))
	if err != nil {
		return err
	}
	r.manifest = m
	m.SetName(r.spec.Name)
	return r.saveManifest(ctx)
}

func (r *run) composeCapability(ctx context.Context) error {
	optional, err := fs.Sub(r.templates, scaffold.OptionalDir)
	if err != nil {
		return fmt.Errorf("opening optional templates: %w", err)
	}
	composed, err := capability.Compose(ctx, optional, r.spec.Root, r.spec.Capability, r.manifest, r.recorder)
	if err != nil {
		return err
	}
	r.result.Files = append(r.result.Files, composed.Files...)
	return nil
}

func (r *run) saveManifest(context.Context) error {
	if _, err := r.manifest.Save(); err != nil {
		return err
	}
	r.result.ManifestWrites = r.manifest.Writes()
	return nil
}

func (r *run) patchEnv(ctx context.Context) error {
	results, err := compose.PatchAll(ctx, compose.DefaultTargets(r.spec.Root), r.spec.Name, r.recorder)
	if err != nil {
		return err
	}
	for _, res := range results {
		r.log.Debug("compose file", "label", res.Target.Label, "outcome", res.Outcome)
	}
	r.result.Compose = results
	return nil
}

func (r *run) install(ctx context.Context, installer Installer) error {
	plan := InstallPlan{Root: r.spec.Root}
	for _, e := range r.manifest.Dependencies() {
		plan.Dependencies = append(plan.Dependencies, e.Key)
	}
	for _, e := range r.manifest.DevDependencies() {
		plan.DevDependencies = append(plan.DevDependencies, e.Key)
	}
	r.result.Plan = plan
	r.log.Info("installing dependencies", "dependencies", plan.Dependencies, "dev_dependencies", plan.DevDependencies)

	if err := installer.Install(ctx, plan); err != nil {
		return err
	}
	r.result.Installed = true
	return nil
}

// checkWriteable verifies that root, or the nearest existing directory above
// it, accepts new entries.
func checkWriteable(root string) error {
	dir := root
	if _, err := os.Stat(root); err != nil {
		dir = filepath.Dir(root)
		for {
			if _, err := os.Stat(dir); err == nil {
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if !platform.IsWriteable(dir) {
		return fmt.Errorf("%w: %s", ErrNotWriteable, dir)
	}
	return nil
}
