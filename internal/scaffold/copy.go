package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/techpix-labs/create-techpix-app/internal/platform"
	"github.com/techpix-labs/create-techpix-app/internal/rollback"
)

// excludedNames are skipped when copying a template tree.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// RenameFunc maps a source base name to the base name written to disk.
type RenameFunc func(name string) string

// CopyOptions configures CopyTree.
type CopyOptions struct {
	// Rename is applied to every entry's base name. Nil keeps names as-is.
	Rename RenameFunc
	// Recorder is told about each directory and file before it is created.
	// Nil means rollback.Discard.
	Recorder rollback.Recorder
}

// CopyTree recursively copies the directory srcRoot of src into dst,
// preserving relative depth. dst must already exist. It returns the
// slash-separated destination paths of the files written, relative to dst.
// Any read or write failure aborts the copy; files already written are left
// for the caller's rollback.
func CopyTree(ctx context.Context, src fs.FS, srcRoot, dst string, opts CopyOptions) ([]string, error) {
	if opts.Rename == nil {
		opts.Rename = func(name string) string { return name }
	}
	if opts.Recorder == nil {
		opts.Recorder = rollback.Discard
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("inspecting destination %s: %w", dst, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("destination %s is not a directory", dst)
	}

	c := &copier{ctx: ctx, src: src, opts: opts}
	if err := c.copyDir(srcRoot, dst, ""); err != nil {
		return c.written, err
	}
	return c.written, nil
}

type copier struct {
	ctx     context.Context
	src     fs.FS
	opts    CopyOptions
	written []string
}

// copyDir copies the children of srcDir into dstDir. rel is dstDir relative
// to the copy root, slash-separated.
func (c *copier) copyDir(srcDir, dstDir, rel string) error {
	entries, err := fs.ReadDir(c.src, srcDir)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		if excludedNames[entry.Name()] {
			continue
		}

		name, err := c.rename(entry.Name())
		if err != nil {
			return err
		}
		srcPath := path.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, name)
		relPath := path.Join(rel, name)

		switch {
		case entry.IsDir():
			if err := c.opts.Recorder.BeforeMkdir(dstPath); err != nil {
				return err
			}
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dstPath, err)
			}
			if err := c.copyDir(srcPath, dstPath, relPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := CopyFile(c.src, srcPath, dstPath, c.opts.Recorder); err != nil {
				return err
			}
			c.written = append(c.written, relPath)
		}
		// Symlinks and other special entries are not part of a template.
	}
	return nil
}

func (c *copier) rename(name string) (string, error) {
	renamed := c.opts.Rename(name)
	if renamed == "" || renamed == "." || renamed == ".." || strings.ContainsAny(renamed, `/\`) {
		return "", fmt.Errorf("rename of %q produced invalid name %q", name, renamed)
	}
	return renamed, nil
}

// CopyFile copies srcPath from src to the file dst. Executable sources keep
// their execute bits; everything else is written 0644.
func CopyFile(src fs.FS, srcPath, dst string, rec rollback.Recorder) error {
	if rec == nil {
		rec = rollback.Discard
	}

	data, err := fs.ReadFile(src, srcPath)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", srcPath, err)
	}

	executable := false
	if info, err := fs.Stat(src, srcPath); err == nil {
		executable = info.Mode().Perm()&0111 != 0
	}

	if err := rec.BeforeWrite(dst); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if executable {
		if err := platform.Chmod(dst, 0755); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", dst, err)
		}
	}
	return nil
}
