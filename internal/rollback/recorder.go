package rollback

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Recorder is told about filesystem mutations just before they happen.
// Components that write into a project take a Recorder so the orchestrator
// can decide whether individual writes need undo entries.
type Recorder interface {
	// BeforeMkdir is called before path is created with os.MkdirAll.
	BeforeMkdir(path string) error
	// BeforeWrite is called before path is created or replaced.
	BeforeWrite(path string) error
}

// Discard is a Recorder that records nothing. It is used when the whole
// target directory is already tracked for removal.
var Discard Recorder = discard{}

type discard struct{}

func (discard) BeforeMkdir(string) error { return nil }
func (discard) BeforeWrite(string) error { return nil }

// BeforeMkdir tracks the outermost missing ancestor of path (or path itself)
// so that everything MkdirAll is about to create is removed on rollback.
func (l *Ledger) BeforeMkdir(path string) error {
	missing := ""
	for dir := path; ; {
		_, err := os.Stat(dir)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("inspecting %s before mkdir: %w", dir, err)
		}
		missing = dir
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if missing != "" {
		l.TrackDir(missing)
	}
	return nil
}

// BeforeWrite records a file-level undo for path.
func (l *Ledger) BeforeWrite(path string) error {
	return l.TrackFile(path)
}
