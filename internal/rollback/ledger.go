package rollback

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// UndoFunc reverts one side effect. It performs best-effort cleanup and has
// no error return, so a failing undo can never stop the rollback.
type UndoFunc func()

// Ledger is an append-only list of undo actions.
type Ledger struct {
	mu      sync.Mutex
	actions []UndoFunc
	done    bool
	log     *slog.Logger
}

// New returns an empty ledger. A nil logger discards rollback diagnostics.
func New(log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Ledger{log: log}
}

// Track appends an undo action.
func (l *Ledger) Track(undo UndoFunc) {
	if undo == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return
	}
	l.actions = append(l.actions, undo)
}

// TrackDir appends an action that recursively removes path. Removal errors
// are logged and swallowed.
func (l *Ledger) TrackDir(path string) {
	l.Track(func() {
		if err := os.RemoveAll(path); err != nil {
			l.log.Warn("rollback: removing directory", "path", path, "error", err)
		}
	})
}

// TrackFile snapshots path before the caller writes it. On rollback a file
// that did not exist is removed, and an existing one is restored with its
// original content and mode.
func (l *Ledger) TrackFile(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		l.Track(func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				l.log.Warn("rollback: removing file", "path", path, "error", err)
			}
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspecting %s before write: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("refusing to replace non-regular file %s", path)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("snapshotting %s: %w", path, err)
	}
	mode := info.Mode().Perm()
	l.Track(func() {
		if err := os.WriteFile(path, original, mode); err != nil {
			l.log.Warn("rollback: restoring file", "path", path, "error", err)
		}
	})
	return nil
}

// Len reports how many undo actions are recorded.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.actions)
}

// Rollback runs every recorded action in reverse registration order, one at
// a time. A panicking action is recovered so the remaining actions still run.
// Calling Rollback again, or after Discard, does nothing.
func (l *Ledger) Rollback() {
	l.mu.Lock()
	if l.done {
		l.mu.Unlock()
		return
	}
	actions := l.actions
	l.actions = nil
	l.done = true
	l.mu.Unlock()

	l.log.Info("rolling back changes", "actions", len(actions))
	for i := len(actions) - 1; i >= 0; i-- {
		l.run(actions[i])
	}
}

// Discard drops all recorded actions after a successful run.
func (l *Ledger) Discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = nil
	l.done = true
}

func (l *Ledger) run(undo UndoFunc) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Warn("rollback: undo action panicked", "panic", r)
		}
	}()
	undo()
}
