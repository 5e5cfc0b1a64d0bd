package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotWriteable is returned when the target, or the directory it would be
// created in, does not allow writes. Nothing has been created at that point.
var ErrNotWriteable = errors.New("target path is not writeable")

// ConflictError reports a target directory that already holds files which
// could be overwritten.
type ConflictError struct {
	Root    string
	Entries []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("directory %s contains files that could conflict: %s", e.Root, strings.Join(e.Entries, ", "))
}

// StageError wraps the failure of one stage. Unwrap returns the original
// error, never one raised during rollback.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage recorded in err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
