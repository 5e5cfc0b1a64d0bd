// Package engine creates a project directory from the embedded template
// tree as one all-or-nothing operation.
//
// Engine.Create runs a fixed sequence of stages: directory creation,
// emptiness check, template copy, manifest name assignment, optional
// capability composition, compose file patching, final manifest write and
// dependency installation. Every side effect is recorded in a rollback
// ledger first. If any stage fails or the context is cancelled, the ledger
// is rolled back and the original error is returned wrapped in a
// *StageError. A target directory created by the run is removed entirely; a
// pre-existing one has each file the run wrote removed or restored.
//
// Repository initialization runs after a successful install and is never
// fatal.
package engine
