package jt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStageIndexOutOfRange is returned when a stage index does not
	// address an existing stage.
	ErrStageIndexOutOfRange = errors.New("stage index out of range")

	// ErrLastStage is returned by RemoveStage when only one stage is left.
	// Nothing is changed.
	ErrLastStage = errors.New("cannot remove the only remaining stage")

	// ErrApplicationNotLoaded is returned by Board operations for an id
	// that was never loaded.
	ErrApplicationNotLoaded = errors.New("application not loaded")

	// ErrNotFound means a write matched no row owned by the caller.
	ErrNotFound = errors.New("record not found")

	// ErrArchiveConflict means the archive flag changed since it was read.
	ErrArchiveConflict = errors.New("archive state changed since it was read")
)

// ValidationError is returned before any write when input is missing or
// points at a record the owner does not have.
type ValidationError struct {
	Fields []string
	// Reason describes what is wrong with Fields. Empty means they are
	// missing.
	Reason string
}

// ReasonUnknownReference marks an id that names no live record of the owner.
const ReasonUnknownReference = "unknown or deleted reference(s)"

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing required field(s)"
	}
	return fmt.Sprintf("%s: %s", reason, strings.Join(e.Fields, ", "))
}

// PersistenceError wraps a failed store call.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialWriteWarning is returned when the primary row was written but one
// or more dependent writes failed. The primary write is not rolled back.
type PartialWriteWarning struct {
	Op       string
	Failures []error
}

func (w *PartialWriteWarning) Error() string {
	msgs := make([]string, len(w.Failures))
	for i, err := range w.Failures {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %d dependent write(s) failed: %s", w.Op, len(w.Failures), strings.Join(msgs, "; "))
}

func (w *PartialWriteWarning) Unwrap() []error { return w.Failures }

// IsPartial reports whether err carries a PartialWriteWarning, meaning the
// primary write succeeded.
func IsPartial(err error) bool {
	var w *PartialWriteWarning
	return errors.As(err, &w)
}
