package planogram

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected business conditions. These are returned, never
// panicked, so callers can map them to user-facing responses.
var (
	// ErrDuplicateProduct is returned by Add when the product is already
	// placed somewhere on the target shelf.
	ErrDuplicateProduct = errors.New("product already assigned on this shelf")

	// ErrNotFound is returned when a shelf or assignment the caller named
	// does not exist. A Move targeting a missing product is NOT an error
	// (benign no-op); this covers Delete and session lookups.
	ErrNotFound = errors.New("not found")

	// ErrSessionBusy is returned while a commit for the session is in
	// flight. The caller must wait for the outcome before issuing further
	// moves, cancels or commits.
	ErrSessionBusy = errors.New("a save is already in flight for this session")

	// ErrSessionClean is returned by Commit when no move changed anything.
	ErrSessionClean = errors.New("session has no changes to save")

	// ErrSessionClosed is returned when operating on a cancelled or
	// committed session.
	ErrSessionClosed = errors.New("edit session is closed")

	// ErrShelfBusy is returned by OpenSession when another session is
	// already open for the same shelf.
	ErrShelfBusy = errors.New("shelf already has an open edit session")
)

// ValidationError reports an argument that was rejected before any
// persistence call was made. Local state is never changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failure from the persistence service. The engine
// guarantees local state was rolled back (or never mutated), so a retry with
// the same inputs is safe.
type PersistenceError struct {
	Op  string // "add", "delete" or "updateLayout"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
