package review

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed identifiers or out-of-range
	// parameters. Callers should not retry.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing word, progress row, or word set.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks a word set owned by another user.
	ErrForbidden = errors.New("forbidden")
	// ErrStaleProgress marks a conditional update that lost to a
	// concurrent writer. The scheduler retries from a fresh read.
	ErrStaleProgress = errors.New("stale progress row")
)

// PersistenceError wraps a storage failure. The scheduler never retries
// these; whether to retry is the caller's call (RecordOutcome is not
// idempotent).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("review: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) || errors.Is(err, ErrStaleProgress) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
