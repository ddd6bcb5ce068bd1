package database

import "errors"

var (
	// ErrNotInitialized is returned when a repository is used before NewDB
	// has completed (or after Close). This is a programming error, not a
	// recoverable condition.
	ErrNotInitialized = errors.New("database not initialized")
)

// StorageError wraps an underlying SQLite failure (I/O error or constraint
// violation) with the operation that triggered it. The store never retries
// and never swallows these; they propagate to the caller as-is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
