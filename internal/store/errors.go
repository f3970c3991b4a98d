package store

import "errors"

var (
	// ErrConflict means an insert violated a uniqueness constraint
	// (duplicate username).
	ErrConflict = errors.New("already exists")

	// ErrNotFound means no row matched. For owner-scoped deletes this
	// covers both "absent" and "owned by someone else" so the distinction
	// never leaks to a caller.
	ErrNotFound = errors.New("not found")
)
