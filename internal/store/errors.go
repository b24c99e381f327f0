package store

import "errors"

var (
	// ErrNotFound is returned when a write targets a record that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStaleWrite is returned when a conditional update finds the record
	// no longer in the expected state.
	ErrStaleWrite = errors.New("record changed since it was read")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
)
