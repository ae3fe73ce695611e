package repository

import "errors"

var (
	// ErrDataIsEmpty signals that no snapshot exists yet for a token. Callers
	// diffing against the store treat it as an empty baseline, not a failure.
	ErrDataIsEmpty = errors.New("no data stored for token")

	// ErrAlreadyExists signals a duplicate account registration.
	ErrAlreadyExists = errors.New("token already registered")
)
