package service

import "errors"

var (
	// ErrValidation marks a missing or invalid input field.
	ErrValidation = errors.New("validation error")
	// ErrAuth marks missing or wrong credentials.
	ErrAuth = errors.New("authentication error")
	// ErrNotFound covers both absent records and records owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation such as a reused email.
	ErrConflict = errors.New("conflict")
	// ErrStore wraps persistence failures.
	ErrStore = errors.New("store error")
	// ErrUpstream wraps failures of the generative model call.
	ErrUpstream = errors.New("upstream model error")
)
