package adapter

import "errors"

// Sentinel errors mapped from the daemon's tagged error responses.
// Callers match with [errors.Is]; the wrapped message stays displayable.
var (
	// ErrUnauthorized covers wrong passwords and data commands issued
	// without an open profile.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the referenced profile does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrServerFailure covers config, io and database faults on the
	// daemon side.
	ErrServerFailure = errors.New("server failure")
)
