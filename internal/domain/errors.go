package domain

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated is returned when a spreadsheet operation has no usable credential.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUpstreamUnavailable wraps failures of an external provider that are
	// surfaced to the caller.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
)
