package timeline

import "errors"

var (
	// ErrInvalidWindow is returned for empty or inverted windows.
	ErrInvalidWindow = errors.New("invalid segment window")

	// ErrNotInitialized is returned when a segment would render before Init.
	ErrNotInitialized = errors.New("segment not initialized")

	// ErrAlreadyInitialized is returned when Init is recorded twice.
	ErrAlreadyInitialized = errors.New("segment already initialized")
)
