package show

import "errors"

var (
	// ErrNotInitialized is returned by Render before Init succeeded.
	ErrNotInitialized = errors.New("show not initialized")

	// ErrUnknownSegment is returned when a segment name is not in the show.
	ErrUnknownSegment = errors.New("unknown segment")
)
