package segment

import "errors"

var (
	// ErrUnknownKind is returned when a show names a kind nobody registered.
	ErrUnknownKind = errors.New("unknown segment kind")

	// ErrDuplicateKind is returned when a kind is registered twice.
	ErrDuplicateKind = errors.New("segment kind already registered")
)
