package fade

import "errors"

var (
	// ErrInvalidWindow is returned for empty or inverted windows.
	ErrInvalidWindow = errors.New("invalid fade window")

	// ErrInvalidAlpha is returned for opacities outside [0, 1].
	ErrInvalidAlpha = errors.New("fade alpha out of range")
)
