package imaging

import "errors"

var (
	// ErrOutOfBounds reports a pixel coordinate outside [0,width) x [0,height).
	ErrOutOfBounds = errors.New("coordinates outside image bounds")

	// ErrInvalidDimension reports a target size that would produce an empty image.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidParameter reports a parameter outside the operation's domain,
	// such as an inverted contrast-stretch range.
	ErrInvalidParameter = errors.New("invalid parameter")
)
