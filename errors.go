package tod

import "errors"

// Construction-time configuration errors. These are returned when an
// animation is built, never while drawing.
var (
	ErrInvalidFPS       = errors.New("tod: fps must be at least 1")
	ErrNoFrames         = errors.New("tod: animation needs at least one frame")
	ErrInvalidRestFrame = errors.New("tod: rest frame must not be negative")
	ErrMissingSide      = errors.New("tod: four-side drawable is missing a side")
)

// Invalid-argument errors. The failing call leaves prior state unchanged.
var (
	ErrInvalidSide    = errors.New("tod: invalid side")
	ErrInvalidSpeed   = errors.New("tod: walk speed must be positive")
	ErrInvalidDelta   = errors.New("tod: walk displacement must be finite")
	ErrAlreadyWalking = errors.New("tod: sprite is already walking")
	ErrDetached       = errors.New("tod: sprite is not on a stage")
)
