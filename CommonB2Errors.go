package box2d

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateShape is wrapped by every DegenerateShapeError.
	ErrDegenerateShape = errors.New("box2d: degenerate shape")

	// ErrInvalidHandle is returned when a handle is stale or was never issued.
	ErrInvalidHandle = errors.New("box2d: invalid handle")

	// ErrInvalidJointDef is returned by the joint builder for unusable definitions.
	ErrInvalidJointDef = errors.New("box2d: invalid joint definition")

	// ErrUnsupportedPair is returned when no narrowphase routine handles two shape kinds.
	ErrUnsupportedPair = errors.New("box2d: unsupported shape pair")

	// ErrWorldLocked is returned when the world is modified from inside a step callback.
	ErrWorldLocked = errors.New("box2d: world is locked")
)

// DegenerateShapeError reports geometry that cannot produce a usable shape,
// such as a polygon with fewer than 3 unique hull vertices or a zero-length edge.
type DegenerateShapeError struct {
	Shape  string
	Reason string
}

func (e *DegenerateShapeError) Error() string {
	return fmt.Sprintf("box2d: degenerate %s: %s", e.Shape, e.Reason)
}

func (e *DegenerateShapeError) Unwrap() error {
	return ErrDegenerateShape
}

func newDegenerateShapeError(shape, format string, args ...interface{}) error {
	return &DegenerateShapeError{Shape: shape, Reason: fmt.Sprintf(format, args...)}
}
