package terrain

import (
	"errors"
	"fmt"
)

// Triangulation errors.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrGridTooLarge  = errors.New("grid too large for 32-bit vertex indices")
)

// ShapeMismatchError reports an axis or elevation dimension that does not fit the grid.
// It matches ErrShapeMismatch with errors.Is.
type ShapeMismatchError struct {
	Field   string // "x axis", "y axis", "elevation rows", ...
	Got     int
	Want    int
	AtLeast bool // Want is a minimum rather than an exact length
}

func (e *ShapeMismatchError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("%v: %s has length %d, need at least %d", ErrShapeMismatch, e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: %s has length %d, want %d", ErrShapeMismatch, e.Field, e.Got, e.Want)
}

// Is reports whether target is ErrShapeMismatch.
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}
