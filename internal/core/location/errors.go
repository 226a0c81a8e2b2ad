package location

import "errors"

var (
	ErrLocationNotFound   = errors.New("location: not found")
	ErrInvalidID          = errors.New("location: invalid id")
	ErrInvalidName        = errors.New("location: invalid name")
	ErrInvalidKind        = errors.New("location: invalid kind")
	ErrInvalidCoordinates = errors.New("location: invalid coordinates")
	ErrEmptyPatch         = errors.New("location: nothing to update")
)
