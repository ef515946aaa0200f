package seamcarve

import "github.com/pkg/errors"

// Error kinds returned by the carving engine. Call sites wrap them with
// context, use errors.Is to match.
var (
	// ErrConstruction is returned when a buffer cannot be laid out on a grid of the given width.
	ErrConstruction = errors.New("length of data and width provided are not compatible")

	// ErrSeamLength is returned when a seam does not have one entry per grid row.
	ErrSeamLength = errors.New("seam length should be equal to grid height")

	// ErrSeamRange is returned when a seam points outside of the grid.
	ErrSeamRange = errors.New("seam column out of range")

	// ErrCapacity is returned when an enlargement needs more seams than the image can provide.
	ErrCapacity = errors.New("not enough seams available for the requested size")

	// ErrBounds is returned for target dimensions the carver cannot produce.
	ErrBounds = errors.New("target dimension out of bounds")
)
