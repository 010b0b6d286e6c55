package png2hex

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned when a batch geometry is out of range.
	ErrInvalidGeometry = errors.New("png2hex: invalid batch geometry")

	// ErrInvalidName is returned when an output symbol is not a valid C
	// identifier.
	ErrInvalidName = errors.New("png2hex: invalid output name, must be a valid C-style variable name")
)

// DimensionMismatchError reports an image whose size cannot be split into
// whole batches.
type DimensionMismatchError struct {
	Width, Height int // Image size in pixels
	Geometry      Geometry
}

func (e *DimensionMismatchError) Error() string {
	msg := fmt.Sprintf("png2hex: image size %dx%d not divisible by batch size %dx%d",
		e.Width, e.Height, e.Geometry.Width, e.Geometry.Height)
	if e.Width%e.Geometry.Width != 0 {
		msg += fmt.Sprintf(" (width %d %% %d = %d)", e.Width, e.Geometry.Width, e.Width%e.Geometry.Width)
	}
	if e.Height%e.Geometry.Height != 0 {
		msg += fmt.Sprintf(" (height %d %% %d = %d)", e.Height, e.Geometry.Height, e.Height%e.Geometry.Height)
	}
	return msg
}

// InvalidMaskValueError reports a pixel that is neither pure black nor pure
// white, or a column that could not be encoded.
type InvalidMaskValueError struct {
	X, Y  int   // Absolute pixel coordinates
	Value uint8 // Offending red channel value
	Err   error // Underlying encoder error, if any
}

func (e *InvalidMaskValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("png2hex: invalid mask column at (%d, %d): %v", e.X, e.Y, e.Err)
	}
	return fmt.Sprintf("png2hex: invalid image format or color palette: pixel (%d, %d) has value %d, want 0 or 255",
		e.X, e.Y, e.Value)
}

func (e *InvalidMaskValueError) Unwrap() error {
	return e.Err
}

// InvalidInputError reports a non-binary character passed to BinaryToHex.
type InvalidInputError struct {
	Index int  // Position in the input string
	Char  byte // Offending character
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("png2hex: invalid binary digit %q at index %d", e.Char, e.Index)
}
