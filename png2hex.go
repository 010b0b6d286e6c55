// Package png2hex converts raster images into packed hexadecimal C array
// literals for monochrome display firmware.
//
// See doc.go for an overview of the conversion.
package png2hex

import (
	"fmt"
	"image"

	"github.com/flavioheleno/png2hex/image1bit"
)

// Geometry is the size of one batch in pixels.
type Geometry struct {
	Width  int // Bytes per batch, one per column (default: 5)
	Height int // Bits per byte, one per row (default: 8, must be ≤32)
}

// DefaultGeometry is the 5x8 character cell used by common LCD fonts.
var DefaultGeometry = Geometry{Width: 5, Height: 8}

// Validate checks that the geometry can be packed.
func (g Geometry) Validate() error {
	if g.Width <= 0 {
		return fmt.Errorf("%w: batch width must be positive, got %d", ErrInvalidGeometry, g.Width)
	}
	if g.Height <= 0 || g.Height > 32 {
		return fmt.Errorf("%w: batch height must be between 1 and 32, got %d", ErrInvalidGeometry, g.Height)
	}
	return nil
}

// Opts is the configuration of a conversion. It is passed by value and never
// modified by this package.
type Opts struct {
	Geometry  Geometry
	Threshold float64 // Ink when normalized r+g+b is below this (default: 1.7)
}

// DefaultOpts returns the options used when nothing is configured.
func DefaultOpts() Opts {
	return Opts{
		Geometry:  DefaultGeometry,
		Threshold: image1bit.DefaultCutoff,
	}
}

// Grid is the packed output of a conversion.
type Grid struct {
	Geometry Geometry

	// Declared size in batches
	Width  int
	Height int

	// One row per batch, ordered by batch row then batch column. Each row
	// holds Geometry.Width hex values without the 0x prefix.
	Batches [][]string
}

// Bits returns the number of pixels encoded by the grid.
func (g *Grid) Bits() int {
	return len(g.Batches) * g.Geometry.Width * g.Geometry.Height
}

// Result is the outcome of Convert.
type Result struct {
	Grid *Grid
	Mask *image1bit.Mask // Thresholded image, usable as a preview
}

// Threshold reduces img to pure black and white in place.
//
// For every pixel the R, G and B channels are set to 0 when their normalized
// sum is below cutoff and to 255 otherwise. Alpha is left untouched. Any
// cutoff is accepted; values ≤0 give an all white image and values above 3
// an all black one.
func Threshold(img *image.RGBA, cutoff float64) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.PixOffset(x, y)
			v := uint8(255)
			if image1bit.Classify(img.Pix[p], img.Pix[p+1], img.Pix[p+2], cutoff).On {
				v = 0
			}
			img.Pix[p], img.Pix[p+1], img.Pix[p+2] = v, v, v
		}
	}
}

// MaskFromRGBA builds a mask from a thresholded image. The red channel of
// every pixel must be exactly 0 (ink) or 255 (paper); anything else fails
// with *InvalidMaskValueError.
func MaskFromRGBA(img *image.RGBA) (*image1bit.Mask, error) {
	b := img.Rect
	m := image1bit.NewMask(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch v := img.Pix[img.PixOffset(x, y)]; v {
			case 0:
				m.SetBit(x, y, image1bit.On)
			case 255:
			default:
				return nil, &InvalidMaskValueError{X: x, Y: y, Value: v}
			}
		}
	}
	return m, nil
}

// checkDimensions fails when a w×h image cannot be split into whole batches.
func checkDimensions(w, h int, g Geometry) error {
	if w%g.Width != 0 || h%g.Height != 0 {
		return &DimensionMismatchError{Width: w, Height: h, Geometry: g}
	}
	return nil
}

// Pack splits the mask into batches and encodes each batch column as one hex
// value.
//
// Batches are visited row by row. Within a batch each column is read from
// the bottom pixel to the top one, so the top row lands in the least
// significant bit. The mask size must be a multiple of the geometry.
func Pack(m *image1bit.Mask, g Geometry) (*Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	if err := checkDimensions(w, h, g); err != nil {
		return nil, err
	}

	grid := &Grid{
		Geometry: g,
		Width:    w / g.Width,
		Height:   h / g.Height,
		Batches:  make([][]string, 0, (w/g.Width)*(h/g.Height)),
	}

	col := make([]byte, g.Height)
	for by := 0; by < grid.Height; by++ {
		for bx := 0; bx < grid.Width; bx++ {
			batch := make([]string, g.Width)
			for i := 0; i < g.Width; i++ {
				x := m.Rect.Min.X + bx*g.Width + i
				top := m.Rect.Min.Y + by*g.Height
				// Bottom pixel first: the most significant character.
				for j := 0; j < g.Height; j++ {
					col[g.Height-1-j] = '0'
					if m.BitAt(x, top+j).On {
						col[g.Height-1-j] = '1'
					}
				}
				hex, err := BinaryToHex(string(col))
				if err != nil {
					return nil, &InvalidMaskValueError{X: x, Y: top, Err: err}
				}
				batch[i] = hex
			}
			grid.Batches = append(grid.Batches, batch)
		}
	}
	return grid, nil
}

// PackRGBA packs an already thresholded image. The size is checked before
// any pixel is read.
func PackRGBA(img *image.RGBA, g Geometry) (*Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := checkDimensions(img.Rect.Dx(), img.Rect.Dy(), g); err != nil {
		return nil, err
	}
	m, err := MaskFromRGBA(img)
	if err != nil {
		return nil, err
	}
	return Pack(m, g)
}

// Convert runs the whole pipeline on img: copy to RGBA, threshold, build
// the mask and pack it. img itself is not modified.
func Convert(img image.Image, opts Opts) (*Result, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if err := checkDimensions(b.Dx(), b.Dy(), opts.Geometry); err != nil {
		return nil, err
	}

	rgba := ToRGBA(img)
	Threshold(rgba, opts.Threshold)

	m, err := MaskFromRGBA(rgba)
	if err != nil {
		return nil, err
	}
	grid, err := Pack(m, opts.Geometry)
	if err != nil {
		return nil, err
	}
	return &Result{Grid: grid, Mask: m}, nil
}
