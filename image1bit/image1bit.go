// Package image1bit provides a 1-bit image format holding binary masks.
//
// Each byte contains 8 horizontally adjacent pixels, most significant bit
// first. This package provides the Bit color type and the Mask image.
package image1bit

import (
	"image"
	"image/color"
)

// DefaultCutoff is the threshold applied by BitModel. A pixel whose
// normalized r+g+b sum is below it becomes ink.
const DefaultCutoff = 1.7

// Bit represents a single mask pixel. On is ink (black), off is paper (white).
type Bit struct {
	On bool
}

var (
	// On is an ink pixel.
	On = Bit{On: true}
	// Off is a paper pixel.
	Off = Bit{}
)

// RGBA converts the Bit to standard RGBA: ink is black, paper is white.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

// Classify reduces an 8-bit RGB triple to a Bit.
//
// Each channel is normalized to [0, 1]; if the sum of the three is below
// cutoff the pixel is ink. Cutoffs <= 0 never produce ink and cutoffs > 3
// always do.
func Classify(r, g, b uint8, cutoff float64) Bit {
	sum := float64(r)/255 + float64(g)/255 + float64(b)/255
	return Bit{On: sum < cutoff}
}

// toBit converts any color.Color to Bit using DefaultCutoff.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns 16-bit values
	return Classify(uint8(r>>8), uint8(g>>8), uint8(b>>8), DefaultCutoff)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Mask is a binary image where pixels are stored one bit each.
type Mask struct {
	Pix    []byte          // Pixel data (8 pixels per byte, MSB = leftmost)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewMask creates a new Mask with the specified bounds. All pixels are paper.
func NewMask(r image.Rectangle) *Mask {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Mask{Rect: r}
	}
	stride := (w + 7) / 8
	return &Mask{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Mask) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *Mask) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Mask) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y). Pixels outside the bounds
// are paper.
func (p *Mask) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit{On: p.Pix[offset]&mask != 0}
}

// Set sets the color of the pixel at (x, y), converting it with BitModel.
func (p *Mask) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Mask) SetBit(x, y int, c Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if c.On {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Count returns the number of ink pixels.
func (p *Mask) Count() int {
	n := 0
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			if p.BitAt(x, y).On {
				n++
			}
		}
	}
	return n
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Column 0 of a byte is bit 7.
func (p *Mask) pixOffset(x, y int) (offset int, mask byte) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/8
	mask = 0x80 >> uint(dx%8)
	return
}
