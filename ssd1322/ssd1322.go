// Package ssd1322 shows binary masks on an SSD1322 OLED display via SPI.
//
// The SSD1322 is a 4-bit grayscale controller with 480x128 pixels of RAM.
// Masks are drawn with two gray levels: ink pixels are lit, paper pixels
// are dark, unless Opts.Invert is set.
package ssd1322

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/png2hex/image1bit"
)

var errHalted = errors.New("ssd1322: halted")

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 256, must be a multiple of 4 and ≤480)
	H int // Height (default: 64, must be ≤128)

	// Rotation and mirroring
	Rotated       bool // 180° rotation
	SwapTopBottom bool // Swap top/bottom display halves

	// Pixel levels
	Invert bool  // Light paper pixels instead of ink
	Level  uint8 // Gray level of lit pixels, 1-15 (default: 15)

	// Optional hardware reset pin
	RST gpio.PinIO
}

// Dev is the device handle for the SSD1322 display.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinIO

	rect         image.Rectangle
	columnOffset int // Pixels skipped to center on the 480-column RAM, multiple of 4

	lit, dark byte // Nibble values for ink and paper

	frame *image1bit.Mask
	last  []byte // Last frame sent, 2 pixels per byte

	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewSPI creates a new SSD1322 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0, 8-bit transfers. dc is the
// Data/Command pin. opts can be nil to use a 256x64 display.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: %w", err)
	}
	return newDev(c, dc, opts)
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W%4 != 0 || o.W > 480 {
		return errors.New("ssd1322: width must be a multiple of 4 between 4 and 480")
	}
	if o.H <= 0 || o.H > 128 {
		return errors.New("ssd1322: height must be between 1 and 128")
	}
	if o.Level > 15 {
		return errors.New("ssd1322: level must be between 1 and 15")
	}
	return nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	level := opts.Level
	if level == 0 {
		level = 15
	}
	d := &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		rect:         image.Rect(0, 0, opts.W, opts.H),
		columnOffset: (480 - opts.W) / 8 * 4,
		lit:          level,
		frame:        image1bit.NewMask(image.Rect(0, 0, opts.W, opts.H)),
		last:         make([]byte, opts.W*opts.H/2),
	}
	if opts.Invert {
		d.lit, d.dark = d.dark, d.lit
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

// init resets the controller and sends the power-up sequence.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	remap1, remap2 := byte(0x14), byte(0x11)
	if opts.Rotated {
		remap1 = 0x06
	}
	if opts.SwapTopBottom {
		remap2 |= 0x02
	}

	cmds := []byte{
		0xFD, 0x12, // Unlock command codes
		0xAE,       // Display OFF
		0xB3, 0x91, // Clock divider and oscillator frequency
		0xCA, byte(opts.H - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
		0xA0, remap1, remap2, // Remap and dual COM mode
		0xAB, 0x01, // Enable internal VDD
		0xB4, 0xA0, 0xFD, // Display enhancement A
		0xC1, 0xFF, // Contrast current
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancement B
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge period
		0xBE, 0x07, // VCOMH voltage
		0xA6, // Normal display mode
		0xA9, // Exit partial display mode
	}
	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	// RAM content is undefined after power up.
	if err := d.writeFrame(make([]byte, len(d.last))); err != nil {
		return err
	}
	return d.sendCommands([]byte{0xAF}) // Display ON
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeFrame sends a full frame of nibble-packed pixels.
func (d *Dev) writeFrame(pixels []byte) error {
	// Each column address covers 4 pixels.
	colStart := byte(d.columnOffset / 4)
	colEnd := byte((d.columnOffset+d.rect.Dx())/4 - 1)
	cmds := []byte{
		0x15, colStart, colEnd, // Column address
		0x75, 0, byte(d.rect.Dy() - 1), // Row address
		0x5C, // Enable write to RAM
	}
	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// pack converts the mask frame to 2 pixels per byte, high nibble left.
func (d *Dev) pack() []byte {
	w, h := d.rect.Dx(), d.rect.Dy()
	out := make([]byte, w*h/2)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x += 2 {
			out[i] = d.nibble(x, y)<<4 | d.nibble(x+1, y)
			i++
		}
	}
	return out
}

func (d *Dev) nibble(x, y int) byte {
	if d.frame.BitAt(x, y).On {
		return d.lit
	}
	return d.dark
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws src onto the display. Colors are converted with
// image1bit.BitModel. The frame is only sent when its content changed.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	if m, ok := src.(*image1bit.Mask); ok && dst == d.rect && sp == m.Rect.Min && m.Rect.Size() == d.rect.Size() {
		copy(d.frame.Pix, m.Pix)
	} else {
		draw.Draw(d.frame, dst, src, sp, draw.Src)
	}

	pixels := d.pack()
	if bytes.Equal(pixels, d.last) {
		return nil
	}
	if err := d.writeFrame(pixels); err != nil {
		return err
	}
	copy(d.last, pixels)
	return nil
}

// SetContrast sets the display contrast current (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{0xC1, contrast})
}

// Invert swaps lit and dark pixels in hardware.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6)
	if invert {
		mode = 0xA7
	}
	return d.sendCommands([]byte{mode})
}

// Halt turns the display off. The device does not accept further drawing.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommands([]byte{0xAE})
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
