// Package png2hex converts raster images into packed hexadecimal C array
// literals.
//
// The output is meant to be pasted into firmware for small monochrome
// displays (character LCDs, OLED panels) where bitmaps live in flash as
// static arrays.
//
// # Conversion Pipeline
//
// A conversion runs three steps:
//
//  1. Threshold: every pixel becomes pure black or pure white. A pixel is
//     black when R/255 + G/255 + B/255 is below the threshold (default 1.7).
//  2. Pack: the black and white image is split into batches of
//     Geometry.Width × Geometry.Height pixels (default 5×8). Each batch
//     column becomes one value, the top row in the least significant bit.
//  3. Render: the batches are written as a C declaration.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"os"
//
//		"github.com/flavioheleno/png2hex"
//	)
//
//	func main() {
//		f, _ := os.Open("logo.png")
//		defer f.Close()
//
//		img, _, _ := png2hex.Decode(f)
//
//		res, err := png2hex.Convert(img, png2hex.DefaultOpts())
//		if err != nil {
//			panic(err)
//		}
//
//		png2hex.Render(os.Stdout, "logo", res.Grid, png2hex.RenderOpts{})
//	}
//
// # Output Layout
//
// For a 10×8 image and the default geometry:
//
//	static const unsigned int logo_width = 2;
//	static const unsigned int logo_height = 1;
//	static const byte logo[][5] = {
//	  {0x7E, 0x11, 0x11, 0x11, 0x7E},
//	  {0x7F, 0x49, 0x49, 0x49, 0x36}
//	};
//
// Batches are listed row by row, left to right. The declared width and
// height count batches, not pixels.
//
// # Hex Encoding Quirk
//
// Columns are encoded with BinaryToHex, which works in 4-bit groups from the
// least significant end. A leftover group of 1 to 3 bits is written as its
// decimal value, so a 3-bit column "111" is 0x7 and a 5-bit column "10001"
// is 0x11. Values are therefore not fixed width. This matches the files
// produced by earlier versions of the tool and is kept on purpose.
//
// # Errors
//
// All failures abort the whole conversion and no partial grid is returned:
//
//	*DimensionMismatchError  image size is not a multiple of the batch size
//	*InvalidMaskValueError   a pixel is neither pure black nor pure white
//	*InvalidInputError       BinaryToHex got a character other than 0 or 1
//
// Use errors.As to get the offending size, coordinates or character.
//
// # Previewing
//
// Result.Mask is an image1bit.Mask and implements image.Image, so it can be
// saved with image/png or drawn on a display. Package ssd1322 shows it on an
// SSD1322 OLED panel.
package png2hex
