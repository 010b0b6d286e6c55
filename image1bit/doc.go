// Package image1bit provides a 1-bit black and white image format used as the
// binary mask of the png2hex conversion.
//
// Pixels are stored in horizontal bit packing where each byte holds 8 pixels.
// The most significant bit is the leftmost pixel. A set bit is ink (black in
// the source image), a cleared bit is paper (white).
//
// Memory layout example for a 10-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9
//	Values: 1 0 1 1 0 0 0 1 | 1 0
//	Bytes:  0xB1            | 0x80
//	        (the last byte is padded with cleared bits)
//
// This package provides:
//
// - Bit: A color type representing one pixel of a mask
// - BitModel: A color model converting standard Go colors to Bit
// - Mask: An image.Image implementation that can only hold Bit values
//
// Example usage:
//
//	// Create a 16x8 mask, all paper
//	m := image1bit.NewMask(image.Rect(0, 0, 16, 8))
//
//	// Set a pixel to ink
//	m.SetBit(3, 2, image1bit.On)
//
//	// Read it back
//	println(m.BitAt(3, 2).On) // Output: true
//
//	// Use with standard Go image operations
//	draw.Draw(m, m.Bounds(), src, image.Point{}, draw.Src)
package image1bit
