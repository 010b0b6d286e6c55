package png2hex

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned by Decode for unknown image formats.
var ErrUnsupportedFormat = errors.New("png2hex: unsupported image format")

// Decode reads a png, bmp, gif or jpeg image from r and returns it with the
// detected format name.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrUnsupportedFormat
	}
	if err != nil {
		return nil, "", fmt.Errorf("png2hex: failed to decode image: %w", err)
	}
	return img, format, nil
}

// ToRGBA copies img into a new 8-bit buffer anchored at the origin. The
// buffer holds straight (non-premultiplied) samples, as the image file
// stored them: a transparent white pixel keeps R=G=B=255.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := dst.PixOffset(x, y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
	return dst
}

// AlignToGeometry scales img to the nearest whole-batch size, never below one
// batch. Images that are already aligned are returned unchanged; scaled ones
// come back as *image.NRGBA so their transparency survives later passes.
func AlignToGeometry(img image.Image, g Geometry) (image.Image, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	w := max(b.Dx()-b.Dx()%g.Width, g.Width)
	h := max(b.Dy()-b.Dy()%g.Height, g.Height)
	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}
	src := ToRGBA(img)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// RGBA to RGBA with draw.Src copies samples without alpha arithmetic.
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &image.NRGBA{Pix: dst.Pix, Stride: dst.Stride, Rect: dst.Rect}, nil
}
