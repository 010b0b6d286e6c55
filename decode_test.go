package png2hex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	src := checker(10, 8)

	tests := []struct {
		name   string
		encode func(*bytes.Buffer) error
		format string
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, src) }, "png"},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, src) }, "bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.encode(&buf))

			img, format, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, src.Bounds(), img.Bounds())

			res, err := Convert(img, DefaultOpts())
			require.NoError(t, err)
			assert.Equal(t, 40, res.Mask.Count())
		})
	}
}

// translucent returns a 3x1 image of straight-alpha pixels: transparent
// white, opaque black and half transparent white.
func translucent() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 0})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{255, 255, 255, 128})
	return img
}

func TestDecodeTransparentPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, translucent()))

	img, format, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	res, err := Convert(img, Opts{Geometry: Geometry{Width: 1, Height: 1}, Threshold: 1.7})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0"}, {"1"}, {"0"}}, res.Grid.Batches)
	assert.Equal(t, 1, res.Mask.Count())
}

func TestDecodeUnsupported(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("not an image at all")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(3, 4, 5, 6))
	src.SetGray(3, 4, color.Gray{Y: 0x80})

	dst := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), dst.Rect)
	assert.Equal(t, color.RGBA{0x80, 0x80, 0x80, 0xFF}, dst.RGBAAt(0, 0))
}

func TestToRGBAStraightAlpha(t *testing.T) {
	dst := ToRGBA(translucent())
	assert.Equal(t, []uint8{
		255, 255, 255, 0,
		0, 0, 0, 255,
		255, 255, 255, 128,
	}, dst.Pix)
}

func TestAlignToGeometry(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"aligned", 10, 16, 10, 16},
		{"shrink both", 12, 19, 10, 16},
		{"too small keeps one batch", 3, 4, 5, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := checker(tt.w, tt.h)
			got, err := AlignToGeometry(src, DefaultGeometry)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, tt.wantW, tt.wantH), got.Bounds())

			_, err = Convert(got, DefaultOpts())
			assert.NoError(t, err)
		})
	}
}

func TestAlignToGeometryStraightAlpha(t *testing.T) {
	g := Geometry{Width: 2, Height: 1}
	got, err := AlignToGeometry(translucent(), g)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())

	// Nearest neighbour samples the two white pixels at x=0 and x=2.
	nrgba, ok := got.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, []uint8{
		255, 255, 255, 0,
		255, 255, 255, 128,
	}, nrgba.Pix)

	res, err := Convert(got, Opts{Geometry: g, Threshold: 1.7})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0", "0"}}, res.Grid.Batches)
}

func TestAlignToGeometryInvalid(t *testing.T) {
	_, err := AlignToGeometry(checker(4, 4), Geometry{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
