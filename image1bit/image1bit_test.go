package image1bit

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestBitRGBA(t *testing.T) {
	tests := []struct {
		name string
		bit  Bit
		want uint32
	}{
		{"ink", On, 0x0000},
		{"paper", Off, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.bit.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)",
					r, g, b, a, tt.want, tt.want, tt.want, uint32(0xFFFF))
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		cutoff  float64
		want    bool
	}{
		{"black default", 0, 0, 0, DefaultCutoff, true},
		{"white default", 255, 255, 255, DefaultCutoff, false},
		{"pure red below", 255, 0, 0, DefaultCutoff, true},
		{"yellow above", 255, 255, 0, DefaultCutoff, false},
		{"exactly at cutoff is paper", 255, 255, 0, 2.0, false},
		{"zero cutoff never ink", 0, 0, 0, 0, false},
		{"negative cutoff never ink", 0, 0, 0, -1, false},
		{"cutoff above three always ink", 255, 255, 255, 3.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.r, tt.g, tt.b, tt.cutoff); got.On != tt.want {
				t.Errorf("Classify(%d, %d, %d, %v).On = %v, want %v", tt.r, tt.g, tt.b, tt.cutoff, got.On, tt.want)
			}
		})
	}
}

func TestBitModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  bool
	}{
		{"bit passthrough", On, true},
		{"black", color.Black, true},
		{"white", color.White, false},
		{"dark gray", color.RGBA{0x40, 0x40, 0x40, 0xFF}, true},
		{"light gray", color.RGBA{0xC0, 0xC0, 0xC0, 0xFF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BitModel.Convert(tt.input).(Bit)
			if result.On != tt.want {
				t.Errorf("BitModel.Convert(%v).On = %v, want %v", tt.input, result.On, tt.want)
			}
		})
	}
}

func TestNewMask(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"128x64", image.Rect(0, 0, 128, 64), 16, 1024},
		{"5x8", image.Rect(0, 0, 5, 8), 1, 8},
		{"9x2", image.Rect(0, 0, 9, 2), 2, 4},
		{"offset rect", image.Rect(10, 20, 26, 22), 2, 4},
		{"empty", image.Rect(0, 0, 0, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(tt.rect)
			if m.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", m.Rect, tt.rect)
			}
			if m.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", m.Stride, tt.wantStride)
			}
			if len(m.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(m.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestMaskBitPacking(t *testing.T) {
	m := NewMask(image.Rect(0, 0, 10, 1))

	for _, x := range []int{0, 2, 3, 7, 8} {
		m.SetBit(x, 0, On)
	}

	// MSB is the leftmost pixel: 1011 0001 = 0xB1, then 1000 0000 = 0x80
	if m.Pix[0] != 0xB1 {
		t.Errorf("Pix[0] = 0x%02X, want 0xB1", m.Pix[0])
	}
	if m.Pix[1] != 0x80 {
		t.Errorf("Pix[1] = 0x%02X, want 0x80", m.Pix[1])
	}

	m.SetBit(0, 0, Off)
	if m.Pix[0] != 0x31 {
		t.Errorf("Pix[0] after clear = 0x%02X, want 0x31", m.Pix[0])
	}
}

func TestMaskSetGet(t *testing.T) {
	m := NewMask(image.Rect(0, 0, 4, 2))

	pattern := [][4]bool{
		{true, false, true, false},
		{false, false, true, true},
	}
	for y, row := range pattern {
		for x, on := range row {
			m.SetBit(x, y, Bit{On: on})
		}
	}

	for y, row := range pattern {
		for x, want := range row {
			if got := m.BitAt(x, y); got.On != want {
				t.Errorf("BitAt(%d, %d).On = %v, want %v", x, y, got.On, want)
			}
		}
	}
	if got := m.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}

func TestMaskOffsetRect(t *testing.T) {
	m := NewMask(image.Rect(10, 20, 18, 22))
	m.SetBit(10, 20, On)
	m.SetBit(17, 21, On)

	if m.Pix[0] != 0x80 {
		t.Errorf("Pix[0] = 0x%02X, want 0x80", m.Pix[0])
	}
	if m.Pix[1] != 0x01 {
		t.Errorf("Pix[1] = 0x%02X, want 0x01", m.Pix[1])
	}
}

func TestMaskOutOfBounds(t *testing.T) {
	m := NewMask(image.Rect(0, 0, 4, 4))

	// Out of bounds writes are ignored
	m.SetBit(-1, 0, On)
	m.SetBit(4, 0, On)
	m.Set(0, 4, color.Black)

	for _, b := range m.Pix {
		if b != 0 {
			t.Fatalf("out of bounds write modified Pix: %v", m.Pix)
		}
	}
	if m.BitAt(100, 100).On {
		t.Error("BitAt outside bounds should be paper")
	}
}

func TestMaskDraw(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		if x%2 == 0 {
			src.Set(x, 0, color.Black)
		} else {
			src.Set(x, 0, color.White)
		}
	}

	m := NewMask(src.Bounds())
	draw.Draw(m, m.Bounds(), src, image.Point{}, draw.Src)

	if m.Pix[0] != 0xAA {
		t.Errorf("Pix[0] = 0x%02X, want 0xAA", m.Pix[0])
	}
	if m.ColorModel() != BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}
