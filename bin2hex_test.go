package png2hex

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryToHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1010", "A"},
		{"0000", "0"},
		{"1111", "F"},
		{"111", "7"},
		{"1", "1"},
		{"0", "0"},
		{"10", "2"},
		{"10001", "11"},
		{"11111", "1F"},
		{"00000001", "01"},
		{"11111111", "FF"},
		{"01111110", "7E"},
		{"110000000", "180"},
		{"1110000", "70"},
		{"11111111111111111111111111111111", "FFFFFFFF"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			got, err := BinaryToHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinaryToHexRoundTrip(t *testing.T) {
	for _, bits := range []int{4, 8, 12} {
		for v := uint64(0); v < 1<<bits; v++ {
			s := fmt.Sprintf("%0*b", bits, v)
			got, err := BinaryToHex(s)
			require.NoError(t, err)
			require.Len(t, got, bits/4)

			parsed, err := strconv.ParseUint(got, 16, 64)
			require.NoError(t, err)
			require.Equal(t, v, parsed, "BinaryToHex(%q) = %q", s, got)
		}
	}
}

func TestBinaryToHexRemainderIsDecimal(t *testing.T) {
	// A 3-bit head never becomes a two character hex digit.
	for v := 0; v < 8; v++ {
		s := fmt.Sprintf("%03b", v)
		got, err := BinaryToHex(s + "0000")
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(v)+"0", got)
	}
}

func TestBinaryToHexInvalid(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantIndex int
		wantChar  byte
	}{
		{"letter in nibble", "10x1", 2, 'x'},
		{"two in remainder", "20000", 0, '2'},
		{"question mark", "?", 0, '?'},
		{"space", "1111 111", 4, ' '},
		{"scan starts at the low end", "a000b", 4, 'b'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinaryToHex(tt.in)
			require.Error(t, err)
			assert.Empty(t, got)

			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.wantIndex, inputErr.Index)
			assert.Equal(t, tt.wantChar, inputErr.Char)
		})
	}
}
