package png2hex

import "strconv"

const hexDigits = "0123456789ABCDEF"

// BinaryToHex converts a string of '0' and '1' characters to uppercase
// hexadecimal.
//
// The string is consumed in nibbles from the least significant end. When its
// length is not a multiple of 4, the leading 1 to 3 characters are emitted as
// their plain decimal value (0 to 7) rather than a padded hex digit, so
// "10001" encodes as "11". Existing outputs depend on this, keep it.
//
// An empty string encodes as an empty string. The first non-binary character
// met during the scan aborts the conversion with *InvalidInputError.
func BinaryToHex(s string) (string, error) {
	n := len(s)
	out := make([]byte, 0, n/4+1)

	i := n - 1
	for ; i >= 3; i -= 4 {
		accum := 0
		for k := i - 3; k <= i; k++ {
			bit, err := binaryDigit(s, k)
			if err != nil {
				return "", err
			}
			accum = accum<<1 | bit
		}
		out = append(out, hexDigits[accum])
	}

	var head string
	if i >= 0 {
		accum := 0
		for k := 0; k <= i; k++ {
			bit, err := binaryDigit(s, k)
			if err != nil {
				return "", err
			}
			accum = accum<<1 | bit
		}
		head = strconv.Itoa(accum)
	}

	// Nibbles were appended least significant first.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return head + string(out), nil
}

func binaryDigit(s string, k int) (int, error) {
	switch s[k] {
	case '0':
		return 0, nil
	case '1':
		return 1, nil
	}
	return 0, &InvalidInputError{Index: k, Char: s[k]}
}
