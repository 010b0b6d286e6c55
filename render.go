package png2hex

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var cIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*$`)

// ValidName strips any extension (everything from the first '.') and checks
// that the rest is a valid C identifier.
func ValidName(name string) (string, error) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	if !cIdentifier.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

// RenderOpts controls the layout of the rendered literal.
type RenderOpts struct {
	Minify bool // Drop indentation, row newlines and spaces after commas
}

// Render writes grid as a C declaration named name:
//
//	static const unsigned int name_width = W;
//	static const unsigned int name_height = H;
//	static const byte name[][BW] = {
//	  {0xA, 0x1F, ...},
//	  ...
//	};
//
// Lines end with CRLF. Values keep the encoder output as is, so they may be
// one or two digits wide.
func Render(w io.Writer, name string, grid *Grid, opts RenderOpts) error {
	name, err := ValidName(name)
	if err != nil {
		return err
	}

	nl, indent, sep := "\r\n", "  ", ", "
	if opts.Minify {
		nl, indent, sep = "", "", ","
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "static const unsigned int %s_width = %d;\r\n", name, grid.Width)
	fmt.Fprintf(bw, "static const unsigned int %s_height = %d;\r\n", name, grid.Height)
	fmt.Fprintf(bw, "static const byte %s[][%d] = {%s", name, grid.Geometry.Width, nl)
	for i, batch := range grid.Batches {
		bw.WriteString(indent)
		bw.WriteByte('{')
		for j, v := range batch {
			if j > 0 {
				bw.WriteString(sep)
			}
			bw.WriteString("0x")
			bw.WriteString(v)
		}
		bw.WriteByte('}')
		if i < len(grid.Batches)-1 {
			bw.WriteByte(',')
		}
		bw.WriteString(nl)
	}
	bw.WriteString("};")
	return bw.Flush()
}
