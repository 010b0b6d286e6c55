// Command png2hex converts images into packed hexadecimal C arrays.
//
// Usage:
//
//	png2hex [flags] image.png [more.png ...]
//
// Each input produces {odir}/{name}.{oext} where name is the file's base name
// (or -o for a single input). See -help for all flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/png2hex"
	"github.com/flavioheleno/png2hex/image1bit"
	"github.com/flavioheleno/png2hex/internal/config"
	"github.com/flavioheleno/png2hex/internal/fsutil"
	"github.com/flavioheleno/png2hex/internal/version"
)

// env holds the collaborators of run so tests can replace them.
type env struct {
	fs        fsutil.FileSystem
	log       *log.Logger
	openPanel func(panelOpts) (display.Drawer, func() error, error)
}

func main() {
	e := env{
		fs:        fsutil.OSFileSystem{},
		log:       log.New(os.Stderr, "png2hex: ", 0),
		openPanel: openPanel,
	}
	if err := run(os.Args[1:], e); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		e.log.Fatalf("ERR: %v", err)
	}
}

// flags mirrors config.File; only flags set on the command line override the
// config file.
type flags struct {
	config     string
	input      string
	output     string
	outputDir  string
	outputExt  string
	minify     bool
	threshold  float64
	width      int
	height     int
	align      bool
	preview    bool
	previewDir string
	previewExt string
	version    bool
	panel      panelOpts
}

func parseFlags(args []string) (*flags, *flag.FlagSet, error) {
	f := &flags{}
	fs := flag.NewFlagSet("png2hex", flag.ContinueOnError)

	fs.StringVar(&f.config, "c", "", "JSON config file")
	fs.StringVar(&f.config, "config", "", "JSON config file")
	fs.StringVar(&f.input, "i", "", "Input image file")
	fs.StringVar(&f.input, "input", "", "Input image file")
	fs.StringVar(&f.output, "o", config.DefaultOutput, "Output C variable name")
	fs.StringVar(&f.output, "output", config.DefaultOutput, "Output C variable name")
	fs.StringVar(&f.outputDir, "odir", config.DefaultOutputDir, "Output directory")
	fs.StringVar(&f.outputExt, "oext", config.DefaultOutputExt, "Output file extension")
	fs.BoolVar(&f.minify, "minify", false, "Minify output")
	fs.BoolVar(&f.minify, "min", false, "Minify output")
	fs.Float64Var(&f.threshold, "threshold", image1bit.DefaultCutoff, "Black/white threshold for R+G+B in [0, 3]")
	fs.Float64Var(&f.threshold, "thr", image1bit.DefaultCutoff, "Black/white threshold for R+G+B in [0, 3]")
	fs.IntVar(&f.width, "w", png2hex.DefaultGeometry.Width, "Batch width in pixels")
	fs.IntVar(&f.width, "width", png2hex.DefaultGeometry.Width, "Batch width in pixels")
	fs.IntVar(&f.height, "h", png2hex.DefaultGeometry.Height, "Batch height in pixels (1-32)")
	fs.IntVar(&f.height, "height", png2hex.DefaultGeometry.Height, "Batch height in pixels (1-32)")
	fs.BoolVar(&f.align, "align", false, "Scale images to whole batches instead of failing")
	fs.BoolVar(&f.preview, "p", false, "Save a black and white preview image")
	fs.BoolVar(&f.preview, "preview", false, "Save a black and white preview image")
	fs.StringVar(&f.previewDir, "pdir", config.DefaultPreviewDir, "Preview directory")
	fs.StringVar(&f.previewExt, "pext", config.DefaultPreviewExt, "Preview file extension")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")

	fs.BoolVar(&f.panel.enabled, "panel", false, "Show the result on an SSD1322 display")
	fs.StringVar(&f.panel.spi, "spi", "", "SPI bus name (empty for default)")
	fs.StringVar(&f.panel.dc, "dc", "GPIO25", "Data/Command pin name")
	fs.StringVar(&f.panel.rst, "rst", "", "Reset pin name (optional)")
	fs.IntVar(&f.panel.width, "panel-width", 256, "Display width in pixels")
	fs.IntVar(&f.panel.height, "panel-height", 64, "Display height in pixels")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

// settings loads the config file and applies the flags set explicitly.
func (f *flags) settings(fs *flag.FlagSet, files fsutil.FileSystem) (*config.File, error) {
	cfg := &config.File{}
	if f.config != "" {
		var err error
		if cfg, err = config.Load(files, f.config); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "o", "output":
			cfg.Output = &f.output
		case "odir":
			cfg.OutputDir = &f.outputDir
		case "oext":
			cfg.OutputExt = &f.outputExt
		case "minify", "min":
			cfg.Minify = &f.minify
		case "threshold", "thr":
			cfg.BWThreshold = &f.threshold
		case "w", "width":
			cfg.BatchWidth = &f.width
		case "h", "height":
			cfg.BatchHeight = &f.height
		case "align":
			cfg.Align = &f.align
		case "p", "preview":
			cfg.Preview = &f.preview
		case "pdir":
			cfg.PreviewDir = &f.previewDir
		case "pext":
			cfg.PreviewExt = &f.previewExt
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, e env) error {
	f, fs, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.version {
		fmt.Fprintln(fs.Output(), version.String())
		return nil
	}

	cfg, err := f.settings(fs, e.fs)
	if err != nil {
		return err
	}

	inputs := fs.Args()
	if f.input != "" {
		inputs = append([]string{f.input}, inputs...)
	}
	if len(inputs) == 0 {
		fs.Usage()
		return errors.New("no input file")
	}
	if cfg.Output != nil && len(inputs) > 1 {
		return errors.New("-o can only be used with a single input file")
	}

	var drawer display.Drawer
	if f.panel.enabled {
		d, closeFn, err := e.openPanel(f.panel)
		if err != nil {
			return err
		}
		defer closeFn()
		drawer = d
	}

	for _, in := range inputs {
		// ValidName strips the extensions later.
		name := filepath.Base(in)
		if cfg.Output != nil {
			name = cfg.GetOutput()
		}
		c := &converter{fs: e.fs, log: e.log, cfg: cfg}
		m, err := c.convert(in, name)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		if drawer != nil {
			e.log.Println("showing", in, "on", drawer)
			if err := drawer.Draw(drawer.Bounds(), m, m.Bounds().Min); err != nil {
				return err
			}
		}
	}
	return nil
}

// converter runs one file through decode, convert, render and preview.
type converter struct {
	fs  fsutil.FileSystem
	log *log.Logger
	cfg *config.File
}

func (c *converter) convert(in, name string) (*image1bit.Mask, error) {
	c.log.Println("starting conversion of", in)

	c.log.Println("validating output variable name")
	name, err := png2hex.ValidName(name)
	if err != nil {
		return nil, err
	}

	c.log.Println("validating input file")
	info, err := c.fs.Stat(in)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("input value is not a file")
	}

	c.log.Println("reading input data")
	r, err := c.fs.Open(in)
	if err != nil {
		return nil, err
	}
	img, format, err := png2hex.Decode(r)
	r.Close()
	if err != nil {
		return nil, err
	}

	opts := c.cfg.Opts()
	if c.cfg.GetAlign() {
		aligned, err := png2hex.AlignToGeometry(img, opts.Geometry)
		if err != nil {
			return nil, err
		}
		if aligned.Bounds() != img.Bounds() {
			c.log.Printf("scaled %s image from %v to %v", format, img.Bounds().Size(), aligned.Bounds().Size())
		}
		img = aligned
	}

	c.log.Println("converting data into binary batches")
	res, err := png2hex.Convert(img, opts)
	if err != nil {
		return nil, err
	}

	dir := c.cfg.GetOutputDir()
	c.log.Println("saving converted data to", dir)
	err = c.create(dir, name+"."+c.cfg.GetOutputExt(), func(w io.Writer) error {
		return png2hex.Render(w, name, res.Grid, png2hex.RenderOpts{Minify: c.cfg.GetMinify()})
	})
	if err != nil {
		return nil, err
	}

	if c.cfg.GetPreview() {
		dir := c.cfg.GetPreviewDir()
		c.log.Println("saving preview image to", dir)
		err := c.create(dir, name+"."+c.cfg.GetPreviewExt(), func(w io.Writer) error {
			return png.Encode(w, res.Mask)
		})
		if err != nil {
			return nil, err
		}
	}

	c.log.Println("finished conversion of", in)
	return res.Mask, nil
}

// create makes sure dir exists and writes dir/file with write.
func (c *converter) create(dir, file string, write func(io.Writer) error) error {
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, err := c.fs.Create(filepath.Join(dir, file))
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
