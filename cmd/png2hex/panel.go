package main

import (
	"fmt"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/flavioheleno/png2hex/ssd1322"
)

// panelOpts selects the SSD1322 display used by -panel.
type panelOpts struct {
	enabled bool
	spi     string
	dc      string
	rst     string
	width   int
	height  int
}

// openPanel initializes periph.io and the SSD1322 display. The returned
// function closes the bus; the display keeps showing the last image.
func openPanel(o panelOpts) (display.Drawer, func() error, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize periph.io: %w", err)
	}

	b, err := spireg.Open(o.spi)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open SPI bus: %w", err)
	}

	dc := gpioreg.ByName(o.dc)
	if dc == nil {
		b.Close()
		return nil, nil, fmt.Errorf("GPIO pin %s not found", o.dc)
	}
	opts := &ssd1322.Opts{W: o.width, H: o.height}
	if o.rst != "" {
		if opts.RST = gpioreg.ByName(o.rst); opts.RST == nil {
			b.Close()
			return nil, nil, fmt.Errorf("GPIO pin %s not found", o.rst)
		}
	}

	dev, err := ssd1322.NewSPI(b, dc, opts)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return dev, b.Close, nil
}
