package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/flavioheleno/png2hex"
	"github.com/flavioheleno/png2hex/internal/fsutil"
)

// File represents a JSON configuration file. Every field is optional;
// the Get* methods fall back to the defaults for missing ones.
type File struct {
	// Output
	Output    *string `json:"output,omitempty"` // symbol and file name
	OutputDir *string `json:"outputDir,omitempty"`
	OutputExt *string `json:"outputExt,omitempty"`
	Minify    *bool   `json:"minify,omitempty"`

	// Conversion
	BWThreshold *float64 `json:"bwThreshold,omitempty"`
	BatchWidth  *int     `json:"batchWidth,omitempty"`
	BatchHeight *int     `json:"batchHeight,omitempty"`
	Align       *bool    `json:"align,omitempty"`

	// Preview
	Preview    *bool   `json:"preview,omitempty"`
	PreviewDir *string `json:"previewDir,omitempty"`
	PreviewExt *string `json:"previewExt,omitempty"`
}

// Defaults
const (
	DefaultOutput     = "image"
	DefaultOutputDir  = "./output"
	DefaultOutputExt  = "txt"
	DefaultPreviewDir = "./preview"
	DefaultPreviewExt = "png"
)

// Load loads a File from a JSON file read through fsys.
// The file must have a .json extension and be under 1MB.
func Load(fsys fsutil.FileSystem, path string) (*File, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("config file %q is a directory", cleanPath)
	}

	r, err := fsys.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("config file too large: more than %d bytes", maxFileSize)
	}

	cfg := &File{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *File) Validate() error {
	if c.Output != nil {
		if _, err := png2hex.ValidName(*c.Output); err != nil {
			return err
		}
	}
	if err := c.Geometry().Validate(); err != nil {
		return err
	}
	if c.OutputExt != nil && *c.OutputExt == "" {
		return errors.New("outputExt must not be empty")
	}
	if c.PreviewExt != nil && *c.PreviewExt == "" {
		return errors.New("previewExt must not be empty")
	}
	return nil
}

// Geometry returns the configured batch size.
func (c *File) Geometry() png2hex.Geometry {
	g := png2hex.DefaultGeometry
	if c.BatchWidth != nil {
		g.Width = *c.BatchWidth
	}
	if c.BatchHeight != nil {
		g.Height = *c.BatchHeight
	}
	return g
}

// Opts returns the conversion options.
func (c *File) Opts() png2hex.Opts {
	opts := png2hex.DefaultOpts()
	opts.Geometry = c.Geometry()
	if c.BWThreshold != nil {
		opts.Threshold = *c.BWThreshold
	}
	return opts
}

// GetOutput returns the output name or the default.
func (c *File) GetOutput() string {
	return getString(c.Output, DefaultOutput)
}

// GetOutputDir returns the output directory or the default.
func (c *File) GetOutputDir() string {
	return getString(c.OutputDir, DefaultOutputDir)
}

// GetOutputExt returns the output file extension or the default.
func (c *File) GetOutputExt() string {
	return getString(c.OutputExt, DefaultOutputExt)
}

// GetPreviewDir returns the preview directory or the default.
func (c *File) GetPreviewDir() string {
	return getString(c.PreviewDir, DefaultPreviewDir)
}

// GetPreviewExt returns the preview file extension or the default.
func (c *File) GetPreviewExt() string {
	return getString(c.PreviewExt, DefaultPreviewExt)
}

// GetMinify returns the minify flag (default false).
func (c *File) GetMinify() bool {
	return c.Minify != nil && *c.Minify
}

// GetPreview returns the preview flag (default false).
func (c *File) GetPreview() bool {
	return c.Preview != nil && *c.Preview
}

// GetAlign returns the align flag (default false).
func (c *File) GetAlign() bool {
	return c.Align != nil && *c.Align
}

func getString(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
