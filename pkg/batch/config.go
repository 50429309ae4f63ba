package batch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
	"github.com/dmitrymomot/qrbatch/pkg/raster"
	"github.com/dmitrymomot/qrbatch/pkg/validator"
)

const (
	// DefaultModuleSize is the SVG module size in pixels.
	DefaultModuleSize = 10
	// DefaultBorder is the quiet zone in modules.
	DefaultBorder = 2
	// DefaultPixelSize is the size flag value that maps to DefaultModuleSize.
	DefaultPixelSize = 500
	// DefaultMargin is the margin flag value in pixels.
	DefaultMargin = 20
)

// Config is the immutable configuration of a run.
type Config struct {
	Formats Formats
	Level   qrcode.Level
	// ModuleSize is the SVG module size in pixels; Border the quiet zone in modules.
	ModuleSize int
	Border     int
	// Raster configures PNG output. Its ModuleSize and Border are taken
	// from the fields above. A logo requires Level to be qrcode.High.
	Raster   raster.Options
	Workers  int
	FailFast bool
}

// DefaultConfig returns all formats at the defaults without a logo.
func DefaultConfig() Config {
	return Config{
		Formats:    AllFormats,
		Level:      qrcode.LevelFor(false),
		ModuleSize: DefaultModuleSize,
		Border:     DefaultBorder,
		Raster:     raster.DefaultOptions(),
		Workers:    1,
	}
}

// ModuleSizeFor maps the pixel size flag to a module size, 500 -> 10.
func ModuleSizeFor(size int) int {
	return max(1, size/(DefaultPixelSize/DefaultModuleSize))
}

// BorderFor maps a margin in pixels to whole quiet-zone modules.
func BorderFor(margin, moduleSize int) int {
	if moduleSize <= 0 || margin <= 0 {
		return 0
	}
	return margin / moduleSize
}

// Validate checks c and returns an error wrapping ErrConfigValidation.
func (c Config) Validate() error {
	rules := []validator.Rule{
		validator.RequiredSlice("formats", c.Formats),
		validator.Check("formats", !slices.ContainsFunc(c.Formats, func(f Format) bool {
			return f < Vector || f > Raster
		}), fmt.Sprintf("unknown format in %v", []Format(c.Formats))),
		validator.Check("level", c.Level >= qrcode.Low && c.Level <= qrcode.High,
			fmt.Sprintf("unknown error correction level %d", int(c.Level))),
		validator.Positive("module_size", c.ModuleSize),
		validator.Min("border", c.Border, 0),
		validator.Min("workers", c.Workers, 0),
	}
	if c.Raster.Logo != nil {
		rules = append(rules, validator.Check("level", c.Level == qrcode.High,
			fmt.Sprintf("a logo requires error correction level %s, got %s", qrcode.High, c.Level)))
	}
	if c.Formats.Has(Raster) {
		rules = append(rules,
			validator.Positive("canvas", c.Raster.CanvasSize),
			validator.Fraction("coverage", c.Raster.Coverage),
		)
	}
	if err := validator.Apply(rules...); err != nil {
		return errors.Join(ErrConfigValidation, err)
	}
	return nil
}

func (c Config) rasterOptions() raster.Options {
	o := c.Raster
	o.ModuleSize = c.ModuleSize
	o.Border = c.Border
	return o
}
