package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
)

const (
	// DefaultCanvasSize is the side of the output PNG in pixels.
	DefaultCanvasSize = 2048
	// DefaultCoverage is the share of the canvas side taken by the QR image.
	DefaultCoverage = 0.9
	// DefaultModuleSize is the pixel size of one module before resampling.
	DefaultModuleSize = 10
)

// Options controls Compose.
type Options struct {
	CanvasSize int
	Coverage   float64
	// ModuleSize and Border describe the natural bitmap that is resampled
	// onto the canvas; Border is the quiet zone in modules.
	ModuleSize int
	Border     int
	Logo       *Logo
}

// DefaultOptions returns a 2048 px canvas with 90% coverage and no logo.
func DefaultOptions() Options {
	return Options{
		CanvasSize: DefaultCanvasSize,
		Coverage:   DefaultCoverage,
		ModuleSize: DefaultModuleSize,
		Border:     2,
	}
}

func (o Options) validate() error {
	if o.CanvasSize <= 0 {
		return fmt.Errorf("%w: canvas size %d", ErrInvalidOptions, o.CanvasSize)
	}
	if o.Coverage <= 0 || o.Coverage > 1 {
		return fmt.Errorf("%w: coverage %g", ErrInvalidOptions, o.Coverage)
	}
	if o.Border < 0 {
		return fmt.Errorf("%w: border %d", ErrInvalidOptions, o.Border)
	}
	return nil
}

// Layout returns the side of the QR image on a canvas and its offset from
// the top-left corner on both axes.
func Layout(canvasSize int, coverage float64) (size, offset int) {
	size = int(float64(canvasSize) * coverage)
	return size, Center(canvasSize, size)
}

// Center returns the offset that centres an item of side size on a canvas.
func Center(canvasSize, size int) int {
	return (canvasSize - size) / 2
}

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Compose draws m on a white square canvas: the natural bitmap is Lanczos
// resampled to CanvasSize*Coverage pixels and centred, then the logo, if
// any, is centred on top inside a white frame. The result is fully opaque
// and depends only on m and opts.
func Compose(m *qrcode.Matrix, opts Options) (*image.NRGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.ModuleSize < 1 {
		opts.ModuleSize = 1
	}

	canvas := imaging.New(opts.CanvasSize, opts.CanvasSize, white)

	qrSize, offset := Layout(opts.CanvasSize, opts.Coverage)
	if qrSize < 1 {
		return nil, fmt.Errorf("%w: QR image would be empty", ErrInvalidOptions)
	}
	qr := imaging.Resize(natural(m, opts.ModuleSize, opts.Border), qrSize, qrSize, imaging.Lanczos)
	canvas = imaging.Paste(canvas, qr, image.Pt(offset, offset))

	if opts.Logo != nil {
		framed, err := frameLogo(opts.Logo, qrSize)
		if err != nil {
			return nil, err
		}
		pos := Center(opts.CanvasSize, framed.Bounds().Dx())
		canvas = imaging.Paste(canvas, framed, image.Pt(pos, pos))
	}

	return flatten(canvas), nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Join(ErrEncode, err)
	}
	return nil
}

// natural rasterises the matrix at moduleSize pixels per module with a
// border-module quiet zone.
func natural(m *qrcode.Matrix, moduleSize, border int) *image.NRGBA {
	bits := m.Bitmap(border)
	side := len(bits) * moduleSize
	img := imaging.New(side, side, white)
	black := color.NRGBA{A: 255}
	for y, row := range bits {
		for x, dark := range row {
			if !dark {
				continue
			}
			for py := y * moduleSize; py < (y+1)*moduleSize; py++ {
				for px := x * moduleSize; px < (x+1)*moduleSize; px++ {
					img.SetNRGBA(px, py, black)
				}
			}
		}
	}
	return img
}

// frameLogo resizes the logo relative to the QR side and alpha-composites it
// onto a white square that adds BorderRatio padding on every side.
func frameLogo(l *Logo, qrSize int) (*image.NRGBA, error) {
	logoSize := int(float64(qrSize) * l.SizeRatio)
	if logoSize < 1 {
		return nil, fmt.Errorf("%w: logo would be smaller than one pixel", ErrLogo)
	}
	border := int(float64(logoSize) * l.BorderRatio)

	logo := imaging.Resize(l.Image, logoSize, logoSize, imaging.Lanczos)
	framed := imaging.New(logoSize+2*border, logoSize+2*border, white)
	return imaging.Overlay(framed, logo, image.Pt(border, border), 1.0), nil
}

// flatten composites img over white so no pixel keeps partial alpha.
func flatten(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	return imaging.Overlay(imaging.New(b.Dx(), b.Dy(), white), img, image.Pt(0, 0), 1.0)
}
