package raster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	// DefaultLogoSizeRatio is the logo side as a fraction of the QR image side.
	DefaultLogoSizeRatio = 0.2
	// DefaultLogoBorderRatio is the white padding as a fraction of the logo side.
	DefaultLogoBorderRatio = 0.05
)

// Logo is an image drawn over the centre of every raster output.
// It is loaded once and only read afterwards.
type Logo struct {
	Image       image.Image
	SizeRatio   float64
	BorderRatio float64
}

// LogoOption configures a Logo.
type LogoOption func(*Logo)

// WithSizeRatio overrides DefaultLogoSizeRatio. Values outside (0, 1) are ignored.
func WithSizeRatio(r float64) LogoOption {
	return func(l *Logo) {
		if r > 0 && r < 1 {
			l.SizeRatio = r
		}
	}
}

// WithBorderRatio overrides DefaultLogoBorderRatio. Negative values are ignored.
func WithBorderRatio(r float64) LogoOption {
	return func(l *Logo) {
		if r >= 0 {
			l.BorderRatio = r
		}
	}
}

// NewLogo wraps img with default ratios.
func NewLogo(img image.Image, opts ...LogoOption) (*Logo, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrLogo)
	}
	l := &Logo{
		Image:       img,
		SizeRatio:   DefaultLogoSizeRatio,
		BorderRatio: DefaultLogoBorderRatio,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadLogo reads an image file (PNG, JPEG, GIF, BMP or TIFF).
func LoadLogo(path string, opts ...LogoOption) (*Logo, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Join(ErrLogo, err)
	}
	return NewLogo(img, opts...)
}

// DecodeLogo reads a logo from r.
func DecodeLogo(r io.Reader, opts ...LogoOption) (*Logo, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Join(ErrLogo, err)
	}
	return NewLogo(img, opts...)
}
