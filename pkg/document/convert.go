package document

import (
	"errors"
	"fmt"

	"github.com/signintech/gopdf"

	"github.com/dmitrymomot/qrbatch/pkg/vector"
)

// pxToPt converts CSS pixels (96 per inch) to PDF points (72 per inch).
const pxToPt = 72.0 / 96.0

type options struct {
	title string
	scale float64
}

// Option configures Convert.
type Option func(*options)

// WithTitle sets the PDF document title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithScale sets points per SVG user unit. Non-positive values are ignored.
func WithScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// Convert draws SVG markup produced by vector.Render onto a single PDF page
// sized to the drawing. Runs of adjacent dark modules on a row are merged
// into one filled rectangle.
func Convert(markup []byte, opts ...Option) ([]byte, error) {
	o := &options{scale: pxToPt}
	for _, opt := range opts {
		opt(o)
	}

	doc, err := vector.Parse(markup)
	if err != nil {
		return nil, errors.Join(ErrConversion, err)
	}

	w, h := doc.Width*o.scale, doc.Height*o.scale

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: w, H: h}, Unit: gopdf.UnitPT})
	pdf.SetInfo(gopdf.PdfInfo{Title: o.title, Creator: "qrbatch", Producer: "qrbatch"})
	pdf.AddPage()

	pdf.SetFillColor(255, 255, 255)
	pdf.RectFromUpperLeftWithStyle(0, 0, w, h, "F")

	pdf.SetFillColor(0, 0, 0)
	for _, r := range mergeRuns(doc.Rects) {
		pdf.RectFromUpperLeftWithStyle(r.X*o.scale, r.Y*o.scale, r.Width*o.scale, r.Height*o.scale, "F")
	}

	out, err := pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, errors.Join(ErrConversion, fmt.Errorf("write pdf: %w", err))
	}
	return out, nil
}

// mergeRuns keeps dark rectangles only and joins horizontally touching ones
// that share a row.
func mergeRuns(rects []vector.Rect) []vector.Rect {
	out := make([]vector.Rect, 0, len(rects))
	for _, r := range rects {
		if !r.Dark() {
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Y == r.Y && last.Height == r.Height && last.X+last.Width == r.X {
				last.Width += r.Width
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
