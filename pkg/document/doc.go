// Package document converts QR vector markup into single-page PDF files
// using github.com/signintech/gopdf.
//
// Convert parses the SVG produced by package vector and redraws it as filled
// rectangles on a page of the same size (96 dpi user units converted to
// points). It performs no semantic change to the symbol; malformed markup
// fails with ErrConversion wrapping vector.ErrMalformedMarkup.
package document
