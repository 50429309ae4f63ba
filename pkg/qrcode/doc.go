// Package qrcode encodes text into QR symbol matrices.
//
// It wraps github.com/skip2/go-qrcode: Encode picks the smallest symbol
// version that fits the content at the requested Level and returns an
// immutable Matrix without quiet zone. Renderers add their own border via
// Matrix.Bitmap.
//
//	m, err := qrcode.Encode("https://example.com", qrcode.LevelFor(hasLogo))
//	if errors.Is(err, qrcode.ErrCapacityExceeded) {
//		// content too long for version 40 at this level
//	}
//
// LevelFor encodes the batch policy: a logo hides the symbol centre, so the
// High level (about 30% recovery) is used whenever one is configured.
//
// Sentinel errors: ErrEmptyContent, ErrCapacityExceeded, ErrInvalidLevel and
// ErrorFailedToGenerateQRCode. Compare them with errors.Is.
package qrcode
