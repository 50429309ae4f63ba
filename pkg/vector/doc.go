// Package vector renders QR matrices as SVG and reads such SVG back.
//
// Render emits one square <rect> per dark module on a white background
// rect; the document size is (modules + 2*border) * moduleSize in user
// units. Parse turns the markup into a Document of rectangles (used by the
// PDF converter) and Decode recovers the module grid, which makes the
// rendering verifiable:
//
//	svg := vector.Render(m, 10, 2)
//	grid, err := vector.Decode(svg)
//	// m.Equal(grid) == true
package vector
