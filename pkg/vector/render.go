package vector

import (
	"bytes"
	"fmt"

	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
)

const (
	// DarkFill is the fill used for dark modules.
	DarkFill = "#000000"
	// LightFill is the background fill.
	LightFill = "#ffffff"
)

// Render draws m as an SVG document. Each dark module becomes one
// moduleSize square <rect>, offset by border light modules on every side.
// The output depends only on its arguments.
func Render(m *qrcode.Matrix, moduleSize, border int) []byte {
	if moduleSize < 1 {
		moduleSize = 1
	}
	if border < 0 {
		border = 0
	}
	side := (m.Size() + 2*border) * moduleSize

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		side, side, side, side)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", side, side, LightFill)

	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if !m.Black(x, y) {
				continue
			}
			fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				(x+border)*moduleSize, (y+border)*moduleSize, moduleSize, moduleSize, DarkFill)
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
