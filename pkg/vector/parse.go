package vector

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Document is the parsed form of markup produced by Render.
type Document struct {
	Width  float64
	Height float64
	Rects  []Rect
}

// Rect is one filled rectangle in document coordinates.
type Rect struct {
	X, Y, Width, Height float64
	Fill                string
}

// Dark reports whether the rectangle is a dark module.
func (r Rect) Dark() bool {
	f := strings.ToLower(strings.TrimSpace(r.Fill))
	return f == DarkFill || f == "#000" || f == "black"
}

type svgRoot struct {
	XMLName xml.Name  `xml:"svg"`
	Width   string    `xml:"width,attr"`
	Height  string    `xml:"height,attr"`
	Rects   []svgRect `xml:"rect"`
}

type svgRect struct {
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

// Parse reads an SVG document made of top-level <rect> elements.
func Parse(markup []byte) (*Document, error) {
	var root svgRoot
	if err := xml.NewDecoder(bytes.NewReader(markup)).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}

	w, err := length(root.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: width: %v", ErrMalformedMarkup, err)
	}
	h, err := length(root.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: height: %v", ErrMalformedMarkup, err)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: non-positive size %gx%g", ErrMalformedMarkup, w, h)
	}

	doc := &Document{Width: w, Height: h, Rects: make([]Rect, 0, len(root.Rects))}
	for i, r := range root.Rects {
		var rect Rect
		for _, f := range []struct {
			dst *float64
			src string
		}{{&rect.X, r.X}, {&rect.Y, r.Y}, {&rect.Width, r.Width}, {&rect.Height, r.Height}} {
			v, err := length(f.src)
			if err != nil {
				return nil, fmt.Errorf("%w: rect %d: %v", ErrMalformedMarkup, i, err)
			}
			*f.dst = v
		}
		rect.Fill = r.Fill
		doc.Rects = append(doc.Rects, rect)
	}
	return doc, nil
}

// Decode recovers the module grid from markup produced by Render.
//
// The module size is taken from the dark rectangles and the quiet zone from
// the top-left finder pattern, whose corner module is always dark.
func Decode(markup []byte) ([][]bool, error) {
	doc, err := Parse(markup)
	if err != nil {
		return nil, err
	}

	var (
		ms         float64
		minX, minY = math.MaxFloat64, math.MaxFloat64
	)
	for _, r := range doc.Rects {
		if !r.Dark() {
			continue
		}
		if ms == 0 {
			ms = r.Width
		}
		if r.Width != ms || r.Height != ms {
			return nil, fmt.Errorf("%w: mixed module sizes", ErrMalformedMarkup)
		}
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
	}
	if ms == 0 {
		return nil, ErrNoModules
	}

	border, ok := whole(minX / ms)
	if !ok || minY != minX {
		return nil, fmt.Errorf("%w: quiet zone is not a whole number of modules", ErrMalformedMarkup)
	}
	total, ok := whole(doc.Width / ms)
	n := total - 2*border
	if !ok || n <= 0 {
		return nil, fmt.Errorf("%w: width is not a whole number of modules", ErrMalformedMarkup)
	}

	grid := make([][]bool, n)
	for y := range grid {
		grid[y] = make([]bool, n)
	}
	for _, r := range doc.Rects {
		if !r.Dark() {
			continue
		}
		x, okx := whole(r.X / ms)
		y, oky := whole(r.Y / ms)
		x, y = x-border, y-border
		if !okx || !oky || x < 0 || y < 0 || x >= n || y >= n {
			return nil, fmt.Errorf("%w: module at (%g,%g) outside grid", ErrMalformedMarkup, r.X, r.Y)
		}
		grid[y][x] = true
	}
	return grid, nil
}

func length(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.ParseFloat(s, 64)
}

func whole(v float64) (int, bool) {
	r := math.Round(v)
	return int(r), math.Abs(v-r) < 1e-9
}
