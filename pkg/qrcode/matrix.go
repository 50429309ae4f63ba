package qrcode

import (
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Matrix is an encoded QR symbol without its quiet zone.
// It is immutable once returned by Encode and safe for concurrent reads.
type Matrix struct {
	modules [][]bool
	version int
	level   Level
}

// Encode builds the smallest symbol that holds content at the given level.
//
// Content is encoded as-is; only the emptiness check trims whitespace.
func Encode(content string, level Level) (*Matrix, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	rl, err := level.recovery()
	if err != nil {
		return nil, err
	}

	q, err := skipqrcode.New(content, rl)
	if err != nil {
		// skip2/go-qrcode has no sentinel; it reports "content too long to encode".
		if strings.Contains(err.Error(), "too long") {
			return nil, fmt.Errorf("%w: %d bytes at level %s", ErrCapacityExceeded, len(content), level)
		}
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	q.DisableBorder = true

	return &Matrix{
		modules: q.Bitmap(),
		version: q.VersionNumber,
		level:   level,
	}, nil
}

// Size is the side length in modules.
func (m *Matrix) Size() int { return len(m.modules) }

// Version is the symbol version, 1 to 40.
func (m *Matrix) Version() int { return m.version }

// Level is the error-correction level the symbol was encoded with.
func (m *Matrix) Level() Level { return m.level }

// Black reports whether the module at column x, row y is dark.
// Coordinates outside the symbol are light.
func (m *Matrix) Black(x, y int) bool {
	if y < 0 || y >= len(m.modules) || x < 0 || x >= len(m.modules[y]) {
		return false
	}
	return m.modules[y][x]
}

// Bitmap returns a copy of the grid surrounded by border light modules.
func (m *Matrix) Bitmap(border int) [][]bool {
	if border < 0 {
		border = 0
	}
	n := m.Size() + 2*border
	out := make([][]bool, n)
	for y := range out {
		out[y] = make([]bool, n)
		if y < border || y >= border+m.Size() {
			continue
		}
		copy(out[y][border:], m.modules[y-border])
	}
	return out
}

// Equal reports whether both matrices have the same modules.
func (m *Matrix) Equal(other [][]bool) bool {
	if len(other) != m.Size() {
		return false
	}
	for y, row := range m.modules {
		if len(other[y]) != len(row) {
			return false
		}
		for x, v := range row {
			if other[y][x] != v {
				return false
			}
		}
	}
	return true
}
