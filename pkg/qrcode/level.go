package qrcode

import (
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Level is the error-correction level of a symbol.
type Level int

const (
	// Low recovers about 7% of damaged codewords.
	Low Level = iota
	// Medium recovers about 15%.
	Medium
	// Quartile recovers about 25%.
	Quartile
	// High recovers about 30%; required when a logo covers the symbol centre.
	High
)

// LevelFor returns the batch-wide level: High when a logo overlay is used, Low otherwise.
func LevelFor(withLogo bool) Level {
	if withLogo {
		return High
	}
	return Low
}

// ParseLevel accepts L, M, Q, H or the long names (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "low":
		return Low, nil
	case "m", "medium":
		return Medium, nil
	case "q", "quartile":
		return Quartile, nil
	case "h", "high":
		return High, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// recovery maps Level onto skip2 naming, where "High" is Q and "Highest" is H.
func (l Level) recovery() (skipqrcode.RecoveryLevel, error) {
	switch l {
	case Low:
		return skipqrcode.Low, nil
	case Medium:
		return skipqrcode.Medium, nil
	case Quartile:
		return skipqrcode.High, nil
	case High:
		return skipqrcode.Highest, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
}
