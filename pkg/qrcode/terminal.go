package qrcode

import "strings"

// Terminal renders m for a character terminal, two cells per module so the
// symbol keeps its square aspect. Dark modules are drawn as full blocks.
func Terminal(m *Matrix, border int) string {
	bits := m.Bitmap(border)
	var sb strings.Builder
	sb.Grow(len(bits) * (len(bits)*2*len("█") + 1))
	for _, row := range bits {
		for _, dark := range row {
			if dark {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
