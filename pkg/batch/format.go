package batch

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// Format is an output file format.
type Format int

const (
	Vector   Format = iota + 1 // SVG
	Document                   // PDF
	Raster                     // PNG
)

// AllFormats lists every format in processing order.
var AllFormats = Formats{Vector, Document, Raster}

func (f Format) String() string {
	switch f {
	case Vector:
		return "svg"
	case Document:
		return "pdf"
	case Raster:
		return "png"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext is the file extension without the dot.
func (f Format) Ext() string { return f.String() }

// Dir is the output directory for the format.
func (f Format) Dir() string { return "qr_" + f.String() + "s" }

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case Vector:
		return "image/svg+xml"
	case Document:
		return "application/pdf"
	case Raster:
		return "image/png"
	}
	return "application/octet-stream"
}

// Path returns the storage path of the file for the record at index.
func (f Format) Path(index int) string {
	return path.Join(f.Dir(), fmt.Sprintf("qr_%d.%s", index, f.Ext()))
}

// ParseFormat accepts an extension (svg, pdf, png) or a kind name
// (vector, document, raster), case-insensitive, with an optional leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "svg", "vector":
		return Vector, nil
	case "pdf", "document":
		return Document, nil
	case "png", "raster":
		return Raster, nil
	}
	return 0, fmt.Errorf("%w: unknown output format %q", ErrConfigValidation, s)
}

// Formats is a set of requested formats.
type Formats []Format

// ParseFormats parses names, which may themselves be comma-separated lists.
// Duplicates are dropped; the result is in processing order.
func ParseFormats(names ...string) (Formats, error) {
	var out Formats
	for _, name := range names {
		for part := range strings.SplitSeq(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if !out.Has(f) {
				out = append(out, f)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no output formats requested", ErrConfigValidation)
	}
	slices.Sort(out)
	return out, nil
}

// Has reports whether f was requested.
func (fs Formats) Has(f Format) bool { return slices.Contains(fs, f) }

func (fs Formats) String() string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
