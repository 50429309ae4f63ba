package file

import (
	"context"
	"io"
	"path"
	"strings"
)

// File describes a stored output file.
type File struct {
	Filename     string
	Size         int64
	ContentType  string
	AbsolutePath string // empty for object storage
	RelativePath string
}

// Storage is where generated files go.
type Storage interface {
	// MkdirAll makes sure dir can receive files. It is idempotent.
	MkdirAll(ctx context.Context, dir string) error
	// Write stores the content of r at path, replacing any existing file.
	Write(ctx context.Context, path string, r io.Reader, contentType string) (*File, error)
	// Exists checks if a file or directory exists.
	Exists(ctx context.Context, path string) bool
	// URL returns a location for a stored file suitable for logs and reports.
	URL(path string) string
}

var contentTypes = map[string]string{
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".json": "application/json",
	".csv":  "text/csv",
}

// ContentType returns the MIME type for the extension of name,
// or application/octet-stream when unknown.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// cleanKey normalises a slash-separated storage key. Any ".." segment is
// rejected before cleaning so traversal is never clamped into a valid key.
func cleanKey(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." {
			return "", ErrInvalidPath
		}
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "", ErrInvalidPath
	}
	return p, nil
}
