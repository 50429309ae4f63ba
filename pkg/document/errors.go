package document

import "errors"

// ErrConversion is returned when vector markup cannot be turned into a PDF.
var ErrConversion = errors.New("failed to convert vector markup to PDF")
