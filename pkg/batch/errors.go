package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks an input file that is missing, unreadable or malformed.
	ErrInput = errors.New("input error")
	// ErrEncodingCapacity marks a payload that does not fit any QR version.
	ErrEncodingCapacity = errors.New("payload exceeds QR code capacity")
	// ErrConversion marks a failure rendering a PDF or PNG.
	ErrConversion = errors.New("conversion failed")
	// ErrConfigValidation marks an invalid run configuration.
	ErrConfigValidation = errors.New("invalid configuration")
	// ErrWrite marks a failure storing an output file.
	ErrWrite = errors.New("failed to write output")
)

// RecordError is a failure tied to one input record.
type RecordError struct {
	Index   int
	Payload string
	Format  Format // zero when the failure happened before rendering
	Err     error
}

func (e *RecordError) Error() string {
	if e.Format != 0 {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Format, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
