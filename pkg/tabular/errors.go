package tabular

import "errors"

var (
	// ErrInputNotFound is returned when the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrInputUnreadable is returned when the input cannot be opened or read.
	ErrInputUnreadable = errors.New("input file cannot be read")
	// ErrInputMalformed is returned when the input is not valid delimited text.
	ErrInputMalformed = errors.New("input file is not valid CSV")
	// ErrInvalidColumn is returned for a negative column index.
	ErrInvalidColumn = errors.New("invalid payload column")
)
