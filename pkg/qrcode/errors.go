package qrcode

import "errors"

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrCapacityExceeded is returned when content does not fit the largest
	// symbol version at the requested error-correction level.
	ErrCapacityExceeded = errors.New("content exceeds QR code capacity")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
	// ErrInvalidLevel is returned for an unknown error-correction level.
	ErrInvalidLevel = errors.New("invalid error correction level")
)
