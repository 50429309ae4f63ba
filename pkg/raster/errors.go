package raster

import "errors"

var (
	// ErrInvalidOptions is returned when canvas size or coverage are out of range.
	ErrInvalidOptions = errors.New("invalid raster options")
	// ErrLogo is returned when a logo image cannot be loaded or is unusable.
	ErrLogo = errors.New("invalid logo image")
	// ErrEncode is returned when the composed image cannot be encoded.
	ErrEncode = errors.New("failed to encode raster image")
)
