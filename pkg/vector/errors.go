package vector

import "errors"

var (
	// ErrMalformedMarkup is returned when markup is not an SVG document this
	// package can interpret.
	ErrMalformedMarkup = errors.New("malformed vector markup")
	// ErrNoModules is returned when the markup contains no dark modules.
	ErrNoModules = errors.New("vector markup contains no modules")
)
