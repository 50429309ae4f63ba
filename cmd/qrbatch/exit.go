package main

import (
	"context"
	"errors"

	"github.com/dmitrymomot/qrbatch/pkg/batch"
)

const (
	exitOK = iota
	exitUnexpected
	exitConfig
	exitInput
	exitCapacity
	exitConversion
)

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, batch.ErrConfigValidation):
		return exitConfig
	case errors.Is(err, batch.ErrInput):
		return exitInput
	case errors.Is(err, batch.ErrEncodingCapacity):
		return exitCapacity
	case errors.Is(err, batch.ErrConversion), errors.Is(err, batch.ErrWrite):
		return exitConversion
	case errors.Is(err, context.Canceled):
		return 130
	}
	return exitUnexpected
}
