package progress

import "errors"

var ErrUnknownSink = errors.New("unknown progress sink")
