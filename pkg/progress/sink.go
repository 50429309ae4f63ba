package progress

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Sink receives batch progress events. Step must be safe for concurrent use.
type Sink interface {
	Start(total int)
	Step(index int)
	Finish()
}

// Names of the built-in sinks accepted by New.
const (
	KindBar     = "bar"
	KindSpinner = "spinner"
	KindLog     = "log"
	KindNone    = "none"
)

// New returns the sink registered under kind. Terminal sinks draw on w.
func New(kind string, w io.Writer, logger *slog.Logger) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindBar:
		return NewBar(w, "Generating"), nil
	case KindSpinner:
		return NewSpinner(w, "Generating"), nil
	case KindLog:
		return NewLog(logger), nil
	case KindNone, "":
		return Nop{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSink, kind)
}

// Nop is a Sink that does nothing.
type Nop struct{}

func (Nop) Start(int) {}
func (Nop) Step(int)  {}
func (Nop) Finish()   {}
