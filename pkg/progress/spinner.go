package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows an indeterminate spinner with a done/total suffix.
type Spinner struct {
	message string
	spinner *spinner.Spinner
	total   atomic.Int64
	done    atomic.Int64
}

// NewSpinner creates a spinner drawn on w. The spinner only animates when
// w is a terminal.
func NewSpinner(w io.Writer, message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return &Spinner{message: message, spinner: s}
}

func (s *Spinner) Start(total int) {
	s.total.Store(int64(total))
	s.done.Store(0)
	s.spinner.Start()
}

func (s *Spinner) Step(int) {
	done := s.done.Add(1)
	s.spinner.Lock()
	s.spinner.Suffix = fmt.Sprintf(" %s %d/%d", s.message, done, s.total.Load())
	s.spinner.Unlock()
}

func (s *Spinner) Finish() {
	s.spinner.Stop()
}

// Done returns the number of Step calls since Start.
func (s *Spinner) Done() int {
	return int(s.done.Load())
}
