package progress

import (
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
)

const (
	// DefaultPreviewInterval is the delay between preview frames.
	DefaultPreviewInterval = 300 * time.Millisecond

	previewPayloadLen = 100
	cursorHome        = "\033[H"
	clearScreen       = "\033[2J\033[H"
)

// Preview redraws a random QR code on w while the batch runs. It is purely
// cosmetic: the frames are unrelated to the records being processed.
type Preview struct {
	w        io.Writer
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// PreviewOption configures a Preview.
type PreviewOption func(*Preview)

// WithInterval sets the delay between frames.
func WithInterval(d time.Duration) PreviewOption {
	return func(p *Preview) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPreview creates a preview drawn on w.
func NewPreview(w io.Writer, opts ...PreviewOption) *Preview {
	p := &Preview{w: w, interval: DefaultPreviewInterval}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start clears the screen, draws the first frame and starts the animation.
func (p *Preview) Start(int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	_, _ = io.WriteString(p.w, clearScreen)
	p.frame()
	go p.loop(p.stop, p.done)
}

func (p *Preview) Step(int) {}

// Finish stops the animation and clears the screen.
func (p *Preview) Finish() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	_, _ = io.WriteString(p.w, clearScreen)
}

func (p *Preview) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.frame()
		}
	}
}

func (p *Preview) frame() {
	m, err := qrcode.Encode(randomBits(previewPayloadLen), qrcode.Low)
	if err != nil {
		return
	}
	_, _ = io.WriteString(p.w, cursorHome+qrcode.Terminal(m, 1))
}

func randomBits(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for range n {
		sb.WriteByte(byte('0' + rand.IntN(2)))
	}
	return sb.String()
}
