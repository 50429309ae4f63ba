package progress

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/qrbatch/pkg/logger"
)

// Log reports progress as structured log records: start and finish at info,
// every step at debug.
type Log struct {
	logger  *slog.Logger
	total   atomic.Int64
	done    atomic.Int64
	started atomic.Int64
}

// NewLog creates a log sink. A nil logger falls back to slog.Default.
func NewLog(l *slog.Logger) *Log {
	if l == nil {
		l = slog.Default()
	}
	return &Log{logger: l.With(logger.Component("progress"))}
}

func (l *Log) Start(total int) {
	l.total.Store(int64(total))
	l.done.Store(0)
	l.started.Store(time.Now().UnixNano())
	l.logger.Info("batch started", logger.Count("total", total))
}

func (l *Log) Step(index int) {
	done := l.done.Add(1)
	l.logger.Debug("record processed",
		logger.RecordIndex(index),
		slog.Int64("done", done),
		slog.Int64("total", l.total.Load()),
	)
}

func (l *Log) Finish() {
	elapsed := time.Duration(time.Now().UnixNano() - l.started.Load())
	l.logger.Info("batch finished",
		logger.Count("done", int(l.done.Load())),
		logger.Duration(elapsed),
	)
}
