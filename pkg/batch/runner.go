package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/qrbatch/pkg/document"
	"github.com/dmitrymomot/qrbatch/pkg/file"
	"github.com/dmitrymomot/qrbatch/pkg/logger"
	"github.com/dmitrymomot/qrbatch/pkg/progress"
	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
	"github.com/dmitrymomot/qrbatch/pkg/raster"
	"github.com/dmitrymomot/qrbatch/pkg/tabular"
	"github.com/dmitrymomot/qrbatch/pkg/vector"
)

// Runner generates output files for a batch of records.
type Runner struct {
	cfg     Config
	storage file.Storage
	sink    progress.Sink
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress sets the progress sink. Defaults to progress.Nop.
func WithProgress(sink progress.Sink) Option {
	return func(r *Runner) {
		if sink != nil {
			r.sink = sink
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides the time source used for Stats.Elapsed.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner validates cfg and returns a Runner writing to storage.
func NewRunner(cfg Config, storage file.Storage, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is required", ErrConfigValidation)
	}
	r := &Runner{
		cfg:     cfg,
		storage: storage,
		sink:    progress.Nop{},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("batch"))
	return r, nil
}

// Run processes records and returns the run statistics.
//
// Stats are returned even when err is non-nil. err is set when output
// directories cannot be prepared, when ctx is canceled, or, with FailFast,
// for the first failing record.
func (r *Runner) Run(ctx context.Context, records []tabular.Record) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return &Stats{Records: len(records)}, err
	}
	if _, ok := logger.RunIDFromContext(ctx); !ok {
		ctx = logger.WithRunID(ctx, uuid.NewString())
	}

	for _, f := range r.cfg.Formats {
		if err := r.storage.MkdirAll(ctx, f.Dir()); err != nil {
			return &Stats{Records: len(records)}, fmt.Errorf("%w: %s: %w", ErrWrite, f.Dir(), err)
		}
	}

	r.logger.InfoContext(ctx, "generating QR codes",
		logger.Count("records", len(records)),
		slog.String("formats", r.cfg.Formats.String()),
		slog.String("level", r.cfg.Level.String()),
		slog.Int("workers", max(1, r.cfg.Workers)),
	)

	t := &tally{}
	start := r.now()
	r.sink.Start(len(records))

	var err error
	if r.cfg.Workers > 1 {
		err = r.runParallel(ctx, records, t)
	} else {
		err = r.runSequential(ctx, records, t)
	}

	r.sink.Finish()
	stats := t.snapshot(len(records), r.now().Sub(start))

	r.logger.InfoContext(ctx, "generation finished",
		logger.Count("generated", stats.Generated),
		logger.Count("skipped", stats.Skipped),
		logger.Count("failed", stats.Failed),
		logger.Duration(stats.Elapsed),
	)
	return stats, err
}

func (r *Runner) runSequential(ctx context.Context, records []tabular.Record, t *tally) error {
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.handle(ctx, rec, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runParallel(ctx context.Context, records []tabular.Record, t *tally) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, rec := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.handle(gctx, rec, t)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// handle processes one record. It returns an error only when the run must stop.
func (r *Runner) handle(ctx context.Context, rec tabular.Record, t *tally) error {
	defer r.sink.Step(rec.Index)

	if rec.Empty() {
		t.skipped()
		r.logger.DebugContext(ctx, "skipping empty record", logger.RecordIndex(rec.Index))
		return nil
	}

	err := r.process(ctx, rec)
	if err == nil {
		t.generated()
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}

	var recErr *RecordError
	if !errors.As(err, &recErr) {
		recErr = &RecordError{Index: rec.Index, Payload: rec.Payload, Err: err}
	}
	t.failed(recErr)
	r.logger.ErrorContext(ctx, "record failed",
		logger.RecordIndex(rec.Index),
		logger.Error(recErr.Err),
	)
	if r.cfg.FailFast {
		return recErr
	}
	return nil
}

// process encodes rec and writes every requested format.
func (r *Runner) process(ctx context.Context, rec tabular.Record) error {
	fail := func(f Format, err error) error {
		return &RecordError{Index: rec.Index, Payload: rec.Payload, Format: f, Err: err}
	}

	m, err := qrcode.Encode(rec.Payload, r.cfg.Level)
	if err != nil {
		if errors.Is(err, qrcode.ErrCapacityExceeded) {
			return fail(0, errors.Join(ErrEncodingCapacity, err))
		}
		return fail(0, errors.Join(ErrConversion, err))
	}

	markup := vector.Render(m, r.cfg.ModuleSize, r.cfg.Border)

	if r.cfg.Formats.Has(Document) {
		pdf, err := document.Convert(markup, document.WithTitle(fmt.Sprintf("QR code %d", rec.Index)))
		if err != nil {
			return fail(Document, errors.Join(ErrConversion, err))
		}
		if err := r.write(ctx, Document, rec.Index, pdf); err != nil {
			return fail(Document, err)
		}
	}

	if r.cfg.Formats.Has(Vector) {
		if err := r.write(ctx, Vector, rec.Index, markup); err != nil {
			return fail(Vector, err)
		}
	}

	if r.cfg.Formats.Has(Raster) {
		img, err := raster.Compose(m, r.cfg.rasterOptions())
		if err != nil {
			return fail(Raster, errors.Join(ErrConversion, err))
		}
		var buf bytes.Buffer
		if err := raster.Encode(&buf, img); err != nil {
			return fail(Raster, errors.Join(ErrConversion, err))
		}
		if err := r.write(ctx, Raster, rec.Index, buf.Bytes()); err != nil {
			return fail(Raster, err)
		}
	}

	r.logger.DebugContext(ctx, "record generated",
		logger.RecordIndex(rec.Index),
		slog.Int("version", m.Version()),
	)
	return nil
}

func (r *Runner) write(ctx context.Context, f Format, index int, data []byte) error {
	p := f.Path(index)
	if _, err := r.storage.Write(ctx, p, bytes.NewReader(data), f.ContentType()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s: %w", ErrWrite, p, err)
	}
	r.logger.DebugContext(ctx, "file written",
		logger.RecordIndex(index),
		logger.OutputFormat(f.String()),
		logger.Path(r.storage.URL(p)),
	)
	return nil
}
