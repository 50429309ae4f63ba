package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dmitrymomot/qrbatch/pkg/batch"
	"github.com/dmitrymomot/qrbatch/pkg/config"
	"github.com/dmitrymomot/qrbatch/pkg/file"
	"github.com/dmitrymomot/qrbatch/pkg/logger"
	"github.com/dmitrymomot/qrbatch/pkg/progress"
	"github.com/dmitrymomot/qrbatch/pkg/raster"
	"github.com/dmitrymomot/qrbatch/pkg/tabular"
)

const writeTimeout = 30 * time.Second

// app carries the process surroundings so tests can replace them.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	environ map[string]string // nil reads the process environment
}

func newRootCmd(a *app) *cobra.Command {
	var (
		cfgFile string
		flags   = defaultSettings()
	)

	cmd := &cobra.Command{
		Use:   "qrbatch",
		Short: "Generate QR codes in bulk from a CSV file",
		Long: `qrbatch reads payloads from the first column of a CSV file and writes one
QR code per row as SVG, PDF and PNG into qr_svgs/, qr_pdfs/ and qr_pngs/.

Settings are read from defaults, an optional YAML file (--config), QRBATCH_*
environment variables and flags, later sources overriding earlier ones.
Set QRBATCH_S3_BUCKET to upload the files to S3 instead of the local disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadSettings(cfgFile, cmd.Flags(), flags)
			if err != nil {
				return err
			}
			return a.generate(cmd.Context(), s)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(batch.ErrConfigValidation, err)
	})

	f := cmd.Flags()
	f.StringVarP(&cfgFile, "config", "c", "", "YAML settings file")
	f.StringVarP(&flags.Input, "input", "i", flags.Input, "input CSV file")
	f.IntVar(&flags.Column, "column", flags.Column, "0-based payload column")
	f.StringVar(&flags.Logo, "logo", flags.Logo, "logo image composited on PNG output; raises error correction to H")
	f.StringSliceVarP(&flags.Output, "output", "o", flags.Output, "output formats: svg, pdf, png")
	f.IntVarP(&flags.Size, "size", "s", flags.Size, "QR code size in pixels; sets the SVG module size to size/50")
	f.IntVarP(&flags.Margin, "margin", "m", flags.Margin, "quiet zone in pixels")
	f.BoolVar(&flags.Animate, "animate", flags.Animate, "show an animated QR preview while generating")
	f.StringVar(&flags.Out, "out", flags.Out, "output root directory")
	f.IntVar(&flags.Workers, "workers", flags.Workers, "records processed in parallel")
	f.BoolVar(&flags.FailFast, "fail-fast", flags.FailFast, "stop at the first failing record")
	f.StringVar(&flags.Progress, "progress", flags.Progress, "progress display: bar, spinner, log or none")
	f.IntVar(&flags.Canvas, "canvas", flags.Canvas, "PNG canvas side in pixels")
	f.Float64Var(&flags.Coverage, "coverage", flags.Coverage, "share of the PNG canvas covered by the code")
	f.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "log format: text or json")

	return cmd
}

// loadSettings layers defaults, the YAML file, the environment and the
// flags that were set explicitly.
func (a *app) loadSettings(cfgFile string, fs *pflag.FlagSet, flags Settings) (Settings, error) {
	s := defaultSettings()
	if cfgFile != "" {
		if err := config.LoadFile(cfgFile, &s); err != nil {
			return s, errors.Join(batch.ErrConfigValidation, err)
		}
	}

	opts := []config.Option{config.WithPrefix(envPrefix)}
	if a.environ != nil {
		opts = append(opts, config.WithEnvironment(a.environ))
	}
	if err := config.Load(&s, opts...); err != nil {
		return s, errors.Join(batch.ErrConfigValidation, err)
	}

	overrides := map[string]func(){
		"input":      func() { s.Input = flags.Input },
		"column":     func() { s.Column = flags.Column },
		"logo":       func() { s.Logo = flags.Logo },
		"output":     func() { s.Output = flags.Output },
		"size":       func() { s.Size = flags.Size },
		"margin":     func() { s.Margin = flags.Margin },
		"animate":    func() { s.Animate = flags.Animate },
		"out":        func() { s.Out = flags.Out },
		"workers":    func() { s.Workers = flags.Workers },
		"fail-fast":  func() { s.FailFast = flags.FailFast },
		"progress":   func() { s.Progress = flags.Progress },
		"canvas":     func() { s.Canvas = flags.Canvas },
		"coverage":   func() { s.Coverage = flags.Coverage },
		"log-level":  func() { s.LogLevel = flags.LogLevel },
		"log-format": func() { s.LogFormat = flags.LogFormat },
	}
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := overrides[f.Name]; ok {
			set()
		}
	})
	return s, nil
}

// generate runs one batch described by s.
func (a *app) generate(ctx context.Context, s Settings) error {
	cfg, err := s.batchConfig()
	if err != nil {
		return err
	}

	log := a.newLogger(s)

	sink, err := a.newSink(s, log)
	if err != nil {
		return err
	}

	if s.Logo != "" {
		logo, err := raster.LoadLogo(s.Logo)
		if err != nil {
			return errors.Join(batch.ErrInput, err)
		}
		cfg.Raster.Logo = logo
	}

	records, err := tabular.ReadFile(s.Input, tabular.WithColumn(s.Column))
	if err != nil {
		return errors.Join(batch.ErrInput, err)
	}

	storage, err := newStorage(ctx, s)
	if err != nil {
		return err
	}

	runner, err := batch.NewRunner(cfg, storage,
		batch.WithLogger(log),
		batch.WithProgress(sink),
	)
	if err != nil {
		return err
	}

	stats, err := runner.Run(ctx, records)
	if err != nil {
		return err
	}
	printSummary(a.stdout, stats)
	return nil
}

func (a *app) newLogger(s Settings) *slog.Logger {
	// Both values were checked by batchConfig.
	level, _ := parseLogLevel(s.LogLevel)
	format, _ := parseLogFormat(s.LogFormat)
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(a.stderr),
		logger.WithAttr(slog.String("tool", "qrbatch")),
		logger.WithContextExtractors(logger.RunIDExtractor()),
	)
}

func (a *app) newSink(s Settings, log *slog.Logger) (progress.Sink, error) {
	if s.Animate {
		return progress.NewPreview(a.stdout), nil
	}
	sink, err := progress.New(s.Progress, a.stderr, log)
	if err != nil {
		return nil, errors.Join(batch.ErrConfigValidation, err)
	}
	return sink, nil
}

func newStorage(ctx context.Context, s Settings) (file.Storage, error) {
	if s.S3.Bucket == "" {
		storage, err := file.NewLocalStorage(s.Out, file.WithLocalWriteTimeout(writeTimeout))
		if err != nil {
			return nil, errors.Join(batch.ErrWrite, err)
		}
		return storage, nil
	}

	storage, err := file.NewS3Storage(ctx, file.S3Config{
		Bucket:         s.S3.Bucket,
		Region:         s.S3.Region,
		Prefix:         s.S3.Prefix,
		AccessKeyID:    s.S3.AccessKeyID,
		SecretKey:      s.S3.SecretKey,
		Endpoint:       s.S3.Endpoint,
		BaseURL:        s.S3.BaseURL,
		ForcePathStyle: s.S3.ForcePathStyle,
	}, file.WithS3WriteTimeout(writeTimeout))
	if err != nil {
		if errors.Is(err, file.ErrInvalidConfig) || errors.Is(err, file.ErrInvalidPath) {
			return nil, errors.Join(batch.ErrConfigValidation, err)
		}
		return nil, err
	}
	return storage, nil
}

func printSummary(w io.Writer, stats *batch.Stats) {
	ok := color.New(color.FgGreen)
	_, _ = ok.Fprintf(w, "QR code generation completed in %.2f seconds.\n", stats.Elapsed.Seconds())
	_, _ = fmt.Fprintf(w, "Average time per QR code: %.2f seconds.\n", stats.Average().Seconds())
	if stats.Skipped > 0 {
		_, _ = fmt.Fprintf(w, "Skipped %d empty row(s).\n", stats.Skipped)
	}
	if stats.Failed > 0 {
		warn := color.New(color.FgYellow)
		_, _ = warn.Fprintf(w, "%d record(s) failed:\n", stats.Failed)
		for _, f := range stats.Failures {
			_, _ = fmt.Fprintf(w, "  %v\n", f)
		}
	}
}
