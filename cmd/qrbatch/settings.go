package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/qrbatch/pkg/batch"
	"github.com/dmitrymomot/qrbatch/pkg/logger"
	"github.com/dmitrymomot/qrbatch/pkg/progress"
	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
	"github.com/dmitrymomot/qrbatch/pkg/raster"
	"github.com/dmitrymomot/qrbatch/pkg/validator"
)

const envPrefix = "QRBATCH_"

// Settings holds every option of a run. Values are layered as
// defaults < YAML file < QRBATCH_* environment < command-line flags.
type Settings struct {
	Input     string     `env:"INPUT" yaml:"input"`
	Column    int        `env:"COLUMN" yaml:"column"`
	Logo      string     `env:"LOGO" yaml:"logo"`
	Output    []string   `env:"OUTPUT" envSeparator:"," yaml:"output"`
	Size      int        `env:"SIZE" yaml:"size"`
	Margin    int        `env:"MARGIN" yaml:"margin"`
	Animate   bool       `env:"ANIMATE" yaml:"animate"`
	Out       string     `env:"OUT" yaml:"out"`
	Workers   int        `env:"WORKERS" yaml:"workers"`
	FailFast  bool       `env:"FAIL_FAST" yaml:"fail_fast"`
	Progress  string     `env:"PROGRESS" yaml:"progress"`
	Canvas    int        `env:"CANVAS" yaml:"canvas"`
	Coverage  float64    `env:"COVERAGE" yaml:"coverage"`
	LogLevel  string     `env:"LOG_LEVEL" yaml:"log_level"`
	LogFormat string     `env:"LOG_FORMAT" yaml:"log_format"`
	S3        S3Settings `envPrefix:"S3_" yaml:"s3"`
}

// S3Settings selects S3 output when Bucket is set.
type S3Settings struct {
	Bucket         string `env:"BUCKET" yaml:"bucket"`
	Region         string `env:"REGION" yaml:"region"`
	Prefix         string `env:"PREFIX" yaml:"prefix"`
	AccessKeyID    string `env:"ACCESS_KEY_ID" yaml:"access_key_id"`
	SecretKey      string `env:"SECRET_ACCESS_KEY" yaml:"secret_access_key"`
	Endpoint       string `env:"ENDPOINT" yaml:"endpoint"`
	BaseURL        string `env:"BASE_URL" yaml:"base_url"`
	ForcePathStyle bool   `env:"FORCE_PATH_STYLE" yaml:"force_path_style"`
}

func defaultSettings() Settings {
	return Settings{
		Input:     "data.csv",
		Output:    []string{"svg", "pdf", "png"},
		Size:      batch.DefaultPixelSize,
		Margin:    batch.DefaultMargin,
		Out:       ".",
		Workers:   1,
		Progress:  progress.KindBar,
		Canvas:    raster.DefaultCanvasSize,
		Coverage:  raster.DefaultCoverage,
		LogLevel:  "info",
		LogFormat: string(logger.FormatText),
		S3:        S3Settings{Region: "us-east-1"},
	}
}

// batchConfig validates s and builds the immutable run configuration.
// The logo is attached by the caller once loaded.
func (s Settings) batchConfig() (batch.Config, error) {
	formats, err := batch.ParseFormats(s.Output...)
	if err != nil {
		return batch.Config{}, err
	}

	err = validator.Apply(
		validator.Required("input", s.Input),
		validator.Min("column", s.Column, 0),
		validator.Positive("size", s.Size),
		validator.Min("margin", s.Margin, 0),
		validator.Min("workers", s.Workers, 1),
		validator.OneOf("progress", s.Progress, progressKinds),
		validator.OneOf("log_level", s.LogLevel, logLevels),
		validator.OneOf("log_format", s.LogFormat, logFormats),
	)
	if err != nil {
		return batch.Config{}, errors.Join(batch.ErrConfigValidation, err)
	}

	moduleSize := batch.ModuleSizeFor(s.Size)
	cfg := batch.Config{
		Formats:    formats,
		Level:      qrcode.LevelFor(s.Logo != ""),
		ModuleSize: moduleSize,
		Border:     batch.BorderFor(s.Margin, moduleSize),
		Raster: raster.Options{
			CanvasSize: s.Canvas,
			Coverage:   s.Coverage,
		},
		Workers:  s.Workers,
		FailFast: s.FailFast,
	}
	return cfg, cfg.Validate()
}

var (
	progressKinds = []string{progress.KindBar, progress.KindSpinner, progress.KindLog, progress.KindNone}
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{string(logger.FormatText), string(logger.FormatJSON)}
)

func parseLogLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return l, nil
}

func parseLogFormat(name string) (logger.Format, error) {
	switch f := logger.Format(strings.ToLower(strings.TrimSpace(name))); f {
	case logger.FormatText, logger.FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid log format %q: must be %q or %q", name, logger.FormatText, logger.FormatJSON)
}
