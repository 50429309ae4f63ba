package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type options struct {
	prefix      string
	envFiles    []string
	environment map[string]string
}

// Option tunes how Load reads the environment.
type Option func(*options)

// WithPrefix prepends prefix to every env tag, e.g. "QRBATCH_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles loads the given .env files before parsing. Unlike the default
// ".env" lookup, a missing file here is an error.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, files...) }
}

// WithEnvironment parses from the given map instead of the process environment.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// Load overlays environment variables onto v using its `env` struct tags.
//
// Fields whose variable is unset are left untouched, so v can be pre-filled
// with defaults (or with values from LoadFile) before calling Load.
//
//	type Settings struct {
//		Input   string `env:"INPUT" yaml:"input"`
//		Workers int    `env:"WORKERS" yaml:"workers"`
//	}
//
//	s := Settings{Input: "data.csv", Workers: 1}
//	if err := config.Load(&s, config.WithPrefix("QRBATCH_")); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	} else if o.environment == nil {
		// The default .env is optional.
		_ = godotenv.Load()
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	}
	if err := env.ParseWithOptions(v, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadFile decodes the YAML file at path onto v using its `yaml` struct tags.
// Keys absent from the file keep their current value. Unknown keys are rejected
// so that typos in a config file surface at startup.
func LoadFile[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingConfigFile, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrReadingConfigFile, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}
