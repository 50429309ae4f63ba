package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbatch/pkg/config"
)

type settings struct {
	Input   string   `env:"INPUT" yaml:"input"`
	Workers int      `env:"WORKERS" yaml:"workers"`
	Formats []string `env:"FORMATS" envSeparator:"," yaml:"formats"`
	Animate bool     `env:"ANIMATE" yaml:"animate"`
}

type requiredSettings struct {
	Token string `env:"TOKEN,required"`
}

func TestLoad(t *testing.T) {
	t.Run("overlays set variables and keeps defaults", func(t *testing.T) {
		s := settings{Input: "data.csv", Workers: 1}
		err := config.Load(&s, config.WithEnvironment(map[string]string{
			"WORKERS": "4",
			"FORMATS": "svg,png",
		}))
		require.NoError(t, err)
		assert.Equal(t, "data.csv", s.Input)
		assert.Equal(t, 4, s.Workers)
		assert.Equal(t, []string{"svg", "png"}, s.Formats)
	})

	t.Run("applies prefix", func(t *testing.T) {
		s := settings{Input: "data.csv"}
		err := config.Load(&s,
			config.WithPrefix("QRBATCH_"),
			config.WithEnvironment(map[string]string{
				"INPUT":         "ignored.csv",
				"QRBATCH_INPUT": "rows.csv",
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, "rows.csv", s.Input)
	})

	t.Run("reads process environment", func(t *testing.T) {
		t.Setenv("QRBATCH_TEST_ANIMATE", "true")
		var s settings
		require.NoError(t, config.Load(&s, config.WithPrefix("QRBATCH_TEST_")))
		assert.True(t, s.Animate)
	})

	t.Run("reads explicit env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("QRBATCH_FILE_WORKERS=3\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("QRBATCH_FILE_WORKERS") })

		var s settings
		require.NoError(t, config.Load(&s, config.WithPrefix("QRBATCH_FILE_"), config.WithEnvFiles(path)))
		assert.Equal(t, 3, s.Workers)
	})

	t.Run("missing explicit env file", func(t *testing.T) {
		var s settings
		err := config.Load(&s, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrLoadingEnvFile))
	})

	t.Run("invalid value", func(t *testing.T) {
		var s settings
		err := config.Load(&s, config.WithEnvironment(map[string]string{"WORKERS": "many"}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrParsingConfig))
	})

	t.Run("required variable missing", func(t *testing.T) {
		var s requiredSettings
		err := config.Load(&s, config.WithEnvironment(map[string]string{}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrParsingConfig))
	})

	t.Run("nil pointer", func(t *testing.T) {
		var s *settings
		assert.ErrorIs(t, config.Load(s), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	assert.Panics(t, func() {
		var s requiredSettings
		config.MustLoad(&s, config.WithEnvironment(map[string]string{}))
	})
}

func TestLoadFile(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "qrbatch.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("overlays keys present in file", func(t *testing.T) {
		s := settings{Input: "data.csv", Workers: 1}
		path := write(t, "workers: 8\nformats: [pdf]\n")
		require.NoError(t, config.LoadFile(path, &s))
		assert.Equal(t, "data.csv", s.Input)
		assert.Equal(t, 8, s.Workers)
		assert.Equal(t, []string{"pdf"}, s.Formats)
	})

	t.Run("empty file is a no-op", func(t *testing.T) {
		s := settings{Workers: 2}
		require.NoError(t, config.LoadFile(write(t, "\n"), &s))
		assert.Equal(t, 2, s.Workers)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		var s settings
		err := config.LoadFile(write(t, "wokers: 2\n"), &s)
		assert.ErrorIs(t, err, config.ErrReadingConfigFile)
	})

	t.Run("missing file", func(t *testing.T) {
		var s settings
		err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), &s)
		assert.ErrorIs(t, err, config.ErrReadingConfigFile)
	})
}
