package batch_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbatch/pkg/batch"
	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
	"github.com/dmitrymomot/qrbatch/pkg/raster"
	"github.com/dmitrymomot/qrbatch/pkg/validator"
)

func TestParseFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  batch.Formats
	}{
		{"default list", []string{"svg,pdf,png"}, batch.Formats{batch.Vector, batch.Document, batch.Raster}},
		{"order normalised", []string{"png", "svg"}, batch.Formats{batch.Vector, batch.Raster}},
		{"kind names and dots", []string{"Raster", ".PDF"}, batch.Formats{batch.Document, batch.Raster}},
		{"duplicates and blanks", []string{"png, ,png", ""}, batch.Formats{batch.Raster}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := batch.ParseFormats(tt.input...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, err := batch.ParseFormats("svg,gif")
		assert.ErrorIs(t, err, batch.ErrConfigValidation)
		assert.ErrorContains(t, err, `"gif"`)
	})

	t.Run("nothing requested", func(t *testing.T) {
		t.Parallel()
		_, err := batch.ParseFormats(" , ")
		assert.ErrorIs(t, err, batch.ErrConfigValidation)
	})
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "qr_svgs/qr_7.svg", batch.Vector.Path(7))
	assert.Equal(t, "qr_pdfs/qr_1.pdf", batch.Document.Path(1))
	assert.Equal(t, "qr_pngs/qr_12.png", batch.Raster.Path(12))
	assert.Equal(t, "image/png", batch.Raster.ContentType())
	assert.Equal(t, "svg,pdf,png", batch.AllFormats.String())
	assert.Equal(t, "Format(9)", batch.Format(9).String())
}

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("default is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, batch.DefaultConfig().Validate())
	})

	t.Run("collects every problem", func(t *testing.T) {
		t.Parallel()
		cfg := batch.DefaultConfig()
		cfg.ModuleSize = 0
		cfg.Border = -1
		cfg.Raster.Coverage = 1.5
		err := cfg.Validate()
		require.ErrorIs(t, err, batch.ErrConfigValidation)
		assert.ErrorContains(t, err, "module_size")
		assert.ErrorContains(t, err, "border")
		assert.ErrorContains(t, err, "coverage")
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("logo requires high level", func(t *testing.T) {
		t.Parallel()
		logo, err := raster.NewLogo(image.NewNRGBA(image.Rect(0, 0, 8, 8)))
		require.NoError(t, err)

		cfg := batch.DefaultConfig()
		cfg.Formats = batch.Formats{batch.Raster}
		cfg.Raster.Logo = logo
		err = cfg.Validate()
		require.ErrorIs(t, err, batch.ErrConfigValidation)
		assert.True(t, validator.ExtractValidationErrors(err).Has("level"))

		cfg.Level = qrcode.High
		assert.NoError(t, cfg.Validate())
	})

	t.Run("raster options ignored without png", func(t *testing.T) {
		t.Parallel()
		cfg := batch.DefaultConfig()
		cfg.Formats = batch.Formats{batch.Vector}
		cfg.Raster.CanvasSize = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("size and margin mapping", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 10, batch.ModuleSizeFor(500))
		assert.Equal(t, 1, batch.ModuleSizeFor(10))
		assert.Equal(t, 20, batch.ModuleSizeFor(1000))
		assert.Equal(t, 2, batch.BorderFor(20, 10))
		assert.Equal(t, 0, batch.BorderFor(5, 10))
		assert.Equal(t, 0, batch.BorderFor(20, 0))
	})
}
