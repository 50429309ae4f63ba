package document_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbatch/pkg/document"
	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
	"github.com/dmitrymomot/qrbatch/pkg/vector"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	m, err := qrcode.Encode("HELLO", qrcode.Low)
	require.NoError(t, err)
	svg := vector.Render(m, 10, 2)

	t.Run("produces a pdf", func(t *testing.T) {
		t.Parallel()
		out, err := document.Convert(svg, document.WithTitle("qr_1"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
		assert.Contains(t, string(out), "%%EOF")
	})

	t.Run("page is sized from the drawing", func(t *testing.T) {
		t.Parallel()
		out, err := document.Convert(svg)
		require.NoError(t, err)
		// 250 user units at 96 dpi are 187.5 points.
		assert.Contains(t, string(out), "187.5")
	})

	t.Run("custom scale", func(t *testing.T) {
		t.Parallel()
		out, err := document.Convert(svg, document.WithScale(1))
		require.NoError(t, err)
		assert.Contains(t, string(out), "250")
	})

	t.Run("malformed markup", func(t *testing.T) {
		t.Parallel()
		_, err := document.Convert([]byte("<svg"))
		require.Error(t, err)
		assert.ErrorIs(t, err, document.ErrConversion)
		assert.ErrorIs(t, err, vector.ErrMalformedMarkup)
	})
}

func TestMergeRuns(t *testing.T) {
	t.Parallel()

	in := []vector.Rect{
		{X: 0, Y: 0, Width: 30, Height: 30, Fill: vector.LightFill},
		{X: 0, Y: 0, Width: 10, Height: 10, Fill: vector.DarkFill},
		{X: 10, Y: 0, Width: 10, Height: 10, Fill: vector.DarkFill},
		{X: 30, Y: 0, Width: 10, Height: 10, Fill: vector.DarkFill},
		{X: 0, Y: 10, Width: 10, Height: 10, Fill: vector.DarkFill},
	}
	out := document.MergeRuns(in)
	require.Len(t, out, 3)
	assert.Equal(t, 20.0, out[0].Width)
	assert.Equal(t, 30.0, out[1].X)
	assert.Equal(t, 10.0, out[2].Y)
}
