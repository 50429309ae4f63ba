package qrcode_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrbatch/pkg/qrcode"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("returns error when content is empty", func(t *testing.T) {
		t.Parallel()
		m, err := qrcode.Encode("", qrcode.Low)
		require.Error(t, err)
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, qrcode.ErrEmptyContent))
	})

	t.Run("returns error when content is whitespace only", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Encode("   \t\n", qrcode.High)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("encodes short content as version 1", func(t *testing.T) {
		t.Parallel()
		m, err := qrcode.Encode("HELLO", qrcode.Low)
		require.NoError(t, err)
		assert.Equal(t, 1, m.Version())
		assert.Equal(t, 21, m.Size())
		assert.Equal(t, qrcode.Low, m.Level())
	})

	t.Run("has no quiet zone and starts with a finder pattern", func(t *testing.T) {
		t.Parallel()
		m, err := qrcode.Encode("https://example.com", qrcode.Low)
		require.NoError(t, err)
		n := m.Size()
		assert.True(t, m.Black(0, 0))
		assert.True(t, m.Black(n-1, 0))
		assert.True(t, m.Black(0, n-1))
		assert.False(t, m.Black(-1, 0))
		assert.False(t, m.Black(n, n))
	})

	t.Run("side is 17 plus four modules per version", func(t *testing.T) {
		t.Parallel()
		m, err := qrcode.Encode(strings.Repeat("x", 200), qrcode.High)
		require.NoError(t, err)
		assert.Equal(t, 17+4*m.Version(), m.Size())
		assert.Equal(t, 1, m.Size()%2)
	})

	t.Run("rejects content beyond capacity", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Encode(strings.Repeat("a", 3000), qrcode.Low)
		require.Error(t, err)
		assert.ErrorIs(t, err, qrcode.ErrCapacityExceeded)
		assert.NotErrorIs(t, err, qrcode.ErrorFailedToGenerateQRCode)
		assert.ErrorContains(t, err, "3000 bytes at level L")
	})

	t.Run("capacity depends on level", func(t *testing.T) {
		t.Parallel()
		payload := strings.Repeat("a", 2000)
		_, err := qrcode.Encode(payload, qrcode.Low)
		require.NoError(t, err)
		_, err = qrcode.Encode(payload, qrcode.High)
		assert.ErrorIs(t, err, qrcode.ErrCapacityExceeded)
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Encode("HELLO", qrcode.Level(9))
		assert.ErrorIs(t, err, qrcode.ErrInvalidLevel)
	})
}

func TestEncodeSizeGrowsWithContent(t *testing.T) {
	t.Parallel()

	for _, level := range []qrcode.Level{qrcode.Low, qrcode.High} {
		prev := 0
		for n := 1; n <= 600; n += 23 {
			m, err := qrcode.Encode(strings.Repeat("q", n), level)
			require.NoError(t, err)
			assert.Equal(t, 1, m.Size()%2, "side must be odd")
			assert.GreaterOrEqual(t, m.Size(), prev, "side must not shrink as content grows")
			prev = m.Size()
		}
	}
}

func TestEncodeHighNeedsLargerSymbol(t *testing.T) {
	t.Parallel()
	payload := strings.Repeat("https://example.com/", 5)
	low, err := qrcode.Encode(payload, qrcode.Low)
	require.NoError(t, err)
	high, err := qrcode.Encode(payload, qrcode.High)
	require.NoError(t, err)
	assert.Greater(t, high.Size(), low.Size())
}

func TestMatrixBitmap(t *testing.T) {
	t.Parallel()
	m, err := qrcode.Encode("HELLO", qrcode.Low)
	require.NoError(t, err)

	t.Run("adds light border", func(t *testing.T) {
		t.Parallel()
		bits := m.Bitmap(2)
		require.Len(t, bits, m.Size()+4)
		for i := range bits {
			assert.False(t, bits[0][i])
			assert.False(t, bits[i][1])
			assert.False(t, bits[len(bits)-1][i])
		}
		assert.True(t, bits[2][2])
	})

	t.Run("zero border equals matrix", func(t *testing.T) {
		t.Parallel()
		assert.True(t, m.Equal(m.Bitmap(0)))
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()
		bits := m.Bitmap(0)
		bits[0][0] = false
		assert.True(t, m.Black(0, 0))
	})
}

func TestLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, qrcode.High, qrcode.LevelFor(true))
	assert.Equal(t, qrcode.Low, qrcode.LevelFor(false))

	for in, want := range map[string]qrcode.Level{"L": qrcode.Low, "medium": qrcode.Medium, " q ": qrcode.Quartile, "H": qrcode.High} {
		got, err := qrcode.ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := qrcode.ParseLevel("x")
	assert.ErrorIs(t, err, qrcode.ErrInvalidLevel)

	assert.Equal(t, "H", qrcode.High.String())
}

func TestTerminal(t *testing.T) {
	t.Parallel()
	m, err := qrcode.Encode("HELLO", qrcode.Low)
	require.NoError(t, err)

	out := qrcode.Terminal(m, 1)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, m.Size()+2)
	assert.Equal(t, strings.Repeat(" ", 2*(m.Size()+2)), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  ██"))
}
