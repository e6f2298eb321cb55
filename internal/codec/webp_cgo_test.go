//go:build cgo

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_WebP(t *testing.T) {
	src := createTestImage(32, 24)

	for _, lossless := range []bool{true, false} {
		opts := DefaultOptions()
		opts.WebPLossless = lossless
		c := New(opts)

		data, err := c.Encode(src, WebP)
		require.NoError(t, err)

		detected, err := Detect(data)
		require.NoError(t, err)
		assert.Equal(t, WebP, detected)

		img, f, err := c.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, WebP, f)
		assert.Equal(t, 32, img.Bounds().Dx())
		assert.Equal(t, 24, img.Bounds().Dy())
	}
}

func TestEncode_WebPLosslessKeepsPixels(t *testing.T) {
	c := Default()
	src := createTestImage(8, 8)

	data, err := c.Encode(src, WebP)
	require.NoError(t, err)

	img, _, err := c.Decode(data)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			want := src.NRGBAAt(x, y)
			assert.Equal(t, [3]uint8{want.R, want.G, want.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
		}
	}
}
