package codec

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage builds an opaque gradient so lossy encoders have real content.
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := Default()
	src := createTestImage(32, 24)

	for _, f := range []Format{PNG, JPEG, GIF, BMP, TIFF, ICO} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := c.Encode(src, f)
			require.NoError(t, err)

			detected, err := Detect(data)
			require.NoError(t, err)
			assert.Equal(t, f, detected)

			img, got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, f, got)
			assert.Equal(t, 32, img.Bounds().Dx())
			assert.Equal(t, 24, img.Bounds().Dy())
		})
	}
}

func TestEncode_PNGIsLossless(t *testing.T) {
	c := Default()
	src := createTestImage(8, 8)

	data, err := c.Encode(src, PNG)
	require.NoError(t, err)

	img, _, err := c.Decode(data)
	require.NoError(t, err)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := src.NRGBAAt(x, y)
			r, g, b, a := img.At(x, y).RGBA()
			assert.Equal(t, want, color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)})
		}
	}
}

func TestDecodeConfig(t *testing.T) {
	c := Default()
	data, err := c.Encode(createTestImage(40, 10), PNG)
	require.NoError(t, err)

	cfg, f, err := c.DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, _, err := Default().Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, ErrFormatUnknown)
}

func TestDecode_CorruptPayload(t *testing.T) {
	// Valid PNG signature followed by garbage.
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage chunk data")...)
	_, f, err := Default().Decode(data)
	assert.ErrorIs(t, err, ErrDecode)
	assert.NotErrorIs(t, err, ErrFormatUnknown)
	assert.Equal(t, PNG, f)
}

func TestEncode_ICOTooLarge(t *testing.T) {
	_, err := Default().Encode(createTestImage(300, 10), ICO)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Default().Encode(createTestImage(2, 2), FormatUnknown)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestNew_ClampsOptions(t *testing.T) {
	c := New(Options{JPEGQuality: 500, GIFColors: 0})
	assert.Equal(t, DefaultJPEGQuality, c.Options().JPEGQuality)
	assert.Equal(t, DefaultGIFColors, c.Options().GIFColors)
	assert.Equal(t, float32(DefaultWebPQuality), c.Options().WebPQuality)
}
