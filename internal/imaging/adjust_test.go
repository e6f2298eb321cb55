package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrighten(t *testing.T) {
	src := createTestImage(t, 2, 2, color.NRGBA{R: 10, G: 100, B: 250, A: 77})

	got := Brighten(src, 20).NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{R: 30, G: 120, B: 255, A: 77}, got)

	got = Brighten(src, -50).NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{R: 0, G: 50, B: 200, A: 77}, got)
}

func TestContrast(t *testing.T) {
	src := createTestImage(t, 2, 2, color.NRGBA{R: 0, G: 100, B: 255, A: 255})

	// Zero contrast change is the identity.
	assert.Equal(t, src.Pix, Contrast(src, 0).Pix)

	got := Contrast(src, 100).NRGBAAt(0, 0)
	assert.Equal(t, uint8(0), got.R)
	assert.Less(t, got.G, uint8(100))
	assert.Equal(t, uint8(255), got.B)

	flat := Contrast(src, -100).NRGBAAt(0, 0)
	assert.Equal(t, flat.R, flat.B)
}

func TestInvert(t *testing.T) {
	src := createTestImage(t, 1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	assert.Equal(t, color.NRGBA{R: 245, G: 235, B: 225, A: 40}, Invert(src).NRGBAAt(0, 0))
}

func TestHueRotate(t *testing.T) {
	src := createTestImage(t, 2, 2, red)

	full := HueRotate(src, 360).NRGBAAt(0, 0)
	assert.InDelta(t, 255, full.R, 2)
	assert.InDelta(t, 0, full.G, 2)

	shifted := HueRotate(src, 120).NRGBAAt(0, 0)
	assert.Greater(t, shifted.G, shifted.R)
	assert.Greater(t, shifted.G, shifted.B)
}

func TestExtractChannel(t *testing.T) {
	src := createTestImage(t, 2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	for ch, want := range []uint8{1, 2, 3, 4} {
		assert.Equal(t, want, ExtractChannel(src, ch).GrayAt(1, 1).Y)
	}
	assert.Equal(t, ExtractChannel(src, 3).Pix, ExtractChannel(src, 5).Pix)
	assert.Equal(t, ExtractChannel(src, 0).Pix, ExtractChannel(src, -2).Pix)
}

func TestBlur(t *testing.T) {
	src := createTestImage(t, 8, 8, white)
	src.SetNRGBA(4, 4, black)

	out := Blur(src, 1.5)
	assert.Greater(t, out.NRGBAAt(4, 4).R, uint8(0))
	assert.Less(t, out.NRGBAAt(3, 4).R, uint8(255))

	assert.Equal(t, src.Pix, Blur(src, 0).Pix)
}

func TestGaussianBlur_RejectsNonPositiveSigma(t *testing.T) {
	_, err := GaussianBlur(createTestImage(t, 2, 2, red), 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	out, err := GaussianBlur(createTestImage(t, 2, 2, red), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Rect.Dx())
}

func TestUnsharpen(t *testing.T) {
	flat := createTestImage(t, 6, 6, color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	assert.Equal(t, flat.Pix, Unsharpen(flat, 2, 0).Pix)

	edge := createTestImage(t, 8, 8, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			edge.SetNRGBA(x, y, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
		}
	}
	out := Unsharpen(edge, 1, 1)
	assert.Less(t, out.NRGBAAt(3, 4).R, uint8(50))
	assert.Greater(t, out.NRGBAAt(4, 4).R, uint8(200))
}
