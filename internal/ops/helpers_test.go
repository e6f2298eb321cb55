package ops

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
)

func solidImage(t *testing.T, w, h int, c color.NRGBA) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encode(t *testing.T, img image.Image, f codec.Format) []byte {
	t.Helper()
	data, err := codec.Default().Encode(img, f)
	require.NoError(t, err)
	return data
}

func decode(t *testing.T, data []byte) (image.Image, codec.Format) {
	t.Helper()
	img, f, err := codec.Default().Decode(data)
	require.NoError(t, err)
	return img, f
}

var (
	red   = color.NRGBA{R: 255, A: 255}
	black = color.NRGBA{A: 255}
)
