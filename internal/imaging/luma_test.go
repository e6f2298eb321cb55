package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGray_Rec709(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want uint8
	}{
		{"black", black, 0},
		{"white", white, 255},
		{"red", red, 54},
		{"green", color.NRGBA{G: 255, A: 255}, 182},
		{"blue", color.NRGBA{B: 255, A: 255}, 18},
		{"alpha ignored", color.NRGBA{R: 255, G: 255, B: 255, A: 10}, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ToGray(createTestImage(t, 2, 2, tt.in))
			assert.Equal(t, tt.want, g.GrayAt(1, 1).Y)
		})
	}
}

func TestToGray_NonZeroOrigin(t *testing.T) {
	src := createGradientImage(t, 10, 10)
	sub := src.SubImage(image.Rect(3, 4, 8, 9))

	g := ToGray(sub)
	require.Equal(t, image.Rect(0, 0, 5, 5), g.Rect)
	want := ToGray(src).GrayAt(3, 4)
	assert.Equal(t, want, g.GrayAt(0, 0))
}

func TestGrayscale_Idempotent(t *testing.T) {
	once := Grayscale(createGradientImage(t, 16, 9))
	twice := Grayscale(once)
	assert.Equal(t, once.Pix, twice.Pix)
}

func TestToNRGBA_DoesNotAlias(t *testing.T) {
	src := createTestImage(t, 3, 3, red)
	dst := ToNRGBA(src)
	dst.SetNRGBA(0, 0, black)
	assert.Equal(t, red, src.NRGBAAt(0, 0))
}
