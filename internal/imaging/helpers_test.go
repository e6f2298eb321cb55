package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid-colour RGBA image.
func createTestImage(t *testing.T, width, height int, c color.NRGBA) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createGrayImage creates a luminance image whose pixels come from fn.
func createGrayImage(t *testing.T, width, height int, fn func(x, y int) uint8) *image.Gray {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: fn(x, y)})
		}
	}
	return img
}

// createGradientImage creates an opaque image with distinct pixels everywhere.
func createGradientImage(t *testing.T, width, height int) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x + y), A: 255})
		}
	}
	return img
}

// countGray counts the pixels equal to v.
func countGray(img *image.Gray, v uint8) int {
	n := 0
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			if img.GrayAt(x, y).Y == v {
				n++
			}
		}
	}
	return n
}

// countNRGBA counts the pixels equal to c.
func countNRGBA(img *image.NRGBA, c color.NRGBA) int {
	n := 0
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

var (
	red         = color.NRGBA{R: 255, A: 255}
	black       = color.NRGBA{A: 255}
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = color.NRGBA{}
)
