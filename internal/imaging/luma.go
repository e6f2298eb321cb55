package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Rec. 709 luma weights scaled to integers, summing to lumaScale.
const (
	lumaR     = 2126
	lumaG     = 7152
	lumaB     = 722
	lumaScale = 10000
)

// luma returns the Rec. 709 luminance of an 8-bit RGB triple.
func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b)) / lumaScale)
}

// ToNRGBA returns a freshly allocated non-premultiplied copy of img with its
// origin at (0,0). The result never aliases img.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ToGray converts img to 8-bit luminance with origin (0,0).
//
// Colour channels are weighted with the Rec. 709 coefficients
// (2126 R + 7152 G + 722 B) / 10000 on non-premultiplied values; alpha is
// ignored. A *image.Gray input is copied unchanged.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok {
		out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out
	}

	src := ToNRGBA(img)
	out := image.NewGray(src.Rect)
	for y := 0; y < src.Rect.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < src.Rect.Dx(); x++ {
			i := x * 4
			out.Pix[y*out.Stride+x] = luma(row[i], row[i+1], row[i+2])
		}
	}
	return out
}

// Grayscale converts img to a single-channel luminance buffer.
func Grayscale(img image.Image) *image.Gray {
	return ToGray(img)
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// clampUint8 rounds and saturates a float to the 8-bit range.
func clampUint8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
