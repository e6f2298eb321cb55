package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
)

// Brighten adds value to every colour channel, saturating at 0 and 255.
// Alpha is unchanged. Negative values darken.
func Brighten(img image.Image, value int) *image.NRGBA {
	shift := func(v uint8) uint8 {
		return uint8(clamp(int(v)+value, 0, 255))
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: shift(c.R), G: shift(c.G), B: shift(c.B), A: c.A}
	})
}

// Contrast scales every colour channel away from (positive) or toward
// (negative) mid-grey.
//
// With factor = ((100 + value) / 100)^2 each channel v becomes
// ((v/255 - 0.5) * factor + 0.5) * 255, saturated to 0..255.
func Contrast(img image.Image, value float64) *image.NRGBA {
	factor := (100 + value) / 100
	factor *= factor

	var lut [256]uint8
	for i := range lut {
		lut[i] = clampUint8(((float64(i)/255-0.5)*factor + 0.5) * 255)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
	})
}

// Invert replaces each colour channel v with 255-v. Alpha is unchanged.
func Invert(img image.Image) *image.NRGBA {
	return imaging.Invert(img)
}

// HueRotate shifts the hue of every pixel by degrees around the colour wheel.
func HueRotate(img image.Image, degrees int) *image.NRGBA {
	return ToNRGBA(adjust.Hue(img, degrees))
}

// ExtractChannel copies one channel of img into a luminance buffer.
// The selector is 0=red, 1=green, 2=blue, 3=alpha; values above 3 select alpha
// and negative values select red.
func ExtractChannel(img image.Image, channel int) *image.Gray {
	channel = clamp(channel, 0, 3)
	src := ToNRGBA(img)
	out := image.NewGray(src.Rect)
	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			out.Pix[y*out.Stride+x] = src.Pix[y*src.Stride+x*4+channel]
		}
	}
	return out
}

// Blur applies a Gaussian blur. A sigma of zero or less returns an unblurred copy.
func Blur(img image.Image, sigma float64) *image.NRGBA {
	return imaging.Blur(img, sigma)
}

// GaussianBlur applies a Gaussian blur on all four channels.
// Unlike Blur it requires sigma > 0.
func GaussianBlur(img image.Image, sigma float64) (*image.NRGBA, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidParameter, sigma)
	}
	return imaging.Blur(img, sigma), nil
}

// Unsharpen sharpens img with an unsharp mask.
//
// The image is blurred with sigma; wherever a colour channel differs from its
// blurred value by more than threshold, the difference is added back to the
// original channel. Smaller differences are left alone so flat regions keep
// their noise level.
func Unsharpen(img image.Image, sigma float64, threshold int) *image.NRGBA {
	src := ToNRGBA(img)
	blurred := imaging.Blur(src, sigma)
	out := image.NewNRGBA(src.Rect)

	for i := 0; i < len(src.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			a := int(src.Pix[i+c])
			diff := a - int(blurred.Pix[i+c])
			if diff > threshold || -diff > threshold {
				a = clamp(a+diff, 0, 255)
			}
			out.Pix[i+c] = uint8(a)
		}
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}
