package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// Threshold binarizes luminance: pixels strictly greater than level become
// 255, all others 0. With invert the two outputs are swapped.
func Threshold(img image.Image, level uint8, invert bool) *image.Gray {
	return thresholdGray(ToGray(img), level, invert)
}

func thresholdGray(src *image.Gray, level uint8, invert bool) *image.Gray {
	above, below := uint8(255), uint8(0)
	if invert {
		above, below = below, above
	}

	out := image.NewGray(src.Rect)
	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			if src.Pix[y*src.Stride+x] > level {
				out.Pix[y*out.Stride+x] = above
			} else {
				out.Pix[y*out.Stride+x] = below
			}
		}
	}
	return out
}

// grayHistogram counts intensities of a luminance buffer.
func grayHistogram(gray *image.Gray) [256]int {
	var bins [256]int
	// The red channel of a grey image carries its intensity.
	copy(bins[:], histogram.NewRGBAHistogram(gray).R.Bins)
	return bins
}

// OtsuLevel returns the threshold that maximizes between-class variance of
// the luminance histogram. Ties keep the lowest level.
func OtsuLevel(img image.Image) uint8 {
	hist := grayHistogram(ToGray(img))

	var total, sumAll float64
	for i, n := range hist {
		total += float64(n)
		sumAll += float64(i * n)
	}

	var weightBg, sumBg, bestVar float64
	var best uint8
	for t, n := range hist {
		weightBg += float64(n)
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t * n)
		meanBg := sumBg / weightBg
		meanFg := (sumAll - sumBg) / weightFg
		between := weightBg * weightFg * (meanBg - meanFg) * (meanBg - meanFg)
		if between > bestVar {
			bestVar = between
			best = uint8(t)
		}
	}
	return best
}

// OtsuThreshold binarizes luminance at the level chosen by OtsuLevel.
func OtsuThreshold(img image.Image) *image.Gray {
	gray := ToGray(img)
	return thresholdGray(gray, OtsuLevel(gray), false)
}

// AdaptiveThreshold binarizes each pixel against the mean of the
// (2*blockRadius+1)^2 block around it: pixels at or above the local mean
// become 255. Blocks are truncated at the image border.
func AdaptiveThreshold(img image.Image, blockRadius int) (*image.Gray, error) {
	if blockRadius < 0 {
		return nil, fmt.Errorf("%w: block radius %d", ErrInvalidParameter, blockRadius)
	}

	src := ToGray(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	// integral[y][x] holds the sum of all pixels above and left of (x, y).
	stride := w + 1
	integral := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var row int64
		for x := 0; x < w; x++ {
			row += int64(src.Pix[y*src.Stride+x])
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + row
		}
	}

	out := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		y0, y1 := max(y-blockRadius, 0), min(y+blockRadius, h-1)+1
		for x := 0; x < w; x++ {
			x0, x1 := max(x-blockRadius, 0), min(x+blockRadius, w-1)+1
			sum := integral[y1*stride+x1] - integral[y0*stride+x1] - integral[y1*stride+x0] + integral[y0*stride+x0]
			n := int64((y1 - y0) * (x1 - x0))
			if int64(src.Pix[y*src.Stride+x])*n >= sum {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out, nil
}

// EqualizeHistogram spreads luminance over the full range: each level p maps
// to 255 * cdf(p) / pixelCount.
func EqualizeHistogram(img image.Image) *image.Gray {
	src := ToGray(img)
	hist := grayHistogram(src)

	var lut [256]uint8
	total := src.Rect.Dx() * src.Rect.Dy()
	cum := 0
	for i, n := range hist {
		cum += n
		lut[i] = uint8(255 * cum / total)
	}

	out := image.NewGray(src.Rect)
	for i, p := range src.Pix {
		out.Pix[i] = lut[p]
	}
	return out
}

// StretchContrast linearly maps luminance in [inLow, inHigh] onto
// [outLow, outHigh]. Values below inLow map to outLow and values above inHigh
// map to outHigh. Requires inLow < inHigh and outLow <= outHigh.
func StretchContrast(img image.Image, inLow, inHigh, outLow, outHigh uint8) (*image.Gray, error) {
	if inLow >= inHigh || outLow > outHigh {
		return nil, fmt.Errorf("%w: stretch [%d,%d] -> [%d,%d]", ErrInvalidParameter, inLow, inHigh, outLow, outHigh)
	}

	var lut [256]uint8
	inSpan := int(inHigh) - int(inLow)
	outSpan := int(outHigh) - int(outLow)
	for i := range lut {
		switch {
		case i <= int(inLow):
			lut[i] = outLow
		case i >= int(inHigh):
			lut[i] = outHigh
		default:
			lut[i] = uint8(int(outLow) + ((i-int(inLow))*outSpan+inSpan/2)/inSpan)
		}
	}

	src := ToGray(img)
	out := image.NewGray(src.Rect)
	for i, p := range src.Pix {
		out.Pix[i] = lut[p]
	}
	return out, nil
}
