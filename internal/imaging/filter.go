package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// The filters in this file operate on luminance. Colour input is converted
// with ToGray first, which discards colour and alpha.

// MedianFilter replaces each pixel with the median of the
// (2*xRadius+1) x (2*yRadius+1) window around it. Pixels beyond the border
// repeat the nearest edge pixel.
func MedianFilter(img image.Image, xRadius, yRadius int) (*image.Gray, error) {
	if xRadius < 0 || yRadius < 0 {
		return nil, fmt.Errorf("%w: median radius (%d,%d)", ErrInvalidParameter, xRadius, yRadius)
	}

	src := ToGray(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewGray(src.Rect)
	count := (2*xRadius + 1) * (2*yRadius + 1)
	rank := count / 2

	var hist [256]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hist = [256]int{}
			for ky := -yRadius; ky <= yRadius; ky++ {
				row := clamp(y+ky, 0, h-1) * src.Stride
				for kx := -xRadius; kx <= xRadius; kx++ {
					hist[src.Pix[row+clamp(x+kx, 0, w-1)]]++
				}
			}

			seen := 0
			for v, n := range hist {
				seen += n
				if seen > rank {
					out.Pix[y*out.Stride+x] = uint8(v)
					break
				}
			}
		}
	}
	return out, nil
}

// BilateralFilter smooths while preserving edges.
//
// Each output pixel is the weighted mean of its neighbours within radius
// windowSize, where a neighbour's weight is the product of a spatial Gaussian
// (sigmaSpatial, over pixel distance) and a range Gaussian (sigmaColor, over
// intensity difference). Neighbours outside the image are skipped.
func BilateralFilter(img image.Image, windowSize int, sigmaColor, sigmaSpatial float64) (*image.Gray, error) {
	if windowSize < 0 || sigmaColor <= 0 || sigmaSpatial <= 0 {
		return nil, fmt.Errorf("%w: bilateral window %d, sigmas (%g,%g)", ErrInvalidParameter, windowSize, sigmaColor, sigmaSpatial)
	}

	src := ToGray(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewGray(src.Rect)

	var rangeWeight [256]float64
	for d := range rangeWeight {
		rangeWeight[d] = math.Exp(-float64(d*d) / (2 * sigmaColor * sigmaColor))
	}
	side := 2*windowSize + 1
	spatial := make([]float64, side*side)
	for ky := -windowSize; ky <= windowSize; ky++ {
		for kx := -windowSize; kx <= windowSize; kx++ {
			spatial[(ky+windowSize)*side+kx+windowSize] = math.Exp(-float64(kx*kx+ky*ky) / (2 * sigmaSpatial * sigmaSpatial))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := int(src.Pix[y*src.Stride+x])
			var sum, norm float64
			for ky := -windowSize; ky <= windowSize; ky++ {
				ny := y + ky
				if ny < 0 || ny >= h {
					continue
				}
				for kx := -windowSize; kx <= windowSize; kx++ {
					nx := x + kx
					if nx < 0 || nx >= w {
						continue
					}
					v := int(src.Pix[ny*src.Stride+nx])
					d := v - center
					if d < 0 {
						d = -d
					}
					wt := spatial[(ky+windowSize)*side+kx+windowSize] * rangeWeight[d]
					sum += wt * float64(v)
					norm += wt
				}
			}
			out.Pix[y*out.Stride+x] = clampUint8(sum / norm)
		}
	}
	return out, nil
}

// convolveGray runs a bild convolution over a luminance buffer. Borders
// repeat the edge pixel and results are rounded to the nearest integer.
func convolveGray(src *image.Gray, k *convolution.Kernel) *image.Gray {
	rgba := convolution.Convolve(src, k, &convolution.Options{Bias: 0.5, Wrap: false, KeepAlpha: true})
	out := image.NewGray(src.Rect)
	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			out.Pix[y*out.Stride+x] = rgba.Pix[y*rgba.Stride+x*4]
		}
	}
	return out
}

// BoxFilter replaces each pixel with the mean of the
// (2*xRadius+1) x (2*yRadius+1) window around it.
func BoxFilter(img image.Image, xRadius, yRadius int) (*image.Gray, error) {
	if xRadius < 0 || yRadius < 0 {
		return nil, fmt.Errorf("%w: box radius (%d,%d)", ErrInvalidParameter, xRadius, yRadius)
	}

	kw, kh := 2*xRadius+1, 2*yRadius+1
	k := convolution.NewKernel(kw, kh)
	for i := range k.Matrix {
		k.Matrix[i] = 1 / float64(kw*kh)
	}
	return convolveGray(ToGray(img), k), nil
}

// Sharpen3x3 convolves luminance with the kernel
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
func Sharpen3x3(img image.Image) *image.Gray {
	k := convolution.NewKernel(3, 3)
	copy(k.Matrix, []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
	return convolveGray(ToGray(img), k)
}

// SharpenGaussian computes p + amount*(p - blur(p, sigma)) per pixel.
func SharpenGaussian(img image.Image, sigma, amount float64) (*image.Gray, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidParameter, sigma)
	}

	src := ToGray(img)
	blurred := imaging.Blur(src, sigma)
	out := image.NewGray(src.Rect)
	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			p := float64(src.Pix[y*src.Stride+x])
			b := float64(blurred.Pix[y*blurred.Stride+x*4])
			out.Pix[y*out.Stride+x] = clampUint8(p + amount*(p-b))
		}
	}
	return out, nil
}

// Laplacian applies the 4-neighbour Laplacian kernel
//
//	0  1  0
//	1 -4  1
//	0  1  0
//
// and maps each signed response to min(|v|, 255). Borders repeat the edge pixel.
func Laplacian(img image.Image) *image.Gray {
	// The signed response is needed before folding, which a clamping
	// convolution cannot provide.
	src := ToGray(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewGray(src.Rect)

	at := func(x, y int) int {
		return int(src.Pix[clamp(y, 0, h-1)*src.Stride+clamp(x, 0, w-1)])
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := at(x, y-1) + at(x-1, y) + at(x+1, y) + at(x, y+1) - 4*at(x, y)
			if v < 0 {
				v = -v
			}
			out.Pix[y*out.Stride+x] = uint8(min(v, 255))
		}
	}
	return out
}
