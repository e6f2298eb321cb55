package imaging

import (
	"image"
	"math"
)

// Canny performs Canny edge detection and returns a binary edge map.
//
// White pixels (255) are edges, black pixels (0) are not.
//
// Parameters:
//   - img: Source image (color or grayscale). Colour input is converted to
//     luminance first.
//   - low: Gradient magnitude below which a pixel is never an edge.
//   - high: Gradient magnitude at or above which a pixel is always an edge.
//
// Thresholds are compared against raw Sobel magnitudes of 8-bit intensities,
// so useful values range from 0 to roughly 1443.
//
// # Algorithm
//
//  1. Grayscale conversion with Rec. 709 weights
//
//  2. Gaussian blur: 5x5 kernel (sigma ≈ 1.4) to reduce noise
//
//  3. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  4. Non-maximum suppression: thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction
//
//  5. Hysteresis thresholding:
//     - Pixels at or above high are strong edges (always kept)
//     - Pixels between low and high are weak edges, kept only when
//     8-connected (possibly through other weak edges) to a strong edge
//     - Pixels below low are discarded
func Canny(img image.Image, low, high float64) *image.Gray {
	src := ToGray(img)
	width, height := src.Rect.Dx(), src.Rect.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = float64(src.Pix[y*src.Stride+x])
		}
	}

	blurred := gaussianBlur5(gray, width, height)

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += blurred[py][px] * float64(sobelX[ky+1][kx+1])
					gy += blurred[py][px] * float64(sobelY[ky+1][kx+1])
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	suppressed := nonMaxSuppress(magnitude, direction, width, height)
	return hysteresis(suppressed, width, height, low, high)
}

// nonMaxSuppress keeps a magnitude only where it is a local maximum along
// the gradient direction. The one-pixel frame is always suppressed.
func nonMaxSuppress(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y][x-1], magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[y-1][x+1], magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[y-1][x], magnitude[y+1][x]
			default:
				n1, n2 = magnitude[y-1][x-1], magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis marks strong pixels and grows them through connected weak pixels.
func hysteresis(suppressed [][]float64, width, height int, low, high float64) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, width, height))
	var stack []image.Point

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] >= high && suppressed[y][x] > 0 && out.Pix[y*out.Stride+x] == 0 {
				out.Pix[y*out.Stride+x] = 255
				stack = append(stack, image.Pt(x, y))
			}

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						nx, ny := p.X+kx, p.Y+ky
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						i := ny*out.Stride + nx
						if out.Pix[i] == 0 && suppressed[ny][nx] >= low && suppressed[ny][nx] > 0 {
							out.Pix[i] = 255
							stack = append(stack, image.Pt(nx, ny))
						}
					}
				}
			}
		}
	}
	return out
}

// gaussianBlur5 applies a 5x5 Gaussian blur to reduce noise before edge detection.
//
// Uses a standard 5x5 Gaussian kernel with sigma ≈ 1.4:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
//
// Total kernel sum = 273, used for normalization.
// Border pixels use clamped (replicated) edge values.
func gaussianBlur5(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}
