package imaging

import (
	"image"
	"math"
)

var (
	sobelX = [3][3]int{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Gradients holds per-pixel Sobel gradient magnitudes in row-major order.
type Gradients struct {
	Width     int
	Height    int
	Magnitude []uint16
}

// At returns the magnitude at (x, y).
func (g *Gradients) At(x, y int) uint16 {
	return g.Magnitude[y*g.Width+x]
}

// SobelGradients computes sqrt(gx^2 + gy^2) with the 3x3 Sobel kernels.
//
// Border pixels read their nearest in-bounds neighbour. Magnitudes saturate
// at the uint16 maximum, which 8-bit input never reaches.
func SobelGradients(gray *image.Gray) *Gradients {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	g := &Gradients{Width: w, Height: h, Magnitude: make([]uint16, w*h)}

	at := func(x, y int) int {
		x = clamp(x, 0, w-1)
		y = clamp(y, 0, h-1)
		return int(gray.Pix[y*gray.Stride+x])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var gx, gy int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			mag := math.Sqrt(float64(gx*gx + gy*gy))
			if mag > math.MaxUint16 {
				mag = math.MaxUint16
			}
			g.Magnitude[y*w+x] = uint16(mag)
		}
	}
	return g
}

// Image folds the 16-bit magnitudes into an 8-bit buffer by shifting right 8 bits.
func (g *Gradients) Image() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for i, m := range g.Magnitude {
		out.Pix[i] = uint8(m >> 8)
	}
	return out
}

// SobelImage converts img to luminance and returns its 8-bit gradient image.
func SobelImage(img image.Image) *image.Gray {
	return SobelGradients(ToGray(img)).Image()
}
