package seamcarve

import (
	"image"
)

// Seam holds one column index per row, top to bottom. Indices in adjacent
// rows differ by at most one.
type Seam []int

// FindVerticalSeam returns the minimum-cost seam through energy.
//
// # Algorithm
//
// cum[0][c] = e[0][c], and for later rows
// cum[r][c] = e[r][c] + min(cum[r-1][c-1], cum[r-1][c], cum[r-1][c+1]),
// skipping columns outside the image. The seam ends at the lowest-cost
// column of the last row (leftmost on ties) and is traced upward, at each
// row taking the parent that achieved the minimum. Ties prefer straight up,
// then left, then right, so the result is deterministic.
func FindVerticalSeam(energy *image.Gray) Seam {
	w, h := energy.Rect.Dx(), energy.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	cum := make([]uint64, w*h)
	e := func(x, y int) uint64 {
		return uint64(energy.Pix[y*energy.Stride+x])
	}
	for x := 0; x < w; x++ {
		cum[x] = e(x, 0)
	}
	for y := 1; y < h; y++ {
		prev := cum[(y-1)*w : y*w]
		for x := 0; x < w; x++ {
			best := prev[x]
			if x > 0 && prev[x-1] < best {
				best = prev[x-1]
			}
			if x+1 < w && prev[x+1] < best {
				best = prev[x+1]
			}
			cum[y*w+x] = e(x, y) + best
		}
	}

	seam := make(Seam, h)
	last := cum[(h-1)*w : h*w]
	col := 0
	for x := 1; x < w; x++ {
		if last[x] < last[col] {
			col = x
		}
	}
	seam[h-1] = col

	for y := h - 1; y > 0; y-- {
		prev := cum[(y-1)*w : y*w]
		next := col
		if col > 0 && prev[col-1] < prev[next] {
			next = col - 1
		}
		if col+1 < w && prev[col+1] < prev[next] {
			next = col + 1
		}
		col = next
		seam[y-1] = col
	}
	return seam
}

// Cost sums the energy along seam.
func Cost(energy *image.Gray, seam Seam) uint64 {
	var total uint64
	for y, x := range seam {
		total += uint64(energy.Pix[y*energy.Stride+x])
	}
	return total
}

// RemoveVerticalSeam returns a copy of img one column narrower, with the
// pixel at seam[y] deleted from every row y and the rest of the row shifted left.
func RemoveVerticalSeam(img *image.NRGBA, seam Seam) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w-1, h))
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+(w-1)*4]
		cut := seam[y] * 4
		copy(dst, src[:cut])
		copy(dst[cut:], src[cut+4:])
	}
	return out
}
