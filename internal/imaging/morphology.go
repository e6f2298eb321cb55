package imaging

import (
	"fmt"
	"image"
)

// Binary morphology treats any non-zero luminance as foreground. Distances
// use the L-infinity (chessboard) norm, so a radius r covers a
// (2r+1) x (2r+1) square.

const unreachable = 1 << 30

// chessboardDistance returns, for each pixel, the L-infinity distance to the
// nearest pixel for which isSource is true, or unreachable if there is none.
func chessboardDistance(gray *image.Gray, isSource func(v uint8) bool) []int {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	d := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isSource(gray.Pix[y*gray.Stride+x]) {
				d[y*w+x] = 0
			} else {
				d[y*w+x] = unreachable
			}
		}
	}

	relax := func(i, x, y int) {
		if x < 0 || y < 0 || x >= w || y >= h {
			return
		}
		if v := d[y*w+x] + 1; v < d[i] {
			d[i] = v
		}
	}

	// Forward pass over the upper-left half of the neighbourhood, backward
	// over the lower-right half.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			relax(i, x-1, y-1)
			relax(i, x, y-1)
			relax(i, x+1, y-1)
			relax(i, x-1, y)
		}
	}
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			relax(i, x+1, y+1)
			relax(i, x, y+1)
			relax(i, x-1, y+1)
			relax(i, x+1, y)
		}
	}
	return d
}

func isForeground(v uint8) bool { return v > 0 }
func isBackground(v uint8) bool { return v == 0 }

// DistanceTransform replaces each pixel with its L-infinity distance to the
// nearest foreground pixel, saturated at 255. Foreground pixels become 0;
// an image without foreground is 255 everywhere.
func DistanceTransform(img image.Image) *image.Gray {
	src := ToGray(img)
	d := chessboardDistance(src, isForeground)
	out := image.NewGray(src.Rect)
	for i, v := range d {
		out.Pix[i] = uint8(min(v, 255))
	}
	return out
}

func checkRadius(radius int) error {
	if radius < 0 {
		return fmt.Errorf("%w: radius %d", ErrInvalidParameter, radius)
	}
	return nil
}

// Dilate sets every pixel within radius of the foreground to 255 and all
// others to 0.
func Dilate(img image.Image, radius int) (*image.Gray, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return dilate(ToGray(img), radius), nil
}

func dilate(src *image.Gray, radius int) *image.Gray {
	d := chessboardDistance(src, isForeground)
	out := image.NewGray(src.Rect)
	for i, v := range d {
		if v <= radius {
			out.Pix[i] = 255
		}
	}
	return out
}

// Erode keeps as foreground (255) only the pixels farther than radius from
// every background pixel.
func Erode(img image.Image, radius int) (*image.Gray, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return erode(ToGray(img), radius), nil
}

func erode(src *image.Gray, radius int) *image.Gray {
	d := chessboardDistance(src, isBackground)
	out := image.NewGray(src.Rect)
	for i, v := range d {
		if v > radius {
			out.Pix[i] = 255
		}
	}
	return out
}

// Open erodes then dilates, removing foreground specks smaller than the radius.
func Open(img image.Image, radius int) (*image.Gray, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return dilate(erode(ToGray(img), radius), radius), nil
}

// Close dilates then erodes, filling background gaps smaller than the radius.
func Close(img image.Image, radius int) (*image.Gray, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return erode(dilate(ToGray(img), radius), radius), nil
}
