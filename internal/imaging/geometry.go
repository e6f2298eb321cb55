package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Crop extracts the region of size width x height at (x, y).
//
// The region is clamped to the image: an origin past the right or bottom
// edge, or a size running past it, is trimmed rather than rejected. A region
// that is empty after clamping fails with ErrInvalidDimension.
func Crop(img image.Image, x, y, width, height int) (*image.NRGBA, error) {
	if x < 0 || y < 0 || width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: crop (%d,%d) %dx%d has a negative component", ErrInvalidParameter, x, y, width, height)
	}

	b := img.Bounds()
	x = min(x, b.Dx())
	y = min(y, b.Dy())
	width = min(width, b.Dx()-x)
	height = min(height, b.Dy()-y)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: crop region is empty", ErrInvalidDimension)
	}

	r := image.Rect(x, y, x+width, y+height).Add(b.Min)
	return imaging.Crop(img, r), nil
}

// NormalizeDegrees maps any integer angle into [0, 360).
func NormalizeDegrees(deg int) int {
	return ((deg % 360) + 360) % 360
}

// Rotate turns img clockwise by a multiple of 90 degrees.
//
// The angle is normalized modulo 360 first. Angles other than 0, 90, 180 and
// 270 return an unchanged copy; use RotateAboutCenter for arbitrary angles.
func Rotate(img image.Image, degrees int) *image.NRGBA {
	// imaging rotates counter-clockwise.
	switch NormalizeDegrees(degrees) {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	default:
		return ToNRGBA(img)
	}
}

// RotateAboutCenter rotates img clockwise by theta radians around its
// centre, keeping the original dimensions.
//
// Each output pixel is sampled bilinearly from the inverse-rotated source
// position. Samples falling outside the source take the background colour.
func RotateAboutCenter(img image.Image, theta float64, bg Color) *image.NRGBA {
	src := ToNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(src.Rect)

	cx := float64(w)/2 - 0.5
	cy := float64(h)/2 - 0.5
	sin, cos := math.Sincos(theta)
	bgc := bg.NRGBA()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			sx := cos*dx + sin*dy + cx
			sy := -sin*dx + cos*dy + cy
			interpolatePoint(dst, x, y, src, sx, sy, bgc)
		}
	}
	return dst
}

// interpolatePoint writes the bilinear sample of src at (xf, yf) into dst.
// Neighbours outside src contribute the background colour.
func interpolatePoint(dst *image.NRGBA, dstX, dstY int, src *image.NRGBA, xf, yf float64, bg color.NRGBA) {
	j := dstY*dst.Stride + dstX*4
	d := dst.Pix[j : j+4 : j+4]

	x0 := int(math.Floor(xf))
	y0 := int(math.Floor(yf))
	bounds := src.Bounds()
	if !image.Pt(x0, y0).In(image.Rect(bounds.Min.X-1, bounds.Min.Y-1, bounds.Max.X, bounds.Max.Y)) {
		d[0], d[1], d[2], d[3] = bg.R, bg.G, bg.B, bg.A
		return
	}

	xq := xf - float64(x0)
	yq := yf - float64(y0)
	points := [4]image.Point{{x0, y0}, {x0 + 1, y0}, {x0, y0 + 1}, {x0 + 1, y0 + 1}}
	weights := [4]float64{(1 - xq) * (1 - yq), xq * (1 - yq), (1 - xq) * yq, xq * yq}

	var r, g, b, a float64
	for i, p := range points {
		px := bg
		if p.In(bounds) {
			px = src.NRGBAAt(p.X, p.Y)
		}
		wa := float64(px.A) * weights[i]
		r += float64(px.R) * wa
		g += float64(px.G) * wa
		b += float64(px.B) * wa
		a += wa
	}
	if a == 0 {
		d[0], d[1], d[2], d[3] = 0, 0, 0, 0
		return
	}
	d[0] = clampUint8(r / a)
	d[1] = clampUint8(g / a)
	d[2] = clampUint8(b / a)
	d[3] = clampUint8(a)
}

// Translate shifts img by (dx, dy) pixels. Uncovered pixels are transparent
// and content shifted past the edge is discarded.
func Translate(img image.Image, dx, dy int) *image.NRGBA {
	src := ToNRGBA(img)
	dst := image.NewNRGBA(src.Rect)
	stamp(dst, src, image.Pt(dx, dy))
	return dst
}

// stamp copies src into dst with its origin at p, clipped to dst. Pixels
// are copied byte for byte so translucent colour survives unchanged.
func stamp(dst, src *image.NRGBA, p image.Point) {
	r := src.Rect.Sub(src.Rect.Min).Add(p).Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		so := src.PixOffset(src.Rect.Min.X+r.Min.X-p.X, src.Rect.Min.Y+y-p.Y)
		do := dst.PixOffset(r.Min.X, y)
		copy(dst.Pix[do:do+n], src.Pix[so:so+n])
	}
}

// FlipHorizontal mirrors img left to right.
func FlipHorizontal(img image.Image) *image.NRGBA {
	return imaging.FlipH(img)
}

// FlipVertical mirrors img top to bottom.
func FlipVertical(img image.Image) *image.NRGBA {
	return imaging.FlipV(img)
}

// Tile repeats img cols times across and rows times down on a canvas of
// width*cols x height*rows, stamping copies left to right, top to bottom.
func Tile(img image.Image, cols, rows int) (*image.NRGBA, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: tile grid %dx%d", ErrInvalidDimension, cols, rows)
	}

	src := ToNRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, w*cols, h*rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			stamp(canvas, src, image.Pt(c*w, r*h))
		}
	}
	return canvas, nil
}

// Overlay composites top onto base with its top-left corner at (x, y).
//
// The offset may be negative or push top partially or entirely outside
// base; only the overlapping region is blended, using standard source-over
// alpha compositing. The result has the dimensions of base.
func Overlay(base, top image.Image, x, y int) *image.NRGBA {
	return imaging.Overlay(ToNRGBA(base), top, image.Pt(x, y), 1.0)
}

// Blank returns a width x height canvas filled with c.
func Blank(width, height int, c Color) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: blank canvas %dx%d", ErrInvalidDimension, width, height)
	}
	return imaging.New(width, height, c.NRGBA()), nil
}
