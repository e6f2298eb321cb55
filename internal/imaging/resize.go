package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// filters is the closed table of named resampling filters.
var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"triangle":   imaging.Linear,
	"bilinear":   imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"cubic":      imaging.CatmullRom,
	"gaussian":   imaging.Gaussian,
	"lanczos":    imaging.Lanczos,
	"lanczos3":   imaging.Lanczos,
}

// ParseFilter resolves a case-insensitive filter name. Unrecognized names
// resolve to Lanczos, the highest-quality filter; this never fails.
func ParseFilter(name string) imaging.ResampleFilter {
	if f, ok := filters[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f
	}
	return imaging.Lanczos
}

// FitDimensions returns the largest size with the aspect ratio of
// srcW x srcH that fits inside maxW x maxH. Each side is rounded to the
// nearest integer and is at least 1. Sources smaller than the box are scaled up.
func FitDimensions(srcW, srcH, maxW, maxH int) (int, int) {
	ratio := math.Min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * ratio))
	h := int(math.Round(float64(srcH) * ratio))
	return max(w, 1), max(h, 1)
}

func checkTarget(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalidDimension, width, height)
	}
	return nil
}

// Resize scales img with the Lanczos filter.
//
// With keepAspect the result fits inside width x height preserving the input
// ratio (see FitDimensions); otherwise it is exactly width x height.
func Resize(img image.Image, width, height int, keepAspect bool) (*image.NRGBA, error) {
	if err := checkTarget(width, height); err != nil {
		return nil, err
	}
	if keepAspect {
		b := img.Bounds()
		width, height = FitDimensions(b.Dx(), b.Dy(), width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// ResizeWithFilter scales img to exactly width x height using the named filter.
func ResizeWithFilter(img image.Image, width, height int, filter string) (*image.NRGBA, error) {
	if err := checkTarget(width, height); err != nil {
		return nil, err
	}
	return imaging.Resize(img, width, height, ParseFilter(filter)), nil
}

// Thumbnail shrinks img to fit inside maxWidth x maxHeight, preserving aspect
// ratio with a fast bilinear filter. Images already inside the box are
// returned as an unscaled copy.
func Thumbnail(img image.Image, maxWidth, maxHeight int) (*image.NRGBA, error) {
	if err := checkTarget(maxWidth, maxHeight); err != nil {
		return nil, err
	}
	return ToNRGBA(resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Bilinear)), nil
}

// ThumbnailExact scales img to exactly width x height with the fast bilinear filter.
func ThumbnailExact(img image.Image, width, height int) (*image.NRGBA, error) {
	if err := checkTarget(width, height); err != nil {
		return nil, err
	}
	return ToNRGBA(resize.Resize(uint(width), uint(height), img, resize.Bilinear)), nil
}
