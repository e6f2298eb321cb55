package seamcarve

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// CarveWidth removes vertical seams from img until it is width pixels wide.
//
// A target at or above the current width returns an unchanged copy. A zero
// target fails with imaging.ErrInvalidDimension. Height never changes.
func CarveWidth(img image.Image, width int) (*image.NRGBA, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: seam carving target width %d", imaging.ErrInvalidDimension, width)
	}

	current := imaging.ToNRGBA(img)
	for remaining := current.Rect.Dx() - width; remaining > 0; remaining-- {
		seam := FindVerticalSeam(Energy(current))
		current = RemoveVerticalSeam(current, seam)
	}
	return current, nil
}
