package seamcarve

import (
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Energy returns the cost of removing each pixel of img: its Sobel gradient
// magnitude folded to 8 bits. Higher values mark more visible detail.
func Energy(img image.Image) *image.Gray {
	return imaging.SobelGradients(imaging.ToGray(img)).Image()
}
