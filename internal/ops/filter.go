package ops

import (
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// GaussianBlur differs from Blur in rejecting a non-positive sigma.
type GaussianBlur struct {
	Sigma float64 `json:"sigma"`
}

func (*GaussianBlur) Name() string { return "gaussian_blur" }

func (o *GaussianBlur) Apply(img image.Image) (image.Image, error) {
	return result(imaging.GaussianBlur(img, o.Sigma))
}

type MedianFilter struct {
	XRadius int `json:"x_radius"`
	YRadius int `json:"y_radius"`
}

func (*MedianFilter) Name() string { return "median_filter" }

func (o *MedianFilter) Apply(img image.Image) (image.Image, error) {
	return result(imaging.MedianFilter(img, o.XRadius, o.YRadius))
}

type BilateralFilter struct {
	WindowSize   int     `json:"window_size"`
	SigmaColor   float64 `json:"sigma_color"`
	SigmaSpatial float64 `json:"sigma_spatial"`
}

func (*BilateralFilter) Name() string { return "bilateral_filter" }

func (o *BilateralFilter) Apply(img image.Image) (image.Image, error) {
	return result(imaging.BilateralFilter(img, o.WindowSize, o.SigmaColor, o.SigmaSpatial))
}

type BoxFilter struct {
	XRadius int `json:"x_radius"`
	YRadius int `json:"y_radius"`
}

func (*BoxFilter) Name() string { return "box_filter" }

func (o *BoxFilter) Apply(img image.Image) (image.Image, error) {
	return result(imaging.BoxFilter(img, o.XRadius, o.YRadius))
}

type Sharpen3x3 struct{}

func (*Sharpen3x3) Name() string { return "sharpen3x3" }

func (*Sharpen3x3) Apply(img image.Image) (image.Image, error) {
	return imaging.Sharpen3x3(img), nil
}

type SharpenGaussian struct {
	Sigma  float64 `json:"sigma"`
	Amount float64 `json:"amount"`
}

func (*SharpenGaussian) Name() string { return "sharpen_gaussian" }

func (o *SharpenGaussian) Apply(img image.Image) (image.Image, error) {
	return result(imaging.SharpenGaussian(img, o.Sigma, o.Amount))
}

type LaplacianFilter struct{}

func (*LaplacianFilter) Name() string { return "laplacian_filter" }

func (*LaplacianFilter) Apply(img image.Image) (image.Image, error) {
	return imaging.Laplacian(img), nil
}

// Canny thresholds are raw gradient magnitudes, not fractions.
type Canny struct {
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`
}

func (*Canny) Name() string { return "canny" }

func (o *Canny) Apply(img image.Image) (image.Image, error) {
	return imaging.Canny(img, o.LowThreshold, o.HighThreshold), nil
}

type SobelGradients struct{}

func (*SobelGradients) Name() string { return "sobel_gradients" }

func (*SobelGradients) Apply(img image.Image) (image.Image, error) {
	return imaging.SobelImage(img), nil
}

type AdaptiveThreshold struct {
	BlockRadius int `json:"block_radius"`
}

func (*AdaptiveThreshold) Name() string { return "adaptive_threshold" }

func (o *AdaptiveThreshold) Apply(img image.Image) (image.Image, error) {
	return result(imaging.AdaptiveThreshold(img, o.BlockRadius))
}

type OtsuThreshold struct{}

func (*OtsuThreshold) Name() string { return "otsu_threshold" }

func (*OtsuThreshold) Apply(img image.Image) (image.Image, error) {
	return imaging.OtsuThreshold(img), nil
}

// Threshold maps luminance above Value to 255 and the rest to 0, or the
// reverse when Invert is set.
type Threshold struct {
	Value  uint8 `json:"value"`
	Invert bool  `json:"invert"`
}

func (*Threshold) Name() string { return "threshold" }

func (o *Threshold) Apply(img image.Image) (image.Image, error) {
	return imaging.Threshold(img, o.Value, o.Invert), nil
}

type EqualizeHistogram struct{}

func (*EqualizeHistogram) Name() string { return "equalize_histogram" }

func (*EqualizeHistogram) Apply(img image.Image) (image.Image, error) {
	return imaging.EqualizeHistogram(img), nil
}

type StretchContrast struct {
	InputLower  uint8 `json:"input_lower"`
	InputUpper  uint8 `json:"input_upper"`
	OutputLower uint8 `json:"output_lower"`
	OutputUpper uint8 `json:"output_upper"`
}

func (*StretchContrast) Name() string { return "stretch_contrast" }

func (o *StretchContrast) Apply(img image.Image) (image.Image, error) {
	return result(imaging.StretchContrast(img, o.InputLower, o.InputUpper, o.OutputLower, o.OutputUpper))
}

// Dilate, Erode, MorphologicalOpen and MorphologicalClose work on the
// binarised luminance with a square (chessboard) structuring element.
type Dilate struct {
	Radius int `json:"radius"`
}

func (*Dilate) Name() string { return "dilate" }

func (o *Dilate) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Dilate(img, o.Radius))
}

type Erode struct {
	Radius int `json:"radius"`
}

func (*Erode) Name() string { return "erode" }

func (o *Erode) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Erode(img, o.Radius))
}

type MorphologicalOpen struct {
	Radius int `json:"radius"`
}

func (*MorphologicalOpen) Name() string { return "morphological_open" }

func (o *MorphologicalOpen) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Open(img, o.Radius))
}

type MorphologicalClose struct {
	Radius int `json:"radius"`
}

func (*MorphologicalClose) Name() string { return "morphological_close" }

func (o *MorphologicalClose) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Close(img, o.Radius))
}

type DistanceTransform struct{}

func (*DistanceTransform) Name() string { return "distance_transform" }

func (*DistanceTransform) Apply(img image.Image) (image.Image, error) {
	return imaging.DistanceTransform(img), nil
}
