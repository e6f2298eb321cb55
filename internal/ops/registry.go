package ops

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// ErrUnknownOperation is returned when a name is not in the catalog.
var ErrUnknownOperation = errors.New("unknown operation")

// Operation is one catalog entry together with its parameters.
//
// Apply must not modify img. The result is either *image.NRGBA or
// *image.Gray with origin (0,0).
type Operation interface {
	Name() string
	Apply(img image.Image) (image.Image, error)
}

type entry struct {
	description string
	new         func() Operation
}

// defaultColor is used by the drawing operations when no colour is given.
var defaultColor = imaging.Color{R: 255, A: 255}

var registry = map[string]entry{
	// Geometry
	"resize":              {"Resize to width x height; keep_aspect_ratio fits inside the box instead", func() Operation { return &Resize{} }},
	"resize_with_filter":  {"Resize to exactly width x height using filter (nearest, triangle, catmullrom, gaussian, lanczos)", func() Operation { return &ResizeWithFilter{Filter: "lanczos"} }},
	"thumbnail":           {"Shrink to fit inside max_width x max_height, keeping aspect ratio", func() Operation { return &Thumbnail{} }},
	"thumbnail_exact":     {"Shrink to exactly width x height with a fast filter", func() Operation { return &ThumbnailExact{} }},
	"crop":                {"Cut the x, y, width, height rectangle, clamped to the image", func() Operation { return &Crop{} }},
	"rotate":              {"Rotate clockwise by 90, 180 or 270 degrees; other angles leave the image unchanged", func() Operation { return &Rotate{} }},
	"rotate_about_center": {"Rotate clockwise by theta radians about the centre, keeping dimensions", func() Operation { return &RotateAboutCenter{} }},
	"translate":           {"Shift content by tx, ty pixels; uncovered pixels become transparent", func() Operation { return &Translate{} }},
	"flip_horizontal":     {"Mirror left to right", func() Operation { return &FlipHorizontal{} }},
	"flip_vertical":       {"Mirror top to bottom", func() Operation { return &FlipVertical{} }},
	"tile":                {"Repeat the image cols x rows times", func() Operation { return &Tile{Cols: 2, Rows: 2} }},
	"seam_carve_width":    {"Narrow to width by removing low-energy seams (content-aware)", func() Operation { return &SeamCarveWidth{} }},

	// Colour
	"grayscale":             {"Convert to luminance (Rec. 709)", func() Operation { return &Grayscale{} }},
	"adjust_brightness":     {"Add value to each colour channel", func() Operation { return &AdjustBrightness{} }},
	"adjust_contrast":       {"Change contrast by value percent", func() Operation { return &AdjustContrast{} }},
	"blur":                  {"Gaussian blur with sigma", func() Operation { return &Blur{Sigma: 1} }},
	"sharpen":               {"Unsharp mask with sigma and threshold", func() Operation { return &Sharpen{Sigma: 1} }},
	"invert_colors":         {"Invert colour channels, keeping alpha", func() Operation { return &InvertColors{} }},
	"huerotate":             {"Rotate hue by degrees", func() Operation { return &HueRotate{} }},
	"extract_channel":       {"Extract channel 0=R 1=G 2=B 3=A as luminance", func() Operation { return &ExtractChannel{} }},
	"gaussian_noise":        {"Add Gaussian noise with mean, stddev and seed", func() Operation { return &GaussianNoise{StdDev: 10} }},
	"salt_and_pepper_noise": {"Replace a rate fraction of pixels with black or white", func() Operation { return &SaltAndPepperNoise{Rate: 0.05} }},

	// Filters and edges
	"gaussian_blur":    {"Gaussian blur; sigma must be positive", func() Operation { return &GaussianBlur{Sigma: 1} }},
	"median_filter":    {"Median of the (2*x_radius+1) x (2*y_radius+1) window on luminance", func() Operation { return &MedianFilter{XRadius: 1, YRadius: 1} }},
	"bilateral_filter": {"Edge-preserving smoothing on luminance", func() Operation { return &BilateralFilter{WindowSize: 5, SigmaColor: 25, SigmaSpatial: 3} }},
	"box_filter":       {"Mean of the (2*x_radius+1) x (2*y_radius+1) window on luminance", func() Operation { return &BoxFilter{XRadius: 1, YRadius: 1} }},
	"sharpen3x3":       {"3x3 sharpening kernel on luminance", func() Operation { return &Sharpen3x3{} }},
	"sharpen_gaussian": {"Sharpen luminance by amount against a Gaussian blur of sigma", func() Operation { return &SharpenGaussian{Sigma: 1, Amount: 1} }},
	"laplacian_filter": {"Absolute Laplacian response of luminance", func() Operation { return &LaplacianFilter{} }},
	"canny":            {"Canny edge map with low and high gradient thresholds", func() Operation { return &Canny{LowThreshold: 50, HighThreshold: 100} }},
	"sobel_gradients":  {"Sobel gradient magnitude of luminance", func() Operation { return &SobelGradients{} }},

	// Thresholds
	"adaptive_threshold": {"Foreground where luminance is at least the local block mean", func() Operation { return &AdaptiveThreshold{BlockRadius: 5} }},
	"otsu_threshold":     {"Binary threshold at the Otsu level", func() Operation { return &OtsuThreshold{} }},
	"threshold":          {"Binary threshold at value, optionally inverted", func() Operation { return &Threshold{Value: 128} }},
	"equalize_histogram": {"Equalise the luminance histogram", func() Operation { return &EqualizeHistogram{} }},
	"stretch_contrast":   {"Map luminance input_lower..input_upper onto output_lower..output_upper", func() Operation { return &StretchContrast{InputUpper: 255, OutputUpper: 255} }},

	// Morphology
	"dilate":              {"Binary dilation with a square of radius", func() Operation { return &Dilate{Radius: 1} }},
	"erode":               {"Binary erosion with a square of radius", func() Operation { return &Erode{Radius: 1} }},
	"morphological_open":  {"Erode then dilate", func() Operation { return &MorphologicalOpen{Radius: 1} }},
	"morphological_close": {"Dilate then erode", func() Operation { return &MorphologicalClose{Radius: 1} }},
	"distance_transform":  {"Chessboard distance to the nearest foreground pixel", func() Operation { return &DistanceTransform{} }},

	// Drawing
	"draw_line":             {"Line from start to end", func() Operation { return &DrawLine{Color: defaultColor} }},
	"draw_antialiased_line": {"Antialiased line from start to end", func() Operation { return &DrawAntialiasedLine{Color: defaultColor} }},
	"draw_hollow_rect":      {"Rectangle outline", func() Operation { return &DrawHollowRect{rect{Color: defaultColor}} }},
	"draw_filled_rect":      {"Filled rectangle", func() Operation { return &DrawFilledRect{rect{Color: defaultColor}} }},
	"draw_hollow_circle":    {"Circle outline", func() Operation { return &DrawHollowCircle{circle{Color: defaultColor}} }},
	"draw_filled_circle":    {"Filled circle", func() Operation { return &DrawFilledCircle{circle{Color: defaultColor}} }},
	"draw_hollow_ellipse":   {"Axis-aligned ellipse outline", func() Operation { return &DrawHollowEllipse{ellipse{Color: defaultColor}} }},
	"draw_filled_ellipse":   {"Filled axis-aligned ellipse", func() Operation { return &DrawFilledEllipse{ellipse{Color: defaultColor}} }},
	"draw_hollow_polygon":   {"Closed polygon outline through points", func() Operation { return &DrawHollowPolygon{polygon{Color: defaultColor}} }},
	"draw_filled_polygon":   {"Filled polygon through points", func() Operation { return &DrawFilledPolygon{polygon{Color: defaultColor}} }},
	"draw_cubic_bezier":     {"Cubic Bezier curve from start to end", func() Operation { return &DrawCubicBezier{Color: defaultColor} }},
	"draw_cross":            {"3x3 cross marker at center", func() Operation { return &DrawCross{Color: defaultColor} }},
}

// Lookup returns a fresh operation carrying its default parameters.
func Lookup(name string) (Operation, bool) {
	e, ok := registry[name]
	if !ok {
		return nil, false
	}
	return e.new(), true
}

// Decode builds the named operation and fills it from params. Fields absent
// from params keep their defaults; unknown fields are rejected.
func Decode(name string, params json.RawMessage) (Operation, error) {
	op, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	params = bytes.TrimSpace(params)
	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		return op, nil
	}

	dec := json.NewDecoder(bytes.NewReader(params))
	dec.DisallowUnknownFields()
	if err := dec.Decode(op); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", imaging.ErrInvalidParameter, name, err)
	}
	return op, nil
}

// Names lists every operation in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description of name, or "" if unknown.
func Describe(name string) string {
	return registry[name].description
}

func result[T image.Image](img T, err error) (image.Image, error) {
	if err != nil {
		return nil, err
	}
	return img, nil
}
