package ops

import (
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

type Grayscale struct{}

func (*Grayscale) Name() string { return "grayscale" }

func (*Grayscale) Apply(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

// AdjustBrightness adds Value to every colour channel, saturating.
type AdjustBrightness struct {
	Value int `json:"value"`
}

func (*AdjustBrightness) Name() string { return "adjust_brightness" }

func (o *AdjustBrightness) Apply(img image.Image) (image.Image, error) {
	return imaging.Brighten(img, o.Value), nil
}

// AdjustContrast changes contrast by Value percent; negative lowers it.
type AdjustContrast struct {
	Value float64 `json:"value"`
}

func (*AdjustContrast) Name() string { return "adjust_contrast" }

func (o *AdjustContrast) Apply(img image.Image) (image.Image, error) {
	return imaging.Contrast(img, o.Value), nil
}

type Blur struct {
	Sigma float64 `json:"sigma"`
}

func (*Blur) Name() string { return "blur" }

func (o *Blur) Apply(img image.Image) (image.Image, error) {
	return imaging.Blur(img, o.Sigma), nil
}

// Sharpen is an unsharp mask. Threshold is the minimum per-channel
// difference that gets sharpened.
type Sharpen struct {
	Sigma     float64 `json:"sigma"`
	Threshold int     `json:"threshold"`
}

func (*Sharpen) Name() string { return "sharpen" }

func (o *Sharpen) Apply(img image.Image) (image.Image, error) {
	return imaging.Unsharpen(img, o.Sigma, o.Threshold), nil
}

type InvertColors struct{}

func (*InvertColors) Name() string { return "invert_colors" }

func (*InvertColors) Apply(img image.Image) (image.Image, error) {
	return imaging.Invert(img), nil
}

type HueRotate struct {
	Degrees int `json:"degrees"`
}

func (*HueRotate) Name() string { return "huerotate" }

func (o *HueRotate) Apply(img image.Image) (image.Image, error) {
	return imaging.HueRotate(img, o.Degrees), nil
}

// ExtractChannel returns one channel as luminance: 0=R 1=G 2=B 3=A.
type ExtractChannel struct {
	Channel int `json:"channel"`
}

func (*ExtractChannel) Name() string { return "extract_channel" }

func (o *ExtractChannel) Apply(img image.Image) (image.Image, error) {
	return imaging.ExtractChannel(img, o.Channel), nil
}

type GaussianNoise struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Seed   uint64  `json:"seed"`
}

func (*GaussianNoise) Name() string { return "gaussian_noise" }

func (o *GaussianNoise) Apply(img image.Image) (image.Image, error) {
	return result(imaging.GaussianNoise(img, o.Mean, o.StdDev, o.Seed))
}

// SaltAndPepperNoise replaces a Rate fraction of pixels with black or white.
type SaltAndPepperNoise struct {
	Rate float64 `json:"rate"`
	Seed uint64  `json:"seed"`
}

func (*SaltAndPepperNoise) Name() string { return "salt_and_pepper_noise" }

func (o *SaltAndPepperNoise) Apply(img image.Image) (image.Image, error) {
	return result(imaging.SaltAndPepper(img, o.Rate, o.Seed))
}
