package ops

import (
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/seamcarve"
)

// Resize scales to Width x Height, or fits inside that box when
// KeepAspectRatio is set. Lanczos resampling.
type Resize struct {
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	KeepAspectRatio bool `json:"keep_aspect_ratio"`
}

func (*Resize) Name() string { return "resize" }

func (o *Resize) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Resize(img, o.Width, o.Height, o.KeepAspectRatio))
}

// ResizeWithFilter scales to exactly Width x Height with a named filter.
type ResizeWithFilter struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Filter string `json:"filter"`
}

func (*ResizeWithFilter) Name() string { return "resize_with_filter" }

func (o *ResizeWithFilter) Apply(img image.Image) (image.Image, error) {
	return result(imaging.ResizeWithFilter(img, o.Width, o.Height, o.Filter))
}

type Thumbnail struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

func (*Thumbnail) Name() string { return "thumbnail" }

func (o *Thumbnail) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Thumbnail(img, o.MaxWidth, o.MaxHeight))
}

type ThumbnailExact struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (*ThumbnailExact) Name() string { return "thumbnail_exact" }

func (o *ThumbnailExact) Apply(img image.Image) (image.Image, error) {
	return result(imaging.ThumbnailExact(img, o.Width, o.Height))
}

type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (*Crop) Name() string { return "crop" }

func (o *Crop) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Crop(img, o.X, o.Y, o.Width, o.Height))
}

// Rotate turns the image clockwise by a right angle. Other angles leave it
// unchanged.
type Rotate struct {
	Degrees int `json:"degrees"`
}

func (*Rotate) Name() string { return "rotate" }

func (o *Rotate) Apply(img image.Image) (image.Image, error) {
	return imaging.Rotate(img, o.Degrees), nil
}

// RotateAboutCenter turns the image clockwise by Theta radians, keeping its
// dimensions and filling uncovered pixels with Background.
type RotateAboutCenter struct {
	Theta      float64       `json:"theta"`
	Background imaging.Color `json:"background"`
}

func (*RotateAboutCenter) Name() string { return "rotate_about_center" }

func (o *RotateAboutCenter) Apply(img image.Image) (image.Image, error) {
	return imaging.RotateAboutCenter(img, o.Theta, o.Background), nil
}

type Translate struct {
	TX int `json:"tx"`
	TY int `json:"ty"`
}

func (*Translate) Name() string { return "translate" }

func (o *Translate) Apply(img image.Image) (image.Image, error) {
	return imaging.Translate(img, o.TX, o.TY), nil
}

type FlipHorizontal struct{}

func (*FlipHorizontal) Name() string { return "flip_horizontal" }

func (*FlipHorizontal) Apply(img image.Image) (image.Image, error) {
	return imaging.FlipHorizontal(img), nil
}

type FlipVertical struct{}

func (*FlipVertical) Name() string { return "flip_vertical" }

func (*FlipVertical) Apply(img image.Image) (image.Image, error) {
	return imaging.FlipVertical(img), nil
}

type Tile struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

func (*Tile) Name() string { return "tile" }

func (o *Tile) Apply(img image.Image) (image.Image, error) {
	return result(imaging.Tile(img, o.Cols, o.Rows))
}

// SeamCarveWidth narrows the image to Width columns by removing
// low-energy seams. Height is unchanged.
type SeamCarveWidth struct {
	Width int `json:"width"`
}

func (*SeamCarveWidth) Name() string { return "seam_carve_width" }

func (o *SeamCarveWidth) Apply(img image.Image) (image.Image, error) {
	return result(seamcarve.CarveWidth(img, o.Width))
}
