package imaging

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit non-premultiplied RGBA value.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
//
// In JSON a Color is written as {"r":..,"g":..,"b":..,"a":..}. When decoding,
// a "#RRGGBB" or "#RRGGBBAA" string is accepted as well, and an object that
// omits "a" is treated as opaque.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NRGBA converts c to the standard library colour type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns "#RRGGBB"; alpha is not included.
func (c Color) Hex() string {
	return strings.ToUpper(c.colorful().Hex())
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// HSL returns the hue, saturation and lightness of the colour's RGB part.
func (c Color) HSL() HSLColor {
	h, s, l := c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// UnmarshalJSON accepts either the object form or a hex string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseHexColor(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var obj struct {
		R uint8  `json:"r"`
		G uint8  `json:"g"`
		B uint8  `json:"b"`
		A *uint8 `json:"a"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("color must be a hex string or an {r,g,b,a} object: %w", err)
	}
	*c = Color{R: obj.R, G: obj.G, B: obj.B, A: 255}
	if obj.A != nil {
		c.A = *obj.A
	}
	return nil
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func ParseHexColor(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return Color{}, fmt.Errorf("%w: empty color string", ErrInvalidParameter)
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	alpha := uint8(255)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: invalid alpha in %q", ErrInvalidParameter, hex)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// PixelAt returns the colour at (x, y), with coordinates relative to the
// image's top-left corner.
//
// Returns ErrOutOfBounds when the coordinate lies outside [0,width) x [0,height).
//
// # Color Conversion
//
// The native colour is converted to 8-bit non-premultiplied components, so a
// half-transparent red pixel reads as {255, 0, 0, 128} regardless of how the
// decoder stored it.
func PixelAt(img image.Image, x, y int) (Color, error) {
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return Color{}, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, y, b.Dx(), b.Dy())
	}

	c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}
