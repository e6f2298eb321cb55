package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrDecode reports bytes that could not be turned into pixels.
	ErrDecode = errors.New("decode failed")

	// ErrFormatUnknown reports input whose magic bytes match no supported format.
	ErrFormatUnknown = errors.New("unknown image format")

	// ErrUnsupportedFormat reports a format name outside the supported table.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEncode reports a buffer that the target encoder rejected.
	ErrEncode = errors.New("encode failed")
)

// Options tunes the encoders. Zero values fall back to the defaults below.
type Options struct {
	// JPEGQuality ranges 1-100.
	JPEGQuality int

	// PNGCompression is passed to png.Encoder.
	PNGCompression png.CompressionLevel

	// WebPLossless selects lossless WebP output.
	WebPLossless bool

	// WebPQuality ranges 0-100 and only applies to lossy output.
	WebPQuality float32

	// GIFColors is the palette size, 1-256.
	GIFColors int
}

const (
	DefaultJPEGQuality = 75
	DefaultWebPQuality = 80
	DefaultGIFColors   = 256
)

// DefaultOptions returns the encoder settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		JPEGQuality:    DefaultJPEGQuality,
		PNGCompression: png.DefaultCompression,
		WebPLossless:   true,
		WebPQuality:    DefaultWebPQuality,
		GIFColors:      DefaultGIFColors,
	}
}

// Codec decodes and encodes every supported container format.
// A Codec holds only immutable settings and is safe for concurrent use.
type Codec struct {
	opts Options
}

// New creates a Codec with the given options.
func New(opts Options) *Codec {
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	if opts.GIFColors < 1 || opts.GIFColors > 256 {
		opts.GIFColors = DefaultGIFColors
	}
	if opts.WebPQuality <= 0 || opts.WebPQuality > 100 {
		opts.WebPQuality = DefaultWebPQuality
	}
	return &Codec{opts: opts}
}

// Default creates a Codec with DefaultOptions.
func Default() *Codec {
	return New(DefaultOptions())
}

// Options returns the effective encoder settings.
func (c *Codec) Options() Options {
	return c.opts
}

// Decode detects the container format of data and decodes it.
//
// Returns:
//   - image.Image: the decoded pixels, in whatever layout the decoder produced.
//   - Format: the detected container format.
//   - error: wraps ErrDecode; also wraps ErrFormatUnknown when detection failed.
func (c *Codec) Decode(data []byte) (image.Image, Format, error) {
	f, err := Detect(data)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	img, err := decodeAs(bytes.NewReader(data), f)
	if err != nil {
		return nil, f, fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
	}
	return img, f, nil
}

// DecodeConfig reads only the header of data to report dimensions.
func (c *Codec) DecodeConfig(data []byte) (image.Config, Format, error) {
	f, err := Detect(data)
	if err != nil {
		return image.Config{}, FormatUnknown, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	r := bytes.NewReader(data)
	var cfg image.Config
	switch f {
	case PNG:
		cfg, err = png.DecodeConfig(r)
	case JPEG:
		cfg, err = jpeg.DecodeConfig(r)
	case GIF:
		cfg, err = gif.DecodeConfig(r)
	case WebP:
		cfg, err = webp.DecodeConfig(r)
	case BMP:
		cfg, err = bmp.DecodeConfig(r)
	case TIFF:
		cfg, err = tiff.DecodeConfig(r)
	case ICO:
		// The icon directory is tiny; decoding the selected entry is cheap.
		var img image.Image
		img, err = decodeICO(r)
		if err == nil {
			b := img.Bounds()
			cfg = image.Config{ColorModel: img.ColorModel(), Width: b.Dx(), Height: b.Dy()}
		}
	}
	if err != nil {
		return image.Config{}, f, fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
	}
	return cfg, f, nil
}

func decodeAs(r io.Reader, f Format) (image.Image, error) {
	switch f {
	case PNG:
		return png.Decode(r)
	case JPEG:
		return jpeg.Decode(r)
	case GIF:
		return gif.Decode(r)
	case WebP:
		return webp.Decode(r)
	case BMP:
		return bmp.Decode(r)
	case TIFF:
		return tiff.Decode(r)
	case ICO:
		return decodeICO(r)
	}
	return nil, ErrFormatUnknown
}

// Encode serializes img in the requested container format.
//
// JPEG output has no alpha channel; translucent pixels are written with
// their premultiplied colour. GIF output is quantized to the configured
// palette size.
func (c *Codec) Encode(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: c.opts.PNGCompression}
		err = enc.Encode(&buf, img)
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.opts.JPEGQuality})
	case GIF:
		err = gif.Encode(&buf, img, &gif.Options{NumColors: c.opts.GIFColors})
	case WebP:
		err = encodeWebP(&buf, img, c.opts)
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ICO:
		err = encodeICO(&buf, img)
	default:
		err = fmt.Errorf("no encoder for format %d", f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncode, f, err)
	}
	return buf.Bytes(), nil
}
