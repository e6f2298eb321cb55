package ops

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// ImageInfo describes an encoded image without decoding its pixels.
type ImageInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	MIMEType  string `json:"mime_type"`
	SizeBytes int    `json:"size_bytes"`
}

// Runner executes catalog operations on encoded images.
//
// Every byte-returning call follows the same path: detect the container
// format, decode, transform, encode. The output uses the input's format
// unless the call converts explicitly. A Runner holds no per-call state and
// may be shared between goroutines.
type Runner struct {
	codec   *codec.Codec
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithCodec sets the codec used for decoding and encoding.
func WithCodec(c *codec.Codec) Option {
	return func(r *Runner) { r.codec = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics records every call in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New creates a Runner. Without options it uses codec.Default and no
// logging or metrics.
func New(opts ...Option) *Runner {
	r := &Runner{
		codec:  codec.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Codec returns the codec the Runner encodes with.
func (r *Runner) Codec() *codec.Codec {
	return r.codec
}

// stepFunc transforms a decoded image and picks the output format.
type stepFunc func(img image.Image, src codec.Format) (image.Image, codec.Format, error)

// Apply runs op on input and re-encodes the result in the input's format.
func (r *Runner) Apply(input []byte, op Operation) ([]byte, error) {
	return r.run(op.Name(), input, func(img image.Image, src codec.Format) (image.Image, codec.Format, error) {
		out, err := op.Apply(img)
		return out, src, err
	})
}

// ApplyNamed decodes params for the named operation and runs it.
func (r *Runner) ApplyNamed(input []byte, name string, params json.RawMessage) ([]byte, error) {
	op, err := Decode(name, params)
	if err != nil {
		r.metrics.observe(operationLabel(name, err), 0, len(input), 0, 0, err)
		return nil, err
	}
	return r.Apply(input, op)
}

// ApplyAs runs op on input and encodes the result once, directly as target.
func (r *Runner) ApplyAs(input []byte, op Operation, target string) ([]byte, error) {
	f, err := codec.ParseFormat(target)
	if err != nil {
		r.metrics.observe(op.Name(), 0, len(input), 0, 0, err)
		return nil, err
	}
	return r.run(op.Name(), input, func(img image.Image, _ codec.Format) (image.Image, codec.Format, error) {
		out, err := op.Apply(img)
		return out, f, err
	})
}

// unknownOperation labels metrics for names missing from the registry so
// callers cannot mint new series.
const unknownOperation = "unknown"

func operationLabel(name string, err error) string {
	if errors.Is(err, ErrUnknownOperation) {
		return unknownOperation
	}
	return name
}

// Convert re-encodes input as target, e.g. "png" or "jpg".
func (r *Runner) Convert(input []byte, target string) ([]byte, error) {
	f, err := codec.ParseFormat(target)
	if err != nil {
		r.metrics.observe("convert_format", 0, len(input), 0, 0, err)
		return nil, err
	}
	return r.run("convert_format", input, func(img image.Image, _ codec.Format) (image.Image, codec.Format, error) {
		return img, f, nil
	})
}

// Overlay composites top onto base at (x, y). The result keeps base's
// dimensions and format.
func (r *Runner) Overlay(base, top []byte, x, y int) ([]byte, error) {
	topImg, _, err := r.codec.Decode(top)
	if err != nil {
		err = fmt.Errorf("decode overlay: %w", err)
		r.metrics.observe("overlay", 0, len(base)+len(top), 0, 0, err)
		return nil, err
	}
	return r.run("overlay", base, func(img image.Image, src codec.Format) (image.Image, codec.Format, error) {
		return imaging.Overlay(img, topImg, x, y), src, nil
	})
}

// Blank creates a width x height PNG filled with c.
func (r *Runner) Blank(width, height int, c imaging.Color) ([]byte, error) {
	start := time.Now()
	img, err := imaging.Blank(width, height, c)
	if err != nil {
		err = fmt.Errorf("transform: %w", err)
		r.metrics.observe("create_blank", time.Since(start), 0, 0, 0, err)
		return nil, err
	}
	out, err := r.codec.Encode(img, codec.PNG)
	if err != nil {
		err = fmt.Errorf("encode: %w", err)
	}
	r.metrics.observe("create_blank", time.Since(start), 0, len(out), width*height, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Info reports dimensions and format from the image header.
func (r *Runner) Info(input []byte) (*ImageInfo, error) {
	cfg, f, err := r.codec.DecodeConfig(input)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &ImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    f.String(),
		MIMEType:  f.MIMEType(),
		SizeBytes: len(input),
	}, nil
}

// Pixel returns the colour at (x, y).
func (r *Runner) Pixel(input []byte, x, y int) (imaging.Color, error) {
	img, _, err := r.codec.Decode(input)
	if err != nil {
		return imaging.Color{}, fmt.Errorf("decode: %w", err)
	}
	return imaging.PixelAt(img, x, y)
}

// Contours traces the borders of the binarised image.
func (r *Runner) Contours(input []byte) ([]imaging.Contour, error) {
	start := time.Now()
	img, _, err := r.codec.Decode(input)
	if err != nil {
		err = fmt.Errorf("decode: %w", err)
		r.metrics.observe("find_contours", time.Since(start), len(input), 0, 0, err)
		return nil, err
	}
	contours := imaging.FindContours(img)
	b := img.Bounds()
	r.metrics.observe("find_contours", time.Since(start), len(input), 0, b.Dx()*b.Dy(), nil)
	return contours, nil
}

func (r *Runner) run(name string, input []byte, step stepFunc) (out []byte, err error) {
	start := time.Now()
	var (
		src    codec.Format
		bounds image.Rectangle
		pixels int
	)
	defer func() {
		elapsed := time.Since(start)
		r.metrics.observe(name, elapsed, len(input), len(out), pixels, err)
		if err != nil {
			r.logger.Warn("operation failed", "operation", name, "bytes_in", len(input), "error", err)
			return
		}
		r.logger.Debug("operation complete",
			"operation", name,
			"format", src.String(),
			"width", bounds.Dx(),
			"height", bounds.Dy(),
			"bytes_in", len(input),
			"bytes_out", len(out),
			"duration", elapsed,
		)
	}()

	src, err = codec.Detect(input)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	img, _, err := r.codec.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	bounds = img.Bounds()

	transformed, dst, err := step(img, src)
	if err != nil {
		return nil, fmt.Errorf("transform: %s: %w", name, err)
	}

	out, err = r.codec.Encode(transformed, dst)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	pixels = bounds.Dx() * bounds.Dy()
	return out, nil
}
