//go:build cgo

package codec

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

func encodeWebP(w io.Writer, img image.Image, opts Options) error {
	return webp.Encode(w, img, &webp.Options{
		Lossless: opts.WebPLossless,
		Quality:  opts.WebPQuality,
		Exact:    true,
	})
}
