//go:build !cgo

package codec

import (
	"errors"
	"image"
	"io"
)

func encodeWebP(io.Writer, image.Image, Options) error {
	return errors.New("webp encoding requires a cgo build")
}
