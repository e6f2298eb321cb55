package codec

import (
	"fmt"
	"image"
	"io"

	ico "github.com/biessek/golang-ico"
)

// maxICOSide is the largest width or height an icon directory entry can describe.
const maxICOSide = 256

func decodeICO(r io.Reader) (image.Image, error) {
	return ico.Decode(r)
}

func encodeICO(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > maxICOSide || b.Dy() > maxICOSide {
		return fmt.Errorf("icon is %dx%d, limit is %dx%d", b.Dx(), b.Dy(), maxICOSide, maxICOSide)
	}
	return ico.Encode(w, img)
}
