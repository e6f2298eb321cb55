package codec

import (
	"bytes"
	"fmt"
	"strings"
)

// Format identifies an image container format.
type Format uint8

const (
	FormatUnknown Format = iota
	PNG
	JPEG
	GIF
	WebP
	BMP
	TIFF
	ICO
)

var formatNames = map[Format]string{
	PNG:  "png",
	JPEG: "jpeg",
	GIF:  "gif",
	WebP: "webp",
	BMP:  "bmp",
	TIFF: "tiff",
	ICO:  "ico",
}

var formatMIMETypes = map[Format]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	GIF:  "image/gif",
	WebP: "image/webp",
	BMP:  "image/bmp",
	TIFF: "image/tiff",
	ICO:  "image/x-icon",
}

// formatAliases is the closed table of accepted format names.
var formatAliases = map[string]Format{
	"png":  PNG,
	"jpeg": JPEG,
	"jpg":  JPEG,
	"gif":  GIF,
	"webp": WebP,
	"bmp":  BMP,
	"tiff": TIFF,
	"tif":  TIFF,
	"ico":  ICO,
}

// String returns the canonical lower-case name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MIMEType returns the media type used when the format is served.
func (f Format) MIMEType() string {
	if mt, ok := formatMIMETypes[f]; ok {
		return mt
	}
	return "application/octet-stream"
}

// Formats lists every supported format in declaration order.
func Formats() []Format {
	return []Format{PNG, JPEG, GIF, WebP, BMP, TIFF, ICO}
}

// ParseFormat resolves a case-insensitive format name such as "JPG" or "tif".
func ParseFormat(name string) (Format, error) {
	f, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

var (
	magicPNG    = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG   = []byte{0xFF, 0xD8, 0xFF}
	magicGIF87  = []byte("GIF87a")
	magicGIF89  = []byte("GIF89a")
	magicRIFF   = []byte("RIFF")
	magicWEBP   = []byte("WEBP")
	magicBMP    = []byte("BM")
	magicTIFFLE = []byte("II*\x00")
	magicTIFFBE = []byte("MM\x00*")
	magicICO    = []byte{0x00, 0x00, 0x01, 0x00}
)

// Detect identifies the container format from the leading magic bytes.
//
// Returns ErrFormatUnknown when no signature matches, including for empty input.
func Detect(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return PNG, nil
	case bytes.HasPrefix(data, magicJPEG):
		return JPEG, nil
	case bytes.HasPrefix(data, magicGIF87), bytes.HasPrefix(data, magicGIF89):
		return GIF, nil
	case len(data) >= 12 && bytes.HasPrefix(data, magicRIFF) && bytes.Equal(data[8:12], magicWEBP):
		return WebP, nil
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return TIFF, nil
	case bytes.HasPrefix(data, magicICO):
		return ICO, nil
	case bytes.HasPrefix(data, magicBMP):
		return BMP, nil
	}
	return FormatUnknown, ErrFormatUnknown
}
