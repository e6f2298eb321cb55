package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"png", PNG},
		{"PNG", PNG},
		{"jpeg", JPEG},
		{"jpg", JPEG},
		{"JPG", JPEG},
		{"gif", GIF},
		{"webp", WebP},
		{"WebP", WebP},
		{"bmp", BMP},
		{"tiff", TIFF},
		{"tif", TIFF},
		{"ico", ICO},
		{" png ", PNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat_Unsupported(t *testing.T) {
	for _, name := range []string{"", "heic", "svg", "jpe", "pngx"} {
		_, err := ParseFormat(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestFormat_StringRoundTrip(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
		assert.NotEqual(t, "application/octet-stream", f.MIMEType())
	}
	assert.Equal(t, "unknown", FormatUnknown.String())
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00"), PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, JPEG},
		{"gif87a", []byte("GIF87a\x01\x00"), GIF},
		{"gif89a", []byte("GIF89a\x01\x00"), GIF},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), WebP},
		{"bmp", []byte("BM\x36\x00\x00\x00"), BMP},
		{"tiff little endian", []byte("II*\x00\x08\x00\x00\x00"), TIFF},
		{"tiff big endian", []byte("MM\x00*\x00\x00\x00\x08"), TIFF},
		{"ico", []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00}, ICO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("hello world")},
		{"riff without webp tag", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
		{"truncated riff", []byte("RIFF")},
		{"truncated png", []byte("\x89PN")},
		{"cursor directory", []byte{0x00, 0x00, 0x02, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.data)
			assert.ErrorIs(t, err, ErrFormatUnknown)
			assert.Equal(t, FormatUnknown, got)
		})
	}
}
