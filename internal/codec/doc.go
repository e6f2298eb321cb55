// Package codec converts between encoded container bytes and decoded pixel
// buffers.
//
// Formats are identified from the leading magic bytes of the payload, never
// from a file name or caller hint. Each supported container maps to exactly
// one decoder and one encoder:
//
//	png   image/png
//	jpeg  image/jpeg
//	gif   image/gif
//	webp  golang.org/x/image/webp (decode), github.com/chai2010/webp (encode, cgo builds)
//	bmp   golang.org/x/image/bmp
//	tiff  golang.org/x/image/tiff
//	ico   github.com/biessek/golang-ico
//
// # Error Handling
//
// Failures are reported with the sentinel errors ErrDecode, ErrFormatUnknown,
// ErrUnsupportedFormat and ErrEncode; test for them with errors.Is.
package codec
