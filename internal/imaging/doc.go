// Package imaging implements the transform catalog: pure functions that take
// a decoded image and return a new one.
//
// Every function allocates its result; no function modifies its input or
// returns a buffer that aliases it. Results have their origin at (0,0) and
// use one of two layouts:
//   - *image.NRGBA: four 8-bit non-premultiplied channels
//   - *image.Gray: one 8-bit luminance channel
//
// Luminance-only operations (filters, thresholds, morphology, gradients,
// contours) convert colour input with ToGray first. The conversion is lossy:
// colour and alpha are discarded.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Error Handling
//
// Functions that can fail return wrapped sentinel errors:
//   - ErrOutOfBounds: pixel query outside the image
//   - ErrInvalidDimension: a result would have zero width or height
//   - ErrInvalidParameter: a parameter outside its domain
//
// Two inputs are deliberately not errors: an unrecognized resize filter name
// selects Lanczos, and a rotation that is not a multiple of 90 degrees
// returns the image unchanged.
package imaging
