// Package ops is the dispatch layer between encoded images and the pixel
// catalog.
//
// # Operations
//
// Every catalog entry is a small struct whose JSON-tagged fields are its
// parameters and whose Apply method calls into package imaging or
// seamcarve. The registry maps names such as "resize" or "seam_carve_width"
// to constructors, so callers holding a name and a JSON object can build an
// operation with Decode:
//
//	op, err := ops.Decode("crop", json.RawMessage(`{"x":10,"y":10,"width":64,"height":64}`))
//
// # Runner
//
// Runner performs detect, decode, transform and encode for one call. Errors
// are prefixed with the failing stage and wrap the sentinel of the layer
// that produced them, so errors.Is(err, codec.ErrDecode) and
// errors.Is(err, imaging.ErrInvalidDimension) work on the returned error.
//
//	r := ops.New(ops.WithLogger(logger), ops.WithMetrics(ops.NewMetrics()))
//	out, err := r.ApplyNamed(input, "grayscale", nil)
package ops
