package imaging

import (
	"fmt"
	"image"
	"math/rand/v2"
)

// Noise generators are deterministic: the same seed always yields the same
// output for the same input. Only colour channels are touched.

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// GaussianNoise adds normally distributed noise with the given mean and
// standard deviation to each colour channel independently.
func GaussianNoise(img image.Image, mean, stddev float64, seed uint64) (*image.NRGBA, error) {
	if stddev < 0 {
		return nil, fmt.Errorf("%w: stddev must not be negative, got %g", ErrInvalidParameter, stddev)
	}

	out := ToNRGBA(img)
	rng := newRand(seed)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			out.Pix[i+c] = clampUint8(float64(out.Pix[i+c]) + mean + stddev*rng.NormFloat64())
		}
	}
	return out, nil
}

// SaltAndPepper replaces a fraction rate of pixels with pure white or pure
// black, chosen with equal probability. Replaced pixels are opaque.
func SaltAndPepper(img image.Image, rate float64, seed uint64) (*image.NRGBA, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("%w: rate must be in [0,1], got %g", ErrInvalidParameter, rate)
	}

	out := ToNRGBA(img)
	rng := newRand(seed)
	for i := 0; i < len(out.Pix); i += 4 {
		if rng.Float64() >= rate {
			continue
		}
		v := uint8(0)
		if rng.IntN(2) == 1 {
			v = 255
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = v, v, v, 255
	}
	return out, nil
}
