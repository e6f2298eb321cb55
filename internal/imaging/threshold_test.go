package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreshold_AllBlackStaysBlack(t *testing.T) {
	src := createTestImage(t, 4, 4, black)
	out := Threshold(src, 10, false)
	assert.Equal(t, 16, countGray(out, 0))
}

func TestThreshold(t *testing.T) {
	src := createGrayImage(t, 3, 1, func(x, _ int) uint8 { return []uint8{9, 10, 11}[x] })

	out := Threshold(src, 10, false)
	assert.Equal(t, []uint8{0, 0, 255}, out.Pix)

	out = Threshold(src, 10, true)
	assert.Equal(t, []uint8{255, 255, 0}, out.Pix)

	out = Threshold(src, 255, false)
	assert.Equal(t, []uint8{0, 0, 0}, out.Pix)
}

func bimodal(t *testing.T) func(x, y int) uint8 {
	t.Helper()
	return func(x, _ int) uint8 {
		if x < 5 {
			return 40
		}
		return 200
	}
}

func TestOtsuLevel_Bimodal(t *testing.T) {
	src := createGrayImage(t, 10, 4, bimodal(t))
	level := OtsuLevel(src)
	assert.GreaterOrEqual(t, level, uint8(40))
	assert.Less(t, level, uint8(200))

	out := OtsuThreshold(src)
	assert.Equal(t, uint8(0), out.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), out.GrayAt(9, 0).Y)
}

func TestOtsuLevel_Uniform(t *testing.T) {
	src := createGrayImage(t, 4, 4, func(int, int) uint8 { return 128 })
	assert.Equal(t, uint8(0), OtsuLevel(src))
}

func TestAdaptiveThreshold(t *testing.T) {
	src := createGrayImage(t, 9, 9, func(x, y int) uint8 {
		if x == 4 && y == 4 {
			return 200
		}
		return 50
	})

	out, err := AdaptiveThreshold(src, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.GrayAt(4, 4).Y)
	// Neighbours of the bright pixel sit below their local mean.
	assert.Equal(t, uint8(0), out.GrayAt(3, 4).Y)
	// Flat regions equal their mean.
	assert.Equal(t, uint8(255), out.GrayAt(0, 0).Y)

	_, err = AdaptiveThreshold(src, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestEqualizeHistogram(t *testing.T) {
	src := createGrayImage(t, 4, 1, func(x, _ int) uint8 { return []uint8{100, 100, 101, 102}[x] })
	out := EqualizeHistogram(src)
	assert.Equal(t, []uint8{127, 127, 191, 255}, out.Pix)
}

func TestStretchContrast(t *testing.T) {
	src := createGrayImage(t, 5, 1, func(x, _ int) uint8 { return []uint8{0, 50, 100, 150, 255}[x] })

	out, err := StretchContrast(src, 50, 150, 0, 200)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 100, 200, 200}, out.Pix)
}

func TestStretchContrast_InvalidRange(t *testing.T) {
	src := createGrayImage(t, 2, 2, func(int, int) uint8 { return 1 })

	_, err := StretchContrast(src, 100, 100, 0, 255)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = StretchContrast(src, 0, 100, 200, 100)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
