package negative

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

func TestFilmBaseOfFlatGray(t *testing.T) {
	li := uniformImage(10, 10, emath.Vec3{0.5, 0.5, 0.5})

	base, err := EstimateFilmBase(li, DefaultFilmBasePercentile)
	require.NoError(t, err)
	assert.Equal(t, emath.Vec3{0.5, 0.5, 0.5}, base)

	gains, err := GainVector(base)
	require.NoError(t, err)
	assert.Equal(t, emath.Vec3{1, 1, 1}, gains)
}

func TestFilmBasePicksDarkestPixels(t *testing.T) {
	// 100 pixels: two of them are the (orange, dark) film base
	li := uniformImage(10, 10, emath.Vec3{0.9, 0.8, 0.7})
	li.SetPixel(0, 0, emath.Vec3{0.3, 0.2, 0.1})
	li.SetPixel(9, 9, emath.Vec3{0.3, 0.2, 0.1})

	base, err := EstimateFilmBase(li, 2.0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.3, 0.2, 0.1}, base[:], 1e-12)
}

func TestFilmBaseAveragesSelection(t *testing.T) {
	li := uniformImage(10, 10, emath.Vec3{0.9, 0.9, 0.9})
	li.SetPixel(0, 0, emath.Vec3{0.25, 0.5, 0.75})
	li.SetPixel(5, 5, emath.Vec3{0.25, 0.5, 0.75})
	li.SetPixel(9, 0, emath.Vec3{0.25, 0.5, 0.75})

	// p2 of 100 pixels lands between the 2nd and 3rd darkest, so all
	// three of the dark pixels are selected
	base, err := EstimateFilmBase(li, 2.0)
	require.NoError(t, err)
	assert.Equal(t, emath.Vec3{0.25, 0.5, 0.75}, base)
}

func TestFilmBaseEmptyImage(t *testing.T) {
	_, err := EstimateFilmBase(NewLinearImage(0, 0), DefaultFilmBasePercentile)
	assert.True(t, errors.Is(err, ErrEmptySelection))
}

func TestFilmBaseNaNImage(t *testing.T) {
	li := uniformImage(4, 4, emath.Splat(math.NaN()))
	_, err := EstimateFilmBase(li, DefaultFilmBasePercentile)
	assert.True(t, errors.Is(err, ErrEmptySelection))
}

func TestAutoWhiteBalance(t *testing.T) {
	li := uniformImage(5, 5, emath.Vec3{0.6, 0.4, 0.2})
	awb := AutoWhiteBalance{Percentile: DefaultFilmBasePercentile}

	ref, err := awb.Resolve(li)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.6, 0.4, 0.2}, ref[:], 1e-12)
	assert.Equal(t, "auto", awb.Name())
}
