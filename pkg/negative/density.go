package negative

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

// DensityParams are the constants of the log density convention. The
// defaults reproduce 10 bit Cineon printing density; changing any of
// them changes the meaning of the output codes.
type DensityParams struct {
	Epsilon      float64 // Linear values are clamped to [Epsilon, 1] before the log
	BlackPoint   float64 // Subtracted from every density, floor at 0.0
	DensityScale float64 // Code values per unit of density
	CodeMin      float64 // Code for zero density
	CodeMax      float64 // Largest representable code
}

func DefaultDensityParams() DensityParams {
	return DensityParams{
		Epsilon:      1e-4,
		BlackPoint:   0.19,
		DensityScale: 500.0,
		CodeMin:      95.0,
		CodeMax:      1023.0,
	}
}

func (dp DensityParams) Validate() error {
	switch {
	case !(dp.Epsilon > 0 && dp.Epsilon < 1):
		return fmt.Errorf("%w: density epsilon %g not in (0,1)", ErrInvalidConfig, dp.Epsilon)
	case dp.BlackPoint < 0 || math.IsNaN(dp.BlackPoint):
		return fmt.Errorf("%w: density blackpoint %g is negative", ErrInvalidConfig, dp.BlackPoint)
	case !(dp.DensityScale > 0):
		return fmt.Errorf("%w: density scale %g must be positive", ErrInvalidConfig, dp.DensityScale)
	case !(dp.CodeMin >= 0 && dp.CodeMin < dp.CodeMax):
		return fmt.Errorf("%w: code range [%g,%g] is empty", ErrInvalidConfig, dp.CodeMin, dp.CodeMax)
	}
	return nil
}

// Expose scales the image by the exposure multiplier, and clamps to
// [Epsilon, 1] so that nothing non-positive reaches the log later.
func (dp DensityParams) Expose(li *LinearImage, exposure float64) error {
	if !(exposure > 0) || math.IsInf(exposure, 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidExposure, exposure)
	}
	li.ScaleChannels(emath.Splat(exposure))
	li.Clamp(dp.Epsilon, 1.0)
	return nil
}

// GainVector returns the per-channel multipliers that make the
// reference sample neutral: mean(ref) / ref.
func GainVector(ref emath.Vec3) (emath.Vec3, error) {
	if !ref.IsFinite() || floats.Min(ref[:]) <= 0 {
		return emath.Vec3{}, fmt.Errorf("%w: got %s", ErrInvalidReference, ref)
	}

	mean := stat.Mean(ref[:], nil)
	return emath.Vec3{mean / ref[0], mean / ref[1], mean / ref[2]}, nil
}

// Density converts a balanced linear value into density above the black point.
func (dp DensityParams) Density(v float64) float64 {
	v = emath.ClampF64(v, dp.Epsilon, 1.0)
	d := -math.Log10(v) - dp.BlackPoint
	if d < 0.0 {
		d = 0.0
	}
	return d
}

// DensityToCode maps density into the [CodeMin, CodeMax] code range
func (dp DensityParams) DensityToCode(d float64) float64 {
	return emath.ClampF64(dp.CodeMin+dp.DensityScale*d, dp.CodeMin, dp.CodeMax)
}

// CodeToBit16 rescales a code value so that CodeMax lands on 0xFFFF
func (dp DensityParams) CodeToBit16(code float64) uint16 {
	return uint16(math.Round(code / dp.CodeMax * 65535.0))
}

// Map white balances the (already exposed) image against the
// reference sample, in place, then converts it into Cineon codes.
func (dp DensityParams) Map(li *LinearImage, ref emath.Vec3) (*CineonImage, error) {
	gains, err := GainVector(ref)
	if err != nil {
		return nil, err
	}

	li.ScaleChannels(gains)
	li.Clamp(dp.Epsilon, 1.0)

	ci := NewCineonImage(li.W, li.H)
	for i, v := range li.Pix {
		ci.Pix[i] = dp.CodeToBit16(dp.DensityToCode(dp.Density(v)))
	}

	return ci, nil
}

// Develop does the whole mapping, exposure included, with a reference
// sample that is already known.
func (dp DensityParams) Develop(li *LinearImage, exposure float64, ref emath.Vec3) (*CineonImage, error) {
	if err := dp.Expose(li, exposure); err != nil {
		return nil, err
	}
	return dp.Map(li, ref)
}
