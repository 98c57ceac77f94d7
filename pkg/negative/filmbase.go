package negative

import (
	"fmt"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

const DefaultFilmBasePercentile = 2.0

// EstimateFilmBase guesses the color of the unexposed film base. On a
// negative the base is the darkest thing in the scan, so we take the
// pixels whose grayscale (plain mean of R,G,B) is at or below the
// given percentile, and average them per channel.
func EstimateFilmBase(li *LinearImage, percentile float64) (emath.Vec3, error) {
	gray := li.Grayscale()
	return estimateFilmBaseFromGray(li, gray, percentile)
}

func estimateFilmBaseFromGray(li *LinearImage, gray emath.FloatGrid, percentile float64) (emath.Vec3, error) {
	if li.Size() == 0 {
		return emath.Vec3{}, fmt.Errorf("%w: image is empty", ErrEmptySelection)
	}

	threshold, err := gray.Percentile(percentile)
	if err != nil {
		return emath.Vec3{}, fmt.Errorf("film base threshold: %v", err)
	}

	sum := emath.Vec3{}
	n := 0
	for y := 0; y < li.H; y++ {
		for x := 0; x < li.W; x++ {
			if gray.Get(x, y) <= threshold {
				sum = sum.Add(li.Pixel(x, y))
				n++
			}
		}
	}

	// Only happens if the grayscale has NaNs in it
	if n == 0 {
		return emath.Vec3{}, fmt.Errorf("%w: nothing at or below %.6f (p%.1f)", ErrEmptySelection, threshold, percentile)
	}

	nf := float64(n)
	base := emath.Vec3{sum[0] / nf, sum[1] / nf, sum[2] / nf}
	if !base.IsFinite() {
		return emath.Vec3{}, fmt.Errorf("%w: film base %s is not finite", ErrEmptySelection, base)
	}

	return base, nil
}
