package negative

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/codahale/hdrhistogram"
)

// A CineonImage holds quantized log density code values, rescaled to
// 16 bits, stored row by row with the three channels interleaved.
type CineonImage struct {
	W, H int
	Pix  []uint16
}

func NewCineonImage(w, h int) *CineonImage {
	return &CineonImage{W: w, H: h, Pix: make([]uint16, w*h*3)}
}

// Implement image.Image
func (ci *CineonImage) ColorModel() color.Model { return color.RGBA64Model }
func (ci *CineonImage) Bounds() image.Rectangle { return image.Rect(0, 0, ci.W, ci.H) }
func (ci *CineonImage) At(x, y int) color.Color { return ci.RGBA64At(x, y) }

func (ci *CineonImage) RGBA64At(x, y int) color.RGBA64 {
	i := (y*ci.W + x) * 3
	return color.RGBA64{ci.Pix[i], ci.Pix[i+1], ci.Pix[i+2], 0xFFFF}
}

// CodeStats summarizes the 10 bit code values in the image
type CodeStats struct {
	Min, Median, P99, Max int64
	Mean                  float64
	Count                 int64
}

func (cs CodeStats) String() string {
	return fmt.Sprintf("codes{min %d, median %d, p99 %d, max %d, mean %.1f, n=%d}",
		cs.Min, cs.Median, cs.P99, cs.Max, cs.Mean, cs.Count)
}

// Stats maps each sample back to its code value, using the code range
// the image was mapped with, and histograms them.
func (ci *CineonImage) Stats(dp DensityParams) (CodeStats, error) {
	// The lowest discernible value sets the bucket resolution, so it
	// stays at 1 whatever CodeMin is; codes below it still record.
	hi := int64(math.Ceil(dp.CodeMax))
	if hi < 2 {
		hi = 2
	}

	h := hdrhistogram.New(1, hi, 3)
	for _, v := range ci.Pix {
		code := int64(math.Round(float64(v) / 65535.0 * dp.CodeMax))
		if err := h.RecordValue(code); err != nil {
			return CodeStats{}, fmt.Errorf("code %d outside [%g,%g]: %v", code, dp.CodeMin, dp.CodeMax, err)
		}
	}

	return CodeStats{
		Min:    h.Min(),
		Median: h.ValueAtQuantile(50),
		P99:    h.ValueAtQuantile(99),
		Max:    h.Max(),
		Mean:   h.Mean(),
		Count:  h.TotalCount(),
	}, nil
}
