package emath

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
)

// A FloatGrid is a grid of floats, with some operations. It holds a
// single channel of an image (e.g. one color plane, or a grayscale).
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (fg *FloatGrid) Set(x, y int, v float64) { fg.values[fg.stride*y+x] = v }
func (fg *FloatGrid) Get(x, y int) float64    { return fg.values[fg.stride*y+x] }
func (fg *FloatGrid) Dx() int                 { return fg.stride }

func (fg *FloatGrid) Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (fg *FloatGrid) Size() image.Point { return image.Point{fg.Dx(), fg.Dy()} }

// Percentile returns the value at percentile `p` (in [0,100]) of all
// the values in the grid. It interpolates linearly between the two
// closest ranks, i.e. rank = p/100 * (n-1), which is what numpy's
// percentile() does by default.
func (fg *FloatGrid) Percentile(p float64) (float64, error) {
	if len(fg.values) == 0 {
		return 0, fmt.Errorf("percentile of empty grid")
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, fmt.Errorf("percentile %f not in [0,100]", p)
	}

	vals := make([]float64, len(fg.values))
	copy(vals, fg.values)
	sort.Float64s(vals)

	return PercentileSorted(vals, p), nil
}

// PercentileSorted does the interpolation over already-sorted values.
func PercentileSorted(vals []float64, p float64) float64 {
	rank := p / 100.0 * float64(len(vals)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(vals) {
		hi = len(vals) - 1
	}

	frac := rank - float64(lo)
	return vals[lo] + (vals[hi]-vals[lo])*frac
}

func (fg *FloatGrid) MinMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min

	for i := 0; i < len(fg.values); i++ {
		if fg.values[i] > max {
			max = fg.values[i]
		}
		if fg.values[i] < min {
			min = fg.values[i]
		}
	}
	return min, max
}

func (fg *FloatGrid) Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg saves a simple grayscale PNG, based on the range of values in
// the grid, and gamma scaling the gray to look normal for human vision
func (fg *FloatGrid) ToImg(title, filename string) error {
	min, max := fg.MinMax()
	span := max - min
	if span <= 0 {
		span = 1.0
	}

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x := 0; x < fg.Dx(); x++ {
		for y := 0; y < fg.Dy(); y++ {
			gray := GammaExpand_F64((fg.Get(x, y) - min) / span)
			v := uint16(gray * 65535.0)
			img.Set(x, y, color.RGBA64{v, v, v, 0xFFFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 0, 0)
	dc.DrawString(title, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("FloatGrid.ToImg, save '%s': %v", filename, err)
	}
	return nil
}
