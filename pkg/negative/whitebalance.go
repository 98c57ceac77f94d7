package negative

import (
	"fmt"
	"image"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

// A WhiteBalancer comes up with the reference sample (the film base
// color) that the density mapper neutralizes. There are two:
// - AutoWhiteBalance: estimate the film base from the darkest pixels
// - ManualWhiteBalance: ask a human to point at some film base
type WhiteBalancer interface {
	Resolve(li *LinearImage) (emath.Vec3, error)
	Name() string
}

// A Picker is something outside the pipeline (usually a human) that
// points at a pixel. ok is false if they declined to pick anything.
// The point is in the coordinates of the image passed in.
type Picker interface {
	Pick(li *LinearImage) (pt image.Point, ok bool, err error)
}

// PickerFunc lets a plain function act as a Picker
type PickerFunc func(li *LinearImage) (image.Point, bool, error)

func (f PickerFunc) Pick(li *LinearImage) (image.Point, bool, error) { return f(li) }

type AutoWhiteBalance struct {
	Percentile float64
}

func (AutoWhiteBalance) Name() string { return "auto" }

func (awb AutoWhiteBalance) Resolve(li *LinearImage) (emath.Vec3, error) {
	return EstimateFilmBase(li, awb.Percentile)
}

type ManualWhiteBalance struct {
	Picker
}

func (ManualWhiteBalance) Name() string { return "manual" }

func (mwb ManualWhiteBalance) Resolve(li *LinearImage) (emath.Vec3, error) {
	if mwb.Picker == nil {
		return emath.Vec3{}, fmt.Errorf("manual white balance: %w (no picker available)", ErrNoPointSelected)
	}

	pt, ok, err := mwb.Pick(li)
	if err != nil {
		return emath.Vec3{}, fmt.Errorf("manual white balance: %w", err)
	} else if !ok {
		return emath.Vec3{}, ErrNoPointSelected
	} else if !pt.In(li.Bounds()) {
		return emath.Vec3{}, fmt.Errorf("%w: %v not in %v", ErrPointOutOfBounds, pt, li.Bounds())
	}

	return li.Pixel(pt.X, pt.Y), nil
}
