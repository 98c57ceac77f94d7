package negative

import (
	"fmt"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

// MergeTrichromatic stacks three single channel planes into one RGB
// image; planes[0] becomes red, planes[1] green, planes[2] blue.
//
// Each plane comes from a separate capture, so they only line up if
// the captures were registered; we insist on identical dimensions but
// cannot detect misalignment within them.
func MergeTrichromatic(planes []emath.FloatGrid) (*LinearImage, error) {
	if len(planes) != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrWrongInputCount, len(planes))
	}

	size := planes[Red].Size()
	for i, p := range planes {
		if p.Size() != size {
			return nil, fmt.Errorf("%w: %s plane is %v, red plane is %v",
				ErrDimensionMismatch, ChannelName(i), p.Size(), size)
		}
	}

	li := NewLinearImage(size.X, size.Y)
	for y := 0; y < li.H; y++ {
		for x := 0; x < li.W; x++ {
			li.SetPixel(x, y, emath.Vec3{
				planes[Red].Get(x, y),
				planes[Green].Get(x, y),
				planes[Blue].Get(x, y),
			})
		}
	}

	return li, nil
}
