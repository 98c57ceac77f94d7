package negative

import (
	"fmt"
	"image"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
	"github.com/abworrall/neg2cineon/pkg/emath"
)

// Channel roles, in output order
const (
	Red = iota
	Green
	Blue
)

var channelNames = []string{"red", "green", "blue"}

func ChannelName(channel int) string {
	if channel < Red || channel > Blue {
		return fmt.Sprintf("channel(%d)", channel)
	}
	return channelNames[channel]
}

// ExtractChannel pulls a single channel out of a decoded image,
// normalized to [0,1] by the max decoder sample value.
func ExtractChannel(img image.Image, channel int) (emath.FloatGrid, error) {
	if channel < Red || channel > Blue {
		return emath.FloatGrid{}, fmt.Errorf("%w: got %d", ErrInvalidChannelIndex, channel)
	}

	b := img.Bounds()
	fg := emath.NewFloatGrid(b.Dx(), b.Dy())

	img64, fast := img.(image.RGBA64Image)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			var v emath.Vec3
			if fast {
				v = ecolor.NewLinearRGB64(img64.RGBA64At(b.Min.X+x, b.Min.Y+y))
			} else {
				v = ecolor.NewLinearRGB(img.At(b.Min.X+x, b.Min.Y+y))
			}
			fg.Set(x, y, v[channel])
		}
	}

	return fg, nil
}
