package negative

import (
	"image"
	"image/color"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

func uniformImage(w, h int, v emath.Vec3) *LinearImage {
	li := NewLinearImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			li.SetPixel(x, y, v)
		}
	}
	return li
}

func uniformRGBA64(w, h int, c color.RGBA64) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA64(x, y, c)
		}
	}
	return img
}

func filledGrid(w, h int, v float64) emath.FloatGrid {
	fg := emath.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fg.Set(x, y, v)
		}
	}
	return fg
}

// plainImage hides the RGBA64At fast path of whatever it wraps
type plainImage struct {
	image.Image
}
