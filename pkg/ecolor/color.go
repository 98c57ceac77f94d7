package ecolor

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

// The decoder hands us 16 bit samples; color.Color's RGBA() also
// scales everything to [0, 0xFFFF], whatever the source depth was.
const MaxSampleValue = float64(0xFFFF)

// NewLinearRGB treats the input RGB channels as [0, 0xFFFF], and maps them to [0.0, 1.0]
func NewLinearRGB(col color.Color) emath.Vec3 {
	r, g, b, _ := col.RGBA()
	return emath.Vec3{
		float64(r) / MaxSampleValue,
		float64(g) / MaxSampleValue,
		float64(b) / MaxSampleValue,
	}
}

// NewLinearRGB64 is NewLinearRGB without the interface conversion
func NewLinearRGB64(c color.RGBA64) emath.Vec3 {
	return emath.Vec3{
		float64(c.R) / MaxSampleValue,
		float64(c.G) / MaxSampleValue,
		float64(c.B) / MaxSampleValue,
	}
}

func ToHDR(v emath.Vec3) hdrcolor.RGB { return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]} }

// Hex renders a linear RGB value as an sRGB hex triple, so that a
// human can eyeball e.g. a film base color in a log line.
func Hex(v emath.Vec3) string {
	return colorful.LinearRgb(v[0], v[1], v[2]).Clamped().Hex()
}
