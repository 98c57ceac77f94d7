package ecolor

import (
	"errors"
	"fmt"
	"strings"
)

// A ColorSpace is the output color space a raw decoder is asked to
// develop into. It is a closed set; the numeric values match the
// output color selectors that dcraw/LibRaw use (`-o N`).
type ColorSpace int

const (
	Raw ColorSpace = iota
	SRGB
	Adobe
	Wide
	ProPhoto
	XYZ
	ACES
	P3D65
	Rec2020
)

var ErrInvalidColorSpace = errors.New("invalid color space")

var (
	colorSpaceNames = []string{"raw", "sRGB", "Adobe", "Wide", "ProPhoto", "XYZ", "ACES", "P3D65", "Rec2020"}

	DefaultColorSpace = ProPhoto
)

func ListColorSpaces() string {
	return strings.Join(colorSpaceNames, ", ")
}

// ParseColorSpace looks up a color space by its name. Names are
// matched exactly, like the selector in the command surface.
func ParseColorSpace(name string) (ColorSpace, error) {
	for i, n := range colorSpaceNames {
		if n == name {
			return ColorSpace(i), nil
		}
	}
	return Raw, fmt.Errorf("%w '%s', choose from: %s", ErrInvalidColorSpace, name, ListColorSpaces())
}

func (cs ColorSpace) Valid() bool { return cs >= Raw && cs <= Rec2020 }

// Code is the numeric selector passed to the decoder
func (cs ColorSpace) Code() int { return int(cs) }

func (cs ColorSpace) String() string {
	if !cs.Valid() {
		return fmt.Sprintf("ColorSpace(%d)", int(cs))
	}
	return colorSpaceNames[cs]
}
