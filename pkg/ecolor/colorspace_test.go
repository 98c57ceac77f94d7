package ecolor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/neg2cineon/pkg/emath"
)

func TestParseColorSpace(t *testing.T) {
	for i, name := range []string{"raw", "sRGB", "Adobe", "Wide", "ProPhoto", "XYZ", "ACES", "P3D65", "Rec2020"} {
		cs, err := ParseColorSpace(name)
		require.NoError(t, err)
		assert.Equal(t, i, cs.Code())
		assert.Equal(t, name, cs.String())
		assert.True(t, cs.Valid())
	}
}

func TestParseColorSpaceRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "srgb", "prophoto", "DCI-P3"} {
		_, err := ParseColorSpace(name)
		assert.True(t, errors.Is(err, ErrInvalidColorSpace), "name %q", name)
	}
	assert.False(t, ColorSpace(9).Valid())
	assert.False(t, ColorSpace(-1).Valid())
}

func TestDefaultColorSpace(t *testing.T) {
	assert.Equal(t, "ProPhoto", DefaultColorSpace.String())
}

func TestNewLinearRGB(t *testing.T) {
	v := NewLinearRGB(color.RGBA64{0xFFFF, 0, 0x8000, 0xFFFF})
	assert.Equal(t, 1.0, v[0])
	assert.Equal(t, 0.0, v[1])
	assert.InDelta(t, 0.5, v[2], 1e-4)

	assert.Equal(t, v, NewLinearRGB64(color.RGBA64{0xFFFF, 0, 0x8000, 0xFFFF}))
}

func TestToHDR(t *testing.T) {
	c := ToHDR(emath.Vec3{0.1, 0.2, 0.3})
	assert.Equal(t, 0.1, c.R)
	assert.Equal(t, 0.2, c.G)
	assert.Equal(t, 0.3, c.B)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ffffff", Hex(emath.Vec3{1, 1, 1}))
	assert.Equal(t, "#000000", Hex(emath.Vec3{0, 0, 0}))
	assert.Equal(t, "#ffffff", Hex(emath.Vec3{4, 4, 4}))
}
