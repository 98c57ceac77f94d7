package negative

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
)

func TestNewDecodeParams(t *testing.T) {
	p := NewDecodeParams(ecolor.Adobe)
	assert.Equal(t, ecolor.Adobe, p.ColorSpace)
	assert.Equal(t, [2]float64{1, 1}, p.Gamma)
	assert.False(t, p.AutoBright)
	assert.Equal(t, 16, p.OutputBPS)
	assert.False(t, p.UseCameraWB)
}

func TestDcrawArgs(t *testing.T) {
	dd := DcrawDecoder{Binary: "dcraw"}

	args := dd.Args("frame.nef", NewDecodeParams(ecolor.ProPhoto))
	assert.Equal(t, []string{"-c", "-T", "-6", "-W", "-g", "1", "1", "-o", "4", "frame.nef"}, args)

	args = dd.Args("frame.nef", NewDecodeParams(ecolor.Raw))
	assert.Equal(t, []string{"-c", "-T", "-6", "-W", "-g", "1", "1", "-o", "0", "frame.nef"}, args)

	emu := DcrawDecoder{Binary: "/usr/local/bin/dcraw_emu"}
	args = emu.Args("frame.nef", NewDecodeParams(ecolor.P3D65))
	assert.Equal(t, []string{"-Z", "-", "-T", "-6", "-W", "-g", "1", "1", "-o", "7", "frame.nef"}, args)

	args = emu.Args("frame.nef", NewDecodeParams(ecolor.Rec2020))
	assert.Equal(t, []string{"-Z", "-", "-T", "-6", "-W", "-g", "1", "1", "-o", "8", "frame.nef"}, args)
}

func TestDcrawSupports(t *testing.T) {
	classic := DcrawDecoder{Binary: "dcraw"}
	emu := DcrawDecoder{Binary: "dcraw_emu"}
	assert.False(t, classic.IsLibRaw())
	assert.True(t, emu.IsLibRaw())
	assert.False(t, DcrawDecoder{}.IsLibRaw())

	for _, cs := range []ecolor.ColorSpace{ecolor.Raw, ecolor.SRGB, ecolor.Adobe, ecolor.Wide, ecolor.ProPhoto, ecolor.XYZ, ecolor.ACES} {
		assert.True(t, classic.Supports(cs), "%s", cs)
		assert.True(t, emu.Supports(cs), "%s", cs)
	}
	for _, cs := range []ecolor.ColorSpace{ecolor.P3D65, ecolor.Rec2020} {
		assert.False(t, classic.Supports(cs), "%s", cs)
		assert.True(t, emu.Supports(cs), "%s", cs)
	}
	assert.False(t, emu.Supports(ecolor.ColorSpace(9)))
}

func TestDcrawRejectsUnsupportedColorSpace(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "frame.cr2")
	require.NoError(t, os.WriteFile(raw, []byte{0, 1, 2, 3}, 0644))

	// Refused before the binary is run, so it does not matter that it is missing
	classic := DcrawDecoder{Binary: filepath.Join(dir, "dcraw")}
	for _, cs := range []ecolor.ColorSpace{ecolor.P3D65, ecolor.Rec2020} {
		_, err := classic.Decode(raw, NewDecodeParams(cs))
		assert.True(t, errors.Is(err, ErrInvalidColorSpace), "%s: %v", cs, err)
		assert.False(t, errors.Is(err, ErrDecodeFailure))
	}

	emu := DcrawDecoder{Binary: filepath.Join(dir, "dcraw_emu")}
	_, err := emu.Decode(raw, NewDecodeParams(ecolor.Rec2020))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}

func writeTestTIFF(t *testing.T, img image.Image) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "scan.tif")
	f, err := os.Create(filename)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, img, nil))
	require.NoError(t, f.Close())
	return filename
}

func TestTIFFDecoder(t *testing.T) {
	ci := testCineonImage()
	filename := filepath.Join(t.TempDir(), "developed.tiff")
	require.NoError(t, WriteTIFF(ci, filename))

	img, err := TIFFDecoder{}.Decode(filename, NewDecodeParams(ecolor.ProPhoto))
	require.NoError(t, err)
	assert.Equal(t, ci.Bounds(), img.Bounds())
	assert.Equal(t, ci.At(2, 1), img.At(2, 1))
}

func TestTIFFDecoderRejects8Bit(t *testing.T) {
	filename := writeTestTIFF(t, image.NewRGBA(image.Rect(0, 0, 4, 4)))

	_, err := TIFFDecoder{}.Decode(filename, NewDecodeParams(ecolor.ProPhoto))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}

func TestTIFFDecoderMissingFile(t *testing.T) {
	_, err := TIFFDecoder{}.Decode(filepath.Join(t.TempDir(), "nope.tif"), NewDecodeParams(ecolor.ProPhoto))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}

func TestTIFFDecoderNotATIFF(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "notes.tif")
	require.NoError(t, os.WriteFile(filename, []byte("not a tiff at all"), 0644))

	_, err := TIFFDecoder{Verbosity: 1}.Decode(filename, NewDecodeParams(ecolor.ProPhoto))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}

func TestDcrawDecoderFailures(t *testing.T) {
	dd := DcrawDecoder{Binary: filepath.Join(t.TempDir(), "no-such-dcraw")}

	_, err := dd.Decode(filepath.Join(t.TempDir(), "missing.cr2"), NewDecodeParams(ecolor.ProPhoto))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	raw := filepath.Join(t.TempDir(), "frame.cr2")
	require.NoError(t, os.WriteFile(raw, []byte{0, 1, 2, 3}, 0644))
	_, err = dd.Decode(raw, NewDecodeParams(ecolor.ProPhoto))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}

func TestFileDecoderDispatch(t *testing.T) {
	fd := NewFileDecoder(filepath.Join(t.TempDir(), "no-such-dcraw"))

	ci := testCineonImage()
	tiffFile := filepath.Join(t.TempDir(), "developed.TIFF")
	require.NoError(t, WriteTIFF(ci, tiffFile))

	img, err := fd.Decode(tiffFile, NewDecodeParams(ecolor.ProPhoto))
	require.NoError(t, err)
	assert.Equal(t, ci.Bounds(), img.Bounds())

	raw := filepath.Join(t.TempDir(), "frame.nef")
	require.NoError(t, os.WriteFile(raw, []byte{0, 1, 2, 3}, 0644))
	_, err = fd.Decode(raw, NewDecodeParams(ecolor.ProPhoto))
	assert.True(t, errors.Is(err, ErrDecodeFailure))
}

func TestReadCaptureInfoNoExif(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(filename, []byte("no exif in here"), 0644))

	_, err := ReadCaptureInfo(filename)
	assert.Error(t, err)

	_, err = ReadCaptureInfo(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestCaptureInfoString(t *testing.T) {
	ci := CaptureInfo{Make: "Nikon", Model: "D850", ISO: 64, ExposureTime: "1/125"}
	assert.Equal(t, "Nikon D850, ISO64, 1/125s", ci.String())
}
