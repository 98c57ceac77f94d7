package negative

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	SingleSuffix       = "_cineon"
	TrichromaticSuffix = "_trichromatic_cineon"
	OutputExt          = ".tiff"
)

// OutputFilename puts the output next to the first input, named after it.
func OutputFilename(inputs []string) (string, error) {
	var suffix string
	switch len(inputs) {
	case 1:
		suffix = SingleSuffix
	case 3:
		suffix = TrichromaticSuffix
	default:
		return "", fmt.Errorf("%w: got %d", ErrInvalidInputCount, len(inputs))
	}

	first := inputs[0]
	stem := strings.TrimSuffix(filepath.Base(first), filepath.Ext(first))
	return filepath.Join(filepath.Dir(first), stem+suffix+OutputExt), nil
}

// TIFF tags and field types that we write
const (
	tagImageWidth           = 256
	tagImageLength          = 257
	tagBitsPerSample        = 258
	tagCompression          = 259
	tagPhotometricInterpret = 262
	tagStripOffsets         = 273
	tagSamplesPerPixel      = 277
	tagRowsPerStrip         = 278
	tagStripByteCounts      = 279
	tagXResolution          = 282
	tagYResolution          = 283
	tagPlanarConfiguration  = 284
	tagResolutionUnit       = 296
	tagSampleFormat         = 339

	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

type ifdEntry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Value uint32 // the value itself if it fits in 4 bytes, else an offset
}

// EncodeTIFF writes a little endian, uncompressed, single strip TIFF
// with three 16 bit samples per pixel and no alpha. The IFD follows the
// header, then the BitsPerSample, SampleFormat and resolution values,
// then the pixels.
func EncodeTIFF(w io.Writer, ci *CineonImage) error {
	if ci.W <= 0 || ci.H <= 0 || len(ci.Pix) != ci.W*ci.H*3 {
		return fmt.Errorf("%dx%d image has %d samples", ci.W, ci.H, len(ci.Pix))
	}

	const numEntries = 14
	const ifdOffset = 8
	const ifdLen = 2 + numEntries*12 + 4

	bpsOffset := uint32(ifdOffset + ifdLen)
	sampleFormatOffset := bpsOffset + 6
	xResOffset := sampleFormatOffset + 6
	yResOffset := xResOffset + 8
	dataOffset := yResOffset + 8
	dataLen := uint32(len(ci.Pix) * 2)

	// Tags must be in ascending order
	entries := []ifdEntry{
		{tagImageWidth, typeLong, 1, uint32(ci.W)},
		{tagImageLength, typeLong, 1, uint32(ci.H)},
		{tagBitsPerSample, typeShort, 3, bpsOffset},
		{tagCompression, typeShort, 1, 1},          // none
		{tagPhotometricInterpret, typeShort, 1, 2}, // RGB
		{tagStripOffsets, typeLong, 1, dataOffset},
		{tagSamplesPerPixel, typeShort, 1, 3},
		{tagRowsPerStrip, typeLong, 1, uint32(ci.H)},
		{tagStripByteCounts, typeLong, 1, dataLen},
		{tagXResolution, typeRational, 1, xResOffset},
		{tagYResolution, typeRational, 1, yResOffset},
		{tagPlanarConfiguration, typeShort, 1, 1},  // chunky
		{tagResolutionUnit, typeShort, 1, 2},       // inches
		{tagSampleFormat, typeShort, 3, sampleFormatOffset},
	}

	bw := bufio.NewWriter(w)
	le := binary.LittleEndian

	fields := []interface{}{
		[]byte("II"), uint16(42), uint32(ifdOffset),
		uint16(numEntries), entries, uint32(0), // no next IFD
		[]uint16{16, 16, 16},                   // BitsPerSample
		[]uint16{1, 1, 1},                      // SampleFormat: unsigned int
		[]uint32{72, 1}, []uint32{72, 1},       // 72 dpi
		ci.Pix,
	}
	for _, f := range fields {
		if err := binary.Write(bw, le, f); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteTIFF writes the Cineon image to a file.
func WriteTIFF(ci *CineonImage, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: open+w '%s': %w", ErrWriteFailure, filename, err)
	}

	if err := EncodeTIFF(writer, ci); err != nil {
		writer.Close()
		os.Remove(filename)
		return fmt.Errorf("%w: encoding '%s': %w", ErrWriteFailure, filename, err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: close '%s': %w", ErrWriteFailure, filename, err)
	}

	return nil
}
