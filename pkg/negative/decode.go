package negative

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
)

// DecodeParams is what we ask of a raw decoder. Apart from the color
// space these are fixed: the pipeline needs linear, un-brightened,
// un-white-balanced 16 bit data, so nobody gets to change them.
type DecodeParams struct {
	ColorSpace  ecolor.ColorSpace
	Gamma       [2]float64 // power, toe slope; {1,1} is linear
	AutoBright  bool
	OutputBPS   int
	UseCameraWB bool
}

func NewDecodeParams(cs ecolor.ColorSpace) DecodeParams {
	return DecodeParams{
		ColorSpace:  cs,
		Gamma:       [2]float64{1, 1},
		AutoBright:  false,
		OutputBPS:   16,
		UseCameraWB: false,
	}
}

// A Decoder turns an input file into a demosaiced 16 bit RGB image.
type Decoder interface {
	Decode(filename string, params DecodeParams) (image.Image, error)
}

// FileDecoder picks a decoder based on the file extension: TIFFs are
// assumed to be already developed, everything else is a raw file.
type FileDecoder struct {
	TIFF TIFFDecoder
	Raw  DcrawDecoder
}

func NewFileDecoder(dcrawBinary string) FileDecoder {
	return FileDecoder{Raw: DcrawDecoder{Binary: dcrawBinary}}
}

func (fd FileDecoder) Decode(filename string, params DecodeParams) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		return fd.TIFF.Decode(filename, params)
	default:
		return fd.Raw.Decode(filename, params)
	}
}

// DcrawDecoder runs an external dcraw compatible binary, and reads the
// TIFF it writes to stdout. Classic dcraw only has output color spaces
// up to ACES; LibRaw's dcraw_emu adds P3D65 and Rec2020.
type DcrawDecoder struct {
	Binary string
}

func (dd DcrawDecoder) binary() string {
	if dd.Binary == "" {
		return "dcraw"
	}
	return dd.Binary
}

// IsLibRaw is true if the binary is LibRaw's dcraw_emu
func (dd DcrawDecoder) IsLibRaw() bool {
	return strings.HasPrefix(filepath.Base(dd.binary()), "dcraw_emu")
}

// Supports says whether the binary can decode into the color space.
// Classic dcraw quietly falls back to raw camera color for anything
// past ACES, so we have to refuse those up front.
func (dd DcrawDecoder) Supports(cs ecolor.ColorSpace) bool {
	if !cs.Valid() {
		return false
	}
	return dd.IsLibRaw() || cs <= ecolor.ACES
}

// Args returns the dcraw command line for the decode parameters
func (dd DcrawDecoder) Args(filename string, params DecodeParams) []string {
	args := []string{"-c", "-T"}
	if dd.IsLibRaw() {
		args = []string{"-Z", "-", "-T"} // dcraw_emu has no -c
	}
	if params.OutputBPS == 16 {
		args = append(args, "-6")
	}
	if !params.AutoBright {
		args = append(args, "-W")
	}
	if params.UseCameraWB {
		args = append(args, "-w")
	}
	args = append(args,
		"-g", strconv.FormatFloat(params.Gamma[0], 'g', -1, 64), strconv.FormatFloat(params.Gamma[1], 'g', -1, 64),
		"-o", strconv.Itoa(params.ColorSpace.Code()),
		filename,
	)
	return args
}

func (dd DcrawDecoder) Decode(filename string, params DecodeParams) (image.Image, error) {
	bin := dd.binary()
	if !dd.Supports(params.ColorSpace) {
		return nil, fmt.Errorf("%w: %s cannot decode into %s, try dcraw_emu", ErrInvalidColorSpace, bin, params.ColorSpace)
	}

	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command(bin, dd.Args(filename, params)...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s '%s': %w (%s)", ErrDecodeFailure, bin, filename, err, strings.TrimSpace(stderr.String()))
	}

	img, err := tiff.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: tiff from %s '%s': %w", ErrDecodeFailure, bin, filename, err)
	}

	return img, nil
}

// TIFFDecoder loads a 16 bit TIFF that some other tool has already
// developed with the same parameters we would have used (linear, no
// auto-brightening, no camera white balance) into the requested color
// space. We cannot check any of that, except the bit depth.
type TIFFDecoder struct {
	Verbosity int
}

func (td TIFFDecoder) Decode(filename string, params DecodeParams) (image.Image, error) {
	if td.Verbosity > 0 {
		if ci, err := ReadCaptureInfo(filename); err != nil {
			log.Printf("no capture info for '%s': %v\n", filepath.Base(filename), err)
		} else {
			log.Printf("%s: %s\n", filepath.Base(filename), ci)
		}
	}

	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: open+r img '%s': %w", ErrDecodeFailure, filename, err)
	}
	defer reader.Close()

	img, err := tiff.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: tiff loading '%s': %w", ErrDecodeFailure, filename, err)
	}

	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
	default:
		return nil, fmt.Errorf("%w: '%s' is not a 16 bit TIFF (%T)", ErrDecodeFailure, filename, img)
	}

	return img, nil
}
