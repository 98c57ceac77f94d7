package negative

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
	"github.com/abworrall/neg2cineon/pkg/emath"
)

// A Pipeline converts one job's worth of inputs into a Cineon image:
// either a single negative scan, or three single channel captures
// (red, green, blue, in that order) to be merged. It holds no state
// between jobs, so separate jobs can run on separate Pipelines
// concurrently.
type Pipeline struct {
	Config
	Decoder Decoder
	Picker  Picker // only needed for manual white balance
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		Config:  cfg,
		Decoder: NewFileDecoder(cfg.DcrawBinary),
	}
}

// Run develops the inputs and writes the result next to the first
// input. It returns the output filename.
func (p *Pipeline) Run(inputs ...string) (string, error) {
	outFilename, err := OutputFilename(inputs)
	if err != nil {
		return "", err
	}

	ci, err := p.Develop(inputs...)
	if err != nil {
		return "", err
	}

	if err := WriteTIFF(ci, outFilename); err != nil {
		return "", err
	}
	log.Printf("Saved Cineon TIFF to %s\n", outFilename)

	return outFilename, nil
}

// Develop does everything except writing the output.
func (p *Pipeline) Develop(inputs ...string) (*CineonImage, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	cs, err := p.GetColorSpace()
	if err != nil {
		return nil, err
	}
	wb, err := p.GetWhiteBalancer(p.Picker)
	if err != nil {
		return nil, err
	}

	var li *LinearImage
	switch len(inputs) {
	case 1:
		li, err = p.loadSingle(inputs[0], cs)
	case 3:
		log.Printf("Entering trichromatic mode\n")
		li, err = p.loadTrichromatic(inputs, cs)
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInputCount, len(inputs))
	}
	if err != nil {
		return nil, err
	}

	if err := p.Density.Expose(li, p.Exposure); err != nil {
		return nil, err
	}

	ref, err := p.resolveReference(wb, li)
	if err != nil {
		return nil, err
	}

	ci, err := p.Density.Map(li, ref)
	if err != nil {
		return nil, err
	}

	if p.DumpHDR != "" {
		if err := li.WriteHDR(p.DumpHDR); err != nil {
			log.Printf("HDR dump to %s failed: %v\n", p.DumpHDR, err)
		}
	}
	if p.Verbosity > 0 {
		if stats, err := ci.Stats(p.Density); err != nil {
			log.Printf("Cineon %dx%d: no stats: %v\n", ci.W, ci.H, err)
		} else {
			log.Printf("Cineon %dx%d: %s\n", ci.W, ci.H, stats)
		}
	}

	return ci, nil
}

func (p *Pipeline) decode(filename string, cs ecolor.ColorSpace) (image.Image, error) {
	if p.Decoder == nil {
		return nil, fmt.Errorf("%w: no decoder configured", ErrDecodeFailure)
	}
	log.Printf("Decoding %s (%s)\n", filepath.Base(filename), cs)
	return p.Decoder.Decode(filename, NewDecodeParams(cs))
}

func (p *Pipeline) loadSingle(filename string, cs ecolor.ColorSpace) (*LinearImage, error) {
	img, err := p.decode(filename, cs)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Each input supplies just one channel; the first one red, etc.
func (p *Pipeline) loadTrichromatic(inputs []string, cs ecolor.ColorSpace) (*LinearImage, error) {
	planes := []emath.FloatGrid{}
	for i, filename := range inputs {
		img, err := p.decode(filename, cs)
		if err != nil {
			return nil, err
		}
		plane, err := ExtractChannel(img, i)
		if err != nil {
			return nil, err
		}
		if p.Verbosity > 0 {
			log.Printf("%s channel from %s: %s\n", ChannelName(i), filepath.Base(filename), plane.Stats())
		}
		planes = append(planes, plane)
	}

	return MergeTrichromatic(planes)
}

func (p *Pipeline) resolveReference(wb WhiteBalancer, li *LinearImage) (emath.Vec3, error) {
	if wb.Name() == "auto" && p.DumpFilmBase != "" {
		gray := li.Grayscale()
		if err := gray.ToImg("film base grayscale", p.DumpFilmBase); err != nil {
			log.Printf("film base dump to %s failed: %v\n", p.DumpFilmBase, err)
		}
	}

	ref, err := wb.Resolve(li)
	if err != nil {
		return ref, err
	}

	gains, err := GainVector(ref)
	if err != nil {
		return ref, err
	}

	log.Printf("White balance (%s): reference %s (%s), gains %s\n", wb.Name(), ref, ecolor.Hex(ref), gains)
	return ref, nil
}
