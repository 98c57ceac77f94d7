package negative

import (
	"fmt"
	"io/ioutil"
	"math"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
)

/* Example config file ...

verbosity: 1
exposure: 1.5
colorspace: ProPhoto
whitebalance: auto
filmbasepercentile: 2
density:
  epsilon: 0.0001
  blackpoint: 0.19
  densityscale: 500
  codemin: 95
  codemax: 1023
dumphdr: balanced.hdr
dumpfilmbase: filmbase-gray.png
dcrawbinary: /usr/local/bin/dcraw

*/

type Config struct {
	Verbosity int

	Exposure           float64 // Linear multiplier applied before anything else
	ColorSpace         string  // One of ecolor.ListColorSpaces()
	WhiteBalance       string  // "auto" or "manual"
	FilmBasePercentile float64 // Used by the "auto" white balancer

	Density DensityParams

	DumpHDR      string // If set, write the balanced linear image here
	DumpFilmBase string // If set, write the grayscale used by "auto" here (PNG)
	DcrawBinary  string
}

func NewConfig() Config {
	return Config{
		Exposure:           1.0,
		ColorSpace:         ecolor.DefaultColorSpace.String(),
		WhiteBalance:       "auto",
		FilmBasePercentile: DefaultFilmBasePercentile,
		Density:            DefaultDensityParams(),
		DcrawBinary:        "dcraw",
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c, nil
}

func LoadConfig(filename string) (Config, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %w", filename, err)
	}

	return newConfigFromYaml(contents)
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate checks everything that can be checked before touching any
// input file.
func (c Config) Validate() error {
	if _, err := ecolor.ParseColorSpace(c.ColorSpace); err != nil {
		return err
	}
	if !(c.Exposure > 0) || math.IsInf(c.Exposure, 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidExposure, c.Exposure)
	}
	if !(c.FilmBasePercentile >= 0 && c.FilmBasePercentile <= 100) {
		return fmt.Errorf("%w: film base percentile %g not in [0,100]", ErrInvalidConfig, c.FilmBasePercentile)
	}
	switch c.WhiteBalance {
	case "auto", "manual":
	default:
		return fmt.Errorf("%w: no white balance strategy named '%s'", ErrInvalidConfig, c.WhiteBalance)
	}
	return c.Density.Validate()
}

func (c Config) GetColorSpace() (ecolor.ColorSpace, error) {
	return ecolor.ParseColorSpace(c.ColorSpace)
}

func (c Config) GetWhiteBalancer(p Picker) (WhiteBalancer, error) {
	switch c.WhiteBalance {
	case "auto":
		return AutoWhiteBalance{Percentile: c.FilmBasePercentile}, nil
	case "manual":
		return ManualWhiteBalance{Picker: p}, nil
	default:
		return nil, fmt.Errorf("%w: no white balance strategy named '%s'", ErrInvalidConfig, c.WhiteBalance)
	}
}
