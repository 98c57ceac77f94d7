package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
	"github.com/abworrall/neg2cineon/pkg/negative"
	"github.com/abworrall/neg2cineon/pkg/picker"
)

var (
	fVerbosity  int
	fExposure   float64
	fColorSpace string
	fPickWB     bool
	fPercentile float64
	fDcraw      string
	fDumpHDR    string
	fDumpBase   string
	fPreview    string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.Float64Var(&fExposure, "exposure", 1.0, "exposure multiplier")
	flag.StringVar(&fColorSpace, "color-space", ecolor.DefaultColorSpace.String(), "output color space: "+ecolor.ListColorSpaces())
	flag.BoolVar(&fPickWB, "pick-wb", false, "pick the white balance point manually, instead of estimating the film base")
	flag.Float64Var(&fPercentile, "percentile", negative.DefaultFilmBasePercentile, "film base estimation uses pixels darker than this percentile")
	flag.StringVar(&fDcraw, "dcraw", "dcraw", "dcraw compatible binary used to decode raw files")
	flag.StringVar(&fDumpHDR, "dumphdr", "", "also write the white balanced linear image to this .hdr file")
	flag.StringVar(&fDumpBase, "dumpfilmbase", "", "also write the grayscale used for film base estimation to this .png file")
	flag.StringVar(&fPreview, "preview", picker.DefaultPreviewFilename, "where -pick-wb writes its preview image")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Convert RAW negative(s) to a Cineon-style log TIFF.\n\n")
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [config.yaml] input [green-input blue-input]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "One input is converted as-is; three inputs are merged in trichromatic\n")
		fmt.Fprintf(os.Stderr, "mode, taking red from the first, green from the second, blue from the third.\n\n")
		flag.PrintDefaults()
	}
}

// setFlags lists the flags given explicitly on the command line, so
// they can override a config file.
func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func main() {
	flag.Parse()

	cfg := negative.NewConfig()
	inputs := []string{}
	for _, arg := range flag.Args() {
		switch strings.ToLower(filepath.Ext(arg)) {
		case ".yaml", ".yml":
			c, err := negative.LoadConfig(arg)
			if err != nil {
				log.Fatalf("Loading %s as config YAML failed: %v\n", arg, err)
			}
			cfg = c
			log.Printf("Loaded base configuration from %s\n", arg)
		default:
			inputs = append(inputs, arg)
		}
	}

	// Override the config file with command line args, if relevant
	set := setFlags()
	if set["v"] || cfg.Verbosity == 0 {
		cfg.Verbosity = fVerbosity
	}
	if set["exposure"] {
		cfg.Exposure = fExposure
	}
	if set["color-space"] {
		cfg.ColorSpace = fColorSpace
	}
	if set["pick-wb"] {
		cfg.WhiteBalance = "auto"
		if fPickWB {
			cfg.WhiteBalance = "manual"
		}
	}
	if set["percentile"] {
		cfg.FilmBasePercentile = fPercentile
	}
	if set["dcraw"] {
		cfg.DcrawBinary = fDcraw
	}
	if set["dumphdr"] {
		cfg.DumpHDR = fDumpHDR
	}
	if set["dumpfilmbase"] {
		cfg.DumpFilmBase = fDumpBase
	}

	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	p := negative.NewPipeline(cfg)
	p.Decoder = negative.FileDecoder{
		TIFF: negative.TIFFDecoder{Verbosity: cfg.Verbosity},
		Raw:  negative.DcrawDecoder{Binary: cfg.DcrawBinary},
	}
	p.Picker = picker.NewTerminal(fPreview)

	outFilename, err := p.Run(inputs...)
	if err != nil {
		log.Fatalf("Conversion failed: %v\n", err)
	}

	fmt.Println(outFilename)
}
