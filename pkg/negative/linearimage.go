package negative

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
	"github.com/abworrall/neg2cineon/pkg/emath"
)

// A LinearImage holds linear light RGB values, nominally in [0,1],
// stored row by row with the three channels interleaved. It
// implements the image.Image and hdr.Image interfaces.
type LinearImage struct {
	W, H int
	Pix  []float64
}

func NewLinearImage(w, h int) *LinearImage {
	return &LinearImage{W: w, H: h, Pix: make([]float64, w*h*3)}
}

// FromImage normalizes a decoded 16 bit image into [0,1].
func FromImage(img image.Image) *LinearImage {
	b := img.Bounds()
	li := NewLinearImage(b.Dx(), b.Dy())

	if img64, ok := img.(image.RGBA64Image); ok {
		for y := 0; y < li.H; y++ {
			for x := 0; x < li.W; x++ {
				li.SetPixel(x, y, ecolor.NewLinearRGB64(img64.RGBA64At(b.Min.X+x, b.Min.Y+y)))
			}
		}
		return li
	}

	for y := 0; y < li.H; y++ {
		for x := 0; x < li.W; x++ {
			li.SetPixel(x, y, ecolor.NewLinearRGB(img.At(b.Min.X+x, b.Min.Y+y)))
		}
	}
	return li
}

// Implement image.Image
func (li *LinearImage) ColorModel() color.Model { return hdrcolor.RGBModel }
func (li *LinearImage) Bounds() image.Rectangle { return image.Rect(0, 0, li.W, li.H) }
func (li *LinearImage) At(x, y int) color.Color { return li.HDRAt(x, y) }

// Implement hdr.Image
func (li *LinearImage) HDRAt(x, y int) hdrcolor.Color { return ecolor.ToHDR(li.Pixel(x, y)) }
func (li *LinearImage) Size() int                     { return li.W * li.H }

func (li *LinearImage) offset(x, y int) int { return (y*li.W + x) * 3 }

func (li *LinearImage) Pixel(x, y int) emath.Vec3 {
	i := li.offset(x, y)
	return emath.Vec3{li.Pix[i], li.Pix[i+1], li.Pix[i+2]}
}

func (li *LinearImage) SetPixel(x, y int, v emath.Vec3) {
	i := li.offset(x, y)
	li.Pix[i], li.Pix[i+1], li.Pix[i+2] = v[0], v[1], v[2]
}

func (li *LinearImage) String() string {
	return fmt.Sprintf("LinearImage[%dx%d]", li.W, li.H)
}

// ScaleChannels multiplies each channel by the matching gain
func (li *LinearImage) ScaleChannels(gains emath.Vec3) {
	for y := 0; y < li.H; y++ {
		for x := 0; x < li.W; x++ {
			li.SetPixel(x, y, li.Pixel(x, y).Mult(gains))
		}
	}
}

// Clamp forces every sample into [min,max]
func (li *LinearImage) Clamp(min, max float64) {
	for i, v := range li.Pix {
		li.Pix[i] = emath.ClampF64(v, min, max)
	}
}

// Grayscale is the unweighted mean of the three channels, per pixel
func (li *LinearImage) Grayscale() emath.FloatGrid {
	fg := emath.NewFloatGrid(li.W, li.H)
	for y := 0; y < li.H; y++ {
		for x := 0; x < li.W; x++ {
			fg.Set(x, y, li.Pixel(x, y).Mean())
		}
	}
	return fg
}

// WriteHDR outputs a Radiance HDR image. You can load this into photoshop or other HDR tools.
func (li *LinearImage) WriteHDR(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("LinearImage.WriteHDR, open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, li)
		if err != nil {
			log.Printf("LinearImage.WriteHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
