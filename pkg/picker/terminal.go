package picker

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/abworrall/neg2cineon/pkg/emath"
	"github.com/abworrall/neg2cineon/pkg/negative"
)

const (
	DefaultScale           = 0.25
	DefaultPreviewFilename = "wb-preview.png"
	gridSpacing            = 50 // in preview pixels
)

// Terminal is a negative.Picker for when there is no GUI: it writes a
// downsampled preview PNG with a labelled coordinate grid, then asks
// for the coordinates of some film base in that preview.
type Terminal struct {
	In              io.Reader
	Out             io.Writer
	PreviewFilename string
	Scale           float64 // preview size, relative to the image
}

func NewTerminal(previewFilename string) *Terminal {
	return &Terminal{
		In:              os.Stdin,
		Out:             os.Stdout,
		PreviewFilename: previewFilename,
		Scale:           DefaultScale,
	}
}

// Pick implements negative.Picker. The returned point is in the
// coordinates of the full size image.
func (t *Terminal) Pick(li *negative.LinearImage) (image.Point, bool, error) {
	scale := t.Scale
	if !(scale > 0 && scale <= 1) {
		scale = DefaultScale
	}

	preview := RenderPreview(li, scale)
	if err := preview.SavePNG(t.PreviewFilename); err != nil {
		return image.Point{}, false, fmt.Errorf("preview '%s': %v", t.PreviewFilename, err)
	}

	b := preview.Image().Bounds()
	fmt.Fprintf(t.Out, "Preview written to %s (%dx%d).\n", t.PreviewFilename, b.Dx(), b.Dy())
	fmt.Fprintf(t.Out, "Enter 'x y' of a point on the orange mask to white-balance (blank to abort): ")

	pt, ok, err := readPoint(t.In)
	if err != nil || !ok {
		return image.Point{}, false, err
	}

	// Back into full size coords
	full := image.Point{int(float64(pt.X) / scale), int(float64(pt.Y) / scale)}
	fmt.Fprintf(t.Out, "Selected point at: (%d, %d)\n", full.X, full.Y)

	return full, true, nil
}

func readPoint(r io.Reader) (image.Point, bool, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return image.Point{}, false, scanner.Err()
	}

	line := strings.TrimSpace(scanner.Text())
	if line == "" || line == "q" {
		return image.Point{}, false, nil
	}

	var pt image.Point
	if _, err := fmt.Sscanf(line, "%d %d", &pt.X, &pt.Y); err != nil {
		return image.Point{}, false, fmt.Errorf("can't parse '%s' as 'x y': %v", line, err)
	}
	return pt, true, nil
}

// RenderPreview downsamples the image for display, gamma expands it
// so it looks right on screen, and draws a grid with coordinates.
func RenderPreview(li *negative.LinearImage, scale float64) *gg.Context {
	display := image.NewRGBA64(li.Bounds())
	for y := 0; y < li.H; y++ {
		for x := 0; x < li.W; x++ {
			v := emath.GammaExpand_sRGB(li.Pixel(x, y).Clamp(0, 1))
			display.SetRGBA64(x, y, color.RGBA64{
				uint16(v[0] * 0xFFFF),
				uint16(v[1] * 0xFFFF),
				uint16(v[2] * 0xFFFF),
				0xFFFF,
			})
		}
	}

	w := uint(float64(li.W) * scale)
	h := uint(float64(li.H) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	small := resize.Resize(w, h, display, resize.Bilinear)

	dc := gg.NewContextForImage(small)
	dc.SetLineWidth(1)
	dc.SetRGBA(0, 1, 1, 0.5)
	for x := gridSpacing; x < int(w); x += gridSpacing {
		dc.DrawLine(float64(x), 0, float64(x), float64(h))
		dc.Stroke()
		dc.DrawString(fmt.Sprintf("%d", x), float64(x)+2, 12)
	}
	for y := gridSpacing; y < int(h); y += gridSpacing {
		dc.DrawLine(0, float64(y), float64(w), float64(y))
		dc.Stroke()
		dc.DrawString(fmt.Sprintf("%d", y), 2, float64(y)-2)
	}

	return dc
}
