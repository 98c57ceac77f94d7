package negative

import (
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureInfo is the subset of EXIF we report about an input. It is
// informational only; nothing in the pipeline depends on it.
type CaptureInfo struct {
	Make, Model  string
	ISO          int64
	ExposureTime string // e.g. "1/125"
}

func (ci CaptureInfo) String() string {
	return fmt.Sprintf("%s %s, ISO%d, %ss", ci.Make, ci.Model, ci.ISO, ci.ExposureTime)
}

// ReadCaptureInfo pulls what EXIF it can out of the file. Missing
// individual tags are left blank; a file with no EXIF at all is an error.
func ReadCaptureInfo(filename string) (CaptureInfo, error) {
	ci := CaptureInfo{}

	reader, err := os.Open(filename)
	if err != nil {
		return ci, fmt.Errorf("open+r exif '%s': %v", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return ci, fmt.Errorf("exif parsing '%s': %v", filename, err)
	}

	if tag, err := ex.Get(exif.Make); err == nil {
		if s, err := tag.StringVal(); err == nil {
			ci.Make = strings.TrimSpace(s)
		}
	}
	if tag, err := ex.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil {
			ci.Model = strings.TrimSpace(s)
		}
	}
	if tag, err := ex.Get(exif.ISOSpeedRatings); err == nil {
		if val, err := tag.Int64(0); err == nil {
			ci.ISO = val
		}
	}
	if tag, err := ex.Get(exif.ExposureTime); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil {
			if denom == 1 {
				ci.ExposureTime = fmt.Sprintf("%d", num)
			} else {
				ci.ExposureTime = fmt.Sprintf("%d/%d", num, denom)
			}
		}
	}

	return ci, nil
}
