package negative

import (
	"errors"

	"github.com/abworrall/neg2cineon/pkg/ecolor"
)

// Every failure of a conversion job is one of these; test for them
// with errors.Is. None of them are retried.
var (
	ErrInvalidInputCount   = errors.New("must provide exactly 1 or 3 inputs")
	ErrWrongInputCount     = errors.New("trichromatic mode requires exactly 3 channel sources")
	ErrDimensionMismatch   = errors.New("channel sources have different dimensions")
	ErrInvalidChannelIndex = errors.New("channel index must be 0, 1 or 2")
	ErrInvalidColorSpace   = ecolor.ErrInvalidColorSpace
	ErrEmptySelection      = errors.New("no pixels selected for film base")
	ErrNoPointSelected     = errors.New("no point was selected")
	ErrPointOutOfBounds    = errors.New("selected point is outside the image")
	ErrInvalidReference    = errors.New("reference sample must be finite and strictly positive")
	ErrInvalidExposure     = errors.New("exposure must be finite and positive")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrDecodeFailure       = errors.New("decode failed")
	ErrWriteFailure        = errors.New("write failed")
)
