package encoder

import (
	"bytes"
	"errors"
	"image/jpeg"

	"github.com/junsooki/WinLens/internal/frame"
)

// DefaultQuality is used by the mirror unless configured otherwise.
const DefaultQuality = 80

var errEmpty = errors.New("encoder: empty frame")

// JPEGEncoder encodes frames as JPEG.
type JPEGEncoder struct {
	quality int
}

var _ Encoder = (*JPEGEncoder)(nil)

// NewJPEGEncoder creates a JPEG encoder. quality is clamped into 1-100.
func NewJPEGEncoder(quality int) *JPEGEncoder {
	return &JPEGEncoder{quality: min(max(quality, 1), 100)}
}

// Quality returns the current quality.
func (e *JPEGEncoder) Quality() int { return e.quality }

func (e *JPEGEncoder) Encode(f *frame.Frame) ([]byte, error) {
	if f.Empty() {
		return nil, errEmpty
	}
	var buf bytes.Buffer
	buf.Grow(len(f.Pix) / 8)
	if err := jpeg.Encode(&buf, f.ToRGBA(), &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
