package decoder

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/junsooki/WinLens/internal/frame"
)

// JPEGDecoder decodes JPEG bytes into RGB frames.
type JPEGDecoder struct{}

var _ Decoder = (*JPEGDecoder)(nil)

func NewJPEGDecoder() *JPEGDecoder {
	return &JPEGDecoder{}
}

func (d *JPEGDecoder) Decode(data []byte) (*frame.Frame, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}
	return frame.FromImage(img), nil
}
