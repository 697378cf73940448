package decoder

import (
	"testing"

	"github.com/junsooki/WinLens/internal/encoder"
	"github.com/junsooki/WinLens/internal/frame"
)

func TestDecodeEncodedFrame(t *testing.T) {
	src := frame.New(48, 24)
	src.Fill(30, 160, 90)
	data, err := encoder.NewJPEGEncoder(95).Encode(src)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := NewJPEGDecoder().Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Width != 48 || got.Height != 24 {
		t.Fatalf("size %dx%d", got.Width, got.Height)
	}
	r, g, b := got.RGB(24, 12)
	if diff(r, 30) > 8 || diff(g, 160) > 8 || diff(b, 90) > 8 {
		t.Errorf("center pixel = %d,%d,%d", r, g, b)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := NewJPEGDecoder().Decode([]byte("not a jpeg")); err == nil {
		t.Fatal("expected error")
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
