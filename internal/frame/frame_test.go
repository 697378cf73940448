package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestFromRGBADropsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Pix = []uint8{10, 20, 30, 255, 40, 50, 60, 128}

	f := FromRGBA(img)
	if f.Width != 2 || f.Height != 1 {
		t.Fatalf("unexpected size %dx%d", f.Width, f.Height)
	}
	want := []uint8{10, 20, 30, 40, 50, 60}
	for i := range want {
		if f.Pix[i] != want[i] {
			t.Fatalf("pix[%d] = %d, want %d", i, f.Pix[i], want[i])
		}
	}
}

func TestFromRGBASubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 3, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)

	f := FromRGBA(sub)
	if r, g, b := f.RGB(0, 1); r != 7 || g != 8 || b != 9 {
		t.Fatalf("unexpected pixel %d,%d,%d", r, g, b)
	}
}

func TestFromImageGeneric(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	f := FromImage(img)
	if r, g, b := f.RGB(0, 0); r != 200 || g != 100 || b != 50 {
		t.Fatalf("unexpected pixel %d,%d,%d", r, g, b)
	}
}

func TestToRGBAOpaque(t *testing.T) {
	f := New(3, 2)
	f.Fill(1, 2, 3)
	img := f.ToRGBA()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			t.Fatalf("alpha at %d = %d", i, img.Pix[i])
		}
	}
	if c := img.RGBAAt(2, 1); c.R != 1 || c.G != 2 || c.B != 3 {
		t.Fatalf("unexpected color %+v", c)
	}
}

func TestResize(t *testing.T) {
	f := New(100, 50)
	f.Fill(90, 120, 200)

	out := Resize(f, 320, 240)
	if out.Width != 320 || out.Height != 240 || len(out.Pix) != 320*240*Channels {
		t.Fatalf("unexpected size %dx%d (%d bytes)", out.Width, out.Height, len(out.Pix))
	}
	if r, g, b := out.RGB(160, 120); r != 90 || g != 120 || b != 200 {
		t.Fatalf("uniform input changed color: %d,%d,%d", r, g, b)
	}
	if r, _, _ := f.RGB(0, 0); r != 90 {
		t.Fatal("source mutated")
	}
}

func TestResizeSameSizeCopies(t *testing.T) {
	f := New(4, 4)
	out := Resize(f, 4, 4)
	out.Pix[0] = 99
	if f.Pix[0] != 0 {
		t.Fatal("Resize returned an alias of its input")
	}
}

func TestSetAndAt(t *testing.T) {
	f := New(2, 2)
	f.Set(1, 1, color.RGBA{R: 5, G: 6, B: 7, A: 255})
	f.Set(5, 5, color.White) // ignored

	if c := f.At(1, 1).(color.RGBA); c.R != 5 || c.G != 6 || c.B != 7 || c.A != 255 {
		t.Fatalf("unexpected color %+v", c)
	}
	if c := f.At(-1, 0).(color.RGBA); c != (color.RGBA{}) {
		t.Fatalf("out of bounds At returned %+v", c)
	}
}
