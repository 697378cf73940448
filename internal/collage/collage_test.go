package collage

import (
	"bytes"
	"fmt"
	"image"
	"testing"

	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/transform"
)

func newCompositor(t *testing.T) *Compositor {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// solidResults returns n cells, cell i filled with gray level i+1.
func solidResults(n int) []transform.Result {
	results := make([]transform.Result, n)
	for i := range results {
		f := frame.New(transform.WorkWidth, transform.WorkHeight)
		v := uint8(i + 1)
		f.Fill(v, v, v)
		results[i] = transform.Result{Name: fmt.Sprintf("T%d", i), Frame: f}
	}
	return results
}

// sample reads a pixel near the bottom-right of a cell, clear of the label.
func sample(f *frame.Frame, cell image.Rectangle) uint8 {
	r, _, _ := f.RGB(cell.Max.X-5, cell.Max.Y-5)
	return r
}

func TestComposeSize(t *testing.T) {
	c := newCompositor(t)
	out := c.Compose(solidResults(15))
	if out.Width != 5*transform.WorkWidth || out.Height != 3*transform.WorkHeight {
		t.Fatalf("collage is %dx%d", out.Width, out.Height)
	}
}

func TestComposePlacement(t *testing.T) {
	c := newCompositor(t)
	out := c.Compose(solidResults(15))
	for idx := 0; idx < 15; idx++ {
		cell := image.Rect(
			(idx%5)*transform.WorkWidth, (idx/5)*transform.WorkHeight,
			(idx%5+1)*transform.WorkWidth, (idx/5+1)*transform.WorkHeight,
		)
		if got, _ := c.Cell(idx); got != cell {
			t.Errorf("Cell(%d) = %v, want %v", idx, got, cell)
		}
		if v := sample(out, cell); v != uint8(idx+1) {
			t.Errorf("cell %d holds %d, want %d", idx, v, idx+1)
		}
	}
}

func TestComposeTruncates(t *testing.T) {
	c := newCompositor(t)
	results := solidResults(17)
	out := c.Compose(results)
	for idx := 0; idx < 15; idx++ {
		cell, _ := c.Cell(idx)
		if v := sample(out, cell); v == 16 || v == 17 {
			t.Fatalf("overflow result drawn into cell %d", idx)
		}
	}
	if _, ok := c.Cell(15); ok {
		t.Fatal("Cell(15) should be outside a 3x5 grid")
	}
}

func TestComposeShortSequenceLeavesBackground(t *testing.T) {
	c := newCompositor(t)
	out := c.Compose(solidResults(13))
	for _, idx := range []int{13, 14} {
		cell, _ := c.Cell(idx)
		for y := cell.Min.Y; y < cell.Max.Y; y += 7 {
			for x := cell.Min.X; x < cell.Max.X; x += 7 {
				if r, g, b := out.RGB(x, y); r != 0 || g != 0 || b != 0 {
					t.Fatalf("empty cell %d not black at (%d,%d)", idx, x, y)
				}
			}
		}
	}
}

func TestComposeLabels(t *testing.T) {
	c := newCompositor(t)
	results := solidResults(1)
	results[0].Frame.Fill(128, 128, 128)

	out := c.Compose(results)
	var light, dark bool
	for y := 10; y < 40; y++ {
		for x := 5; x < 60; x++ {
			switch r, _, _ := out.RGB(x, y); {
			case r > 200:
				light = true
			case r < 50:
				dark = true
			}
		}
	}
	if !light || !dark {
		t.Fatalf("label strokes missing (light=%v dark=%v)", light, dark)
	}
}

func TestComposeIdempotent(t *testing.T) {
	c := newCompositor(t)
	results := solidResults(15)
	a := c.Compose(results)
	b := c.Compose(results)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("composing the same results twice differs")
	}
}

func TestComposeDoesNotMutateResults(t *testing.T) {
	c := newCompositor(t)
	results := solidResults(3)
	before := results[0].Frame.Clone()
	c.Compose(results)
	if !bytes.Equal(before.Pix, results[0].Frame.Pix) {
		t.Fatal("label drawn into a result frame")
	}
}

func TestComposeZoom(t *testing.T) {
	c := newCompositor(t)
	results := solidResults(15)
	out := c.ComposeZoom(results, 7)
	if out.Width != DefaultZoomWidth || out.Height != DefaultZoomHeight {
		t.Fatalf("zoom is %dx%d", out.Width, out.Height)
	}
	for i, v := range out.Pix {
		if v != 8 {
			t.Fatalf("zoom byte %d = %d, want 8 (no labels, only result 7)", i, v)
		}
	}
}

func TestComposeZoomAnySourceSize(t *testing.T) {
	c := newCompositor(t)
	small := []transform.Result{{Name: "small", Frame: frame.New(13, 7)}}
	out := c.ComposeZoom(small, 0)
	if out.Width != DefaultZoomWidth || out.Height != DefaultZoomHeight {
		t.Fatalf("zoom is %dx%d", out.Width, out.Height)
	}
}

func TestComposeZoomPanicsOnBadIndex(t *testing.T) {
	c := newCompositor(t)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range index")
		}
	}()
	c.ComposeZoom(solidResults(3), 3)
}
