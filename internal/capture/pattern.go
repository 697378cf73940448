package capture

import (
	"github.com/junsooki/WinLens/internal/frame"
)

// Pattern is a synthetic window: vertical color bars with a square that moves
// a few pixels on every capture. It stands in for a real window in demos and
// tests and ignores the handle.
type Pattern struct {
	Width  int
	Height int

	tick int
}

// NewPattern creates a synthetic window of the given size.
func NewPattern(width, height int) *Pattern {
	return &Pattern{Width: width, Height: height}
}

var bars = [][3]uint8{
	{255, 255, 255},
	{255, 255, 0},
	{0, 255, 255},
	{0, 255, 0},
	{255, 0, 255},
	{255, 0, 0},
	{0, 0, 255},
	{16, 16, 16},
}

func (p *Pattern) Capture(h Handle) (*frame.Frame, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fail(h, "pattern", ErrZeroArea)
	}
	f := frame.New(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := bars[x*len(bars)/p.Width]
			f.SetRGB(x, y, c[0], c[1], c[2])
		}
	}

	side := max(min(p.Width, p.Height)/4, 1)
	ox := (p.tick * 4) % max(p.Width-side, 1)
	oy := (p.Height - side) / 2
	for y := oy; y < oy+side && y < p.Height; y++ {
		for x := ox; x < ox+side && x < p.Width; x++ {
			f.SetRGB(x, y, 0, 0, 0)
		}
	}
	p.tick++
	return f, nil
}

func (p *Pattern) Close() error { return nil }
