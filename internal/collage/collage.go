// Package collage arranges transformation results into a labeled grid or
// renders a single result at zoom resolution.
package collage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/transform"
)

// Default layout.
const (
	DefaultRows       = 3
	DefaultCols       = 5
	DefaultZoomWidth  = 640
	DefaultZoomHeight = 480

	labelSize    = 16
	labelOffsetX = 10
	labelOffsetY = 30
)

var (
	outlineColor = image.NewUniform(color.RGBA{A: 0xff})
	fillColor    = image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
)

// Compositor builds the frame handed to the presentation surface.
type Compositor struct {
	Rows       int
	Cols       int
	CellWidth  int
	CellHeight int
	ZoomWidth  int
	ZoomHeight int

	face font.Face
}

// New creates a compositor with the default 3x5 grid of working-resolution
// cells and a 640x480 zoom.
func New() (*Compositor, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return &Compositor{
		Rows:       DefaultRows,
		Cols:       DefaultCols,
		CellWidth:  transform.WorkWidth,
		CellHeight: transform.WorkHeight,
		ZoomWidth:  DefaultZoomWidth,
		ZoomHeight: DefaultZoomHeight,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    labelSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// Capacity is the number of cells in the grid.
func (c *Compositor) Capacity() int {
	return c.Rows * c.Cols
}

// Cell returns the rectangle of grid cell idx in row-major order, or false
// once idx is past the last cell.
func (c *Compositor) Cell(idx int) (image.Rectangle, bool) {
	if idx < 0 || idx >= c.Capacity() {
		return image.Rectangle{}, false
	}
	row, col := idx/c.Cols, idx%c.Cols
	x, y := col*c.CellWidth, row*c.CellHeight
	return image.Rect(x, y, x+c.CellWidth, y+c.CellHeight), true
}

// Compose copies each result into its grid cell and stamps its name. Results
// beyond the grid capacity are dropped; unused cells stay black.
func (c *Compositor) Compose(results []transform.Result) *frame.Frame {
	out := frame.New(c.Cols*c.CellWidth, c.Rows*c.CellHeight)
	for idx, r := range results {
		cell, ok := c.Cell(idx)
		if !ok {
			break
		}
		blit(out, r.Frame, cell)
		c.label(out, r.Name, cell.Min.Add(image.Pt(labelOffsetX, labelOffsetY)))
	}
	return out
}

// ComposeZoom upscales results[index] to the zoom resolution. An index
// outside results is a caller bug and panics.
func (c *Compositor) ComposeZoom(results []transform.Result, index int) *frame.Frame {
	if index < 0 || index >= len(results) {
		panic(fmt.Sprintf("collage: zoom index %d out of range [0,%d)", index, len(results)))
	}
	return frame.Resize(results[index].Frame, c.ZoomWidth, c.ZoomHeight)
}

// blit copies src into dst at cell.Min, clipped to the cell.
func blit(dst, src *frame.Frame, cell image.Rectangle) {
	w := min(src.Width, cell.Dx())
	h := min(src.Height, cell.Dy())
	for y := 0; y < h; y++ {
		s := src.Offset(0, y)
		d := dst.Offset(cell.Min.X, cell.Min.Y+y)
		copy(dst.Pix[d:d+w*frame.Channels], src.Pix[s:s+w*frame.Channels])
	}
}

// label draws text with a dark outline under a light fill so it stays
// readable on any background.
func (c *Compositor) label(dst *frame.Frame, text string, at image.Point) {
	d := &font.Drawer{Dst: dst, Face: c.face}

	d.Src = outlineColor
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if dx*dx+dy*dy > 4 || (dx == 0 && dy == 0) {
				continue
			}
			d.Dot = freetype.Pt(at.X+dx, at.Y+dy)
			d.DrawString(text)
		}
	}

	d.Src = fillColor
	for _, dx := range []int{0, 1} {
		d.Dot = freetype.Pt(at.X+dx, at.Y)
		d.DrawString(text)
	}
}
