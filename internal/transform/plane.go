package transform

import (
	"image"
	"math"

	"github.com/junsooki/WinLens/internal/frame"
)

// plane is a single-channel 8-bit image used for intermediate results.
type plane struct {
	width  int
	height int
	pix    []uint8
}

func newPlane(width, height int) plane {
	return plane{width: width, height: height, pix: make([]uint8, width*height)}
}

func (p plane) at(x, y int) uint8 {
	return p.pix[y*p.width+x]
}

// expand copies the plane into all three channels of a new frame.
func (p plane) expand() *frame.Frame {
	out := frame.New(p.width, p.height)
	for i, v := range p.pix {
		out.Pix[i*3] = v
		out.Pix[i*3+1] = v
		out.Pix[i*3+2] = v
	}
	return out
}

func (p plane) expandRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i, v := range p.pix {
		out.Pix[i*4] = v
		out.Pix[i*4+1] = v
		out.Pix[i*4+2] = v
		out.Pix[i*4+3] = 0xff
	}
	return out
}

// luma converts a frame to a luminance plane with the BT.601 weights in
// 14-bit fixed point.
func luma(f *frame.Frame) plane {
	p := newPlane(f.Width, f.Height)
	for i := range p.pix {
		r := uint32(f.Pix[i*3])
		g := uint32(f.Pix[i*3+1])
		b := uint32(f.Pix[i*3+2])
		p.pix[i] = uint8((r*4899 + g*9617 + b*1868 + 1<<13) >> 14)
	}
	return p
}

// saturate rounds half to even and clamps to 0..255.
func saturate(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func saturateAbs(v float64) uint8 {
	return saturate(math.Abs(v))
}

// reflect101 maps i into [0, n) mirroring around the edge pixels
// (gfedcb|abcdefgh|gfedcba).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// replicate maps i into [0, n) by repeating the edge pixels.
func replicate(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
