package transform

import (
	"math"

	"github.com/junsooki/WinLens/internal/frame"
)

const (
	cartoonMedian     = 7
	cartoonBlock      = 9
	cartoonC          = 2
	bilateralDiameter = 9
	bilateralSigma    = 300.0
)

// cartoon keeps the bilateral-smoothed color wherever the adaptive threshold
// of the median-blurred luminance is set and zeroes the edge pixels.
func cartoon(src *frame.Frame) *frame.Frame {
	mask := adaptiveMean(median(luma(src), cartoonMedian), cartoonBlock, cartoonC)
	out := bilateral(src, bilateralDiameter, bilateralSigma, bilateralSigma)
	for i, m := range mask.pix {
		if m == 0 {
			out.Pix[i*3] = 0
			out.Pix[i*3+1] = 0
			out.Pix[i*3+2] = 0
		}
	}
	return out
}

// adaptiveMean sets a pixel to 255 when it exceeds the rounded mean of its
// block x block neighbourhood minus c.
func adaptiveMean(p plane, block, c int) plane {
	w, h := p.width, p.height
	r := block / 2
	rows := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for dx := -r; dx <= r; dx++ {
				sum += int(p.at(replicate(x+dx, w), y))
			}
			rows[y*w+x] = sum
		}
	}

	area := float64(block * block)
	out := newPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for dy := -r; dy <= r; dy++ {
				sum += rows[replicate(y+dy, h)*w+x]
			}
			mean := int(saturate(float64(sum) / area))
			if int(p.at(x, y))-mean > -c {
				out.pix[y*w+x] = 255
			}
		}
	}
	return out
}

// bilateral smooths src while preserving edges. Neighbours inside a disc of
// the given diameter are weighted by spatial distance and by the L1 color
// distance to the center pixel.
func bilateral(src *frame.Frame, diameter int, sigmaColor, sigmaSpace float64) *frame.Frame {
	w, h := src.Width, src.Height
	r := diameter / 2

	type tap struct {
		dx, dy int
		weight float64
	}
	var taps []tap
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d2 := float64(dx*dx + dy*dy)
			if math.Sqrt(d2) > float64(r) {
				continue
			}
			taps = append(taps, tap{dx, dy, math.Exp(d2 * spaceCoeff)})
		}
	}

	var colorWeight [256 * 3]float64
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)
	for i := range colorWeight {
		colorWeight[i] = math.Exp(float64(i*i) * colorCoeff)
	}

	out := frame.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.Offset(x, y)
			r0, g0, b0 := int(src.Pix[c]), int(src.Pix[c+1]), int(src.Pix[c+2])
			var sr, sg, sb, sw float64
			for _, t := range taps {
				off := src.Offset(reflect101(x+t.dx, w), reflect101(y+t.dy, h))
				rv, gv, bv := int(src.Pix[off]), int(src.Pix[off+1]), int(src.Pix[off+2])
				wt := t.weight * colorWeight[abs(rv-r0)+abs(gv-g0)+abs(bv-b0)]
				sr += wt * float64(rv)
				sg += wt * float64(gv)
				sb += wt * float64(bv)
				sw += wt
			}
			out.Pix[c] = saturate(sr / sw)
			out.Pix[c+1] = saturate(sg / sw)
			out.Pix[c+2] = saturate(sb / sw)
		}
	}
	return out
}
