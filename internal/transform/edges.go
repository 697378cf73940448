package transform

import (
	"github.com/junsooki/WinLens/internal/frame"
)

const (
	cannyLow  = 100
	cannyHigh = 200
)

func edges(src *frame.Frame) *frame.Frame {
	return canny(luma(src), cannyLow, cannyHigh).expand()
}

// canny produces a binary edge map (0 or 255): Sobel gradients with L1
// magnitude, non-maximum suppression along the quantized gradient direction,
// then hysteresis between low and high.
func canny(p plane, low, high int) plane {
	w, h := p.width, p.height
	gx := make([]int, w*h)
	gy := make([]int, w*h)
	mag := make([]int, w*h)
	for y := 0; y < h; y++ {
		ym := reflect101(y-1, h)
		yp := reflect101(y+1, h)
		for x := 0; x < w; x++ {
			xm := reflect101(x-1, w)
			xp := reflect101(x+1, w)
			a, b, c := int(p.at(xm, ym)), int(p.at(x, ym)), int(p.at(xp, ym))
			d, f := int(p.at(xm, y)), int(p.at(xp, y))
			g, hh, k := int(p.at(xm, yp)), int(p.at(x, yp)), int(p.at(xp, yp))

			i := y*w + x
			gx[i] = (c + 2*f + k) - (a + 2*d + g)
			gy[i] = (g + 2*hh + k) - (a + 2*b + c)
			mag[i] = abs(gx[i]) + abs(gy[i])
		}
	}

	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	const (
		none = iota
		weak
		strong
	)
	class := make([]uint8, w*h)
	var stack []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m <= low {
				continue
			}
			ax, ay := float64(abs(gx[i])), float64(abs(gy[i]))
			var keep bool
			switch {
			case ay < ax*0.4142135623730950488:
				keep = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ay > ax*2.4142135623730950488:
				keep = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				keep = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !keep {
				continue
			}
			if m > high {
				class[i] = strong
				stack = append(stack, i)
			} else {
				class[i] = weak
			}
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if class[j] == weak {
					class[j] = strong
					stack = append(stack, j)
				}
			}
		}
	}

	out := newPlane(w, h)
	for i, c := range class {
		if c == strong {
			out.pix[i] = 255
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
