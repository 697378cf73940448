package transform

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"

	"github.com/junsooki/WinLens/internal/frame"
)

// kernel3 is a 3x3 correlation kernel in row-major order.
type kernel3 [9]float64

var (
	embossKernel = kernel3{
		0, -1, -1,
		1, 0, -1,
		1, 1, 0,
	}
	laplacianKernel = kernel3{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}
	sobelXKernel = kernel3{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	sobelYKernel = kernel3{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
)

const blurSize = 15

var (
	blurKernel       = outer(gaussianKernel(blurSize))
	embossBildKernel = kernelFrom(3, embossKernel[:])
)

// emboss lets negative responses clamp to zero.
func emboss(src *frame.Frame) *frame.Frame {
	return convolve(src, embossBildKernel)
}

func laplacian(src *frame.Frame) *frame.Frame {
	return correlate(src, laplacianKernel, saturateAbs)
}

func sobelX(src *frame.Frame) *frame.Frame {
	return correlate(src, sobelXKernel, saturateAbs)
}

func sobelY(src *frame.Frame) *frame.Frame {
	return correlate(src, sobelYKernel, saturateAbs)
}

func blur(src *frame.Frame) *frame.Frame {
	return convolve(src, blurKernel)
}

// correlate applies k to every channel independently and converts each
// response back to a byte with post. The derivative filters need the
// absolute response, which a clamping convolution cannot give.
func correlate(src *frame.Frame, k kernel3, post func(float64) uint8) *frame.Frame {
	out := frame.New(src.Width, src.Height)
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum [3]float64
			i := 0
			for dy := -1; dy <= 1; dy++ {
				sy := reflect101(y+dy, h)
				for dx := -1; dx <= 1; dx++ {
					kv := k[i]
					i++
					if kv == 0 {
						continue
					}
					off := src.Offset(reflect101(x+dx, w), sy)
					sum[0] += kv * float64(src.Pix[off])
					sum[1] += kv * float64(src.Pix[off+1])
					sum[2] += kv * float64(src.Pix[off+2])
				}
			}
			off := out.Offset(x, y)
			out.Pix[off] = post(sum[0])
			out.Pix[off+1] = post(sum[1])
			out.Pix[off+2] = post(sum[2])
		}
	}
	return out
}

// gaussianKernel returns a normalized 1-D kernel with sigma derived from the
// size the same way OpenCV does when sigma is left at zero.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	k := make([]float64, size)
	center := size / 2
	var total float64
	for i := range k {
		d := float64(i - center)
		k[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		total += k[i]
	}
	for i := range k {
		k[i] /= total
	}
	return k
}

// outer returns the square kernel k^T k.
func outer(k []float64) *convolution.Kernel {
	n := len(k)
	m := make([]float64, n*n)
	for y, ky := range k {
		for x, kx := range k {
			m[y*n+x] = ky * kx
		}
	}
	return kernelFrom(n, m)
}
