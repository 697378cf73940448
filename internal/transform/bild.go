package transform

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"

	"github.com/junsooki/WinLens/internal/frame"
)

// convolve correlates every channel of src with k. bild only extends edge
// pixels, so the input is padded with a reflect-101 border first and the
// result cropped back. The 0.5 bias rounds bild's truncating store.
func convolve(src *frame.Frame, k *convolution.Kernel) *frame.Frame {
	r := max(k.Width, k.Height) / 2
	img := padReflect101(src, r)
	out := convolution.Convolve(img, k, &convolution.Options{Bias: 0.5, KeepAlpha: true})
	inner := out.SubImage(image.Rect(r, r, r+src.Width, r+src.Height)).(*image.RGBA)
	return frame.FromRGBA(inner)
}

// padReflect101 returns src as opaque RGBA with r extra pixels on each side.
func padReflect101(src *frame.Frame, r int) *image.RGBA {
	w, h := src.Width, src.Height
	dst := image.NewRGBA(image.Rect(0, 0, w+2*r, h+2*r))
	for y := 0; y < h+2*r; y++ {
		sy := reflect101(y-r, h)
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w+2*r; x++ {
			off := src.Offset(reflect101(x-r, w), sy)
			row[x*4] = src.Pix[off]
			row[x*4+1] = src.Pix[off+1]
			row[x*4+2] = src.Pix[off+2]
			row[x*4+3] = 0xff
		}
	}
	return dst
}

// kernelFrom builds a bild kernel from a row-major square matrix.
func kernelFrom(size int, values []float64) *convolution.Kernel {
	k := convolution.NewKernel(size, size)
	copy(k.Matrix, values)
	return k
}

// median filters p with a ksize x ksize window. Borders replicate the edge
// pixels. bild ranks neighbours by luminance, which on a gray image is the
// value itself.
func median(p plane, ksize int) plane {
	out := effect.Median(p.expandRGBA(), float64(ksize/2))
	res := newPlane(p.width, p.height)
	for y := 0; y < p.height; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < p.width; x++ {
			res.pix[y*p.width+x] = row[x*4]
		}
	}
	return res
}

func invert(src *frame.Frame) *frame.Frame {
	return frame.FromRGBA(effect.Invert(src))
}
