package transform

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/junsooki/WinLens/internal/frame"
)

func gray(src *frame.Frame) *frame.Frame {
	return luma(src).expand()
}

// hsv stores hue/2, saturation and value in the R, G and B channels, the
// 8-bit layout that keeps hue inside a byte.
func hsv(src *frame.Frame) *frame.Frame {
	return remap(src, func(c colorful.Color) (float64, float64, float64) {
		h, s, v := c.Hsv()
		return h / 2, s * 255, v * 255
	})
}

// lab stores L scaled to 0..255 and a/b offset by 128.
func lab(src *frame.Frame) *frame.Frame {
	return remap(src, func(c colorful.Color) (float64, float64, float64) {
		l, a, b := c.Lab()
		return l * 255, a*100 + 128, b*100 + 128
	})
}

func remap(src *frame.Frame, fn func(colorful.Color) (float64, float64, float64)) *frame.Frame {
	out := frame.New(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		c := colorful.Color{
			R: float64(src.Pix[i]) / 255,
			G: float64(src.Pix[i+1]) / 255,
			B: float64(src.Pix[i+2]) / 255,
		}
		x, y, z := fn(c)
		out.Pix[i] = saturate(x)
		out.Pix[i+1] = saturate(y)
		out.Pix[i+2] = saturate(z)
	}
	return out
}

// Rows produce R, G and B from the input (R, G, B).
var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

func sepia(src *frame.Frame) *frame.Frame {
	out := frame.New(src.Width, src.Height)
	for i := 0; i < len(src.Pix); i += 3 {
		r := float64(src.Pix[i])
		g := float64(src.Pix[i+1])
		b := float64(src.Pix[i+2])
		for c, row := range sepiaMatrix {
			out.Pix[i+c] = saturate(row[0]*r + row[1]*g + row[2]*b)
		}
	}
	return out
}
