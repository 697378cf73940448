// Package transform holds the fixed, ordered bank of image transformations
// applied to every captured frame.
package transform

import (
	"github.com/junsooki/WinLens/internal/frame"
)

// Working resolution every transformation runs at. Collage cells share it.
const (
	WorkWidth  = 320
	WorkHeight = 240
)

// Func maps a working-resolution frame to a new frame of the same size.
// Implementations must not modify src.
type Func func(src *frame.Frame) *frame.Frame

// Transformation is a named entry of the bank.
type Transformation struct {
	Name  string
	Apply Func
}

// Result pairs a transformation's display name with its output.
type Result struct {
	Name  string
	Frame *frame.Frame
}

// The order is part of the key mapping: selector key N zooms into entry N-1.
var bank = []Transformation{
	{"Original", identity},
	{"Gray", gray},
	{"HSV", hsv},
	{"Lab", lab},
	{"Edge", edges},
	{"Sepia", sepia},
	{"Invert", invert},
	{"Blur", blur},
	{"Emboss", emboss},
	{"Cartoon", cartoon},
	{"Histogram Equalization", equalize},
	{"CLAHE", clahe},
	{"Laplacian", laplacian},
	{"Sobel X", sobelX},
	{"Sobel Y", sobelY},
}

// Bank returns a copy of the ordered transformation list.
func Bank() []Transformation {
	out := make([]Transformation, len(bank))
	copy(out, bank)
	return out
}

// Len returns the number of transformations in the bank.
func Len() int { return len(bank) }

// Names returns the display names in bank order.
func Names() []string {
	names := make([]string, len(bank))
	for i, t := range bank {
		names[i] = t.Name
	}
	return names
}

// Apply resizes src to the working resolution and runs every transformation
// over it. src is left untouched.
func Apply(src *frame.Frame) []Result {
	work := frame.Resize(src, WorkWidth, WorkHeight)
	results := make([]Result, 0, len(bank))
	for _, t := range bank {
		results = append(results, Result{Name: t.Name, Frame: t.Apply(work)})
	}
	return results
}

func identity(src *frame.Frame) *frame.Frame {
	return src.Clone()
}
