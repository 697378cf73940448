package frame

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Channels is the fixed channel count of every Frame.
const Channels = 3

// Frame is a rectangular RGB pixel buffer. Pix holds Width*Height byte
// triples in row-major order with no padding between rows.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a black Frame of the given size.
func New(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Stride returns the number of bytes per row.
func (f *Frame) Stride() int {
	return f.Width * Channels
}

// Offset returns the index of the first byte of pixel (x, y) in Pix.
func (f *Frame) Offset(x, y int) int {
	return y*f.Width*Channels + x*Channels
}

// Empty reports whether the frame has zero area.
func (f *Frame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0
}

// RGB returns the channel values at (x, y).
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := f.Offset(x, y)
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB sets the channel values at (x, y).
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	i := f.Offset(x, y)
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// Fill paints every pixel with the same color.
func (f *Frame) Fill(r, g, b uint8) {
	for i := 0; i < len(f.Pix); i += Channels {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	out := &Frame{Width: f.Width, Height: f.Height, Pix: make([]uint8, len(f.Pix))}
	copy(out.Pix, f.Pix)
	return out
}

// --- image.Image / draw.Image ---

func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := f.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Set stores c, dropping its alpha channel.
func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	f.SetRGB(x, y, rgba.R, rgba.G, rgba.B)
}

// --- conversion ---

// FromImage copies img into a new Frame, flattening any alpha channel.
func FromImage(img image.Image) *Frame {
	if rgba, ok := img.(*image.RGBA); ok {
		return FromRGBA(rgba)
	}
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			f.SetRGB(x, y, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
		}
	}
	return f
}

// FromRGBA drops the alpha byte of every pixel of img.
func FromRGBA(img *image.RGBA) *Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := f.Pix[y*f.Stride():]
		for x := 0; x < f.Width; x++ {
			dst[x*3] = src[x*4]
			dst[x*3+1] = src[x*4+1]
			dst[x*3+2] = src[x*4+2]
		}
	}
	return f
}

// ToRGBA expands the frame to an opaque *image.RGBA.
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// Resize scales f to width x height with bilinear interpolation. The source
// is never modified.
func Resize(f *Frame, width, height int) *Frame {
	if f.Width == width && f.Height == height {
		return f.Clone()
	}
	if f.Empty() {
		return New(width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), f.ToRGBA(), f.Bounds(), draw.Src, nil)
	return FromRGBA(dst)
}
