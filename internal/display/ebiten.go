package display

import (
	"image"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/interaction"
)

// EbitenDisplay renders frames using Ebitengine and captures typed keys.
type EbitenDisplay struct {
	mu          sync.Mutex
	frame       *image.RGBA
	ebitenImage *ebiten.Image
	onKey       KeyFunc
	title       string
	closed      bool

	screenW int
	screenH int
	// Last size pushed to the window; the user may resize freely until the
	// frame size changes again.
	windowW int
	windowH int

	chars []rune
}

var _ Display = (*EbitenDisplay)(nil)

// NewEbitenDisplay creates an Ebitengine-based display.
func NewEbitenDisplay(title string, onKey KeyFunc) *EbitenDisplay {
	return &EbitenDisplay{
		onKey:   onKey,
		title:   title,
		screenW: 1600,
		screenH: 720,
	}
}

// SetFrame updates the displayed frame (called from the session goroutine).
func (d *EbitenDisplay) SetFrame(img *image.RGBA) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = img
	if img != nil {
		d.screenW = img.Bounds().Dx()
		d.screenH = img.Bounds().Dy()
	}
}

// Present implements the session presenter.
func (d *EbitenDisplay) Present(f *frame.Frame) error {
	d.SetFrame(f.ToRGBA())
	return nil
}

// Close makes the game loop terminate on its next update.
func (d *EbitenDisplay) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

// Run starts the Ebitengine game loop. Must be called from the main goroutine.
func (d *EbitenDisplay) Run() error {
	d.mu.Lock()
	w, h := d.screenW, d.screenH
	d.mu.Unlock()
	ebiten.SetWindowSize(w, h)
	d.windowW, d.windowH = w, h
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(d)
}

// --- ebiten.Game interface ---

func (d *EbitenDisplay) Update() error {
	d.mu.Lock()
	closed := d.closed
	w, h := d.screenW, d.screenH
	d.mu.Unlock()
	if closed {
		return ebiten.Termination
	}

	if w != d.windowW || h != d.windowH {
		ebiten.SetWindowSize(w, h)
		d.windowW, d.windowH = w, h
	}

	d.captureKeyboardInput()
	return nil
}

func (d *EbitenDisplay) Draw(screen *ebiten.Image) {
	d.mu.Lock()
	frame := d.frame
	d.mu.Unlock()

	if frame == nil {
		return
	}

	if d.ebitenImage == nil ||
		d.ebitenImage.Bounds().Dx() != frame.Bounds().Dx() ||
		d.ebitenImage.Bounds().Dy() != frame.Bounds().Dy() {
		d.ebitenImage = ebiten.NewImage(frame.Bounds().Dx(), frame.Bounds().Dy())
	}
	d.ebitenImage.WritePixels(frame.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	fw, fh := float64(frame.Bounds().Dx()), float64(frame.Bounds().Dy())
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), fw, fh)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(d.ebitenImage, op)
}

func (d *EbitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// --- Input capture ---

func (d *EbitenDisplay) captureKeyboardInput() {
	d.chars = ebiten.AppendInputChars(d.chars[:0])
	for _, r := range d.chars {
		d.sendKey(interaction.Key(r))
	}
}

func (d *EbitenDisplay) sendKey(k interaction.Key) {
	if d.onKey == nil {
		return
	}
	d.onKey(k)
}

// aspectFitTransform returns scale and offsets to fit frame into view with letterboxing.
func aspectFitTransform(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/frameW, viewH/frameH)
	offsetX = (viewW - frameW*scale) / 2
	offsetY = (viewH - frameH*scale) / 2
	return
}
