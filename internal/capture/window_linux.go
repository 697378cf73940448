//go:build linux

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/kbinani/screenshot"

	"github.com/junsooki/WinLens/internal/frame"
)

// X11Capturer looks up a window's on-screen rectangle over an X connection
// and grabs that region of the screen.
type X11Capturer struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewWindowCapturer connects to the X server named by $DISPLAY.
func NewWindowCapturer() (Capturer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &X11Capturer{conn: conn, root: root}, nil
}

func (c *X11Capturer) Capture(h Handle) (*frame.Frame, error) {
	win := xproto.Window(h)

	attrs, err := xproto.GetWindowAttributes(c.conn, win).Reply()
	if err != nil {
		return nil, failCause(h, "GetWindowAttributes", ErrWindowGone, err)
	}
	if attrs.MapState != xproto.MapStateViewable {
		return nil, fail(h, "GetWindowAttributes", ErrMinimized)
	}

	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return nil, failCause(h, "GetGeometry", ErrWindowGone, err)
	}
	if geom.Width == 0 || geom.Height == 0 {
		return nil, fail(h, "GetGeometry", ErrZeroArea)
	}

	pos, err := xproto.TranslateCoordinates(c.conn, win, c.root, 0, 0).Reply()
	if err != nil {
		return nil, failCause(h, "TranslateCoordinates", ErrWindowGone, err)
	}

	x, y := int(pos.DstX), int(pos.DstY)
	bounds := image.Rect(x, y, x+int(geom.Width), y+int(geom.Height))
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, failCause(h, "CaptureRect", ErrUnreadable, err)
	}
	return frame.FromRGBA(img), nil
}

func (c *X11Capturer) Close() error {
	c.conn.Close()
	return nil
}
