//go:build windows

package capture

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/junsooki/WinLens/internal/frame"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procIsWindow      = user32.NewProc("IsWindow")
	procIsIconic      = user32.NewProc("IsIconic")
	procGetWindowRect = user32.NewProc("GetWindowRect")
	procGetWindowDC   = user32.NewProc("GetWindowDC")
	procReleaseDC     = user32.NewProc("ReleaseDC")

	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
)

const (
	srcCopy      = 0x00CC0020
	biRGB        = 0
	dibRGBColors = 0
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// GDICapturer copies a window's full rectangle (frame included) with BitBlt.
type GDICapturer struct{}

// NewWindowCapturer returns the GDI capturer.
func NewWindowCapturer() (Capturer, error) {
	return &GDICapturer{}, nil
}

func (c *GDICapturer) Capture(h Handle) (*frame.Frame, error) {
	hwnd := uintptr(h)
	if ok, _, _ := procIsWindow.Call(hwnd); ok == 0 {
		return nil, fail(h, "IsWindow", ErrWindowGone)
	}
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		return nil, fail(h, "IsIconic", ErrMinimized)
	}

	var r rect
	if ret, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r))); ret == 0 {
		return nil, failCause(h, "GetWindowRect", ErrWindowGone, err)
	}
	width := int(r.Right - r.Left)
	height := int(r.Bottom - r.Top)
	if width <= 0 || height <= 0 {
		return nil, fail(h, "GetWindowRect", ErrZeroArea)
	}

	hdcWindow, _, err := procGetWindowDC.Call(hwnd)
	if hdcWindow == 0 {
		return nil, failCause(h, "GetWindowDC", ErrUnreadable, err)
	}
	defer procReleaseDC.Call(hwnd, hdcWindow)

	hdcMem, _, err := procCreateCompatibleDC.Call(hdcWindow)
	if hdcMem == 0 {
		return nil, failCause(h, "CreateCompatibleDC", ErrUnreadable, err)
	}
	defer procDeleteDC.Call(hdcMem)

	hBitmap, _, err := procCreateCompatibleBitmap.Call(hdcWindow, uintptr(width), uintptr(height))
	if hBitmap == 0 {
		return nil, failCause(h, "CreateCompatibleBitmap", ErrUnreadable, err)
	}
	defer procDeleteObject.Call(hBitmap)

	old, _, _ := procSelectObject.Call(hdcMem, hBitmap)
	defer procSelectObject.Call(hdcMem, old)

	if ret, _, err := procBitBlt.Call(
		hdcMem, 0, 0, uintptr(width), uintptr(height),
		hdcWindow, 0, 0, srcCopy,
	); ret == 0 {
		return nil, failCause(h, "BitBlt", ErrUnreadable, err)
	}

	var bi bitmapInfo
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.Width = int32(width)
	bi.Header.Height = -int32(height) // top-down
	bi.Header.Planes = 1
	bi.Header.BitCount = 32
	bi.Header.Compression = biRGB

	buf := make([]byte, width*height*4)
	if ret, _, err := procGetDIBits.Call(
		hdcMem, hBitmap, 0, uintptr(height),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
	); ret == 0 {
		return nil, failCause(h, "GetDIBits", ErrUnreadable, err)
	}

	// BGRA -> RGB
	f := frame.New(width, height)
	for i, j := 0, 0; i < len(buf); i, j = i+4, j+3 {
		f.Pix[j] = buf[i+2]
		f.Pix[j+1] = buf[i+1]
		f.Pix[j+2] = buf[i]
	}
	return f, nil
}

func (c *GDICapturer) Close() error { return nil }
