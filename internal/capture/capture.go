package capture

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/junsooki/WinLens/internal/frame"
)

// Handle identifies a window on the host window system (HWND on Windows,
// CGWindowID on macOS, X11 window id on Linux).
type Handle uintptr

// ParseHandle accepts decimal or 0x-prefixed hexadecimal handles.
func ParseHandle(s string) (Handle, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window handle %q: %w", s, err)
	}
	return Handle(v), nil
}

// Capturer grabs the current contents of a window.
type Capturer interface {
	// Capture returns a frame the size of the window's current bounds.
	// Failures match ErrCaptureFailed.
	Capture(h Handle) (*frame.Frame, error)
	Close() error
}

var (
	ErrCaptureFailed = errors.New("capture failed")

	ErrWindowGone  = errors.New("window no longer exists")
	ErrMinimized   = errors.New("window is minimized")
	ErrZeroArea    = errors.New("window has zero area")
	ErrUnreadable  = errors.New("window surface cannot be read")
	ErrUnsupported = errors.New("window capture not supported on this platform")
)

// Failure describes why a capture failed.
type Failure struct {
	Handle Handle
	Op     string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("capture window %#x: %s: %v", uintptr(f.Handle), f.Op, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is makes every Failure match ErrCaptureFailed.
func (f *Failure) Is(target error) bool { return target == ErrCaptureFailed }

func fail(h Handle, op string, err error) error {
	return &Failure{Handle: h, Op: op, Err: err}
}

// failCause wraps an OS error under one of the sentinel reasons.
func failCause(h Handle, op string, reason, cause error) error {
	if cause == nil {
		return fail(h, op, reason)
	}
	return fail(h, op, fmt.Errorf("%w: %v", reason, cause))
}
