//go:build windows

package capture

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	procEnumWindows          = user32.NewProc("EnumWindows")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
)

var (
	// EnumWindows runs the callback synchronously; one listing at a time
	// owns enumerated.
	enumMu     sync.Mutex
	enumerated []Window

	enumOnce     sync.Once
	enumCallback uintptr
)

func collectWindow(hwnd windows.HWND, _ uintptr) uintptr {
	h := uintptr(hwnd)
	if visible, _, _ := procIsWindowVisible.Call(h); visible == 0 {
		return 1
	}
	if iconic, _, _ := procIsIconic.Call(h); iconic != 0 {
		return 1
	}
	n, _, _ := procGetWindowTextLengthW.Call(h)
	if n == 0 {
		return 1
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(h, uintptr(unsafe.Pointer(&buf[0])), n+1)
	if title := windows.UTF16ToString(buf); title != "" {
		enumerated = append(enumerated, Window{Handle: Handle(h), Title: title})
	}
	return 1
}

func listWindows() ([]Window, error) {
	enumOnce.Do(func() {
		enumCallback = syscall.NewCallback(collectWindow)
	})

	enumMu.Lock()
	defer enumMu.Unlock()
	enumerated = nil
	if ret, _, err := procEnumWindows.Call(enumCallback, 0); ret == 0 {
		return nil, err
	}
	ws := enumerated
	enumerated = nil
	return ws, nil
}
