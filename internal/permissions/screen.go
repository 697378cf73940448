//go:build darwin

package permissions

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

// Returns 1 when access is already granted. With prompt set the system dialog
// is shown once; a grant made there only applies to the next launch.
static int screenCaptureAccess(int prompt) {
    if (CGPreflightScreenCaptureAccess()) {
        return 1;
    }
    if (prompt) {
        CGRequestScreenCaptureAccess();
    }
    return 0;
}
*/
import "C"

// EnsureScreenRecording returns nil when window pixels are readable. With
// prompt set, a missing grant also opens the system consent dialog.
func EnsureScreenRecording(prompt bool) error {
	p := C.int(0)
	if prompt {
		p = 1
	}
	if C.screenCaptureAccess(p) != 0 {
		return nil
	}
	return denied(prompt)
}
