package permissions

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestDeniedWrapsSentinel(t *testing.T) {
	for _, prompted := range []bool{false, true} {
		err := denied(prompted)
		if !errors.Is(err, ErrScreenRecordingDenied) {
			t.Fatalf("denied(%v) = %v", prompted, err)
		}
		if hint := strings.Contains(err.Error(), "restart"); hint != prompted {
			t.Errorf("denied(%v) restart hint = %v", prompted, hint)
		}
	}
}

func TestEnsureScreenRecording(t *testing.T) {
	err := EnsureScreenRecording(false)
	if runtime.GOOS != "darwin" && err != nil {
		t.Fatalf("EnsureScreenRecording on %s = %v", runtime.GOOS, err)
	}
	if err != nil && !errors.Is(err, ErrScreenRecordingDenied) {
		t.Fatalf("unexpected error %v", err)
	}
}
