package capture

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseHandle(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Handle
	}{
		{"123", 123},
		{"0x1f", 0x1f},
		{"0X2A0004", 0x2A0004},
	} {
		got, err := ParseHandle(tc.in)
		if err != nil {
			t.Fatalf("ParseHandle(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseHandle(%q) = %#x, want %#x", tc.in, got, tc.want)
		}
	}
	if _, err := ParseHandle("notepad"); err == nil {
		t.Error("expected error for non-numeric handle")
	}
}

func TestFailureMatchesSentinels(t *testing.T) {
	err := failCause(0x10, "GetWindowRect", ErrWindowGone, errors.New("invalid window handle"))
	if !errors.Is(err, ErrCaptureFailed) {
		t.Error("failure does not match ErrCaptureFailed")
	}
	if !errors.Is(err, ErrWindowGone) {
		t.Error("failure does not match its reason")
	}
	if errors.Is(err, ErrMinimized) {
		t.Error("failure matches an unrelated reason")
	}
	var f *Failure
	if !errors.As(err, &f) || f.Handle != 0x10 || f.Op != "GetWindowRect" {
		t.Fatalf("unexpected failure %+v", f)
	}
	if msg := err.Error(); !strings.Contains(msg, "0x10") || !strings.Contains(msg, "invalid window handle") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestPatternSize(t *testing.T) {
	p := NewPattern(200, 100)
	f, err := p.Capture(0)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if f.Width != 200 || f.Height != 100 || len(f.Pix) != 200*100*3 {
		t.Fatalf("unexpected frame %dx%d", f.Width, f.Height)
	}
}

func TestPatternMoves(t *testing.T) {
	p := NewPattern(200, 100)
	a, _ := p.Capture(0)
	b, _ := p.Capture(0)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("consecutive captures are identical")
	}
}

func TestPatternZeroArea(t *testing.T) {
	p := NewPattern(0, 100)
	_, err := p.Capture(7)
	if !errors.Is(err, ErrCaptureFailed) || !errors.Is(err, ErrZeroArea) {
		t.Fatalf("unexpected error %v", err)
	}
}
