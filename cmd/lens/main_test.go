package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/junsooki/WinLens/internal/capture"
	"github.com/junsooki/WinLens/internal/config"
)

// blockingLoop runs until its context is cancelled, like a session with no
// quit key pressed.
func blockingLoop(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestSuperviseReturnsServiceFailure(t *testing.T) {
	bind := errors.New("listen tcp :8090: address already in use")
	done := make(chan error, 1)
	go func() {
		done <- supervise(context.Background(), blockingLoop, func(context.Context) error { return bind })
	}()
	select {
	case err := <-done:
		if !errors.Is(err, bind) {
			t.Fatalf("supervise = %v, want %v", err, bind)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("session kept running after its service failed")
	}
}

func TestSuperviseQuitStopsServices(t *testing.T) {
	stopped := make(chan struct{})
	svc := func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	}
	quit := func(context.Context) error { return nil }
	if err := supervise(context.Background(), quit, svc); err != nil {
		t.Fatalf("supervise = %v", err)
	}
	select {
	case <-stopped:
	default:
		t.Fatal("service still running after quit")
	}
}

func TestSuperviseReturnsLoopFailure(t *testing.T) {
	gone := &capture.Failure{Handle: 1, Op: "test", Err: capture.ErrWindowGone}
	err := supervise(context.Background(), func(context.Context) error { return gone }, blockingLoop)
	if !errors.Is(err, capture.ErrCaptureFailed) {
		t.Fatalf("supervise = %v", err)
	}
}

func TestSuperviseCancelledIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := supervise(ctx, blockingLoop, blockingLoop); err != nil {
		t.Fatalf("supervise = %v", err)
	}
}

func TestPickWindow(t *testing.T) {
	list := func() ([]capture.Window, error) {
		return []capture.Window{{Handle: 7, Title: "Editor"}, {Handle: 0x2a, Title: "Browser"}}, nil
	}
	cfg := &config.Config{}
	var out bytes.Buffer
	if err := pickWindow(cfg, list, strings.NewReader("2\n"), &out); err != nil {
		t.Fatalf("pickWindow: %v", err)
	}
	if cfg.Handle != 0x2a || cfg.Window != "0x2a" {
		t.Fatalf("picked %q (%#x)", cfg.Window, cfg.Handle)
	}

	if err := pickWindow(&config.Config{}, list, strings.NewReader("9\n"), &out); !errors.Is(err, capture.ErrInvalidChoice) {
		t.Fatalf("pickWindow out of range = %v", err)
	}
	boom := errors.New("no display")
	fail := func() ([]capture.Window, error) { return nil, boom }
	if err := pickWindow(&config.Config{}, fail, strings.NewReader("1\n"), &out); !errors.Is(err, boom) {
		t.Fatalf("pickWindow list failure = %v", err)
	}
}
