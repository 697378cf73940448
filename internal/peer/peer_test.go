package peer

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

// pipe hands signals to the other side asynchronously, like a network hop.
type pipe struct {
	t       *testing.T
	deliver func(msgType string, payload json.RawMessage) error
}

func (p *pipe) Signal(msgType string, payload json.RawMessage) error {
	go func() {
		if err := p.deliver(msgType, payload); err != nil {
			p.t.Errorf("deliver %s: %v", msgType, err)
		}
	}()
	return nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(15 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func connectPair(t *testing.T) (*Host, *Viewer) {
	t.Helper()
	cfg := Config{Loopback: true}
	toHost := &pipe{t: t}
	toViewer := &pipe{t: t}

	h, err := NewHost(toViewer, cfg)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	t.Cleanup(h.Close)
	v, err := NewViewer(toHost, cfg)
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	t.Cleanup(v.Close)

	toHost.deliver = func(msgType string, payload json.RawMessage) error {
		switch msgType {
		case TypeOffer:
			return h.HandleOffer(payload)
		case TypeICECandidate:
			return h.HandleICECandidate(payload)
		}
		return nil
	}
	toViewer.deliver = func(msgType string, payload json.RawMessage) error {
		switch msgType {
		case TypeAnswer:
			return v.HandleAnswer(payload)
		case TypeICECandidate:
			return v.HandleICECandidate(payload)
		}
		return nil
	}

	if err := v.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	waitFor(t, "data channels", func() bool {
		return h.Transport().FramesOpen() && h.Transport().InputOpen() &&
			v.Transport().FramesOpen() && v.Transport().InputOpen()
	})
	return h, v
}

func TestFramesAndInputOverDataChannels(t *testing.T) {
	h, v := connectPair(t)

	frames := make(chan []byte, 1)
	v.Transport().OnFrame(func(data []byte) {
		select {
		case frames <- data:
		default:
		}
	})
	keys := make(chan []byte, 1)
	h.Transport().OnInput(func(data []byte) { keys <- data })

	// larger than one SCTP message
	big := make([]byte, 200*1024)
	for i := range big {
		big[i] = byte(i % 251)
	}

	deadline := time.After(15 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for received := false; !received; {
		select {
		case got := <-frames:
			if !bytes.Equal(got, big) {
				t.Fatalf("frame of %d bytes does not match", len(got))
			}
			received = true
		case <-ticker.C:
			_ = h.Transport().SendFrame(big)
		case <-deadline:
			t.Fatal("no frame arrived")
		}
	}

	event := []byte(`{"type":"key_down","key":"q"}`)
	if err := v.Transport().SendInput(event); err != nil {
		t.Fatalf("SendInput: %v", err)
	}
	select {
	case got := <-keys:
		if !bytes.Equal(got, event) {
			t.Fatalf("input = %s", got)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("no input arrived")
	}
}

func TestCandidatesBeforeRemoteDescriptionAreQueued(t *testing.T) {
	h, err := NewHost(&pipe{t: t, deliver: func(string, json.RawMessage) error { return nil }}, Config{Loopback: true})
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	defer h.Close()

	c := json.RawMessage(`{"candidate":"candidate:1 1 udp 2130706431 127.0.0.1 50000 typ host","sdpMid":"0","sdpMLineIndex":0}`)
	if err := h.HandleICECandidate(c); err != nil {
		t.Fatalf("early candidate rejected: %v", err)
	}
	if len(h.remote.queue) != 1 {
		t.Fatalf("queued %d candidates, want 1", len(h.remote.queue))
	}
	if err := h.HandleICECandidate(json.RawMessage(`not json`)); err == nil {
		t.Fatal("malformed candidate accepted")
	}
}
