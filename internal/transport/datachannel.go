package transport

import (
	"sync"

	"github.com/pion/webrtc/v4"
)

// maxBuffered bounds how much of earlier frames may still be queued before a
// new frame is skipped.
const maxBuffered = 1 << 20

// DataChannelTransport implements frame and input transport over WebRTC DataChannels.
type DataChannelTransport struct {
	mu       sync.Mutex
	framesDC *webrtc.DataChannel
	inputDC  *webrtc.DataChannel

	onFrame func(data []byte)
	onInput func(data []byte)

	seq uint32
	asm assembler
}

// NewDataChannelTransport wraps two DataChannels (frames + input). Either may
// be nil and set later when the remote side opens it.
func NewDataChannelTransport(framesDC, inputDC *webrtc.DataChannel) *DataChannelTransport {
	t := &DataChannelTransport{}
	if framesDC != nil {
		t.SetFramesChannel(framesDC)
	}
	if inputDC != nil {
		t.SetInputChannel(inputDC)
	}
	return t
}

// SendFrame splits data into chunks and sends them on the frames channel.
func (t *DataChannelTransport) SendFrame(data []byte) error {
	t.mu.Lock()
	dc := t.framesDC
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	if !isOpen(dc) {
		return ErrNotOpen
	}
	if dc.BufferedAmount() > maxBuffered {
		return ErrBusy
	}
	for _, chunk := range splitFrame(seq, data, chunkSize) {
		if err := dc.Send(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (t *DataChannelTransport) SendInput(data []byte) error {
	t.mu.Lock()
	dc := t.inputDC
	t.mu.Unlock()
	if !isOpen(dc) {
		return ErrNotOpen
	}
	return dc.Send(data)
}

func (t *DataChannelTransport) OnFrame(cb func(data []byte)) {
	t.mu.Lock()
	t.onFrame = cb
	t.mu.Unlock()
}

func (t *DataChannelTransport) OnInput(cb func(data []byte)) {
	t.mu.Lock()
	t.onInput = cb
	t.mu.Unlock()
}

// FramesOpen reports whether frames can be sent or received.
func (t *DataChannelTransport) FramesOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return isOpen(t.framesDC)
}

// InputOpen reports whether input events can be sent or received.
func (t *DataChannelTransport) InputOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return isOpen(t.inputDC)
}

// SetFramesChannel sets or replaces the frames DataChannel (used when receiving negotiated channels).
func (t *DataChannelTransport) SetFramesChannel(dc *webrtc.DataChannel) {
	t.mu.Lock()
	t.framesDC = dc
	t.asm = assembler{}
	t.mu.Unlock()
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		t.mu.Lock()
		data, ok := t.asm.add(msg.Data)
		cb := t.onFrame
		t.mu.Unlock()
		if ok && cb != nil {
			cb(data)
		}
	})
}

// SetInputChannel sets or replaces the input DataChannel.
func (t *DataChannelTransport) SetInputChannel(dc *webrtc.DataChannel) {
	t.mu.Lock()
	t.inputDC = dc
	t.mu.Unlock()
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		t.mu.Lock()
		cb := t.onInput
		t.mu.Unlock()
		if cb != nil {
			cb(msg.Data)
		}
	})
}

func isOpen(dc *webrtc.DataChannel) bool {
	return dc != nil && dc.ReadyState() == webrtc.DataChannelStateOpen
}
