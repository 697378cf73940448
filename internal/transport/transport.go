// Package transport moves encoded frames and input events over WebRTC
// DataChannels.
package transport

import "errors"

// FrameSender sends encoded video frames.
type FrameSender interface {
	SendFrame(data []byte) error
}

// FrameReceiver receives encoded video frames.
type FrameReceiver interface {
	OnFrame(callback func(data []byte))
}

// InputSender sends serialized input events.
type InputSender interface {
	SendInput(data []byte) error
}

// InputReceiver receives serialized input events.
type InputReceiver interface {
	OnInput(callback func(data []byte))
}

var (
	// ErrNotOpen means the channel is missing or not open yet.
	ErrNotOpen = errors.New("data channel not open")
	// ErrBusy means the previous frame has not drained; the frame was skipped.
	ErrBusy = errors.New("data channel busy")
)
