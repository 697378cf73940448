// Package encoder turns presented frames into bytes for remote viewers.
package encoder

import "github.com/junsooki/WinLens/internal/frame"

// Encoder encodes a frame into bytes. The mirror server only depends on this.
type Encoder interface {
	Encode(f *frame.Frame) ([]byte, error)
}
