// Package decoder turns mirrored bytes back into frames on the viewer side.
package decoder

import "github.com/junsooki/WinLens/internal/frame"

// Decoder decodes bytes into a frame.
type Decoder interface {
	Decode(data []byte) (*frame.Frame, error)
}
