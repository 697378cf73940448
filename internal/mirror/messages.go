package mirror

import (
	"encoding/json"

	"github.com/junsooki/WinLens/internal/input"
	"github.com/junsooki/WinLens/internal/peer"
)

// Message types for the text side of the mirror protocol. Frames travel as
// binary messages holding one JPEG each, or over a DataChannel once a viewer
// has upgraded with an offer.
const (
	TypeHello        = "hello"
	TypeKeyDown      = string(input.EventKeyDown)
	TypeOffer        = peer.TypeOffer
	TypeAnswer       = peer.TypeAnswer
	TypeICECandidate = peer.TypeICECandidate
	TypeError        = "error"
)

// Message is the envelope for all text messages in either direction.
type Message struct {
	Type       string          `json:"type"`
	Session    string          `json:"session,omitempty"`
	Transforms []string        `json:"transforms,omitempty"`
	Key        string          `json:"key,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Msg        string          `json:"message,omitempty"`
}

func (m Message) event() input.Event {
	return input.Event{Type: input.EventType(m.Type), Key: m.Key}
}
