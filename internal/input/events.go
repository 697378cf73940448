package input

import (
	"unicode/utf8"

	"github.com/junsooki/WinLens/internal/interaction"
)

// EventType identifies the kind of input event.
type EventType string

const (
	EventKeyDown EventType = "key_down"
)

// Event is the wire format for input events sent by remote viewers.
type Event struct {
	Type EventType `json:"type"`
	// Key is the typed character, e.g. "q" or "8".
	Key string `json:"key,omitempty"`
}

// KeyDown builds the event for a typed character.
func KeyDown(k interaction.Key) Event {
	return Event{Type: EventKeyDown, Key: string(rune(k))}
}

// KeyValue returns the key of a key_down event carrying exactly one character.
func (e Event) KeyValue() (interaction.Key, bool) {
	if e.Type != EventKeyDown || utf8.RuneCountInString(e.Key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(e.Key)
	return interaction.Key(r), true
}
