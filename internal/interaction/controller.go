// Package interaction implements the selection state machine driven by key
// presses: grid view, zoom into one transformation, or quit.
package interaction

import "fmt"

// Key is a typed character as reported by the presentation surface.
type Key rune

// Fixed key surface.
const (
	KeyQuit  Key = 'q'
	KeyReset Key = 'r'

	// Selector keys form the contiguous range starting at '1': '1'..'9'
	// then ':' ';' '<' '=' '>' '?'.
	firstSelector Key = '1'
	MaxSelectors      = 15
)

// SelectorIndex returns the bank position k selects, if k is a selector key.
func SelectorIndex(k Key) (int, bool) {
	if k < firstSelector || k >= firstSelector+MaxSelectors {
		return 0, false
	}
	return int(k - firstSelector), true
}

// SelectorKey returns the key that selects bank position index.
func SelectorKey(index int) (Key, bool) {
	if index < 0 || index >= MaxSelectors {
		return 0, false
	}
	return firstSelector + Key(index), true
}

// Mode distinguishes grid view from zoom view.
type Mode int

const (
	Grid Mode = iota
	Zoomed
)

func (m Mode) String() string {
	switch m {
	case Grid:
		return "grid"
	case Zoomed:
		return "zoomed"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// State is the current selection. Index is meaningful only when Mode is Zoomed.
type State struct {
	Mode  Mode
	Index int
}

func (s State) String() string {
	if s.Mode == Zoomed {
		return fmt.Sprintf("zoomed(%d)", s.Index)
	}
	return s.Mode.String()
}

// Controller owns the selection state. It only ever produces Zoomed indices
// inside [0, bankSize).
type Controller struct {
	bankSize int
	state    State
	done     bool
}

// NewController starts in Grid for a bank of bankSize transformations.
func NewController(bankSize int) *Controller {
	return &Controller{bankSize: bankSize}
}

// State returns the current selection.
func (c *Controller) State() State { return c.state }

// Done reports whether quit has been pressed.
func (c *Controller) Done() bool { return c.done }

// HandleKey applies one key press and reports whether the state changed.
// Keys arriving after quit are ignored.
func (c *Controller) HandleKey(k Key) bool {
	if c.done {
		return false
	}
	switch k {
	case KeyQuit:
		c.done = true
		return true
	case KeyReset:
		if c.state.Mode == Grid {
			return false
		}
		c.state = State{Mode: Grid}
		return true
	}

	idx, ok := SelectorIndex(k)
	if !ok || idx >= c.bankSize {
		return false
	}
	next := State{Mode: Zoomed, Index: idx}
	if next == c.state {
		return false
	}
	c.state = next
	return true
}
