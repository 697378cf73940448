// Package display shows frames in a desktop window and reports typed keys.
package display

import (
	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/interaction"
)

// Display renders frames and captures user input. Run blocks on the main
// goroutine; Present and Close may be called from any goroutine.
type Display interface {
	Present(f *frame.Frame) error
	Close()
	Run() error
}

// KeyFunc is called for every character typed into the window.
type KeyFunc func(k interaction.Key)
