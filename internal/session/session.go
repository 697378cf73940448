// Package session runs the per-tick loop: capture, transform, compose,
// present, then read one key.
package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/junsooki/WinLens/internal/capture"
	"github.com/junsooki/WinLens/internal/collage"
	"github.com/junsooki/WinLens/internal/frame"
	"github.com/junsooki/WinLens/internal/interaction"
	"github.com/junsooki/WinLens/internal/transform"
)

// DefaultPollInterval bounds the wait for a key press on every tick.
const DefaultPollInterval = 16 * time.Millisecond

// Presenter shows one frame per tick.
type Presenter interface {
	Present(f *frame.Frame) error
}

// KeySource yields at most one key press per call, waiting up to timeout.
type KeySource interface {
	PollKey(ctx context.Context, timeout time.Duration) (interaction.Key, bool)
}

// Presenters fans each frame out to several surfaces in order.
type Presenters []Presenter

func (ps Presenters) Present(f *frame.Frame) error {
	for _, p := range ps {
		if err := p.Present(f); err != nil {
			return err
		}
	}
	return nil
}

// Session owns the selection state for one capture target.
type Session struct {
	capturer   capture.Capturer
	handle     capture.Handle
	compositor *collage.Compositor
	controller *interaction.Controller
	presenter  Presenter
	keys       KeySource
	poll       time.Duration

	ticks int
}

// New wires a session. A non-positive poll uses DefaultPollInterval.
func New(c capture.Capturer, h capture.Handle, comp *collage.Compositor, p Presenter, keys KeySource, poll time.Duration) *Session {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Session{
		capturer:   c,
		handle:     h,
		compositor: comp,
		controller: interaction.NewController(transform.Len()),
		presenter:  p,
		keys:       keys,
		poll:       poll,
	}
}

// State returns the current selection.
func (s *Session) State() interaction.State { return s.controller.State() }

// Ticks returns the number of frames presented so far.
func (s *Session) Ticks() int { return s.ticks }

// Run ticks until quit is pressed, ctx is cancelled or a tick fails. A
// capture failure ends the session and is returned as is.
func (s *Session) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		done, err := s.Tick(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// Tick performs one iteration and reports whether quit has been pressed.
func (s *Session) Tick(ctx context.Context) (bool, error) {
	src, err := s.capturer.Capture(s.handle)
	if err != nil {
		return true, err
	}

	out := s.render(transform.Apply(src))
	if err := s.presenter.Present(out); err != nil {
		return true, fmt.Errorf("present: %w", err)
	}
	s.ticks++

	if k, ok := s.keys.PollKey(ctx, s.poll); ok {
		prev := s.controller.State()
		if s.controller.HandleKey(k) && !s.controller.Done() {
			log.Printf("selection %v -> %v", prev, s.controller.State())
		}
	}
	return s.controller.Done(), nil
}

func (s *Session) render(results []transform.Result) *frame.Frame {
	st := s.controller.State()
	if st.Mode == interaction.Zoomed {
		return s.compositor.ComposeZoom(results, st.Index)
	}
	return s.compositor.Compose(results)
}
