package input

import (
	"context"
	"time"

	"github.com/junsooki/WinLens/internal/interaction"
)

// Queue buffers key presses from any number of producers (local window,
// remote viewers) for the single consumer running the main loop.
type Queue struct {
	ch chan interaction.Key
}

// NewQueue creates a queue holding at most size pending keys.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan interaction.Key, size)}
}

// Push enqueues k without blocking. It reports false when the queue is full
// and the key was dropped.
func (q *Queue) Push(k interaction.Key) bool {
	select {
	case q.ch <- k:
		return true
	default:
		return false
	}
}

// PollKey waits up to timeout for one key. No key is a normal result.
func (q *Queue) PollKey(ctx context.Context, timeout time.Duration) (interaction.Key, bool) {
	if timeout <= 0 {
		select {
		case k := <-q.ch:
			return k, true
		default:
			return 0, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case k := <-q.ch:
		return k, true
	case <-timer.C:
		return 0, false
	case <-ctx.Done():
		return 0, false
	}
}
