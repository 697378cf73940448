package input

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/junsooki/WinLens/internal/interaction"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue(4)
	for _, k := range "8rq" {
		q.Push(interaction.Key(k))
	}
	for _, want := range "8rq" {
		k, ok := q.PollKey(context.Background(), 0)
		if !ok || k != interaction.Key(want) {
			t.Fatalf("PollKey = %q, %v; want %q", k, ok, want)
		}
	}
}

func TestQueueEmptyTimesOut(t *testing.T) {
	q := NewQueue(1)
	start := time.Now()
	if _, ok := q.PollKey(context.Background(), 10*time.Millisecond); ok {
		t.Fatal("empty queue returned a key")
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatal("PollKey returned before the timeout")
	}
}

func TestQueueCancelled(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := q.PollKey(ctx, time.Hour); ok {
		t.Fatal("cancelled poll returned a key")
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(1)
	if !q.Push('1') {
		t.Fatal("first push dropped")
	}
	if q.Push('2') {
		t.Fatal("push into full queue succeeded")
	}
}

func TestEventKeyValue(t *testing.T) {
	var e Event
	if err := json.Unmarshal([]byte(`{"type":"key_down","key":"?"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if k, ok := e.KeyValue(); !ok || k != '?' {
		t.Fatalf("KeyValue = %q, %v", k, ok)
	}
	if _, ok := (Event{Type: EventKeyDown, Key: "ab"}).KeyValue(); ok {
		t.Error("multi-character key accepted")
	}
	if _, ok := (Event{Type: "key_up", Key: "a"}).KeyValue(); ok {
		t.Error("non key_down event accepted")
	}
	if e := KeyDown('q'); e.Key != "q" || e.Type != EventKeyDown {
		t.Errorf("KeyDown = %+v", e)
	}
}
