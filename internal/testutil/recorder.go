// Package testutil provides test doubles shared across packages.
package testutil

import (
	"sync"

	"github.com/frudas24/flexbox/internal/box"
)

// Recorder implements box.Sink and records every event for tests.
type Recorder struct {
	mu     sync.Mutex
	Events []box.Event
}

// Ensure Recorder implements the interface.
var _ box.Sink = (*Recorder)(nil)

// Emit records ev.
func (r *Recorder) Emit(ev box.Event) {
	r.mu.Lock()
	r.Events = append(r.Events, ev)
	r.mu.Unlock()
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []box.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]box.EventType, 0, len(r.Events))
	for _, ev := range r.Events {
		out = append(out, ev.Type)
	}
	return out
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t box.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Last returns the most recent event of type t.
func (r *Recorder) Last(t box.EventType) (box.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Type == t {
			return r.Events[i], true
		}
	}
	return box.Event{}, false
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.Events = nil
	r.mu.Unlock()
}
