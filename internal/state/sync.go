// Package state provides observable value cells for the box engine.
package state

import "sync"

// Sync is a two-way binding between a cell and an external owner. Both
// directions are equality gated: an external Push only writes the cell when
// the value differs, and the owner is only notified about values it has not
// already seen.
type Sync[T comparable] struct {
	mu     sync.Mutex
	cell   *Cell[T]
	last   T
	notify func(T)
	unsub  Unsubscribe
}

// NewSync binds cell to notify. The owner is assumed to already hold the
// cell's current value.
func NewSync[T comparable](cell *Cell[T], notify func(T)) *Sync[T] {
	s := &Sync[T]{cell: cell, last: cell.Get(), notify: notify}
	s.unsub = cell.Subscribe(s.onChange)
	return s
}

// Push records an external write. It reports whether the cell changed.
func (s *Sync[T]) Push(v T) bool {
	s.mu.Lock()
	s.last = v
	s.mu.Unlock()
	return s.cell.Set(v)
}

// Close stops notifying the owner.
func (s *Sync[T]) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

func (s *Sync[T]) onChange(v T) {
	s.mu.Lock()
	if v == s.last {
		s.mu.Unlock()
		return
	}
	s.last = v
	s.mu.Unlock()
	if s.notify != nil {
		s.notify(v)
	}
}
