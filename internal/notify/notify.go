// Package notify provides change notification for binding overrides.
//
// The package implements an observer pattern that lets UI surfaces and the
// persistence layer react when the override state of a shortcut changes.
package notify

import "sync"

// ChangeType represents the type of override change.
type ChangeType int

const (
	// ChangeSet indicates a custom binding was set.
	ChangeSet ChangeType = iota

	// ChangeReset indicates a shortcut returned to its default binding.
	ChangeReset

	// ChangeDisable indicates a shortcut was disabled.
	ChangeDisable

	// ChangeResetAll indicates every override was cleared at once.
	ChangeResetAll

	// ChangeReload indicates the override set was replaced from a snapshot.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReset:
		return "reset"
	case ChangeDisable:
		return "disable"
	case ChangeResetAll:
		return "reset-all"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a single override change event.
type Change struct {
	// Type is the type of change.
	Type ChangeType

	// ID is the affected shortcut id. Empty for ChangeResetAll and
	// ChangeReload.
	ID string

	// Combo is the new custom combo for ChangeSet events.
	Combo string
}

// Observer is called when an override changes.
type Observer func(change Change)

// Hub fans change events out to subscribed observers.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]Observer
	next int
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]Observer)}
}

// Subscription identifies a registered observer.
type Subscription struct {
	hub *Hub
	id  int
}

// Subscribe registers an observer for all override changes.
func (h *Hub) Subscribe(fn Observer) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.subs[id] = fn
	return &Subscription{hub: h, id: id}
}

// Cancel removes the observer. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.hub == nil {
		return
	}
	s.hub.mu.Lock()
	delete(s.hub.subs, s.id)
	s.hub.mu.Unlock()
	s.hub = nil
}

// Publish delivers a change to every observer. Observers are invoked
// synchronously without holding the hub lock, so they may subscribe or
// cancel from within the callback.
func (h *Hub) Publish(change Change) {
	h.mu.RLock()
	observers := make([]Observer, 0, len(h.subs))
	for _, fn := range h.subs {
		observers = append(observers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range observers {
		fn(change)
	}
}
