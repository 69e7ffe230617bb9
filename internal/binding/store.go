// Package binding implements the layered resolution of active key combos:
// user overrides and explicit disables applied over registry defaults.
package binding

import (
	"sync"

	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/notify"
	"github.com/dshills/keybind/internal/registry"
)

// Source indicates where an effective binding came from.
type Source uint8

const (
	// SourceDefault means the registry default combo is active.
	SourceDefault Source = iota

	// SourceCustom means a user override combo is active.
	SourceCustom
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// EffectiveBinding is the derived active binding for a shortcut. Disabled
// shortcuts have no active combo.
type EffectiveBinding struct {
	// Combo is the active canonical combo. Empty when Disabled.
	Combo string

	// Disabled reports whether the shortcut has been explicitly disabled.
	Disabled bool

	// Source reports whether Combo is the default or a custom override.
	// Meaningless when Disabled.
	Source Source
}

// Store resolves effective bindings by layering overrides over registry
// defaults. Every shortcut is in exactly one of three states: Default (no
// entry), Custom, or Disabled; setting one state clears any prior state.
//
// Store is safe for concurrent use, though the intended caller is a single
// UI editing session at a time.
type Store struct {
	mu        sync.RWMutex
	reg       *registry.Registry
	overrides map[string]Override
	hub       *notify.Hub
}

// NewStore creates a store over a registry. The hub may be nil when no
// change notifications are needed (tests, one-shot CLI runs).
func NewStore(reg *registry.Registry, hub *notify.Hub) *Store {
	return &Store{
		reg:       reg,
		overrides: make(map[string]Override),
		hub:       hub,
	}
}

// publish delivers a change event outside the store lock.
func (s *Store) publish(change notify.Change) {
	if s.hub != nil {
		s.hub.Publish(change)
	}
}

// Effective resolves the active binding for a shortcut: the custom combo if
// one is set, the disabled marker if disabled, else the registry default.
// Returns ErrShortcutNotFound for unknown ids.
func (s *Store) Effective(id string) (EffectiveBinding, error) {
	def, ok := s.reg.Get(id)
	if !ok {
		return EffectiveBinding{}, ErrShortcutNotFound
	}

	s.mu.RLock()
	ov, exists := s.overrides[id]
	s.mu.RUnlock()

	if !exists {
		return EffectiveBinding{Combo: def.DefaultCombo, Source: SourceDefault}, nil
	}
	if ov.IsDisabled() {
		return EffectiveBinding{Disabled: true}, nil
	}
	return EffectiveBinding{Combo: ov.Combo(), Source: SourceCustom}, nil
}

// SetCustom binds a shortcut to a custom combo, replacing any prior
// override or disable state. The combo is validated by canonical round-trip
// and stored in canonical form. Combos on Tab or Escape are refused: the
// capture path never produces them, and a direct caller must not bypass
// that reservation. No mutation occurs on failure.
func (s *Store) SetCustom(id, combo string) error {
	if _, ok := s.reg.Get(id); !ok {
		return ErrShortcutNotFound
	}
	canon, ok := key.Canonical(combo)
	if !ok {
		return ErrInvalidCombo
	}
	if k := key.Parse(canon).Key; k == key.KeyTab || k == key.KeyEscape {
		return ErrReservedKey
	}

	s.mu.Lock()
	s.overrides[id] = Custom(canon)
	s.mu.Unlock()

	s.publish(notify.Change{Type: notify.ChangeSet, ID: id, Combo: canon})
	return nil
}

// Reset clears the override or disable state for a shortcut, returning it
// to Default. A no-op (not an error) when already Default.
func (s *Store) Reset(id string) error {
	if _, ok := s.reg.Get(id); !ok {
		return ErrShortcutNotFound
	}

	s.mu.Lock()
	_, existed := s.overrides[id]
	delete(s.overrides, id)
	s.mu.Unlock()

	if existed {
		s.publish(notify.Change{Type: notify.ChangeReset, ID: id})
	}
	return nil
}

// Disable marks a shortcut as disabled, discarding any prior custom combo.
func (s *Store) Disable(id string) error {
	if _, ok := s.reg.Get(id); !ok {
		return ErrShortcutNotFound
	}

	s.mu.Lock()
	s.overrides[id] = Disabled()
	s.mu.Unlock()

	s.publish(notify.Change{Type: notify.ChangeDisable, ID: id})
	return nil
}

// ResetAll clears every override and disable state atomically.
func (s *Store) ResetAll() {
	s.mu.Lock()
	changed := len(s.overrides) > 0
	s.overrides = make(map[string]Override)
	s.mu.Unlock()

	if changed {
		s.publish(notify.Change{Type: notify.ChangeResetAll})
	}
}

// CustomizedCount returns the number of shortcuts whose state is not
// Default. Both Custom and Disabled count.
func (s *Store) CustomizedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overrides)
}

// Override returns the raw override state for a shortcut, if any.
func (s *Store) Override(id string) (Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ov, ok := s.overrides[id]
	return ov, ok
}
