package binding

import (
	"encoding/json"

	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/notify"
)

// snapshotEntry is the persisted form of one override: a canonical combo
// string for a custom binding, or an explicit disabled marker. An entry
// carrying both is treated as disabled.
type snapshotEntry struct {
	Combo    string `json:"combo,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// snapshotData is the root structure of the persisted override snapshot.
// Absence of an id means Default.
type snapshotData struct {
	Version  int                      `json:"version"`
	Bindings map[string]snapshotEntry `json:"bindings"`
}

const snapshotVersion = 1

// Serialize returns the persisted override snapshot for the current state.
// It is a pure function of the in-memory state, so a retried or duplicated
// persistence write is idempotent.
func (s *Store) Serialize() ([]byte, error) {
	s.mu.RLock()
	data := snapshotData{
		Version:  snapshotVersion,
		Bindings: make(map[string]snapshotEntry, len(s.overrides)),
	}
	for id, ov := range s.overrides {
		if ov.IsDisabled() {
			data.Bindings[id] = snapshotEntry{Disabled: true}
		} else {
			data.Bindings[id] = snapshotEntry{Combo: ov.Combo()}
		}
	}
	s.mu.RUnlock()

	return json.Marshal(data)
}

// Load replaces the override state from a persisted snapshot. Loading is
// tolerant by design: entries for unknown shortcut ids, malformed combos,
// or reserved keys are dropped silently, and a snapshot that fails to decode
// leaves every shortcut at Default. Load never fails.
func (s *Store) Load(snapshot []byte) {
	overrides := make(map[string]Override)

	var data snapshotData
	if len(snapshot) > 0 && json.Unmarshal(snapshot, &data) == nil {
		for id, entry := range data.Bindings {
			if _, ok := s.reg.Get(id); !ok {
				continue
			}
			if entry.Disabled {
				overrides[id] = Disabled()
				continue
			}
			canon, ok := key.Canonical(entry.Combo)
			if !ok {
				continue
			}
			if k := key.Parse(canon).Key; k == key.KeyTab || k == key.KeyEscape {
				continue
			}
			overrides[id] = Custom(canon)
		}
	}

	s.mu.Lock()
	s.overrides = overrides
	s.mu.Unlock()

	s.publish(notify.Change{Type: notify.ChangeReload})
}
