// Package conflict detects collisions between a candidate combo and the
// effective bindings of every other shortcut, classified by severity.
package conflict

import (
	"github.com/dshills/keybind/internal/binding"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/registry"
)

// Severity classifies a detected conflict.
type Severity uint8

const (
	// SeverityWarning marks a collision between shortcuts whose contexts
	// cannot both be active at once; the collision is only theoretical.
	SeverityWarning Severity = iota

	// SeverityError marks a collision between shortcuts whose contexts
	// intersect. Saves must be declined while one is outstanding.
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Conflict describes a collision with one existing shortcut. Conflicts are
// transient query results; they are never persisted.
type Conflict struct {
	// ShortcutID identifies the existing shortcut using the combo.
	ShortcutID string

	// Label is the existing shortcut's display label.
	Label string

	// Severity classifies the collision.
	Severity Severity
}

// Detector scans effective bindings for combo collisions.
type Detector struct {
	reg   *registry.Registry
	store *binding.Store
}

// NewDetector creates a detector over a registry and binding store.
func NewDetector(reg *registry.Registry, store *binding.Store) *Detector {
	return &Detector{reg: reg, store: store}
}

// Detect checks whether binding the target shortcut to the candidate combo
// would collide with another shortcut's effective binding.
//
// The scan walks the registry in insertion order, skipping the target and
// any currently disabled shortcut. A collision with an intersecting context
// set (where "global" intersects everything) is an error and always wins
// over a warning; among matches of equal severity the first in registry
// order is reported. Returns nil when no shortcut uses the combo.
func (d *Detector) Detect(targetID, candidateCombo string) (*Conflict, error) {
	target, ok := d.reg.Get(targetID)
	if !ok {
		return nil, binding.ErrShortcutNotFound
	}
	canon, ok := key.Canonical(candidateCombo)
	if !ok {
		return nil, binding.ErrInvalidCombo
	}

	var warning *Conflict
	for _, def := range d.reg.All() {
		if def.ID == targetID {
			continue
		}
		eff, err := d.store.Effective(def.ID)
		if err != nil || eff.Disabled {
			continue
		}
		if eff.Combo != canon {
			continue
		}
		if target.ContextsIntersect(def) {
			return &Conflict{ShortcutID: def.ID, Label: def.Label, Severity: SeverityError}, nil
		}
		if warning == nil {
			warning = &Conflict{ShortcutID: def.ID, Label: def.Label, Severity: SeverityWarning}
		}
	}
	return warning, nil
}

// Collision is one colliding pair found by Scan, naming both shortcuts so
// audit output can say what collides with what. First precedes Second in
// registry order.
type Collision struct {
	FirstID     string
	FirstLabel  string
	SecondID    string
	SecondLabel string

	// Combo is the shared effective combo.
	Combo string

	// Severity classifies the collision.
	Severity Severity
}

// Scan reports every collision among the current effective bindings, pairing
// each shortcut against the ones after it in registry order. Used by audit
// tooling; the interactive path uses Detect.
func (d *Detector) Scan() ([]Collision, error) {
	defs := d.reg.All()
	var collisions []Collision
	for i, a := range defs {
		effA, err := d.store.Effective(a.ID)
		if err != nil || effA.Disabled {
			continue
		}
		for _, b := range defs[i+1:] {
			effB, err := d.store.Effective(b.ID)
			if err != nil || effB.Disabled {
				continue
			}
			if effA.Combo != effB.Combo {
				continue
			}
			sev := SeverityWarning
			if a.ContextsIntersect(b) {
				sev = SeverityError
			}
			collisions = append(collisions, Collision{
				FirstID:     a.ID,
				FirstLabel:  a.Label,
				SecondID:    b.ID,
				SecondLabel: b.Label,
				Combo:       effA.Combo,
				Severity:    sev,
			})
		}
	}
	return collisions, nil
}
