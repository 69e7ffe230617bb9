// Package registry holds the static catalog of shortcut definitions.
//
// The catalog is fixed at process start and read-only at runtime; all
// mutation happens in the override layer (package binding). Insertion order
// is stable and is used as a deterministic tie-break by conflict detection
// and the command index.
package registry

import (
	"errors"
	"fmt"

	"github.com/dshills/keybind/internal/key"
)

// ContextGlobal is the special context tag that intersects every other
// context: a global shortcut conflicts with anything, and anything conflicts
// with a global shortcut.
const ContextGlobal = "global"

// Display scopes used to group shortcuts in UI surfaces. A scope is a
// grouping category only; it is independent of contexts.
const (
	ScopeNavigation = "navigation"
	ScopeAction     = "action"
	ScopeEditing    = "editing"
	ScopeAdmin      = "admin"
)

// Registry validation errors.
var (
	// ErrDuplicateID indicates two definitions share an id.
	ErrDuplicateID = errors.New("registry: duplicate shortcut id")

	// ErrInvalidDefinition indicates a definition failed validation.
	ErrInvalidDefinition = errors.New("registry: invalid shortcut definition")
)

// Definition describes one shortcut: its stable identity, display strings,
// default combo, the contexts it is active in, and its display scope.
// Definitions are immutable once registered.
type Definition struct {
	// ID is the stable string key, e.g. "global.save".
	ID string

	// Label is the display name.
	Label string

	// Description provides additional context for search and help surfaces.
	Description string

	// DefaultCombo is the canonical combo active when no override exists.
	DefaultCombo string

	// Contexts is the non-empty set of context tags the shortcut is active
	// in. ContextGlobal intersects every other context.
	Contexts []string

	// Scope is the display grouping category.
	Scope string

	// AdminOnly marks shortcuts for admin surfaces. Entries are registered
	// unconditionally; visibility filtering by caller role is a UI concern.
	AdminOnly bool
}

// HasContext reports whether the definition carries the given context tag.
func (d Definition) HasContext(tag string) bool {
	for _, c := range d.Contexts {
		if c == tag {
			return true
		}
	}
	return false
}

// ContextsIntersect reports whether two definitions can be active at the
// same time. ContextGlobal intersects everything.
func (d Definition) ContextsIntersect(other Definition) bool {
	if d.HasContext(ContextGlobal) || other.HasContext(ContextGlobal) {
		return true
	}
	for _, c := range d.Contexts {
		if other.HasContext(c) {
			return true
		}
	}
	return false
}

// validate checks a single definition.
func (d Definition) validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}
	if d.Label == "" {
		return fmt.Errorf("%w: %s: empty label", ErrInvalidDefinition, d.ID)
	}
	if len(d.Contexts) == 0 {
		return fmt.Errorf("%w: %s: empty context set", ErrInvalidDefinition, d.ID)
	}
	for _, c := range d.Contexts {
		if c == "" {
			return fmt.Errorf("%w: %s: empty context tag", ErrInvalidDefinition, d.ID)
		}
	}
	canon, ok := key.Canonical(d.DefaultCombo)
	if !ok {
		return fmt.Errorf("%w: %s: malformed default combo %q", ErrInvalidDefinition, d.ID, d.DefaultCombo)
	}
	if canon != d.DefaultCombo {
		return fmt.Errorf("%w: %s: default combo %q is not canonical (want %q)",
			ErrInvalidDefinition, d.ID, d.DefaultCombo, canon)
	}
	return nil
}

// Registry is the ordered, immutable shortcut catalog.
type Registry struct {
	defs []Definition
	byID map[string]int
}

// New builds a registry from definitions, preserving their order. It fails
// on duplicate ids, empty labels or contexts, and non-canonical default
// combos.
func New(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs: make([]Definition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		r.byID[d.ID] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// MustNew builds a registry and panics on validation failure. Use only for
// known-valid catalogs in initialization code.
func MustNew(defs []Definition) *Registry {
	r, err := New(defs)
	if err != nil {
		panic("invalid shortcut catalog: " + err.Error())
	}
	return r
}

// All returns the definitions in stable insertion order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Get returns the definition for an id.
func (r *Registry) Get(id string) (Definition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Len returns the number of registered shortcuts.
func (r *Registry) Len() int {
	return len(r.defs)
}
