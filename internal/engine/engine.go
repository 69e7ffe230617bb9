// Package engine assembles the shortcut system: catalog, override store,
// conflict detection, command index, capture sessions, and persistence.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/dshills/keybind/internal/binding"
	"github.com/dshills/keybind/internal/capture"
	"github.com/dshills/keybind/internal/conflict"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/notify"
	"github.com/dshills/keybind/internal/palette"
	"github.com/dshills/keybind/internal/registry"
	"github.com/dshills/keybind/internal/storage"
)

// snapshotKey is where the override snapshot lives in the state store.
const snapshotKey = "bindings/overrides"

// Options configures an Engine.
type Options struct {
	// Definitions is the shortcut catalog. Required.
	Definitions []registry.Definition

	// Storage persists override snapshots. Required; use
	// storage.NewMemStore for ephemeral sessions.
	Storage storage.Store

	// Platform selects combo display formatting. Defaults to
	// key.PlatformOther.
	Platform key.Platform

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Engine is the top-level shortcut service. All methods are safe for
// concurrent use except NewCaptureSession's returned session, which is
// single-goroutine by design.
type Engine struct {
	reg      *registry.Registry
	hub      *notify.Hub
	store    *binding.Store
	detector *conflict.Detector
	index    *palette.Index
	state    storage.Store
	log      *slog.Logger

	persistSub *notify.Subscription
}

// New builds an engine, restores any persisted overrides, and begins
// persisting future changes. A corrupt or stale snapshot degrades to
// defaults rather than failing startup.
func New(opts Options) (*Engine, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("engine: storage is required")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	reg, err := registry.New(opts.Definitions)
	if err != nil {
		return nil, err
	}

	hub := notify.NewHub()
	store := binding.NewStore(reg, hub)

	e := &Engine{
		reg:      reg,
		hub:      hub,
		store:    store,
		detector: conflict.NewDetector(reg, store),
		index:    palette.NewIndex(reg, store, opts.Platform),
		state:    opts.Storage,
		log:      log,
	}

	snap, found, err := e.state.Get(snapshotKey)
	if err != nil {
		log.Warn("override snapshot unavailable, using defaults", "error", err)
	} else if found {
		store.Load(snap)
		log.Info("override snapshot restored", "customized", store.CustomizedCount())
	}

	// Subscribed after the restore above, so loading does not immediately
	// rewrite what was just read.
	e.persistSub = hub.Subscribe(func(notify.Change) { e.persist() })

	return e, nil
}

func (e *Engine) persist() {
	snap, err := e.store.Serialize()
	if err != nil {
		e.log.Warn("serialize overrides failed", "error", err)
		return
	}
	if err := e.state.Set(snapshotKey, snap); err != nil {
		e.log.Warn("persist overrides failed", "error", err)
	}
}

// Close stops persistence and closes the state store.
func (e *Engine) Close() error {
	e.persistSub.Cancel()
	return e.state.Close()
}

// Registry returns the shortcut catalog.
func (e *Engine) Registry() *registry.Registry { return e.reg }

// Subscribe registers an observer for override changes.
func (e *Engine) Subscribe(fn notify.Observer) *notify.Subscription {
	return e.hub.Subscribe(fn)
}

// Effective returns the effective binding for a shortcut.
func (e *Engine) Effective(id string) (binding.EffectiveBinding, error) {
	return e.store.Effective(id)
}

// SetCustom binds a shortcut to a custom combo.
func (e *Engine) SetCustom(id, combo string) error {
	return e.store.SetCustom(id, combo)
}

// Reset restores a shortcut to its default binding.
func (e *Engine) Reset(id string) error {
	return e.store.Reset(id)
}

// Disable removes a shortcut's binding.
func (e *Engine) Disable(id string) error {
	return e.store.Disable(id)
}

// ResetAll clears every override.
func (e *Engine) ResetAll() {
	e.store.ResetAll()
}

// CustomizedCount returns the number of shortcuts with an override,
// including disabled ones.
func (e *Engine) CustomizedCount() int {
	return e.store.CustomizedCount()
}

// Detect previews whether binding the target to the candidate combo would
// conflict with another shortcut.
func (e *Engine) Detect(targetID, candidateCombo string) (*conflict.Conflict, error) {
	return e.detector.Detect(targetID, candidateCombo)
}

// ScanConflicts audits the current effective bindings for collisions.
func (e *Engine) ScanConflicts() ([]conflict.Collision, error) {
	return e.detector.Scan()
}

// Entries returns the full command index in registry order.
func (e *Engine) Entries() []palette.Entry {
	return e.index.Build()
}

// Search queries the command index.
func (e *Engine) Search(query string) []palette.Entry {
	return e.index.Search(query)
}

// Groups returns the command index grouped by category.
func (e *Engine) Groups() []palette.Group {
	return e.index.Groups()
}

// Suggest returns near-miss entries for a query with no exact matches.
func (e *Engine) Suggest(query string) []palette.Entry {
	return e.index.Suggest(query)
}

// NewCaptureSession creates an idle rebinding session over this engine's
// store and detector.
func (e *Engine) NewCaptureSession() *capture.Session {
	return capture.NewSession(e.store, e.detector)
}
