package engine

import (
	"encoding/json"
	"testing"

	"github.com/dshills/keybind/internal/binding"
	"github.com/dshills/keybind/internal/conflict"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/notify"
	"github.com/dshills/keybind/internal/registry"
	"github.com/dshills/keybind/internal/storage"
)

func newEngine(t *testing.T, st storage.Store) *Engine {
	t.Helper()
	e, err := New(Options{
		Definitions: registry.Default(),
		Storage:     st,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNewRequiresStorage(t *testing.T) {
	if _, err := New(Options{Definitions: registry.Default()}); err == nil {
		t.Error("New() without storage succeeded, want error")
	}
}

func TestNewRejectsBadCatalog(t *testing.T) {
	defs := append(registry.Default(), registry.Default()[0])
	if _, err := New(Options{Definitions: defs, Storage: storage.NewMemStore()}); err == nil {
		t.Error("New() with duplicate ids succeeded, want error")
	}
}

func TestOverridesPersistAcrossRestart(t *testing.T) {
	st := storage.NewMemStore()

	e := newEngine(t, st)
	if err := e.SetCustom("global.save", "ctrl+alt+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}
	if err := e.Disable("compose.bold"); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}

	// Restart on the same store.
	e2 := newEngine(t, st)
	eff, err := e2.Effective("global.save")
	if err != nil {
		t.Fatalf("Effective() error = %v", err)
	}
	if eff.Combo != "ctrl+alt+s" || eff.Source != binding.SourceCustom {
		t.Errorf("Effective(global.save) = %+v, want custom ctrl+alt+s", eff)
	}
	eff, err = e2.Effective("compose.bold")
	if err != nil {
		t.Fatalf("Effective() error = %v", err)
	}
	if !eff.Disabled {
		t.Error("Effective(compose.bold) Disabled = false after restart, want true")
	}
	if got := e2.CustomizedCount(); got != 2 {
		t.Errorf("CustomizedCount() = %d, want 2", got)
	}
}

func TestCorruptSnapshotDegradesToDefaults(t *testing.T) {
	st := storage.NewMemStore()
	if err := st.Set("bindings/overrides", []byte("{not json")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	e := newEngine(t, st)
	eff, err := e.Effective("global.save")
	if err != nil {
		t.Fatalf("Effective() error = %v", err)
	}
	if eff.Source != binding.SourceDefault || eff.Combo != "ctrl+s" {
		t.Errorf("Effective(global.save) = %+v, want default", eff)
	}
}

func TestResetAllPersists(t *testing.T) {
	st := storage.NewMemStore()

	e := newEngine(t, st)
	if err := e.SetCustom("global.save", "ctrl+alt+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}
	e.ResetAll()

	e2 := newEngine(t, st)
	if got := e2.CustomizedCount(); got != 0 {
		t.Errorf("CustomizedCount() after restart = %d, want 0", got)
	}
}

func TestSnapshotIsVersionedJSON(t *testing.T) {
	st := storage.NewMemStore()

	e := newEngine(t, st)
	if err := e.SetCustom("global.save", "ctrl+alt+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}

	raw, found, err := st.Get("bindings/overrides")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	var snap struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if snap.Version != 1 {
		t.Errorf("snapshot version = %d, want 1", snap.Version)
	}
}

func TestCaptureSessionEndToEnd(t *testing.T) {
	e := newEngine(t, storage.NewMemStore())
	s := e.NewCaptureSession()

	if err := s.Begin("compose.italic"); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := s.Handle(key.Event{Ctrl: true, Alt: true, Key: "i"}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	res, err := s.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !res.Saved {
		t.Fatal("Save() Saved = false, want true")
	}

	eff, err := e.Effective("compose.italic")
	if err != nil {
		t.Fatalf("Effective() error = %v", err)
	}
	if eff.Combo != "ctrl+alt+i" {
		t.Errorf("Effective() Combo = %q, want ctrl+alt+i", eff.Combo)
	}
}

func TestDetectThroughEngine(t *testing.T) {
	e := newEngine(t, storage.NewMemStore())

	c, err := e.Detect("edit-panel.apply", "ctrl+s")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if c == nil || c.Severity != conflict.SeverityError {
		t.Errorf("Detect() = %+v, want error conflict", c)
	}
}

func TestScanConflictsThroughEngine(t *testing.T) {
	e := newEngine(t, storage.NewMemStore())
	if err := e.SetCustom("compose.bold", "ctrl+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}

	collisions, err := e.ScanConflicts()
	if err != nil {
		t.Fatalf("ScanConflicts() error = %v", err)
	}
	if len(collisions) != 1 {
		t.Fatalf("ScanConflicts() returned %d, want 1", len(collisions))
	}
	if collisions[0].FirstID != "global.save" || collisions[0].SecondID != "compose.bold" {
		t.Errorf("pair = %q vs %q, want global.save vs compose.bold",
			collisions[0].FirstID, collisions[0].SecondID)
	}
}

func TestIndexReflectsOverrides(t *testing.T) {
	e := newEngine(t, storage.NewMemStore())
	if err := e.SetCustom("global.save", "ctrl+alt+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}

	got := e.Search("save")
	if len(got) == 0 {
		t.Fatal("Search(save) = empty")
	}
	if got[0].Combo != "ctrl+alt+s" {
		t.Errorf("Search(save)[0].Combo = %q, want ctrl+alt+s", got[0].Combo)
	}
	if len(e.Groups()) == 0 || len(e.Entries()) == 0 {
		t.Error("Groups/Entries returned empty index")
	}
}

func TestSubscribeSeesChanges(t *testing.T) {
	e := newEngine(t, storage.NewMemStore())

	var got []notify.Change
	sub := e.Subscribe(func(c notify.Change) { got = append(got, c) })
	defer sub.Cancel()

	if err := e.SetCustom("global.save", "ctrl+alt+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}
	if len(got) != 1 || got[0].Type != notify.ChangeSet || got[0].ID != "global.save" {
		t.Errorf("observed changes = %+v, want one ChangeSet for global.save", got)
	}
}
