package palette

import (
	"testing"

	"github.com/dshills/keybind/internal/binding"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/registry"
)

func newIndex(t *testing.T) (*Index, *binding.Store) {
	t.Helper()
	reg := registry.MustNew(registry.Default())
	store := binding.NewStore(reg, nil)
	return NewIndex(reg, store, key.PlatformOther), store
}

func TestBuildPreservesRegistryOrder(t *testing.T) {
	x, _ := newIndex(t)

	entries := x.Build()
	reg := registry.MustNew(registry.Default())
	if len(entries) != reg.Len() {
		t.Fatalf("Build() returned %d entries, want %d", len(entries), reg.Len())
	}
	for i, def := range reg.All() {
		if entries[i].ID != def.ID {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, def.ID)
		}
	}
}

func TestBuildReflectsEffectiveBindings(t *testing.T) {
	x, store := newIndex(t)
	if err := store.SetCustom("global.save", "ctrl+alt+s"); err != nil {
		t.Fatalf("SetCustom() error = %v", err)
	}
	if err := store.Disable("compose.bold"); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}

	byID := make(map[string]Entry)
	for _, e := range x.Build() {
		byID[e.ID] = e
	}

	if got := byID["global.save"]; got.Combo != "ctrl+alt+s" {
		t.Errorf("global.save Combo = %q, want %q", got.Combo, "ctrl+alt+s")
	}
	if got := byID["global.save"]; got.Display != "Ctrl+Alt+S" {
		t.Errorf("global.save Display = %q, want %q", got.Display, "Ctrl+Alt+S")
	}
	bold := byID["compose.bold"]
	if !bold.Disabled {
		t.Error("compose.bold Disabled = false, want true")
	}
	if bold.Combo != "" || bold.Display != "" {
		t.Errorf("compose.bold Combo/Display = %q/%q, want empty", bold.Combo, bold.Display)
	}
}

func TestSearchPriority(t *testing.T) {
	x, _ := newIndex(t)

	// "search" appears in global.search's label and in
	// global.command-palette's description ("Search and run any command").
	got := x.Search("search")
	if len(got) < 2 {
		t.Fatalf("Search(search) returned %d entries, want >= 2", len(got))
	}
	if got[0].ID != "global.search" {
		t.Errorf("Search(search)[0].ID = %q, want %q (label match first)", got[0].ID, "global.search")
	}
	if got[1].ID != "global.command-palette" {
		t.Errorf("Search(search)[1].ID = %q, want %q", got[1].ID, "global.command-palette")
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	x, _ := newIndex(t)

	got := x.Search("BOLD")
	if len(got) != 1 || got[0].ID != "compose.bold" {
		t.Fatalf("Search(BOLD) = %+v, want [compose.bold]", got)
	}
}

func TestSearchIDMatch(t *testing.T) {
	x, _ := newIndex(t)

	got := x.Search("edit-panel")
	if len(got) != 2 {
		t.Fatalf("Search(edit-panel) returned %d entries, want 2", len(got))
	}
	if got[0].ID != "edit-panel.apply" || got[1].ID != "edit-panel.close" {
		t.Errorf("Search(edit-panel) ids = %q, %q; want registry order", got[0].ID, got[1].ID)
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	x, _ := newIndex(t)

	if got := x.Search("  "); len(got) != registry.MustNew(registry.Default()).Len() {
		t.Errorf("Search(blank) returned %d entries, want full index", len(got))
	}
}

func TestSearchNoMatch(t *testing.T) {
	x, _ := newIndex(t)

	if got := x.Search("zzzzz"); len(got) != 0 {
		t.Errorf("Search(zzzzz) = %+v, want empty", got)
	}
}

func TestGroupsFirstSeenOrder(t *testing.T) {
	x, _ := newIndex(t)

	groups := x.Groups()
	// Catalog order introduces action, then navigation, editing, admin.
	wantOrder := []string{
		registry.ScopeAction,
		registry.ScopeNavigation,
		registry.ScopeEditing,
		registry.ScopeAdmin,
	}
	if len(groups) != len(wantOrder) {
		t.Fatalf("Groups() returned %d groups, want %d", len(groups), len(wantOrder))
	}
	total := 0
	for i, g := range groups {
		if g.Category != wantOrder[i] {
			t.Errorf("Groups()[%d].Category = %q, want %q", i, g.Category, wantOrder[i])
		}
		total += len(g.Entries)
	}
	if want := registry.MustNew(registry.Default()).Len(); total != want {
		t.Errorf("Groups() holds %d entries total, want %d", total, want)
	}
}

func TestSuggestNearMiss(t *testing.T) {
	x, _ := newIndex(t)

	got := x.Suggest("Sav")
	if len(got) == 0 {
		t.Fatal("Suggest(Sav) = empty, want near matches")
	}
	if got[0].ID != "global.save" {
		t.Errorf("Suggest(Sav)[0].ID = %q, want %q", got[0].ID, "global.save")
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	x, _ := newIndex(t)

	if got := x.Suggest(""); got != nil {
		t.Errorf("Suggest(empty) = %+v, want nil", got)
	}
}

func TestMacDisplay(t *testing.T) {
	reg := registry.MustNew(registry.Default())
	store := binding.NewStore(reg, nil)
	x := NewIndex(reg, store, key.PlatformMac)

	for _, e := range x.Build() {
		if e.ID == "global.save" {
			if e.Display != "⌃S" {
				t.Errorf("global.save mac Display = %q, want %q", e.Display, "⌃S")
			}
			return
		}
	}
	t.Fatal("global.save not found in index")
}
