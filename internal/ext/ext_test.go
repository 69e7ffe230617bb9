package ext

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keybind/internal/registry"
)

func TestLoadString(t *testing.T) {
	l := NewLoader()
	err := l.LoadString("test", `
		shortcut.register{
			id = "notes.archive",
			label = "Archive Note",
			description = "Move the note to the archive",
			combo = "Control+Shift+A",
			contexts = {"notes"},
			scope = "action",
		}
		shortcut.register{
			id = "notes.pin",
			label = "Pin Note",
			combo = "alt+p",
			contexts = "notes",
			admin_only = true,
		}
	`)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	defs := l.Definitions()
	if len(defs) != 2 {
		t.Fatalf("Definitions() returned %d, want 2", len(defs))
	}

	got := defs[0]
	if got.ID != "notes.archive" || got.Label != "Archive Note" {
		t.Errorf("defs[0] = %+v", got)
	}
	if got.DefaultCombo != "ctrl+shift+a" {
		t.Errorf("DefaultCombo = %q, want canonical ctrl+shift+a", got.DefaultCombo)
	}
	if len(got.Contexts) != 1 || got.Contexts[0] != "notes" {
		t.Errorf("Contexts = %v, want [notes]", got.Contexts)
	}

	if !defs[1].AdminOnly {
		t.Error("defs[1].AdminOnly = false, want true")
	}
	if defs[1].Scope != registry.ScopeAction {
		t.Errorf("defs[1].Scope = %q, want default %q", defs[1].Scope, registry.ScopeAction)
	}
}

func TestLoadedDefinitionsExtendCatalog(t *testing.T) {
	l := NewLoader()
	err := l.LoadString("test", `
		shortcut.register{
			id = "notes.archive",
			label = "Archive Note",
			combo = "ctrl+shift+9",
			contexts = {"notes"},
		}
	`)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}

	reg, err := registry.New(append(registry.Default(), l.Definitions()...))
	if err != nil {
		t.Fatalf("registry.New() error = %v", err)
	}
	if _, ok := reg.Get("notes.archive"); !ok {
		t.Error("extension shortcut missing from registry")
	}
}

func TestLoadStringErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"missing id", `shortcut.register{label = "X", combo = "ctrl+1", contexts = {"a"}}`},
		{"missing label", `shortcut.register{id = "x.y", combo = "ctrl+1", contexts = {"a"}}`},
		{"malformed combo", `shortcut.register{id = "x.y", label = "X", combo = "ctrl+", contexts = {"a"}}`},
		{"missing contexts", `shortcut.register{id = "x.y", label = "X", combo = "ctrl+1"}`},
		{"syntax error", `shortcut.register{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader()
			err := l.LoadString(tt.name, tt.script)
			if !errors.Is(err, ErrExtension) {
				t.Errorf("LoadString() error = %v, want ErrExtension", err)
			}
			if len(l.Definitions()) != 0 {
				t.Errorf("Definitions() = %v, want empty after failure", l.Definitions())
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ext.lua")
	script := `shortcut.register{id = "files.rename", label = "Rename", combo = "F2", contexts = {"files"}}`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	defs := l.Definitions()
	if len(defs) != 1 || defs[0].ID != "files.rename" || defs[0].DefaultCombo != "F2" {
		t.Errorf("Definitions() = %+v", defs)
	}
}
