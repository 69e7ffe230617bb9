// Package ext loads shortcut definitions contributed by Lua extension
// scripts. A script calls shortcut.register{...} once per shortcut; the
// collected definitions are appended to the built-in catalog before the
// registry is constructed.
package ext

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/registry"
)

// ErrExtension wraps failures from extension scripts.
var ErrExtension = errors.New("ext: extension error")

// Loader runs extension scripts and collects registered definitions.
type Loader struct {
	defs []registry.Definition
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Definitions returns the definitions registered so far, in script order.
func (l *Loader) Definitions() []registry.Definition {
	out := make([]registry.Definition, len(l.defs))
	copy(out, l.defs)
	return out
}

// LoadFile runs the script at path.
func (l *Loader) LoadFile(path string) error {
	return l.run(func(L *lua.LState) error { return L.DoFile(path) }, path)
}

// LoadString runs an inline script. The name is used in error messages.
func (l *Loader) LoadString(name, script string) error {
	return l.run(func(L *lua.LState) error { return L.DoString(script) }, name)
}

func (l *Loader) run(do func(*lua.LState) error, name string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer L.Close()

	mod := L.NewTable()
	L.SetField(mod, "register", L.NewFunction(l.register))
	L.SetGlobal("shortcut", mod)

	if err := do(L); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExtension, name, err)
	}
	return nil
}

// register(def) -> nil
//
// def is a table with fields id, label, combo, contexts (array of strings),
// and optional description, scope, admin_only. The combo may be spelled in
// any accepted form; it is canonicalized here so registry validation sees
// canonical input.
func (l *Loader) register(L *lua.LState) int {
	tbl := L.CheckTable(1)

	id := tableString(L, tbl, "id")
	label := tableString(L, tbl, "label")
	combo := tableString(L, tbl, "combo")
	if id == "" {
		L.ArgError(1, "id is required")
		return 0
	}
	if label == "" {
		L.ArgError(1, "label is required")
		return 0
	}
	canon, ok := key.Canonical(combo)
	if !ok {
		L.RaiseError("register: %s: malformed combo %q", id, combo)
		return 0
	}

	def := registry.Definition{
		ID:           id,
		Label:        label,
		Description:  tableString(L, tbl, "description"),
		DefaultCombo: canon,
		Scope:        tableString(L, tbl, "scope"),
		AdminOnly:    tableBool(L, tbl, "admin_only"),
	}
	if def.Scope == "" {
		def.Scope = registry.ScopeAction
	}

	switch v := L.GetField(tbl, "contexts").(type) {
	case *lua.LTable:
		v.ForEach(func(_, val lua.LValue) {
			if s, ok := val.(lua.LString); ok {
				def.Contexts = append(def.Contexts, string(s))
			}
		})
	case lua.LString:
		def.Contexts = []string{string(v)}
	}
	if len(def.Contexts) == 0 {
		L.RaiseError("register: %s: contexts are required", id)
		return 0
	}

	l.defs = append(l.defs, def)
	return 0
}

func tableString(L *lua.LState, tbl *lua.LTable, field string) string {
	if s, ok := L.GetField(tbl, field).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableBool(L *lua.LState, tbl *lua.LTable, field string) bool {
	if b, ok := L.GetField(tbl, field).(lua.LBool); ok {
		return bool(b)
	}
	return false
}
