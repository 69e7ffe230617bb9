package key

import "github.com/gdamore/tcell/v2"

// Event represents a raw keyboard input event from the host environment:
// the modifier flags and the key identifier string as the host spells it
// (a character, "Enter", " ", "ArrowUp", or a bare modifier name such as
// "Control").
type Event struct {
	// Ctrl, Alt, Shift and Meta report the modifier flags on the event.
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool

	// Key is the host key identifier. Empty when the event carries no
	// main key.
	Key string
}

// Modifiers returns the event's modifier flags as a Modifier set.
func (e Event) Modifiers() Modifier {
	var m Modifier
	if e.Ctrl {
		m = m.With(ModCtrl)
	}
	if e.Alt {
		m = m.With(ModAlt)
	}
	if e.Shift {
		m = m.With(ModShift)
	}
	if e.Meta {
		m = m.With(ModMeta)
	}
	return m
}

// IsBareModifier reports whether the event represents a modifier press with
// no main key yet.
func (e Event) IsBareModifier() bool {
	return e.Key == "" || IsModifierName(e.Key)
}

// IsEscape reports whether the event's main key is Escape.
func (e Event) IsEscape() bool {
	return NormalizeKey(e.Key) == KeyEscape
}

// IsTab reports whether the event's main key is Tab.
func (e Event) IsTab() bool {
	return NormalizeKey(e.Key) == KeyTab
}

// FromEvent converts a raw input event to its canonical combo identifier.
// The second return value is false when no combo can be derived: a bare
// modifier press (no main key yet), Tab (reserved for focus navigation and
// never captured), or Escape (a capture-mode cancel handled by the caller,
// never encoded as a combo).
func FromEvent(e Event) (string, bool) {
	if e.IsBareModifier() {
		return "", false
	}
	k := NormalizeKey(e.Key)
	if k == "" || k == KeyTab || k == KeyEscape {
		return "", false
	}
	return Parsed{Mods: e.Modifiers(), Key: k}.String(), true
}

var fKeyNames = [...]string{
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
}

// EventFromTcell converts a tcell terminal key event to an Event.
func EventFromTcell(ev *tcell.EventKey) Event {
	mods := ev.Modifiers()
	e := Event{
		Ctrl:  mods&tcell.ModCtrl != 0,
		Alt:   mods&tcell.ModAlt != 0,
		Shift: mods&tcell.ModShift != 0,
		Meta:  mods&tcell.ModMeta != 0,
	}

	k := ev.Key()
	switch k {
	case tcell.KeyRune:
		e.Key = string(ev.Rune())
	case tcell.KeyEnter:
		e.Key = KeyEnter
	case tcell.KeyEscape:
		e.Key = KeyEscape
	case tcell.KeyTab:
		e.Key = KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Key = KeyBackspace
	case tcell.KeyDelete:
		e.Key = KeyDelete
	case tcell.KeyInsert:
		e.Key = "Insert"
	case tcell.KeyHome:
		e.Key = "Home"
	case tcell.KeyEnd:
		e.Key = "End"
	case tcell.KeyPgUp:
		e.Key = "PageUp"
	case tcell.KeyPgDn:
		e.Key = "PageDown"
	case tcell.KeyUp:
		e.Key = "Up"
	case tcell.KeyDown:
		e.Key = "Down"
	case tcell.KeyLeft:
		e.Key = "Left"
	case tcell.KeyRight:
		e.Key = "Right"
	default:
		switch {
		case k >= tcell.KeyF1 && k <= tcell.KeyF12:
			e.Key = fKeyNames[k-tcell.KeyF1]
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			// Terminals report Ctrl+letter as a control code
			e.Ctrl = true
			e.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
		}
	}

	return e
}
