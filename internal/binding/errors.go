package binding

import "errors"

// BindingStore errors. All are local and recoverable; no operation mutates
// state when it returns an error.
var (
	// ErrShortcutNotFound indicates an unknown shortcut id.
	ErrShortcutNotFound = errors.New("binding: shortcut not found")

	// ErrInvalidCombo indicates an empty or malformed combo string.
	ErrInvalidCombo = errors.New("binding: invalid combo")

	// ErrReservedKey indicates a combo whose main key is Tab (focus
	// navigation) or Escape (capture cancel); neither may be bound.
	ErrReservedKey = errors.New("binding: reserved key")
)
