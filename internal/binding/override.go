package binding

// overrideKind discriminates the override variant for a shortcut.
type overrideKind uint8

const (
	kindCustom overrideKind = iota + 1
	kindDisabled
)

// Override is the tagged override variant for one shortcut: either a custom
// combo or an explicit disable. The zero Override is meaningless; absence of
// an entry means Default. Keeping the three states as one tagged value makes
// their mutual exclusivity structural rather than checked.
type Override struct {
	kind  overrideKind
	combo string
}

// Custom returns an override binding the shortcut to a custom combo.
func Custom(combo string) Override {
	return Override{kind: kindCustom, combo: combo}
}

// Disabled returns an override that disables the shortcut.
func Disabled() Override {
	return Override{kind: kindDisabled}
}

// IsCustom reports whether the override carries a custom combo.
func (o Override) IsCustom() bool {
	return o.kind == kindCustom
}

// IsDisabled reports whether the override disables the shortcut.
func (o Override) IsDisabled() bool {
	return o.kind == kindDisabled
}

// Combo returns the custom combo, or "" for a disable override.
func (o Override) Combo() string {
	return o.combo
}
