package key

import (
	"strings"
	"unicode"
)

// Named main keys in their canonical spelling.
const (
	KeySpace     = "Space"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyTab       = "Tab"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

// keyNameMap maps main-key names (lowercase, including host-event spellings
// like "arrowup") to their canonical form.
var keyNameMap = map[string]string{
	"space":      KeySpace,
	"enter":      KeyEnter,
	"return":     KeyEnter,
	"escape":     KeyEscape,
	"esc":        KeyEscape,
	"tab":        KeyTab,
	"backspace":  KeyBackspace,
	"delete":     KeyDelete,
	"del":        KeyDelete,
	"insert":     "Insert",
	"home":       "Home",
	"end":        "End",
	"pageup":     "PageUp",
	"pagedown":   "PageDown",
	"up":         "Up",
	"down":       "Down",
	"left":       "Left",
	"right":      "Right",
	"arrowup":    "Up",
	"arrowdown":  "Down",
	"arrowleft":  "Left",
	"arrowright": "Right",
	"f1":         "F1",
	"f2":         "F2",
	"f3":         "F3",
	"f4":         "F4",
	"f5":         "F5",
	"f6":         "F6",
	"f7":         "F7",
	"f8":         "F8",
	"f9":         "F9",
	"f10":        "F10",
	"f11":        "F11",
	"f12":        "F12",
}

// NormalizeKey converts a main-key name to canonical form.
// Single letters are lower-cased, other single characters pass through,
// and named keys resolve case-insensitively (" " and "space" both become
// "Space"). Returns "" for names that cannot be a main key.
func NormalizeKey(name string) string {
	if name == " " {
		return KeySpace
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		if unicode.IsSpace(r) {
			return KeySpace
		}
		if unicode.IsUpper(r) {
			return string(unicode.ToLower(r))
		}
		return string(r)
	}
	if canonical, ok := keyNameMap[strings.ToLower(name)]; ok {
		return canonical
	}
	return ""
}

// Parsed is the structural decomposition of a combo string.
type Parsed struct {
	// Mods holds the modifier set.
	Mods Modifier

	// Key is the canonical main-key token. Empty for malformed combos.
	Key string
}

// IsZero reports whether the decomposition holds no key and no modifiers.
func (p Parsed) IsZero() bool {
	return p.Mods == ModNone && p.Key == ""
}

// String returns the canonical combo string, or "" when the main key is
// missing.
func (p Parsed) String() string {
	if p.Key == "" {
		return ""
	}
	if p.Mods == ModNone {
		return p.Key
	}
	return strings.Join(append(p.Mods.Tokens(), p.Key), "+")
}

// Parse structurally decomposes a combo string. It is tolerant of combos with
// zero modifiers and of malformed input: an unparseable combo yields an empty
// key with no modifiers rather than an error. Validation of well-formedness
// is the caller's responsibility before persisting (see Canonical).
func Parse(combo string) Parsed {
	s := strings.TrimSpace(combo)
	var mods Modifier
	for {
		i := strings.Index(s, "+")
		if i <= 0 {
			break
		}
		mod := ModifierFromName(s[:i])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		s = s[i+1:]
	}
	k := NormalizeKey(s)
	if k == "" {
		return Parsed{}
	}
	return Parsed{Mods: mods, Key: k}
}

// Canonical normalizes a combo string to canonical form. The second return
// value is false when the combo is empty or malformed.
func Canonical(combo string) (string, bool) {
	p := Parse(combo)
	if p.Key == "" {
		return "", false
	}
	return p.String(), true
}

// Valid reports whether combo normalizes to a well-formed canonical string.
func Valid(combo string) bool {
	_, ok := Canonical(combo)
	return ok
}

// Equal reports whether two combo strings identify the same key chord after
// canonicalization. Malformed combos are never equal to anything.
func Equal(a, b string) bool {
	ca, ok := Canonical(a)
	if !ok {
		return false
	}
	cb, ok := Canonical(b)
	if !ok {
		return false
	}
	return ca == cb
}
