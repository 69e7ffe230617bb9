package key

import "strings"

// Platform selects the display convention for modifier tokens.
type Platform int

const (
	// PlatformOther renders textual modifier labels (Ctrl, Alt, ...).
	PlatformOther Platform = iota

	// PlatformMac renders single-glyph modifier symbols.
	PlatformMac
)

// Token is one display element of a formatted combo.
type Token struct {
	// Label is the text or glyph to render.
	Label string

	// Wide flags keys that need extra horizontal space in key-cap style
	// rendering (Space, Enter, Tab, Backspace, Delete). Purely a display
	// concern, never part of equality.
	Wide bool
}

var macModifierGlyphs = map[Modifier]string{
	ModCtrl:  "⌃", // ⌃
	ModAlt:   "⌥", // ⌥
	ModShift: "⇧", // ⇧
	ModMeta:  "⌘", // ⌘
}

var textModifierLabels = map[Modifier]string{
	ModCtrl:  "Ctrl",
	ModAlt:   "Alt",
	ModShift: "Shift",
	ModMeta:  "Meta",
}

var wideKeys = map[string]bool{
	KeySpace:     true,
	KeyEnter:     true,
	KeyTab:       true,
	KeyBackspace: true,
	KeyDelete:    true,
}

// Format renders a parsed combo as an ordered list of display tokens,
// modifiers first in canonical order. Letters are upper-cased for display.
func Format(p Parsed, platform Platform) []Token {
	if p.Key == "" {
		return nil
	}

	tokens := make([]Token, 0, 5)
	for _, c := range canonicalOrder {
		if !p.Mods.Has(c.mod) {
			continue
		}
		label := textModifierLabels[c.mod]
		if platform == PlatformMac {
			label = macModifierGlyphs[c.mod]
		}
		tokens = append(tokens, Token{Label: label})
	}

	keyLabel := p.Key
	if len([]rune(keyLabel)) == 1 {
		keyLabel = strings.ToUpper(keyLabel)
	}
	tokens = append(tokens, Token{Label: keyLabel, Wide: wideKeys[p.Key]})

	return tokens
}

// Display renders a combo string for human display, joining the formatted
// tokens. Malformed combos render as "".
func Display(combo string, platform Platform) string {
	tokens := Format(Parse(combo), platform)
	if len(tokens) == 0 {
		return ""
	}
	labels := make([]string, len(tokens))
	for i, t := range tokens {
		labels[i] = t.Label
	}
	sep := "+"
	if platform == PlatformMac {
		sep = ""
	}
	return strings.Join(labels, sep)
}
