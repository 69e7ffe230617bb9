// Package key implements the canonical key-combo codec.
//
// A combo is a canonical string of the form "(modifier+)*mainkey" where the
// modifiers are drawn from {ctrl, alt, shift, meta} in that fixed order,
// lower-case, joined by "+". The main key is a single character (letters are
// lower-cased) or a named key such as "Space" or "Enter". Canonical strings
// are the only form ever compared for equality, so semantically identical
// presses (Shift+Ctrl+K vs Ctrl+Shift+K) always normalize to the same combo.
//
// The codec converts raw host keyboard events to combos, structurally
// decomposes combos, and renders platform-aware display tokens. Parsing is
// tolerant: malformed input decomposes to an empty key instead of failing, so
// display code degrades gracefully. Callers validate with Canonical or Valid
// before persisting.
package key
