// Package palette builds the searchable command index shown in palette and
// settings surfaces. Entries carry the effective binding at build time, so
// the index is rebuilt (cheaply) after any override change.
package palette

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dshills/keybind/internal/binding"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/registry"
)

// Entry is one searchable command row.
type Entry struct {
	// ID is the shortcut id.
	ID string

	// Label is the display name.
	Label string

	// Description is the longer search/help text, possibly empty.
	Description string

	// Category is the display grouping, derived from the shortcut scope.
	Category string

	// Combo is the effective canonical combo, empty when disabled.
	Combo string

	// Display is the platform-formatted combo, empty when disabled.
	Display string

	// Disabled reports that the shortcut currently has no binding.
	Disabled bool

	// AdminOnly marks entries for admin surfaces.
	AdminOnly bool
}

// Group is a category with its entries, both in stable order.
type Group struct {
	Category string
	Entries  []Entry
}

// Index resolves registry definitions against the override layer into
// display-ready entries.
type Index struct {
	reg      *registry.Registry
	store    *binding.Store
	platform key.Platform
}

// NewIndex creates an index over a registry and binding store, formatting
// combos for the given platform.
func NewIndex(reg *registry.Registry, store *binding.Store, platform key.Platform) *Index {
	return &Index{reg: reg, store: store, platform: platform}
}

// Build returns every entry in registry order with current effective
// bindings. Disabled shortcuts are included, with empty combo strings.
func (x *Index) Build() []Entry {
	defs := x.reg.All()
	entries := make([]Entry, 0, len(defs))
	for _, def := range defs {
		entries = append(entries, x.entry(def))
	}
	return entries
}

func (x *Index) entry(def registry.Definition) Entry {
	e := Entry{
		ID:          def.ID,
		Label:       def.Label,
		Description: def.Description,
		Category:    def.Scope,
		AdminOnly:   def.AdminOnly,
	}
	eff, err := x.store.Effective(def.ID)
	if err != nil || eff.Disabled {
		e.Disabled = true
		return e
	}
	e.Combo = eff.Combo
	e.Display = key.Display(eff.Combo, x.platform)
	return e
}

// Match priority buckets, ordered best first.
const (
	matchLabel = iota
	matchDescription
	matchID
)

// Search returns entries matching the query, case-insensitively, as a
// substring of the label, description, or id. Label matches rank above
// description matches, which rank above id matches; within a bucket,
// registry order is preserved. An empty query returns the full index.
func (x *Index) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return x.Build()
	}

	type ranked struct {
		entry Entry
		prio  int
	}
	var matches []ranked
	for _, e := range x.Build() {
		switch {
		case strings.Contains(strings.ToLower(e.Label), query):
			matches = append(matches, ranked{e, matchLabel})
		case strings.Contains(strings.ToLower(e.Description), query):
			matches = append(matches, ranked{e, matchDescription})
		case strings.Contains(strings.ToLower(e.ID), query):
			matches = append(matches, ranked{e, matchID})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].prio < matches[j].prio
	})
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

// Groups returns the index grouped by category, categories in first-seen
// registry order and entries in registry order within each.
func (x *Index) Groups() []Group {
	var groups []Group
	seen := make(map[string]int)
	for _, e := range x.Build() {
		i, ok := seen[e.Category]
		if !ok {
			i = len(groups)
			seen[e.Category] = i
			groups = append(groups, Group{Category: e.Category})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// maxSuggestDistance bounds how far a label may be from the query before the
// entry is dropped from suggestions.
const maxSuggestDistance = 3

// Suggest returns near-miss entries for a query that produced no substring
// matches, ordered by edit distance to the label (registry order on ties).
// Intended for "did you mean" rendering when Search comes back empty.
func (x *Index) Suggest(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	type scored struct {
		entry Entry
		dist  int
	}
	var near []scored
	for _, e := range x.Build() {
		d := levenshtein.ComputeDistance(query, strings.ToLower(e.Label))
		if d <= maxSuggestDistance {
			near = append(near, scored{e, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].dist < near[j].dist
	})
	out := make([]Entry, len(near))
	for i, s := range near {
		out[i] = s.entry
	}
	return out
}
