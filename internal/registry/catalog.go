package registry

// Default returns the built-in shortcut catalog. Order matters: it is the
// registry order used for deterministic conflict reporting.
func Default() []Definition {
	return []Definition{
		// Global
		{
			ID:           "global.save",
			Label:        "Save",
			Description:  "Save the current item",
			DefaultCombo: "ctrl+s",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeAction,
		},
		{
			ID:           "global.command-palette",
			Label:        "Command Palette",
			Description:  "Search and run any command",
			DefaultCombo: "ctrl+p",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeNavigation,
		},
		{
			ID:           "global.search",
			Label:        "Search Everywhere",
			Description:  "Open the global search drawer",
			DefaultCombo: "ctrl+shift+f",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeNavigation,
		},
		{
			ID:           "global.undo",
			Label:        "Undo",
			DefaultCombo: "ctrl+z",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeEditing,
		},
		{
			ID:           "global.redo",
			Label:        "Redo",
			DefaultCombo: "ctrl+shift+z",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeEditing,
		},

		// Compose
		{
			ID:           "compose.bold",
			Label:        "Bold",
			Description:  "Toggle bold on the selection",
			DefaultCombo: "ctrl+b",
			Contexts:     []string{"compose"},
			Scope:        ScopeEditing,
		},
		{
			ID:           "compose.italic",
			Label:        "Italic",
			Description:  "Toggle italic on the selection",
			DefaultCombo: "ctrl+i",
			Contexts:     []string{"compose"},
			Scope:        ScopeEditing,
		},
		{
			ID:           "compose.insert-link",
			Label:        "Insert Link",
			DefaultCombo: "ctrl+k",
			Contexts:     []string{"compose"},
			Scope:        ScopeEditing,
		},
		{
			ID:           "compose.preview",
			Label:        "Preview",
			Description:  "Toggle the compose preview pane",
			DefaultCombo: "ctrl+shift+p",
			Contexts:     []string{"compose"},
			Scope:        ScopeAction,
		},

		// Discover
		{
			ID:           "discover.next",
			Label:        "Next Card",
			DefaultCombo: "Right",
			Contexts:     []string{"discover"},
			Scope:        ScopeNavigation,
		},
		{
			ID:           "discover.previous",
			Label:        "Previous Card",
			DefaultCombo: "Left",
			Contexts:     []string{"discover"},
			Scope:        ScopeNavigation,
		},
		{
			ID:           "discover.flip",
			Label:        "Flip Card",
			Description:  "Flip the active card",
			DefaultCombo: "Space",
			Contexts:     []string{"discover"},
			Scope:        ScopeAction,
		},

		// Edit panel
		{
			ID:           "edit-panel.apply",
			Label:        "Apply Changes",
			DefaultCombo: "ctrl+Enter",
			Contexts:     []string{"edit-panel"},
			Scope:        ScopeAction,
		},
		{
			ID:           "edit-panel.close",
			Label:        "Close Panel",
			DefaultCombo: "ctrl+w",
			Contexts:     []string{"edit-panel"},
			Scope:        ScopeAction,
		},

		// Admin
		{
			ID:           "admin.debug-overlay",
			Label:        "Debug Overlay",
			Description:  "Toggle the admin debug overlay",
			DefaultCombo: "ctrl+shift+d",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeAdmin,
			AdminOnly:    true,
		},
		{
			ID:           "admin.user-preview",
			Label:        "Preview As User",
			Description:  "Preview the app as a selected user",
			DefaultCombo: "ctrl+shift+u",
			Contexts:     []string{ContextGlobal},
			Scope:        ScopeAdmin,
			AdminOnly:    true,
		},
	}
}
