package registry

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// catalogFile is the TOML structure for shortcut catalog files.
type catalogFile struct {
	Shortcut []catalogEntry `toml:"shortcut"`
}

type catalogEntry struct {
	ID          string   `toml:"id"`
	Label       string   `toml:"label"`
	Description string   `toml:"description,omitempty"`
	Combo       string   `toml:"combo"`
	Contexts    []string `toml:"contexts"`
	Scope       string   `toml:"scope,omitempty"`
	AdminOnly   bool     `toml:"admin_only,omitempty"`
}

// LoadReader decodes shortcut definitions from a TOML catalog.
//
// Format:
//
//	[[shortcut]]
//	id = "global.save"
//	label = "Save"
//	combo = "ctrl+s"
//	contexts = ["global"]
//	scope = "action"
func LoadReader(r io.Reader) ([]Definition, error) {
	var file catalogFile
	if err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding shortcut catalog: %w", err)
	}

	defs := make([]Definition, 0, len(file.Shortcut))
	for _, e := range file.Shortcut {
		defs = append(defs, Definition{
			ID:           e.ID,
			Label:        e.Label,
			Description:  e.Description,
			DefaultCombo: e.Combo,
			Contexts:     e.Contexts,
			Scope:        e.Scope,
			AdminOnly:    e.AdminOnly,
		})
	}
	return defs, nil
}

// LoadFile decodes shortcut definitions from a TOML catalog file.
func LoadFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shortcut catalog: %w", err)
	}
	defer f.Close()

	return LoadReader(f)
}
