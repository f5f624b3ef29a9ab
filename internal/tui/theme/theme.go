// Package theme provides color themes for the status views.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is the theme used when none is configured or the configured one is missing.
const DefaultName = "mocha"

// Theme holds all colors for a theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Status bar, table header
	BgSelection string `toml:"bg_selection"` // Selected row
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Disabled rows, secondary text
	Accent      string `toml:"accent"`       // Title, borders
	Warning     string `toml:"warning"`      // Validation warnings

	// Status colors (fall back to base colors when omitted)
	Created  string `toml:"created"`
	Running  string `toml:"running"`
	Finished string `toml:"finished"`
	Failed   string `toml:"failed"`
	Skipped  string `toml:"skipped"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	if t.Created == "" {
		t.Created = t.FgMuted
	}
	if t.Running == "" {
		t.Running = t.Accent
	}
	if t.Finished == "" {
		t.Finished = t.Fg
	}
	if t.Failed == "" {
		t.Failed = t.Warning
	}
	if t.Skipped == "" {
		t.Skipped = t.FgMuted
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}

// Next returns the theme after name in Available, wrapping around.
// Unknown names start the cycle over.
func Next(name string) string {
	names := Available()
	name = strings.ToLower(name)
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
