package config

import "strings"

// Theme is a typed enumeration of bundled theme integrations.
type Theme string

const (
	ThemeMaterial Theme = "material"
	ThemePlain    Theme = "plain"
)

// ThemeConfig is the theme option mapping: which theme, palette variants,
// enabled feature flags and referenced asset paths.
type ThemeConfig struct {
	Name      string         `yaml:"name,omitempty"`
	Palette   []Palette      `yaml:"palette,omitempty"`
	Features  []string       `yaml:"features,omitempty"`
	Logo      string         `yaml:"logo,omitempty"`
	Favicon   string         `yaml:"favicon,omitempty"`
	CustomDir string         `yaml:"custom_dir,omitempty"`
	Icon      map[string]any `yaml:"icon,omitempty"`
}

// Palette is one color-scheme variant. Multiple palettes express a
// light/dark toggle; the first declared palette is the default.
type Palette struct {
	Scheme  string        `yaml:"scheme,omitempty"` // "default" (light) or "slate" (dark)
	Primary string        `yaml:"primary,omitempty"`
	Accent  string        `yaml:"accent,omitempty"`
	Toggle  PaletteToggle `yaml:"toggle,omitempty"`
}

// PaletteToggle labels the palette switcher control.
type PaletteToggle struct {
	Icon string `yaml:"icon,omitempty"`
	Name string `yaml:"name,omitempty"`
}

// ThemeType returns the normalized typed theme value (lowercasing the raw
// string). Unknown themes return "" so callers can branch safely.
func (t ThemeConfig) ThemeType() Theme {
	switch strings.ToLower(strings.TrimSpace(t.Name)) {
	case string(ThemeMaterial):
		return ThemeMaterial
	case string(ThemePlain):
		return ThemePlain
	default:
		return ""
	}
}

// HasFeature reports whether a theme feature flag is enabled.
func (t ThemeConfig) HasFeature(name string) bool {
	for _, f := range t.Features {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}
