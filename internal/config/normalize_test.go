package config

import "testing"

func TestNormalizeThemeFallback(t *testing.T) {
	cfg := &Config{SiteName: "x", Theme: ThemeConfig{Name: "MysteryTheme"}}
	res := Normalize(cfg)
	if cfg.Theme.Name != string(ThemeMaterial) {
		t.Fatalf("unknown theme not replaced: %q", cfg.Theme.Name)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the unknown theme")
	}
}

func TestNormalizePaletteScheme(t *testing.T) {
	cfg := &Config{SiteName: "x", Theme: ThemeConfig{
		Name: "Material",
		Palette: []Palette{
			{Scheme: "DEFAULT"},
			{Scheme: "Slate"},
			{Scheme: "neon"},
		},
	}}
	res := Normalize(cfg)
	if cfg.Theme.Palette[0].Scheme != "default" || cfg.Theme.Palette[1].Scheme != "slate" {
		t.Fatalf("schemes not canonicalized: %+v", cfg.Theme.Palette)
	}
	if cfg.Theme.Palette[2].Scheme != "default" {
		t.Fatalf("unknown scheme fallback failed: %q", cfg.Theme.Palette[2].Scheme)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(res.Warnings))
	}
}

func TestNormalizeTrimsPaths(t *testing.T) {
	cfg := &Config{
		SiteName: "x",
		DocsDir:  "docs/",
		SiteDir:  "site/",
		SiteURL:  "https://example.com/",
		Plugins:  []PluginSpec{{Name: " Search "}},
	}
	Normalize(cfg)
	if cfg.DocsDir != "docs" || cfg.SiteDir != "site" || cfg.SiteURL != "https://example.com" {
		t.Fatalf("paths not trimmed: %+v", cfg)
	}
	if cfg.Plugins[0].Name != "search" {
		t.Fatalf("plugin name not canonicalized: %q", cfg.Plugins[0].Name)
	}
}
