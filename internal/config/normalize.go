package config

import (
	"log/slog"
	"strings"
)

// Warning records a normalization decision made on the user's behalf.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) log() {
	slog.Warn("Configuration normalized", "field", w.Field, "detail", w.Message)
}

// NormalizeResult carries the warnings produced while canonicalizing a
// configuration. Normalization never fails; invalid values either fall back
// to a safe default (with a warning) or are left for Validate to reject.
type NormalizeResult struct {
	Warnings []Warning
}

// Normalize canonicalizes enum-like fields in place: theme name and palette
// schemes are lowercased and unknown values replaced with defaults,
// extension and plugin names are trimmed, path-like fields lose trailing
// separators.
func Normalize(cfg *Config) NormalizeResult {
	var res NormalizeResult
	warn := func(field, msg string) {
		res.Warnings = append(res.Warnings, Warning{Field: field, Message: msg})
	}

	if cfg.Theme.Name != "" {
		raw := cfg.Theme.Name
		cfg.Theme.Name = strings.ToLower(strings.TrimSpace(raw))
		if cfg.Theme.ThemeType() == "" {
			warn("theme.name", "unknown theme "+raw+", falling back to material")
			cfg.Theme.Name = string(ThemeMaterial)
		}
	}

	for i := range cfg.Theme.Palette {
		p := &cfg.Theme.Palette[i]
		switch s := strings.ToLower(strings.TrimSpace(p.Scheme)); s {
		case "", "default", "slate":
			p.Scheme = s
		default:
			warn("theme.palette.scheme", "unknown scheme "+p.Scheme+", falling back to default")
			p.Scheme = "default"
		}
	}

	for i := range cfg.MarkdownExtensions {
		cfg.MarkdownExtensions[i].Name = strings.TrimSpace(cfg.MarkdownExtensions[i].Name)
	}
	for i := range cfg.Plugins {
		cfg.Plugins[i].Name = strings.TrimSpace(strings.ToLower(cfg.Plugins[i].Name))
	}

	cfg.DocsDir = strings.TrimRight(cfg.DocsDir, "/")
	cfg.SiteDir = strings.TrimRight(cfg.SiteDir, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return res
}
