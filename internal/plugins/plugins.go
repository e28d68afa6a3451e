// Package plugins executes the configuration's ordered plugin sequence
// against a finished site tree.
package plugins

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// PageInfo is the per-page summary handed to plugins.
type PageInfo struct {
	Title       string
	Location    string // site-relative URL, e.g. "guides/intro/"
	Description string
	Text        string // plain-text body
}

// BuildContext is the plugin view of a completed render: the immutable
// configuration, the output directory and the rendered page summaries.
type BuildContext struct {
	Config  *config.Config
	SiteDir string
	Pages   []PageInfo

	// URLFor maps a docs-relative source path (e.g. "guides/intro.md") to
	// its site-relative URL, reporting whether the page exists.
	URLFor func(sourcePath string) (string, bool)
}

// Plugin is one build-time processing step.
type Plugin interface {
	Name() string
	Run(ctx context.Context, b *BuildContext) error
}

// Runner executes plugins in their declared order.
type Runner struct {
	plugins []Plugin
}

// NewRunner resolves plugin specs against the built-in registry. Order is
// preserved; an unknown plugin name is a configuration validation failure.
func NewRunner(specs []config.PluginSpec) (*Runner, error) {
	r := &Runner{}
	for _, spec := range specs {
		p, err := newPlugin(spec)
		if err != nil {
			return nil, err
		}
		r.plugins = append(r.plugins, p)
	}
	return r, nil
}

func newPlugin(spec config.PluginSpec) (Plugin, error) {
	switch spec.Name {
	case "search":
		return &searchPlugin{}, nil
	case "sitemap":
		return &sitemapPlugin{}, nil
	case "redirects":
		return newRedirectsPlugin(spec)
	default:
		return nil, &config.ValidationError{Field: "plugins", Reason: "unknown plugin: " + spec.Name}
	}
}

// Run executes every plugin in sequence, stopping at the first failure.
func (r *Runner) Run(ctx context.Context, b *BuildContext) error {
	for _, p := range r.plugins {
		slog.Debug("Running plugin", "plugin", p.Name())
		if err := p.Run(ctx, b); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}
	return nil
}

// Names lists the resolved plugins in execution order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}
