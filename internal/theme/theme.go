// Package theme renders page HTML into the site's layout: navigation
// sidebar, palette variables, repo links and extra asset includes.
package theme

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

//go:embed templates/*.tmpl assets/*.css
var themeFS embed.FS

// Site is the build-wide template data, derived from the configuration once
// per build.
type Site struct {
	Name        string
	Description string
	Author      string
	URL         string
	Copyright   string
	RepoName    string
	RepoURL     string
	Logo        string // docs-relative image path, copied with the assets
	Favicon     string // docs-relative icon path
	Palettes    []config.Palette
	Features    []string
	ExtraCSS    []string
	ExtraJS     []string
	LiveReload  bool
}

// NavItem is one rendered sidebar entry.
type NavItem struct {
	Title    string
	URL      string
	Active   bool
	Children []NavItem
}

// Page is the per-page template data.
type Page struct {
	Site        *Site
	Title       string
	Description string
	Content     template.HTML
	URL         string
	EditURL     string
	Nav         []NavItem
	Root        string // relative path prefix back to the site root
}

// Renderer executes the theme templates. The default templates are embedded;
// a theme custom_dir overlays same-named templates from disk.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates for the configured theme and applies the
// custom_dir overlay when present.
func New(cfg *config.Config) (*Renderer, error) {
	tmpl, err := template.ParseFS(themeFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse theme templates: %w", err)
	}
	if dir := cfg.Theme.CustomDir; dir != "" {
		overlay := filepath.Join(dir, "*.tmpl")
		if matches, _ := filepath.Glob(overlay); len(matches) > 0 {
			if tmpl, err = tmpl.ParseGlob(overlay); err != nil {
				return nil, fmt.Errorf("parse theme custom_dir: %w", err)
			}
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// SiteData derives the build-wide template data from a configuration.
func SiteData(cfg *config.Config, liveReload bool) *Site {
	return &Site{
		Name:        cfg.SiteName,
		Description: cfg.SiteDescription,
		Author:      cfg.SiteAuthor,
		URL:         cfg.SiteURL,
		Copyright:   cfg.Copyright,
		RepoName:    cfg.RepoName,
		RepoURL:     cfg.RepoURL,
		Logo:        cfg.Theme.Logo,
		Favicon:     cfg.Theme.Favicon,
		Palettes:    cfg.Theme.Palette,
		Features:    cfg.Theme.Features,
		ExtraCSS:    cfg.ExtraCSS,
		ExtraJS:     cfg.ExtraJavascript,
		LiveReload:  liveReload,
	}
}

// RenderPage writes a full HTML document for one page.
func (r *Renderer) RenderPage(w io.Writer, page *Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "base.html.tmpl", page); err != nil {
		return fmt.Errorf("render page %s: %w", page.URL, err)
	}
	return nil
}

// RenderNotFound writes the 404 page.
func (r *Renderer) RenderNotFound(w io.Writer, site *Site) error {
	page := &Page{Site: site, Title: "Page not found", Root: "/"}
	if err := r.tmpl.ExecuteTemplate(w, "404.html.tmpl", page); err != nil {
		return fmt.Errorf("render 404 page: %w", err)
	}
	return nil
}

// WriteStaticAssets copies the theme's bundled stylesheet into the site
// output under assets/.
func (r *Renderer) WriteStaticAssets(siteDir string) error {
	css, err := themeFS.ReadFile("assets/sitegen.css")
	if err != nil {
		return fmt.Errorf("read bundled stylesheet: %w", err)
	}
	dir := filepath.Join(siteDir, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create assets directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sitegen.css"), css, 0o644); err != nil {
		return fmt.Errorf("write bundled stylesheet: %w", err)
	}
	return nil
}
