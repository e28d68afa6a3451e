package plugins

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// sitemapPlugin writes sitemap.xml from site_url plus the rendered page
// locations. Without a configured site_url no absolute URLs can be formed,
// so the plugin skips with a debug log.
type sitemapPlugin struct{}

func (p *sitemapPlugin) Name() string { return "sitemap" }

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

func (p *sitemapPlugin) Run(_ context.Context, b *BuildContext) error {
	if b.Config.SiteURL == "" {
		slog.Debug("Skipping sitemap plugin: site_url not configured")
		return nil
	}

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range b.Pages {
		set.URLs = append(set.URLs, urlEntry{Loc: b.Config.SiteURL + "/" + page.Location})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	data = append([]byte(xml.Header), data...)

	if err := os.WriteFile(filepath.Join(b.SiteDir, "sitemap.xml"), data, 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}
