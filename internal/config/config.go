// Package config loads, normalizes and validates the declarative site
// configuration: site identity, navigation tree, theme options, ordered
// Markdown extensions and ordered build plugins.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/nav"
)

// Config is the parsed configuration document. It is constructed once per
// build, held immutably for the duration of that build, and never mutated
// afterwards; concurrent builds each operate on their own instance.
type Config struct {
	SiteName        string `yaml:"site_name"`
	SiteDescription string `yaml:"site_description,omitempty"`
	SiteAuthor      string `yaml:"site_author,omitempty"`
	SiteURL         string `yaml:"site_url,omitempty"`

	RepoName string `yaml:"repo_name,omitempty"`
	RepoURL  string `yaml:"repo_url,omitempty"`
	EditURI  string `yaml:"edit_uri,omitempty"`

	Copyright string `yaml:"copyright,omitempty"`

	DocsDir string `yaml:"docs_dir,omitempty"` // content root, default "docs"
	SiteDir string `yaml:"site_dir,omitempty"` // output root, default "site"

	// Strict promotes build warnings (unknown extensions, broken intra-page
	// links found during post-processing) to fatal errors.
	Strict bool `yaml:"strict,omitempty"`

	// UseDirectoryURLs renders page.md as page/index.html instead of
	// page.html, producing trailing-slash URLs. Defaults to true.
	UseDirectoryURLs *bool `yaml:"use_directory_urls,omitempty"`

	Nav nav.Tree `yaml:"nav,omitempty"`

	Theme ThemeConfig `yaml:"theme,omitempty"`

	MarkdownExtensions []ExtensionSpec `yaml:"markdown_extensions,omitempty"`
	Plugins            []PluginSpec    `yaml:"plugins,omitempty"`

	ExtraCSS        []string `yaml:"extra_css,omitempty"`
	ExtraJavascript []string `yaml:"extra_javascript,omitempty"`

	// DocsRepo optionally names a git repository to fetch the content tree
	// from before building; DocsDir is then resolved inside the checkout.
	DocsRepo *DocsRepoConfig `yaml:"docs_repo,omitempty"`

	Notifications *NotificationsConfig `yaml:"notifications,omitempty"`
}

// DocsRepoConfig describes a remote content source.
type DocsRepoConfig struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
}

// NotificationsConfig configures optional build-event publishing.
type NotificationsConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"` // default "sitegen.builds"
}

// DirectoryURLs reports the effective use_directory_urls setting.
func (c *Config) DirectoryURLs() bool {
	return c.UseDirectoryURLs == nil || *c.UseDirectoryURLs
}

// Load reads and fully prepares the configuration at configPath: environment
// files are loaded, ${VAR} references expanded, the YAML decoded, defaults
// applied, enum fields normalized and the result validated. Loading the same
// document twice yields structurally equal configurations.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data, configPath)
}

// Parse decodes and prepares a configuration document already in memory.
// sourcePath is used for error reporting only.
func Parse(data []byte, sourcePath string) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, &ParseError{Path: sourcePath, Err: err}
	}

	applyDefaults(&cfg)
	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		w.log()
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero values with the documented defaults. Defaults are
// deliberately minimal: anything requiring judgement stays explicit.
func applyDefaults(cfg *Config) {
	if cfg.DocsDir == "" {
		cfg.DocsDir = "docs"
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = "site"
	}
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = string(ThemeMaterial)
	}
	if len(cfg.Plugins) == 0 {
		// Search is on by default, as in the upstream config dialect.
		cfg.Plugins = []PluginSpec{{Name: "search"}}
	}
	if cfg.Notifications != nil && cfg.Notifications.Subject == "" {
		cfg.Notifications.Subject = "sitegen.builds"
	}
}
