package config

import (
	"path/filepath"
	"strings"
)

// Validate checks structural requirements the decoder cannot express. It is
// called by Load after defaults and normalization; a failure means the build
// must not proceed.
func Validate(cfg *Config) error {
	v := &validator{cfg: cfg}
	return v.validate()
}

type validator struct {
	cfg *Config
}

func (v *validator) validate() error {
	if err := v.validateIdentity(); err != nil {
		return err
	}
	if err := v.validateSpecs(); err != nil {
		return err
	}
	if err := v.validateTheme(); err != nil {
		return err
	}
	if err := v.validatePaths(); err != nil {
		return err
	}
	return v.validateDocsRepo()
}

func (v *validator) validateIdentity() error {
	if strings.TrimSpace(v.cfg.SiteName) == "" {
		return &ValidationError{Field: "site_name", Reason: "required"}
	}
	if v.cfg.EditURI != "" && v.cfg.RepoURL == "" {
		return &ValidationError{Field: "edit_uri", Reason: "requires repo_url"}
	}
	return nil
}

func (v *validator) validateSpecs() error {
	if err := uniqueNames("markdown_extensions", specNames(v.cfg.MarkdownExtensions)); err != nil {
		return err
	}
	return uniqueNames("plugins", pluginNames(v.cfg.Plugins))
}

func (v *validator) validateTheme() error {
	// logo/favicon live inside docs_dir, which may not exist yet when the
	// content comes from a docs_repo; the build's scan stage checks them.
	if dir := v.cfg.Theme.CustomDir; dir != "" && strings.Contains(dir, "..") {
		return &ValidationError{Field: "theme.custom_dir", Reason: "must not escape the project directory"}
	}
	return nil
}

func (v *validator) validatePaths() error {
	for _, p := range append(append([]string{}, v.cfg.ExtraCSS...), v.cfg.ExtraJavascript...) {
		if filepath.IsAbs(p) || strings.Contains(p, "..") {
			return &ValidationError{Field: "extra_css", Reason: "asset path must be relative to docs_dir: " + p}
		}
	}
	if v.cfg.DocsDir == v.cfg.SiteDir {
		return &ValidationError{Field: "site_dir", Reason: "must differ from docs_dir"}
	}
	return nil
}

func (v *validator) validateDocsRepo() error {
	if v.cfg.DocsRepo != nil && strings.TrimSpace(v.cfg.DocsRepo.URL) == "" {
		return &ValidationError{Field: "docs_repo.url", Reason: "required when docs_repo is set"}
	}
	return nil
}

func uniqueNames(field string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return &ValidationError{Field: field, Reason: "entry name cannot be empty"}
		}
		if seen[n] {
			return &ValidationError{Field: field, Reason: "duplicate entry: " + n}
		}
		seen[n] = true
	}
	return nil
}

func specNames(specs []ExtensionSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

func pluginNames(specs []PluginSpec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}
