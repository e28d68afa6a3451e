package config

import (
	"fmt"
	"os"
)

const starterConfig = `# sitegen configuration
site_name: My Documentation
site_description: ""
site_url: ""

# docs_dir: docs
# site_dir: site

theme:
  name: material
  palette:
    - scheme: default
      primary: indigo
    - scheme: slate
      primary: indigo

# nav is inferred from the docs directory when omitted.
# nav:
#   - Home: index.md
#   - Guides:
#       - guides/getting-started.md

markdown_extensions:
  - toc:
      permalink: true
  - tables
  - admonition

plugins:
  - search
`

// Init writes a starter configuration to the given path. An existing file is
// only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write starter configuration: %w", err)
	}
	return nil
}
