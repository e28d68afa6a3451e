package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExtensionSpec identifies a Markdown-processing extension together with its
// option mapping. Declaration order in markdown_extensions determines
// processing precedence.
type ExtensionSpec struct {
	Name    string
	Options map[string]any
}

// PluginSpec identifies a build-time plugin and its option mapping.
// Declaration order in plugins determines execution order during generation.
type PluginSpec struct {
	Name    string
	Options map[string]any
}

// UnmarshalYAML accepts the two spec shapes: a bare name, or a single-key
// mapping from name to an option mapping.
func (s *ExtensionSpec) UnmarshalYAML(value *yaml.Node) error {
	name, opts, err := decodeSpec(value, "markdown extension")
	if err != nil {
		return err
	}
	s.Name, s.Options = name, opts
	return nil
}

// UnmarshalYAML accepts the same shapes as ExtensionSpec.
func (s *PluginSpec) UnmarshalYAML(value *yaml.Node) error {
	name, opts, err := decodeSpec(value, "plugin")
	if err != nil {
		return err
	}
	s.Name, s.Options = name, opts
	return nil
}

func decodeSpec(value *yaml.Node, kind string) (string, map[string]any, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		var name string
		if err := value.Decode(&name); err != nil {
			return "", nil, err
		}
		return name, nil, nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return "", nil, fmt.Errorf("%s spec must have exactly one key (line %d)", kind, value.Line)
		}
		var name string
		if err := value.Content[0].Decode(&name); err != nil {
			return "", nil, err
		}
		var opts map[string]any
		if value.Content[1].Kind != yaml.ScalarNode || value.Content[1].Value != "" {
			if err := value.Content[1].Decode(&opts); err != nil {
				return "", nil, fmt.Errorf("%s %q options: %w", kind, name, err)
			}
		}
		return name, opts, nil
	default:
		return "", nil, fmt.Errorf("%s spec must be a name or a single-key mapping (line %d)", kind, value.Line)
	}
}

// StringOption returns a string-valued option, or def when absent or not a
// string.
func stringOption(opts map[string]any, key, def string) string {
	if v, ok := opts[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// BoolOption returns a bool-valued option, or def when absent or not a bool.
func boolOption(opts map[string]any, key string, def bool) bool {
	if v, ok := opts[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// StringOption exposes option lookup for consumers assembling renderers and
// plugins from specs.
func (s ExtensionSpec) StringOption(key, def string) string { return stringOption(s.Options, key, def) }

// BoolOption exposes boolean option lookup.
func (s ExtensionSpec) BoolOption(key string, def bool) bool { return boolOption(s.Options, key, def) }

// StringOption exposes option lookup for plugin consumers.
func (s PluginSpec) StringOption(key, def string) string { return stringOption(s.Options, key, def) }

// BoolOption exposes boolean option lookup.
func (s PluginSpec) BoolOption(key string, def bool) bool { return boolOption(s.Options, key, def) }
