package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PresetClassic is the bundled docs + blog + theme preset.
const PresetClassic = "classic"

// Preset is a named bundle of plugin options.
//
// In YAML a preset is either a mapping {name, options} or the generator's
// tuple form [name, options].
type Preset struct {
	Name    string        `yaml:"name" json:"name"`
	Options PresetOptions `yaml:"options" json:"options"`
}

// UnmarshalYAML accepts both the mapping and the tuple form.
func (p *Preset) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) == 0 || len(node.Content) > 2 {
			return fmt.Errorf("line %d: preset tuple must be [name] or [name, options]", node.Line)
		}
		if err := node.Content[0].Decode(&p.Name); err != nil {
			return err
		}
		if len(node.Content) == 2 {
			return decodeStrict(node.Content[1], &p.Options)
		}
		return nil
	case yaml.MappingNode:
		type plain Preset
		var v plain
		if err := decodeStrict(node, &v); err != nil {
			return err
		}
		*p = Preset(v)
		return nil
	default:
		return fmt.Errorf("line %d: preset must be a mapping or a [name, options] tuple", node.Line)
	}
}

// PresetOptions are the per-plugin sections of a preset.
type PresetOptions struct {
	Docs  Toggle[DocsPluginOptions] `yaml:"docs,omitempty" json:"docs,omitzero"`
	Blog  Toggle[BlogPluginOptions] `yaml:"blog,omitempty" json:"blog,omitzero"`
	Theme ThemeOptions              `yaml:"theme,omitempty" json:"theme,omitzero"`
}

// DocsPluginOptions configures the docs plugin.
type DocsPluginOptions struct {
	Path          string `yaml:"path,omitempty" json:"path,omitempty"`
	SidebarPath   string `yaml:"sidebarPath,omitempty" json:"sidebarPath,omitempty"`
	EditURL       string `yaml:"editUrl,omitempty" json:"editUrl,omitempty"`
	RouteBasePath string `yaml:"routeBasePath,omitempty" json:"routeBasePath,omitempty"`
}

// BlogPluginOptions configures the blog plugin.
type BlogPluginOptions struct {
	Path            string `yaml:"path,omitempty" json:"path,omitempty"`
	ShowReadingTime bool   `yaml:"showReadingTime,omitempty" json:"showReadingTime,omitempty"`
	EditURL         string `yaml:"editUrl,omitempty" json:"editUrl,omitempty"`
	RouteBasePath   string `yaml:"routeBasePath,omitempty" json:"routeBasePath,omitempty"`
}

// ThemeOptions configures the classic theme.
type ThemeOptions struct {
	CustomCSS string `yaml:"customCss,omitempty" json:"customCss,omitempty"`
}

// Toggle is a plugin section that is either disabled (YAML false) or enabled
// with options (a mapping, or true for defaults).
type Toggle[T any] struct {
	Enabled bool
	Options T
	set     bool
}

// Enable returns an enabled toggle carrying opts.
func Enable[T any](opts T) Toggle[T] {
	return Toggle[T]{Enabled: true, Options: opts, set: true}
}

// Disable returns an explicitly disabled toggle.
func Disable[T any]() Toggle[T] {
	return Toggle[T]{set: true}
}

// IsSet reports whether the section appeared in the input or was defaulted.
func (t Toggle[T]) IsSet() bool { return t.set }

// IsZero reports whether the toggle was never set.
func (t Toggle[T]) IsZero() bool { return !t.set }

func (t *Toggle[T]) UnmarshalYAML(node *yaml.Node) error {
	t.set = true
	if node.Kind == yaml.ScalarNode {
		var on bool
		if err := node.Decode(&on); err != nil {
			return fmt.Errorf("line %d: plugin section must be false or a mapping", node.Line)
		}
		t.Enabled = on
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: plugin section must be false or a mapping", node.Line)
	}
	t.Enabled = true
	return decodeStrict(node, &t.Options)
}

func (t Toggle[T]) MarshalYAML() (interface{}, error) {
	if !t.Enabled {
		return false, nil
	}
	return t.Options, nil
}

func (t Toggle[T]) MarshalJSON() ([]byte, error) {
	if !t.Enabled {
		return []byte("false"), nil
	}
	return json.Marshal(t.Options)
}

// decodeStrict decodes node into out rejecting unknown keys. node.Decode
// does not inherit the KnownFields setting of the outer decoder.
func decodeStrict(node *yaml.Node, out any) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}
