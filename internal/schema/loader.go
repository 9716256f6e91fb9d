package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogueFile struct {
	Rules map[string]descriptorFile `yaml:"rules"`
}

type descriptorFile struct {
	Summary    string    `yaml:"summary"`
	Deprecated bool      `yaml:"deprecated"`
	Schema     yaml.Node `yaml:"schema"`
}

// LoadCatalogue reads a YAML (or JSON) schema catalogue file.
func LoadCatalogue(path string) (Catalogue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return ParseCatalogue(b)
}

func ParseCatalogue(b []byte) (Catalogue, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	out := make(Catalogue, len(f.Rules))
	for id, d := range f.Rules {
		opts, err := ParseOptions(&d.Schema)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", id, err)
		}
		out[id] = Descriptor{Summary: d.Summary, Deprecated: d.Deprecated, Options: opts}
	}
	return out, nil
}

// ParseOptions decodes a positional option list. Only a sequence carries
// positional options; a missing schema or a single object schema yields none.
// Property order follows the document.
func ParseOptions(n *yaml.Node) ([]Option, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	if n.Kind != yaml.SequenceNode {
		return nil, nil
	}
	out := make([]Option, 0, len(n.Content))
	for _, item := range n.Content {
		opt, err := parseOption(item)
		if err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	return out, nil
}

func parseOption(n *yaml.Node) (Option, error) {
	if n.Kind != yaml.MappingNode {
		return Unsupported{Keyword: "non-object"}, nil
	}
	fields := mappingFields(n)

	if en, ok := fields["enum"]; ok {
		values, err := decodeValues(en)
		if err != nil {
			return nil, fmt.Errorf("enum: %w", err)
		}
		return EnumOption{Values: values}, nil
	}
	if t, ok := fields["type"]; ok && t.Value == "object" {
		var props []Property
		if pn, ok := fields["properties"]; ok && pn.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(pn.Content); i += 2 {
				p, err := parseProperty(pn.Content[i].Value, pn.Content[i+1])
				if err != nil {
					return nil, err
				}
				props = append(props, p)
			}
		}
		return ObjectOption{Properties: props}, nil
	}
	for _, kw := range []string{"oneOf", "anyOf", "allOf"} {
		if _, ok := fields[kw]; ok {
			return Unsupported{Keyword: kw}, nil
		}
	}
	if t, ok := fields["type"]; ok {
		return Unsupported{Keyword: t.Value}, nil
	}
	return Unsupported{Keyword: "unknown"}, nil
}

func parseProperty(name string, n *yaml.Node) (Property, error) {
	if n.Kind != yaml.MappingNode {
		return Property{Name: name}, nil
	}
	fields := mappingFields(n)
	if en, ok := fields["enum"]; ok {
		values, err := decodeValues(en)
		if err != nil {
			return Property{}, fmt.Errorf("property %q enum: %w", name, err)
		}
		return EnumProperty(name, values...), nil
	}
	if t, ok := fields["type"]; ok && t.Value == "boolean" {
		return BoolProperty(name), nil
	}
	return Property{Name: name}, nil
}

func mappingFields(n *yaml.Node) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out[n.Content[i].Value] = n.Content[i+1]
	}
	return out
}

func decodeValues(n *yaml.Node) ([]any, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a list, got %s", n.Tag)
	}
	out := make([]any, 0, len(n.Content))
	for _, item := range n.Content {
		var v any
		if err := item.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
