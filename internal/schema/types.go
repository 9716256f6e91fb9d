// Package schema models rule option schemas and expands them into every
// valid candidate configuration.
//
// Only a fixed vocabulary is understood: enumerations of literal values and
// objects whose properties are enumerations or booleans. Any other shape,
// alternations (oneOf/anyOf) included, is carried as Unsupported and skipped
// during expansion.
package schema

import "sort"

// Option is one positional option descriptor. The concrete type is one of
// EnumOption, ObjectOption or Unsupported.
type Option interface {
	isOption()
}

type EnumOption struct {
	Values []any
}

type ObjectOption struct {
	Properties []Property // declaration order
}

type Unsupported struct {
	Keyword string
}

func (EnumOption) isOption()   {}
func (ObjectOption) isOption() {}
func (Unsupported) isOption()  {}

type PropertyKind int

const (
	PropertyUnsupported PropertyKind = iota
	PropertyEnum
	PropertyBoolean
)

type Property struct {
	Name   string
	Kind   PropertyKind
	Values []any // PropertyEnum only
}

// values returns the enumerable values of p, or nil when it has none.
func (p Property) values() []any {
	switch p.Kind {
	case PropertyEnum:
		return p.Values
	case PropertyBoolean:
		return []any{true, false}
	}
	return nil
}

func Enum(values ...any) EnumOption { return EnumOption{Values: values} }

func Object(props ...Property) ObjectOption { return ObjectOption{Properties: props} }

func EnumProperty(name string, values ...any) Property {
	return Property{Name: name, Kind: PropertyEnum, Values: values}
}

func BoolProperty(name string) Property {
	return Property{Name: name, Kind: PropertyBoolean}
}

// Descriptor is the schema of one rule.
type Descriptor struct {
	Summary    string
	Deprecated bool
	Options    []Option
}

// Catalogue maps rule ids to their descriptors.
type Catalogue map[string]Descriptor

// IDs returns rule ids in lexical order.
func (c Catalogue) IDs() []string {
	out := make([]string, 0, len(c))
	for id := range c {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Merge returns a new catalogue with every entry of other replacing c's.
func (c Catalogue) Merge(other Catalogue) Catalogue {
	out := make(Catalogue, len(c)+len(other))
	for id, d := range c {
		out[id] = d
	}
	for id, d := range other {
		out[id] = d
	}
	return out
}

// Describe renders options back into their JSON-schema-like shape.
func Describe(opts []Option) []any {
	out := make([]any, 0, len(opts))
	for _, opt := range opts {
		switch o := opt.(type) {
		case EnumOption:
			out = append(out, map[string]any{"enum": o.Values})
		case ObjectOption:
			props := map[string]any{}
			for _, p := range o.Properties {
				switch p.Kind {
				case PropertyEnum:
					props[p.Name] = map[string]any{"enum": p.Values}
				case PropertyBoolean:
					props[p.Name] = map[string]any{"type": "boolean"}
				default:
					props[p.Name] = map[string]any{}
				}
			}
			out = append(out, map[string]any{"type": "object", "properties": props})
		case Unsupported:
			out = append(out, map[string]any{o.Keyword: "unsupported"})
		}
	}
	return out
}
