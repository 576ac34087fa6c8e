package openapi

import (
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"
)

// JSON Schema type names.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
)

// SchemaNode is a schema position in the document. Exactly one of Ref and
// Inline is set; which one is decided once while decoding.
type SchemaNode struct {
	Ref    string
	Inline *Schema
}

// RefNode returns a node referencing ref.
func RefNode(ref string) *SchemaNode {
	return &SchemaNode{Ref: ref}
}

// InlineNode returns a node wrapping s.
func InlineNode(s *Schema) *SchemaNode {
	return &SchemaNode{Inline: s}
}

// IsRef reports whether the node is a $ref.
func (n *SchemaNode) IsRef() bool {
	return n != nil && n.Ref != ""
}

// UnmarshalYAML decodes either a {$ref: ...} object, an inline schema, or a
// boolean schema (true accepts anything, false nothing).
func (n *SchemaNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			if value.Content[i].Value == "$ref" {
				n.Ref = value.Content[i+1].Value
				return nil
			}
		}
		var s Schema
		if err := value.Decode(&s); err != nil {
			return err
		}
		n.Inline = &s
		return nil
	case yaml.ScalarNode:
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("line %d: schema must be an object or boolean", value.Line)
		}
		n.Inline = &Schema{Never: !b}
		return nil
	default:
		return fmt.Errorf("line %d: schema must be an object or boolean", value.Line)
	}
}

// Schema is an inline JSON Schema restricted to the keywords code generation
// understands. Unknown keywords are ignored.
type Schema struct {
	// Types is the normalized "type" list. A 3.0 "nullable: true" appends "null".
	Types       []string `yaml:"-"`
	Format      string   `yaml:"format,omitempty"`
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Deprecated  bool     `yaml:"deprecated,omitempty"`
	Default     any      `yaml:"default,omitempty"`
	Enum        []any    `yaml:"enum,omitempty"`
	Const       any      `yaml:"const,omitempty"`

	Properties map[string]*SchemaNode `yaml:"properties,omitempty"`
	Required   []string               `yaml:"required,omitempty"`
	// AdditionalProperties is the schema for undeclared properties. When the
	// document uses a boolean instead, AdditionalPropertiesAllowed holds it.
	AdditionalProperties        *SchemaNode `yaml:"-"`
	AdditionalPropertiesAllowed *bool       `yaml:"-"`

	Items *SchemaNode   `yaml:"items,omitempty"`
	AllOf []*SchemaNode `yaml:"allOf,omitempty"`
	AnyOf []*SchemaNode `yaml:"anyOf,omitempty"`
	OneOf []*SchemaNode `yaml:"oneOf,omitempty"`

	Minimum   *float64 `yaml:"minimum,omitempty"`
	Maximum   *float64 `yaml:"maximum,omitempty"`
	MinLength *int     `yaml:"minLength,omitempty"`
	MaxLength *int     `yaml:"maxLength,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	MinItems  *int     `yaml:"minItems,omitempty"`
	MaxItems  *int     `yaml:"maxItems,omitempty"`

	// Never marks the boolean schema false.
	Never bool `yaml:"-"`
}

// UnmarshalYAML normalizes "type" (string or list), folds "nullable" and
// decodes "additionalProperties" in either of its forms.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	type plain Schema
	var raw struct {
		plain                `yaml:",inline"`
		Type                 yaml.Node `yaml:"type"`
		Nullable             bool      `yaml:"nullable"`
		AdditionalProperties yaml.Node `yaml:"additionalProperties"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = Schema(raw.plain)

	switch raw.Type.Kind {
	case 0:
	case yaml.ScalarNode:
		s.Types = []string{raw.Type.Value}
	case yaml.SequenceNode:
		if err := raw.Type.Decode(&s.Types); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: type must be a string or a list of strings", raw.Type.Line)
	}
	if raw.Nullable && !slices.Contains(s.Types, TypeNull) {
		s.Types = append(s.Types, TypeNull)
	}

	switch raw.AdditionalProperties.Kind {
	case 0:
	case yaml.ScalarNode:
		var allowed bool
		if err := raw.AdditionalProperties.Decode(&allowed); err != nil {
			return err
		}
		s.AdditionalPropertiesAllowed = &allowed
	default:
		var node SchemaNode
		if err := raw.AdditionalProperties.Decode(&node); err != nil {
			return err
		}
		s.AdditionalProperties = &node
	}
	return nil
}

// Nullable reports whether "null" is among the schema's types.
func (s *Schema) Nullable() bool {
	return slices.Contains(s.Types, TypeNull)
}

// NonNullTypes returns Types without "null".
func (s *Schema) NonNullTypes() []string {
	out := make([]string, 0, len(s.Types))
	for _, t := range s.Types {
		if t != TypeNull {
			out = append(out, t)
		}
	}
	return out
}

// IsRequired reports whether property name is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}
