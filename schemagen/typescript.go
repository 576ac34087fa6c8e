package schemagen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/openapi"
)

func (c *Compiler) typeExpr(node *openapi.SchemaNode, refs map[string]struct{}) (string, error) {
	if node == nil {
		return "unknown", nil
	}
	if node.IsRef() {
		name, err := c.refName(node.Ref)
		if err != nil {
			return "", err
		}
		refs[name] = struct{}{}
		return name, nil
	}
	s := node.Inline
	if s == nil {
		return "unknown", nil
	}

	code, err := c.baseTypeExpr(s, refs)
	if err != nil {
		return "", err
	}
	if s.Nullable() && code != "null" {
		code = joinTypes([]string{code, "null"}, " | ")
	}
	return code, nil
}

func (c *Compiler) baseTypeExpr(s *openapi.Schema, refs map[string]struct{}) (string, error) {
	switch {
	case s.Never:
		return "never", nil
	case s.Const != nil:
		return literal(s.Const), nil
	case len(s.Enum) > 0:
		parts := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			parts[i] = literal(v)
		}
		return strings.Join(parts, " | "), nil
	case len(s.AllOf) > 0:
		parts, err := c.typeExprs(s.AllOf, refs)
		if err != nil {
			return "", err
		}
		return joinTypes(parts, " & "), nil
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		parts, err := c.typeExprs(append(slices.Clone(s.OneOf), s.AnyOf...), refs)
		if err != nil {
			return "", err
		}
		return joinTypes(parts, " | "), nil
	}

	types := s.NonNullTypes()
	if len(types) == 0 {
		switch {
		case len(s.Properties) > 0 || s.AdditionalProperties != nil:
			types = []string{openapi.TypeObject}
		case s.Items != nil:
			types = []string{openapi.TypeArray}
		case s.Nullable():
			return "null", nil
		default:
			return "unknown", nil
		}
	}

	parts := make([]string, 0, len(types))
	for _, t := range types {
		var code string
		switch t {
		case openapi.TypeString:
			code = "string"
		case openapi.TypeInteger, openapi.TypeNumber:
			code = "number"
		case openapi.TypeBoolean:
			code = "boolean"
		case openapi.TypeNull:
			code = "null"
		case openapi.TypeArray:
			items, err := c.typeExpr(s.Items, refs)
			if err != nil {
				return "", err
			}
			code = fmt.Sprintf("Array<%s>", items)
		case openapi.TypeObject:
			obj, err := c.objectTypeExpr(s, refs)
			if err != nil {
				return "", err
			}
			code = obj
		default:
			code = "unknown"
		}
		parts = append(parts, code)
	}
	return joinTypes(parts, " | "), nil
}

func (c *Compiler) typeExprs(nodes []*openapi.SchemaNode, refs map[string]struct{}) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		code, err := c.typeExpr(n, refs)
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

func (c *Compiler) objectTypeExpr(s *openapi.Schema, refs map[string]struct{}) (string, error) {
	extra := ""
	if s.AdditionalProperties != nil {
		code, err := c.typeExpr(s.AdditionalProperties, refs)
		if err != nil {
			return "", err
		}
		extra = code
	}
	if len(s.Properties) == 0 {
		if extra == "" {
			extra = "unknown"
		}
		return fmt.Sprintf("Record<string, %s>", extra), nil
	}

	var b strings.Builder
	b.WriteString("{ ")
	for _, name := range maputil.SortedKeys(s.Properties) {
		code, err := c.typeExpr(s.Properties[name], refs)
		if err != nil {
			return "", fmt.Errorf("property %s: %w", name, err)
		}
		opt := ""
		if !s.IsRequired(name) {
			opt = "?"
		}
		fmt.Fprintf(&b, "%s%s: %s; ", naming.PropertyKey(name), opt, code)
	}
	if extra != "" {
		fmt.Fprintf(&b, "[key: string]: %s; ", extra)
	}
	b.WriteString("}")
	return b.String(), nil
}

// joinTypes joins type expressions with sep, parenthesizing members that
// themselves contain a top-level union or intersection.
func joinTypes(parts []string, sep string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	wrapped := make([]string, len(parts))
	for i, p := range parts {
		if needsParens(p) {
			p = "(" + p + ")"
		}
		wrapped[i] = p
	}
	return strings.Join(wrapped, sep)
}

func needsParens(expr string) bool {
	depth := 0
	for _, r := range expr {
		switch r {
		case '(', '{', '<', '[':
			depth++
		case ')', '}', '>', ']':
			depth--
		case '|', '&':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
