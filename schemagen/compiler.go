// Package schemagen compiles OpenAPI schemas into zod validator expressions
// and TypeScript type expressions.
//
// Only references to "#/components/schemas/" are supported. In validators
// they compile to the component's validator constant ("UserSchema"), in type
// expressions to the sanitized component name ("User"); the caller must have
// declared both.
package schemagen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/internal/pathutil"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

// Result is a compiled expression and the component type names it refers to.
type Result struct {
	// Code is the emitted expression.
	Code string
	// TypeReferences lists referenced component names, sorted and deduplicated.
	TypeReferences []string
}

// Compiler turns schema nodes into code. The zero value is ready to use.
type Compiler struct {
	// Lazy reports whether a reference to the named component must be
	// deferred with z.lazy, which is needed for components in a cycle.
	Lazy func(name string) bool
	// Defined, when set, reports whether the target of a component schema
	// reference exists. A reference it rejects fails with a
	// MissingReferenceError.
	Defined func(ref string) bool
}

// New returns a Compiler with no lazy references.
func New() *Compiler {
	return &Compiler{}
}

// Compile returns the zod validator expression for node.
func (c *Compiler) Compile(node *openapi.SchemaNode) (Result, error) {
	refs := make(map[string]struct{})
	code, err := c.validator(node, refs)
	if err != nil {
		return Result{}, err
	}
	return Result{Code: code, TypeReferences: maputil.SortedKeys(refs)}, nil
}

// TypeExpr returns the TypeScript type expression for node.
func (c *Compiler) TypeExpr(node *openapi.SchemaNode) (Result, error) {
	refs := make(map[string]struct{})
	code, err := c.typeExpr(node, refs)
	if err != nil {
		return Result{}, err
	}
	return Result{Code: code, TypeReferences: maputil.SortedKeys(refs)}, nil
}

// RefName returns the sanitized component name for a schema reference, or an
// UnsupportedReferenceError when ref does not point at a component schema.
func RefName(ref string) (string, error) {
	name, ok := pathutil.ComponentName(ref, pathutil.RefPrefixSchemas)
	if !ok {
		return "", &oaserrors.UnsupportedReferenceError{Ref: ref, Expected: pathutil.RefPrefixSchemas}
	}
	return naming.SanitizeIdentifier(name), nil
}

func (c *Compiler) refName(ref string) (string, error) {
	name, err := RefName(ref)
	if err != nil {
		return "", err
	}
	if c.Defined != nil && !c.Defined(ref) {
		return "", &oaserrors.MissingReferenceError{Ref: ref}
	}
	return name, nil
}

func (c *Compiler) validator(node *openapi.SchemaNode, refs map[string]struct{}) (string, error) {
	if node == nil {
		return "z.unknown()", nil
	}
	if node.IsRef() {
		name, err := c.refName(node.Ref)
		if err != nil {
			return "", err
		}
		refs[name] = struct{}{}
		if c.Lazy != nil && c.Lazy(name) {
			return fmt.Sprintf("z.lazy(() => %s)", naming.ValidatorName(name)), nil
		}
		return naming.ValidatorName(name), nil
	}

	s := node.Inline
	if s == nil {
		return "z.unknown()", nil
	}
	code, err := c.baseValidator(s, refs)
	if err != nil {
		return "", err
	}
	if s.Nullable() && code != "z.null()" {
		code += ".nullable()"
	}
	return code, nil
}

func (c *Compiler) baseValidator(s *openapi.Schema, refs map[string]struct{}) (string, error) {
	switch {
	case s.Never:
		return "z.never()", nil
	case s.Const != nil:
		return fmt.Sprintf("z.literal(%s)", literal(s.Const)), nil
	case len(s.Enum) > 0:
		return enumValidator(s.Enum), nil
	case len(s.AllOf) > 0:
		parts, err := c.validators(s.AllOf, refs)
		if err != nil {
			return "", err
		}
		code := parts[0]
		for _, p := range parts[1:] {
			code = fmt.Sprintf("z.intersection(%s, %s)", code, p)
		}
		return code, nil
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		parts, err := c.validators(append(slices.Clone(s.OneOf), s.AnyOf...), refs)
		if err != nil {
			return "", err
		}
		return union(parts), nil
	}

	types := s.NonNullTypes()
	if len(types) == 0 {
		switch {
		case len(s.Properties) > 0 || s.AdditionalProperties != nil:
			types = []string{openapi.TypeObject}
		case s.Items != nil:
			types = []string{openapi.TypeArray}
		case s.Nullable():
			return "z.null()", nil
		default:
			return "z.unknown()", nil
		}
	}

	parts := make([]string, 0, len(types))
	for _, t := range types {
		code, err := c.typedValidator(t, s, refs)
		if err != nil {
			return "", err
		}
		parts = append(parts, code)
	}
	return union(parts), nil
}

func (c *Compiler) validators(nodes []*openapi.SchemaNode, refs map[string]struct{}) ([]string, error) {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		code, err := c.validator(n, refs)
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

func (c *Compiler) typedValidator(typ string, s *openapi.Schema, refs map[string]struct{}) (string, error) {
	var b strings.Builder
	switch typ {
	case openapi.TypeString:
		b.WriteString("z.string()")
		switch s.Format {
		case "date-time":
			b.WriteString(".datetime()")
		case "email":
			b.WriteString(".email()")
		case "uuid":
			b.WriteString(".uuid()")
		case "uri", "url":
			b.WriteString(".url()")
		}
		writeIntBound(&b, "min", s.MinLength)
		writeIntBound(&b, "max", s.MaxLength)
		if s.Pattern != "" {
			fmt.Fprintf(&b, ".regex(new RegExp(%s))", naming.Quote(s.Pattern))
		}
	case openapi.TypeInteger, openapi.TypeNumber:
		b.WriteString("z.number()")
		if typ == openapi.TypeInteger {
			b.WriteString(".int()")
		}
		writeFloatBound(&b, "min", s.Minimum)
		writeFloatBound(&b, "max", s.Maximum)
	case openapi.TypeBoolean:
		b.WriteString("z.boolean()")
	case openapi.TypeNull:
		b.WriteString("z.null()")
	case openapi.TypeArray:
		items, err := c.validator(s.Items, refs)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "z.array(%s)", items)
		writeIntBound(&b, "min", s.MinItems)
		writeIntBound(&b, "max", s.MaxItems)
	case openapi.TypeObject:
		code, err := c.objectValidator(s, refs)
		if err != nil {
			return "", err
		}
		b.WriteString(code)
	default:
		b.WriteString("z.unknown()")
	}
	return b.String(), nil
}

func (c *Compiler) objectValidator(s *openapi.Schema, refs map[string]struct{}) (string, error) {
	var extra string
	if s.AdditionalProperties != nil {
		code, err := c.validator(s.AdditionalProperties, refs)
		if err != nil {
			return "", err
		}
		extra = code
	}

	if len(s.Properties) == 0 {
		switch {
		case extra != "":
			return fmt.Sprintf("z.record(z.string(), %s)", extra), nil
		case s.AdditionalPropertiesAllowed != nil && !*s.AdditionalPropertiesAllowed:
			return "z.object({}).strict()", nil
		default:
			return "z.record(z.string(), z.unknown())", nil
		}
	}

	var b strings.Builder
	b.WriteString("z.object({ ")
	for i, name := range maputil.SortedKeys(s.Properties) {
		code, err := c.validator(s.Properties[name], refs)
		if err != nil {
			return "", fmt.Errorf("property %s: %w", name, err)
		}
		if !s.IsRequired(name) {
			code += ".optional()"
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", naming.PropertyKey(name), code)
	}
	b.WriteString(" })")

	switch {
	case extra != "":
		fmt.Fprintf(&b, ".catchall(%s)", extra)
	case s.AdditionalPropertiesAllowed != nil && !*s.AdditionalPropertiesAllowed:
		b.WriteString(".strict()")
	}
	return b.String(), nil
}

func enumValidator(values []any) string {
	allStrings := true
	for _, v := range values {
		if _, ok := v.(string); !ok {
			allStrings = false
			break
		}
	}
	if allStrings {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = naming.Quote(v.(string))
		}
		return fmt.Sprintf("z.enum([%s])", strings.Join(quoted, ", "))
	}
	parts := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			parts[i] = "z.null()"
			continue
		}
		parts[i] = fmt.Sprintf("z.literal(%s)", literal(v))
	}
	return union(parts)
}

func union(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return fmt.Sprintf("z.union([%s])", strings.Join(parts, ", "))
}

func writeIntBound(b *strings.Builder, method string, v *int) {
	if v != nil {
		fmt.Fprintf(b, ".%s(%d)", method, *v)
	}
}

func writeFloatBound(b *strings.Builder, method string, v *float64) {
	if v != nil {
		fmt.Fprintf(b, ".%s(%s)", method, strconv.FormatFloat(*v, 'g', -1, 64))
	}
}

// literal renders a decoded YAML scalar as a TypeScript literal.
func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return naming.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return naming.Quote(fmt.Sprint(x))
	}
}
