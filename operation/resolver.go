package operation

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/internal/pathutil"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
	"github.com/erraggy/opgen/schemagen"
)

// NameContext identifies where an inline schema sits, which determines the
// name synthesized for it.
type NameContext struct {
	// OperationName is the upper camel case operation name.
	OperationName string
	// StatusCode is the response status, or 0 for the request body.
	StatusCode int
	// MediaSuffix distinguishes several inline schemas of one body or status.
	MediaSuffix string
}

// RequestContext returns the context for an operation's request body.
func RequestContext(operationName string) NameContext {
	return NameContext{OperationName: operationName}
}

// ResponseContext returns the context for one response status.
func ResponseContext(operationName string, status int) NameContext {
	return NameContext{OperationName: operationName, StatusCode: status}
}

// InlineName is the synthesized type name:
// {OperationName}Request or {OperationName}{StatusCode}Response, followed by
// MediaSuffix when set.
func (c NameContext) InlineName() string {
	if c.StatusCode == 0 {
		return c.OperationName + "Request" + c.MediaSuffix
	}
	return fmt.Sprintf("%s%dResponse%s", c.OperationName, c.StatusCode, c.MediaSuffix)
}

// Location names the document field the context refers to, for errors.
func (c NameContext) Location() string {
	if c.StatusCode == 0 {
		return "requestBody"
	}
	return fmt.Sprintf("responses.%d", c.StatusCode)
}

// TypeResolution is the outcome of resolving a schema to a type name.
type TypeResolution struct {
	TypeName string
	// Imports holds the type names the caller must import for TypeName.
	Imports []string
	// Inline is set when the schema is inline and was registered under TypeName.
	Inline *InlineSchema
}

// ResolveTypeName resolves a schema position to a type name. A reference to
// "#/components/schemas/X" resolves to the sanitized X and must name a schema
// doc declares; any other reference is an UnsupportedReferenceError. An
// inline schema gets the name from ctx and is returned for separate
// validator generation.
func ResolveTypeName(node *openapi.SchemaNode, doc *openapi.Document, ctx NameContext) (TypeResolution, error) {
	if node == nil {
		return TypeResolution{}, nil
	}
	if node.IsRef() {
		name, ok := pathutil.ComponentName(node.Ref, pathutil.RefPrefixSchemas)
		if !ok {
			return TypeResolution{}, &oaserrors.UnsupportedReferenceError{
				Ref:      node.Ref,
				Location: ctx.Location(),
				Expected: pathutil.RefPrefixSchemas,
			}
		}
		if !schemaDeclared(doc, node.Ref) {
			return TypeResolution{}, &oaserrors.MissingReferenceError{Ref: node.Ref, Location: ctx.Location()}
		}
		typeName := naming.SanitizeIdentifier(name)
		return TypeResolution{TypeName: typeName, Imports: []string{typeName}}, nil
	}

	// Nested references must be nameable too, otherwise validator
	// generation fails later without an operation to blame.
	if _, err := compilerFor(doc).Compile(node); err != nil {
		return TypeResolution{}, fmt.Errorf("%s: %w", ctx.Location(), err)
	}
	typeName := ctx.InlineName()
	return TypeResolution{
		TypeName: typeName,
		Imports:  []string{typeName},
		Inline:   &InlineSchema{Name: typeName, Schema: node},
	}, nil
}

// compilerFor returns a compiler that rejects references to component
// schemas doc does not declare.
func compilerFor(doc *openapi.Document) *schemagen.Compiler {
	return &schemagen.Compiler{Defined: func(ref string) bool { return schemaDeclared(doc, ref) }}
}

func schemaDeclared(doc *openapi.Document, ref string) bool {
	name, ok := pathutil.ComponentName(ref, pathutil.RefPrefixSchemas)
	if !ok || doc == nil {
		return false
	}
	_, found := doc.Components.Schemas[name]
	return found
}

// mergeImports folds import lists into one sorted, deduplicated list.
func mergeImports(lists ...[]string) []string {
	seen := make(map[string]bool)
	for _, l := range lists {
		for _, name := range l {
			seen[name] = true
		}
	}
	return sortedSet(seen)
}

func sortedSet(set map[string]bool) []string {
	return maputil.SortedKeys(set)
}

// contentNames assigns a NameContext to every media type of one body or
// status: the primary media type is visited first, then the rest in sorted
// order, and every inline schema after the first gets a media type suffix.
// The suffix is the subtype, widened to type and subtype and then numbered
// until the synthesized name is unique.
func contentNames(content map[string]*openapi.MediaType, primary string, base NameContext) map[string]NameContext {
	order := make([]string, 0, len(content))
	if _, ok := content[primary]; ok {
		order = append(order, primary)
	}
	for _, ct := range maputil.SortedKeys(content) {
		if ct != primary {
			order = append(order, ct)
		}
	}

	out := make(map[string]NameContext, len(order))
	used := make(map[string]bool)
	for _, ct := range order {
		ctx := base
		mt := content[ct]
		if mt != nil && mt.Schema != nil && !mt.Schema.IsRef() {
			if len(used) > 0 {
				ctx.MediaSuffix = uniqueSuffix(ctx, ct, used)
			}
			used[ctx.InlineName()] = true
		}
		out[ct] = ctx
	}
	return out
}

func uniqueSuffix(ctx NameContext, mediaType string, used map[string]bool) string {
	free := func(suffix string) bool {
		ctx.MediaSuffix = suffix
		return suffix != "" && !used[ctx.InlineName()]
	}
	if s := naming.MediaTypeSuffix(mediaType); free(s) {
		return s
	}
	full := naming.MediaTypeFullSuffix(mediaType)
	if free(full) {
		return full
	}
	if full == "" {
		full = "Media"
	}
	for n := 2; ; n++ {
		if s := full + strconv.Itoa(n); free(s) {
			return s
		}
	}
}

// variantOrder returns the media types primary first, then sorted.
func variantOrder(all []string, primary string) []string {
	out := make([]string, 0, len(all))
	if slices.Contains(all, primary) {
		out = append(out, primary)
	}
	for _, ct := range all {
		if ct != primary {
			out = append(out, ct)
		}
	}
	return out
}

func mediaSchema(mt *openapi.MediaType) *openapi.SchemaNode {
	if mt == nil {
		return nil
	}
	return mt.Schema
}
