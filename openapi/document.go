package openapi

import (
	"fmt"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/opgen/internal/maputil"
)

// HTTP methods in the order operations are visited within a path item.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists the HTTP methods a path item can declare, in visiting order.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// Parameter locations.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InCookie = "cookie"
)

// Document is a normalized OpenAPI 3.x document.
type Document struct {
	OpenAPI    string                `yaml:"openapi"`
	Info       Info                  `yaml:"info"`
	Servers    []Server              `yaml:"servers,omitempty"`
	Paths      map[string]*PathItem  `yaml:"paths,omitempty"`
	Components Components            `yaml:"components,omitempty"`
	Security   []SecurityRequirement `yaml:"security,omitempty"`
}

// Info holds the document metadata used in generated file headers.
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// Server is a base URL the API is served from.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description,omitempty"`
}

// Components holds the reusable objects operations may reference.
type Components struct {
	Schemas         map[string]*SchemaNode     `yaml:"schemas,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty"`
	RequestBodies   map[string]*RequestBody    `yaml:"requestBodies,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty"`
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Summary     string       `yaml:"summary,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty"`
	Get         *Operation   `yaml:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty"`
}

// MethodOperation pairs an operation with the lower-case method it is declared under.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operation returns the operation declared for method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	switch strings.ToLower(method) {
	case MethodGet:
		return p.Get
	case MethodPut:
		return p.Put
	case MethodPost:
		return p.Post
	case MethodDelete:
		return p.Delete
	case MethodOptions:
		return p.Options
	case MethodHead:
		return p.Head
	case MethodPatch:
		return p.Patch
	case MethodTrace:
		return p.Trace
	default:
		return nil
	}
}

// Operations returns the declared operations in [Methods] order.
func (p *PathItem) Operations() []MethodOperation {
	if p == nil {
		return nil
	}
	var ops []MethodOperation
	for _, m := range Methods {
		if op := p.Operation(m); op != nil {
			ops = append(ops, MethodOperation{Method: m, Operation: op})
		}
	}
	return ops
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string                `yaml:"operationId,omitempty"`
	Summary     string                `yaml:"summary,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Tags        []string              `yaml:"tags,omitempty"`
	Deprecated  bool                  `yaml:"deprecated,omitempty"`
	Parameters  []*Parameter          `yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `yaml:"requestBody,omitempty"`
	Responses   map[string]*Response  `yaml:"responses,omitempty"`
	Security    []SecurityRequirement `yaml:"security,omitempty"`

	// SecurityDeclared is true when the operation object had a "security"
	// key, even an empty list. Set by UnmarshalYAML.
	SecurityDeclared bool `yaml:"-"`
}

// UnmarshalYAML records whether the "security" key is present before decoding
// the operation normally.
func (o *Operation) UnmarshalYAML(value *yaml.Node) error {
	type plain Operation
	if err := value.Decode((*plain)(o)); err != nil {
		return err
	}
	o.SecurityDeclared = hasKey(value, "security")
	return nil
}

// Parameter describes a single operation parameter. When Ref is set the other
// fields are empty and the parameter must be resolved against
// Components.Parameters.
type Parameter struct {
	Ref         string      `yaml:"$ref,omitempty"`
	Name        string      `yaml:"name,omitempty"`
	In          string      `yaml:"in,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Required    bool        `yaml:"required,omitempty"`
	Deprecated  bool        `yaml:"deprecated,omitempty"`
	Schema      *SchemaNode `yaml:"schema,omitempty"`
}

// RequestBody describes the body accepted by an operation.
type RequestBody struct {
	Ref         string                `yaml:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Required    bool                  `yaml:"required,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`

	// ContentOrder lists the content keys as declared. Set by UnmarshalYAML.
	ContentOrder []string `yaml:"-"`
}

// UnmarshalYAML decodes the body and records the declared content order.
func (rb *RequestBody) UnmarshalYAML(value *yaml.Node) error {
	type plain RequestBody
	if err := value.Decode((*plain)(rb)); err != nil {
		return err
	}
	rb.ContentOrder = mappingKeys(child(value, "content"))
	return nil
}

// ContentTypes returns the content keys in declared order. Keys missing from
// ContentOrder, as in documents built in code, follow in ascending order.
func (rb *RequestBody) ContentTypes() []string {
	return declaredKeys(rb.ContentOrder, rb.Content)
}

// Response describes a single response of an operation.
type Response struct {
	Ref         string                `yaml:"$ref,omitempty"`
	Description string                `yaml:"description,omitempty"`
	Content     map[string]*MediaType `yaml:"content,omitempty"`

	// ContentOrder lists the content keys as declared. Set by UnmarshalYAML.
	ContentOrder []string `yaml:"-"`
}

// UnmarshalYAML decodes the response and records the declared content order.
func (r *Response) UnmarshalYAML(value *yaml.Node) error {
	type plain Response
	if err := value.Decode((*plain)(r)); err != nil {
		return err
	}
	r.ContentOrder = mappingKeys(child(value, "content"))
	return nil
}

// ContentTypes returns the content keys in declared order. Keys missing from
// ContentOrder follow in ascending order.
func (r *Response) ContentTypes() []string {
	return declaredKeys(r.ContentOrder, r.Content)
}

// MediaType carries the schema for one content type.
type MediaType struct {
	Schema *SchemaNode `yaml:"schema,omitempty"`
}

// Security scheme types and HTTP auth schemes used by header extraction.
const (
	SchemeTypeAPIKey        = "apiKey"
	SchemeTypeHTTP          = "http"
	SchemeTypeOAuth2        = "oauth2"
	SchemeTypeOpenIDConnect = "openIdConnect"
	HTTPSchemeBearer        = "bearer"
	HTTPSchemeBasic         = "basic"
)

// SecurityScheme defines an authentication mechanism.
type SecurityScheme struct {
	Type         string `yaml:"type"`
	Description  string `yaml:"description,omitempty"`
	Name         string `yaml:"name,omitempty"`
	In           string `yaml:"in,omitempty"`
	Scheme       string `yaml:"scheme,omitempty"`
	BearerFormat string `yaml:"bearerFormat,omitempty"`
}

// SecurityRequirement lists the schemes that apply together, in the order
// the document declares them. A list of requirements are alternatives.
type SecurityRequirement []SchemeScopes

// SchemeScopes names one scheme of a requirement and the scopes it needs.
type SchemeScopes struct {
	Name   string
	Scopes []string
}

// UnmarshalYAML decodes the requirement mapping, keeping key order.
func (r *SecurityRequirement) UnmarshalYAML(value *yaml.Node) error {
	value = unalias(value)
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("security requirement: expected a mapping at line %d", value.Line)
	}
	out := make(SecurityRequirement, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var scopes []string
		if err := value.Content[i+1].Decode(&scopes); err != nil {
			return err
		}
		out = append(out, SchemeScopes{Name: value.Content[i].Value, Scopes: scopes})
	}
	*r = out
	return nil
}

// Requires returns a requirement naming schemes without scopes.
func Requires(names ...string) SecurityRequirement {
	out := make(SecurityRequirement, len(names))
	for i, name := range names {
		out[i] = SchemeScopes{Name: name}
	}
	return out
}

// Has reports whether the requirement names the scheme.
func (r SecurityRequirement) Has(name string) bool {
	return slices.ContainsFunc(r, func(s SchemeScopes) bool { return s.Name == name })
}

// Names returns the scheme names in declared order.
func (r SecurityRequirement) Names() []string {
	out := make([]string, len(r))
	for i, s := range r {
		out[i] = s.Name
	}
	return out
}

// SortedPaths returns the path templates in ascending order.
func (d *Document) SortedPaths() []string {
	return maputil.SortedKeys(d.Paths)
}

// OperationCount returns the number of operations declared in the document.
func (d *Document) OperationCount() int {
	n := 0
	for _, item := range d.Paths {
		n += len(item.Operations())
	}
	return n
}

// hasKey reports whether a mapping node declares key.
func hasKey(node *yaml.Node, key string) bool {
	return child(node, key) != nil
}

// child returns the value node of key in a mapping node, or nil.
func child(node *yaml.Node, key string) *yaml.Node {
	node = unalias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// mappingKeys returns the keys of a mapping node in document order.
func mappingKeys(node *yaml.Node) []string {
	node = unalias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

func unalias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func declaredKeys[V any](order []string, m map[string]V) []string {
	out := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range maputil.SortedKeys(m) {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}
