package operation

import (
	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/openapi"
)

// Options selects the optional behaviors of metadata assembly.
type Options struct {
	// GenerateContentTypeMaps enables request and response content-type maps
	// when a body or status declares more than one media type. When false,
	// only the primary media type is used.
	GenerateContentTypeMaps bool
	// ForceValidation validates every response that has a schema, not only
	// JSON-like ones.
	ForceValidation bool
	// RequestPriority overrides contenttype.DefaultRequestPriority.
	RequestPriority []string
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{GenerateContentTypeMaps: true}
}

// Metadata is everything generation needs to know about one operation.
// It is built once by an Assembler and never modified afterwards.
type Metadata struct {
	OperationID string `json:"operationId"`
	// FunctionName is the exported function identifier (lower camel case).
	FunctionName string `json:"functionName"`
	// OperationName seeds every synthesized type name (upper camel case).
	OperationName string   `json:"operationName"`
	Method        string   `json:"method"`
	Path          string   `json:"path"`
	Summary       string   `json:"summary,omitempty"`
	Description   string   `json:"description,omitempty"`
	Deprecated    bool     `json:"deprecated,omitempty"`
	Tags          []string `json:"tags,omitempty"`

	Parameters ParameterGroups  `json:"parameters"`
	Body       *BodyInfo        `json:"body,omitempty"`
	Responses  ResponseAnalysis `json:"responses"`

	SecurityHeaders []SecurityHeader `json:"securityHeaders"`
	// OverridesSecurity is true when the operation declares its own
	// security, including an explicit empty list.
	OverridesSecurity bool `json:"overridesSecurity"`

	// TypeImports lists the component and inline type names the rendered
	// operation refers to, sorted and deduplicated.
	TypeImports []string `json:"typeImports"`
	// InlineSchemas are the inline schemas that need their own validators,
	// sorted by name.
	InlineSchemas []InlineSchema `json:"inlineSchemas,omitempty"`

	// Issues are non-fatal diagnostics found while assembling.
	Issues []issues.Issue `json:"-"`
}

// InlineSchema is an inline schema registered under a synthesized name.
type InlineSchema struct {
	Name   string              `json:"name"`
	Schema *openapi.SchemaNode `json:"-"`
}

// ParameterGroups partitions an operation's parameters by location. A
// parameter appears in exactly one group; declaration order is kept.
type ParameterGroups struct {
	Path   []Parameter `json:"path"`
	Query  []Parameter `json:"query"`
	Header []Parameter `json:"header"`
}

// Empty reports whether there are no parameters at all.
func (g ParameterGroups) Empty() bool {
	return len(g.Path) == 0 && len(g.Query) == 0 && len(g.Header) == 0
}

// Parameter is one resolved, merged parameter.
type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
	// Type is the TypeScript type expression of the parameter's schema.
	Type   string              `json:"type"`
	Schema *openapi.SchemaNode `json:"-"`
}

// BodyInfo describes the request body.
type BodyInfo struct {
	// TypeName is the type of the primary media type, or "unknown" when it
	// declares no schema.
	TypeName string `json:"typeName"`
	Required bool   `json:"required"`
	// ContentType is the primary media type chosen by priority.
	ContentType string `json:"contentType"`
	// ContentTypes lists all declared media types, sorted.
	ContentTypes []string `json:"contentTypes"`
	// RequestMap maps each media type to its type name. It is nil unless more
	// than one media type is declared and maps are enabled.
	RequestMap map[string]string `json:"requestMap,omitempty"`
}

// HasMap reports whether a request content-type map is synthesized.
func (b *BodyInfo) HasMap() bool {
	return b != nil && len(b.RequestMap) > 1
}

// ParsingStrategy says how a response body is read at call time.
type ParsingStrategy struct {
	// UseValidation parses the body as JSON and checks it against the schema.
	UseValidation bool `json:"useValidation"`
	// RequiresRuntimeContentTypeCheck branches on the Content-Type response
	// header because the status declares JSON and non-JSON media types and a
	// response map is generated.
	RequiresRuntimeContentTypeCheck bool `json:"requiresRuntimeContentTypeCheck"`
}

// ContentVariant is one media type declared for a status.
type ContentVariant struct {
	ContentType string `json:"contentType"`
	// TypeName is empty when the media type has no schema.
	TypeName      string `json:"typeName,omitempty"`
	HasSchema     bool   `json:"hasSchema"`
	JSONLike      bool   `json:"jsonLike"`
	UseValidation bool   `json:"useValidation"`
}

// DataType is the TypeScript type of the body in this variant.
func (v ContentVariant) DataType() string {
	if v.HasSchema {
		return v.TypeName
	}
	return "unknown"
}

// StatusResponse is the analysis of a single numeric status code.
type StatusResponse struct {
	StatusCode int `json:"statusCode"`
	// ContentType is the primary media type, empty for a body-less response.
	ContentType string `json:"contentType,omitempty"`
	// TypeName is the type of the primary media type, empty without a schema.
	TypeName  string          `json:"typeName,omitempty"`
	HasSchema bool            `json:"hasSchema"`
	Strategy  ParsingStrategy `json:"strategy"`
	// DataType is the second argument of the union member.
	DataType string `json:"dataType"`
	// Variants lists every declared media type, primary first. A single
	// entry unless a response map is generated.
	Variants []ContentVariant `json:"variants,omitempty"`
}

// HasContent reports whether the response declares any media type.
func (s StatusResponse) HasContent() bool {
	return s.ContentType != ""
}

// Primary returns the variant for ContentType.
func (s StatusResponse) Primary() (ContentVariant, bool) {
	if len(s.Variants) == 0 {
		return ContentVariant{}, false
	}
	return s.Variants[0], true
}

// ResponseAnalysis is the ordered analysis of an operation's responses.
type ResponseAnalysis struct {
	// Statuses is sorted by ascending numeric status code.
	Statuses []StatusResponse `json:"statuses"`
	// ResponseMap maps status, then media type, to a type name. It is nil
	// unless some status declares more than one media type and maps are
	// enabled.
	ResponseMap map[int]map[string]string `json:"responseMap,omitempty"`
	// Union is the discriminated union return type.
	Union string `json:"union"`
}

// HasMap reports whether a response content-type map is synthesized.
func (r ResponseAnalysis) HasMap() bool {
	return len(r.ResponseMap) > 0
}

// ContentTypes returns every media type declared across all statuses, sorted.
func (r ResponseAnalysis) ContentTypes() []string {
	seen := make(map[string]bool)
	for _, s := range r.Statuses {
		for _, v := range s.Variants {
			seen[v.ContentType] = true
		}
	}
	return sortedSet(seen)
}

// HeaderKind is how a credential is placed in its header.
type HeaderKind string

const (
	// HeaderKindAPIKey sends the credential as the raw header value.
	HeaderKindAPIKey HeaderKind = "apiKey"
	// HeaderKindBearer sends "Bearer <token>" in Authorization.
	HeaderKindBearer HeaderKind = "bearer"
)

// SecurityHeader is a credential header an operation may send.
type SecurityHeader struct {
	SchemeName string     `json:"schemeName"`
	HeaderName string     `json:"headerName"`
	Required   bool       `json:"required"`
	Kind       HeaderKind `json:"kind"`
}
