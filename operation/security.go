package operation

import (
	"strings"

	"github.com/erraggy/opgen/openapi"
)

// AuthorizationHeader is the header used by HTTP bearer schemes.
const AuthorizationHeader = "Authorization"

// ExtractAuthHeaders returns the header names contributed by the document's
// global security requirements, deduplicated in first-seen order.
func ExtractAuthHeaders(doc *openapi.Document) []string {
	if doc == nil {
		return nil
	}
	headers := collectHeaders(doc.Security, doc)
	names := make([]string, 0, len(headers))
	for _, h := range headers {
		names = append(names, h.HeaderName)
	}
	return names
}

// OperationSecuritySchemes returns the credential headers that apply to op.
// The operation's own security list is used when it declares one, even an
// empty one; otherwise the document's global list applies.
func OperationSecuritySchemes(op *openapi.Operation, doc *openapi.Document) []SecurityHeader {
	if doc == nil {
		return nil
	}
	requirements := doc.Security
	if HasSecurityOverride(op) {
		requirements = op.Security
	}
	return collectHeaders(requirements, doc)
}

// HasSecurityOverride reports whether op declares its own "security" key.
// An explicit empty list counts: it removes authentication for the operation.
func HasSecurityOverride(op *openapi.Operation) bool {
	return op != nil && op.SecurityDeclared
}

// collectHeaders walks the alternatives and the schemes of each alternative
// in declared order. A header is required when its scheme is
// named by every alternative.
func collectHeaders(requirements []openapi.SecurityRequirement, doc *openapi.Document) []SecurityHeader {
	var (
		out   []SecurityHeader
		index = make(map[string]int)
	)
	for _, req := range requirements {
		for _, name := range req.Names() {
			header, kind, ok := schemeHeader(doc.Components.SecuritySchemes[name])
			if !ok {
				continue
			}
			key := strings.ToLower(header)
			if _, seen := index[key]; seen {
				continue
			}
			index[key] = len(out)
			out = append(out, SecurityHeader{
				SchemeName: name,
				HeaderName: header,
				Required:   inEvery(requirements, name),
				Kind:       kind,
			})
		}
	}
	return out
}

// schemeHeader maps a scheme to its header. Only apiKey-in-header and HTTP
// bearer schemes travel in a header the generated client can set.
func schemeHeader(s *openapi.SecurityScheme) (string, HeaderKind, bool) {
	if s == nil {
		return "", "", false
	}
	switch {
	case s.Type == openapi.SchemeTypeAPIKey && s.In == openapi.InHeader && s.Name != "":
		return s.Name, HeaderKindAPIKey, true
	case s.Type == openapi.SchemeTypeHTTP && strings.EqualFold(s.Scheme, openapi.HTTPSchemeBearer):
		return AuthorizationHeader, HeaderKindBearer, true
	default:
		return "", "", false
	}
}

func inEvery(requirements []openapi.SecurityRequirement, name string) bool {
	if len(requirements) == 0 {
		return false
	}
	for _, req := range requirements {
		if !req.Has(name) {
			return false
		}
	}
	return true
}
