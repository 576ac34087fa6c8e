// Package pathutil holds the JSON reference prefixes opgen understands and
// helpers for safe output paths.
package pathutil

import "strings"

// OAS 2.0 reference prefixes. They are recognized only to report them as
// unsupported.
const (
	RefPrefixDefinitions = "#/definitions/"
	RefPrefixParameters  = "#/parameters/"
)

// OAS 3.x reference prefixes
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters3     = "#/components/parameters/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixResponses3      = "#/components/responses/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// ParameterRef builds "#/components/parameters/{name}".
func ParameterRef(name string) string {
	return RefPrefixParameters3 + name
}

// ComponentName returns the component name addressed by ref when ref starts
// with prefix and names exactly one component, decoding JSON Pointer escapes
// ("~1" is "/", "~0" is "~").
func ComponentName(ref, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(ref, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	rest = strings.ReplaceAll(rest, "~1", "/")
	rest = strings.ReplaceAll(rest, "~0", "~")
	return rest, true
}

// IsLocal reports whether ref points into the current document.
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}
