// Package contenttype classifies media types and picks the primary content
// type of a request body or response.
package contenttype

import (
	"slices"
	"strings"
)

// Well-known media types.
const (
	JSON           = "application/json"
	ProblemJSON    = "application/problem+json"
	FormURLEncoded = "application/x-www-form-urlencoded"
	MultipartForm  = "multipart/form-data"
	TextPlain      = "text/plain"
	XML            = "application/xml"
	OctetStream    = "application/octet-stream"
)

// DefaultRequestPriority is the request body selection order. The first
// declared media type found in this list wins.
var DefaultRequestPriority = []string{
	JSON,
	FormURLEncoded,
	MultipartForm,
	TextPlain,
	XML,
	OctetStream,
}

// Analysis summarizes the media types declared by one body or response.
type Analysis struct {
	// All lists the declared media types in ascending order.
	All []string
	// Declared lists the media types in the order the document declares them.
	Declared []string
	// HasJSONLike is true when at least one media type is JSON-like.
	HasJSONLike bool
	// HasNonJSON is true when at least one media type is not JSON-like.
	HasNonJSON bool
	// HasMixed is true when both JSON-like and other media types are declared.
	HasMixed bool
}

// NeedsMap reports whether more than one media type is declared, which is
// the only case where a content-type map is synthesized.
func (a Analysis) NeedsMap() bool {
	return len(a.All) > 1
}

// Analyze classifies the media types of a content map, given in declared order.
func Analyze(declared []string) Analysis {
	a := Analysis{
		All:      sortedCopy(declared),
		Declared: slices.Clone(declared),
	}
	for _, ct := range a.All {
		if IsJSONLike(ct) {
			a.HasJSONLike = true
		} else {
			a.HasNonJSON = true
		}
	}
	a.HasMixed = a.HasJSONLike && a.HasNonJSON
	return a
}

// Essence returns the lower-cased media type without parameters.
// Example: "Application/JSON; charset=utf-8" -> "application/json"
func Essence(mediaType string) string {
	mt, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// IsJSONLike reports whether a media type carries JSON: it contains "json"
// or has a "+json" structured syntax suffix.
func IsJSONLike(mediaType string) bool {
	return strings.Contains(Essence(mediaType), "json")
}

// IsText reports whether a media type is best read as text rather than bytes.
func IsText(mediaType string) bool {
	e := Essence(mediaType)
	return strings.HasPrefix(e, "text/") || strings.HasSuffix(e, "xml") || e == FormURLEncoded
}

// SelectRequest picks the primary request media type using priority, or
// [DefaultRequestPriority] when priority is empty. contentTypes is in declared
// order; when nothing matches, the first declared media type wins. Returns ""
// for no media types.
func SelectRequest(contentTypes []string, priority []string) string {
	if len(contentTypes) == 0 {
		return ""
	}
	if len(priority) == 0 {
		priority = DefaultRequestPriority
	}
	for _, want := range priority {
		if ct, ok := findEssence(contentTypes, want); ok {
			return ct
		}
	}
	return contentTypes[0]
}

// SelectResponse picks the primary response media type: application/json,
// then application/problem+json, then the first declared +json type, then the
// first declared media type. Returns "" for no media types.
func SelectResponse(contentTypes []string) string {
	if len(contentTypes) == 0 {
		return ""
	}
	for _, want := range []string{JSON, ProblemJSON} {
		if ct, ok := findEssence(contentTypes, want); ok {
			return ct
		}
	}
	for _, ct := range contentTypes {
		if strings.HasSuffix(Essence(ct), "+json") {
			return ct
		}
	}
	return contentTypes[0]
}

func findEssence(contentTypes []string, want string) (string, bool) {
	for _, ct := range contentTypes {
		if Essence(ct) == want {
			return ct, true
		}
	}
	return "", false
}

func sortedCopy(contentTypes []string) []string {
	out := slices.Clone(contentTypes)
	slices.Sort(out)
	return out
}
