package render

import (
	"fmt"

	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/operation"
)

// Generics returns the type parameter declarations of the function. The only
// type parameter selects the request media type and exists only when a
// request content-type map was synthesized; a single media type never
// produces one.
func Generics(md *operation.Metadata) []string {
	if !md.Body.HasMap() {
		return nil
	}
	return []string{fmt.Sprintf("%s extends keyof %s = %s",
		RequestContentTypeParam, RequestMapName(md), naming.Quote(md.Body.ContentType))}
}

// genericArgs returns the type arguments matching Generics, e.g.
// "<TRequestContentType>", or "".
func genericArgs(md *operation.Metadata) string {
	if !md.Body.HasMap() {
		return ""
	}
	return "<" + RequestContentTypeParam + ">"
}
