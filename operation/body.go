package operation

import (
	"fmt"

	"github.com/erraggy/opgen/internal/contenttype"
	"github.com/erraggy/opgen/internal/pathutil"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

// BodyResult is the outcome of AnalyzeRequestBody.
type BodyResult struct {
	// Body is nil when the operation has no request body or it declares no
	// media types.
	Body    *BodyInfo
	Imports []string
	Inline  []InlineSchema
}

// AnalyzeRequestBody resolves the request body's media types to type names,
// picks the primary media type and, when more than one is declared and maps
// are enabled, builds the request content-type map.
func AnalyzeRequestBody(rb *openapi.RequestBody, operationName string, doc *openapi.Document, opts Options) (BodyResult, error) {
	rb, err := resolveRequestBody(rb, doc)
	if err != nil {
		return BodyResult{}, err
	}
	if rb == nil || len(rb.Content) == 0 {
		return BodyResult{}, nil
	}

	analysis := contenttype.Analyze(rb.ContentTypes())
	primary := contenttype.SelectRequest(analysis.Declared, opts.RequestPriority)
	useMap := opts.GenerateContentTypeMaps && analysis.NeedsMap()

	names := contentNames(rb.Content, primary, RequestContext(operationName))
	types := make(map[string]string, len(analysis.All))
	var (
		result  BodyResult
		imports [][]string
	)
	for _, ct := range variantOrder(analysis.All, primary) {
		if ct != primary && !useMap {
			continue
		}
		res, err := ResolveTypeName(mediaSchema(rb.Content[ct]), doc, names[ct])
		if err != nil {
			return BodyResult{}, err
		}
		typeName := res.TypeName
		if typeName == "" {
			typeName = "unknown"
		}
		types[ct] = typeName
		imports = append(imports, res.Imports)
		if res.Inline != nil {
			result.Inline = append(result.Inline, *res.Inline)
		}
	}

	result.Body = &BodyInfo{
		TypeName:     types[primary],
		Required:     rb.Required,
		ContentType:  primary,
		ContentTypes: analysis.All,
	}
	if useMap {
		result.Body.RequestMap = types
	}
	result.Imports = mergeImports(imports...)
	return result, nil
}

func resolveRequestBody(rb *openapi.RequestBody, doc *openapi.Document) (*openapi.RequestBody, error) {
	if rb == nil || rb.Ref == "" {
		return rb, nil
	}
	name, ok := pathutil.ComponentName(rb.Ref, pathutil.RefPrefixRequestBodies)
	if !ok {
		return nil, &oaserrors.UnsupportedReferenceError{
			Ref:      rb.Ref,
			Location: "requestBody",
			Expected: pathutil.RefPrefixRequestBodies,
		}
	}
	target, ok := doc.Components.RequestBodies[name]
	if !ok || target == nil {
		return nil, &oaserrors.MissingReferenceError{Ref: rb.Ref, Location: "requestBody"}
	}
	if target.Ref != "" {
		return nil, fmt.Errorf("requestBody: %w: nested reference %q", oaserrors.ErrReference, target.Ref)
	}
	return target, nil
}
