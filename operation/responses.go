package operation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/opgen/internal/contenttype"
	"github.com/erraggy/opgen/internal/httputil"
	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/pathutil"
	"github.com/erraggy/opgen/internal/severity"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

// ResponseResult is the outcome of AnalyzeResponses.
type ResponseResult struct {
	Analysis ResponseAnalysis
	Imports  []string
	Inline   []InlineSchema
	Issues   []issues.Issue
}

// AnalyzeResponses folds an operation's responses into the status-ordered
// analysis. The "default" key is excluded, non-numeric keys such as "2XX" are
// skipped with an info issue (a warning when the key is not a legal status key), and the remaining statuses are sorted
// numerically. Union members are never deduplicated.
func AnalyzeResponses(responses map[string]*openapi.Response, operationName string, doc *openapi.Document, opts Options) (ResponseResult, error) {
	var result ResponseResult

	type keyed struct {
		status int
		resp   *openapi.Response
	}
	var codes []keyed
	for key, resp := range responses {
		if key == "default" {
			continue
		}
		status, ok := httputil.ParseStatusCode(key)
		if !ok {
			is := issues.Issue{
				Path:     issues.FormatPath("responses", key),
				Message:  fmt.Sprintf("status key %q is not a numeric status code and was excluded from the response union", key),
				Severity: severity.SeverityInfo,
			}
			if !httputil.ValidateStatusCode(key) {
				is.Message = fmt.Sprintf("invalid status key %q was excluded from the response union", key)
				is.Severity = severity.SeverityWarning
			}
			result.Issues = append(result.Issues, is)
			continue
		}
		if resp != nil {
			for _, ct := range maputil.SortedKeys(resp.Content) {
				if !httputil.IsValidMediaType(ct) {
					result.Issues = append(result.Issues, issues.Issue{
						Path:     issues.FormatPath("responses", key, "content", ct),
						Message:  fmt.Sprintf("media type %q is malformed", ct),
						Severity: severity.SeverityWarning,
					})
				}
			}
		}
		codes = append(codes, keyed{status: status, resp: resp})
	}
	slices.SortFunc(codes, func(a, b keyed) int { return a.status - b.status })
	slices.SortFunc(result.Issues, func(a, b issues.Issue) int { return strings.Compare(a.Path, b.Path) })

	// The map is needed as soon as one status declares several media types.
	useMap := false
	resolved := make([]*openapi.Response, len(codes))
	for i, c := range codes {
		resp, err := resolveResponse(c.resp, doc, c.status)
		if err != nil {
			return ResponseResult{}, err
		}
		resolved[i] = resp
		if opts.GenerateContentTypeMaps && resp != nil && len(resp.Content) > 1 {
			useMap = true
		}
	}

	var (
		imports [][]string
		members = make([]string, 0, len(codes))
	)
	for i, c := range codes {
		sr, res, err := analyzeStatus(c.status, resolved[i], doc, operationName, useMap, opts)
		if err != nil {
			return ResponseResult{}, err
		}
		imports = append(imports, res.imports)
		result.Inline = append(result.Inline, res.inline...)
		result.Analysis.Statuses = append(result.Analysis.Statuses, sr)
		members = append(members, fmt.Sprintf("ApiResponse<%d, %s>", sr.StatusCode, sr.DataType))

		if useMap && sr.HasContent() {
			if result.Analysis.ResponseMap == nil {
				result.Analysis.ResponseMap = make(map[int]map[string]string)
			}
			entry := make(map[string]string, len(sr.Variants))
			for _, v := range sr.Variants {
				entry[v.ContentType] = v.DataType()
			}
			result.Analysis.ResponseMap[sr.StatusCode] = entry
		}
	}

	if len(members) == 0 {
		result.Analysis.Union = "never"
	} else {
		result.Analysis.Union = strings.Join(members, " | ")
	}
	result.Imports = mergeImports(imports...)
	return result, nil
}

type statusExtras struct {
	imports []string
	inline  []InlineSchema
}

func analyzeStatus(status int, resp *openapi.Response, doc *openapi.Document, operationName string, useMap bool, opts Options) (StatusResponse, statusExtras, error) {
	sr := StatusResponse{StatusCode: status, DataType: "void"}
	var extras statusExtras
	if resp == nil || len(resp.Content) == 0 {
		return sr, extras, nil
	}

	analysis := contenttype.Analyze(resp.ContentTypes())
	primary := contenttype.SelectResponse(analysis.Declared)
	names := contentNames(resp.Content, primary, ResponseContext(operationName, status))

	var imports [][]string
	for _, ct := range variantOrder(analysis.All, primary) {
		if ct != primary && !useMap {
			continue
		}
		res, err := ResolveTypeName(mediaSchema(resp.Content[ct]), doc, names[ct])
		if err != nil {
			return StatusResponse{}, statusExtras{}, err
		}
		v := ContentVariant{
			ContentType: ct,
			TypeName:    res.TypeName,
			HasSchema:   res.TypeName != "",
			JSONLike:    contenttype.IsJSONLike(ct),
		}
		v.UseValidation = v.HasSchema && (v.JSONLike || opts.ForceValidation)
		sr.Variants = append(sr.Variants, v)
		imports = append(imports, res.Imports)
		if res.Inline != nil {
			extras.inline = append(extras.inline, *res.Inline)
		}
	}

	p := sr.Variants[0]
	sr.ContentType = p.ContentType
	sr.TypeName = p.TypeName
	sr.HasSchema = p.HasSchema
	sr.Strategy = ParsingStrategy{
		UseValidation:                   p.UseValidation,
		RequiresRuntimeContentTypeCheck: useMap && analysis.HasMixed,
	}
	sr.DataType = variantsDataType(sr.Variants)
	extras.imports = mergeImports(imports...)
	return sr, extras, nil
}

// variantsDataType is the union of the variants' data types, in variant
// order, without repeats.
func variantsDataType(variants []ContentVariant) string {
	var parts []string
	for _, v := range variants {
		dt := v.DataType()
		if !slices.Contains(parts, dt) {
			parts = append(parts, dt)
		}
	}
	if slices.Contains(parts, "unknown") {
		return "unknown"
	}
	return strings.Join(parts, " | ")
}

func resolveResponse(resp *openapi.Response, doc *openapi.Document, status int) (*openapi.Response, error) {
	if resp == nil || resp.Ref == "" {
		return resp, nil
	}
	location := fmt.Sprintf("responses.%d", status)
	name, ok := pathutil.ComponentName(resp.Ref, pathutil.RefPrefixResponses3)
	if !ok {
		return nil, &oaserrors.UnsupportedReferenceError{
			Ref:      resp.Ref,
			Location: location,
			Expected: pathutil.RefPrefixResponses3,
		}
	}
	target, ok := doc.Components.Responses[name]
	if !ok || target == nil {
		return nil, &oaserrors.MissingReferenceError{Ref: resp.Ref, Location: location}
	}
	if target.Ref != "" {
		return nil, fmt.Errorf("%s: %w: nested reference %q", location, oaserrors.ErrReference, target.Ref)
	}
	return target, nil
}
