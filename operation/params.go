package operation

import (
	"fmt"
	"strings"

	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/internal/pathutil"
	"github.com/erraggy/opgen/internal/severity"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

// maxParameterRefDepth bounds chains of parameter references.
const maxParameterRefDepth = 16

// ParameterResult is the outcome of ExtractParameterGroups.
type ParameterResult struct {
	Groups ParameterGroups
	// Imports are the component types referenced by parameter schemas.
	Imports []string
	// Issues reports parameters that were skipped, such as cookie parameters.
	Issues []issues.Issue
}

// ExtractParameterGroups merges path-level and operation-level parameters and
// partitions them into path, query and header groups.
//
// Operation-level parameters come after path-level ones. When both declare
// the same (name, in) pair the operation-level declaration replaces the
// path-level one in place. Path parameters are always required. Cookie
// parameters are skipped with an info issue.
func ExtractParameterGroups(operationParams, pathLevelParams []*openapi.Parameter, doc *openapi.Document) (ParameterResult, error) {
	type entry struct {
		param *openapi.Parameter
		field string
	}
	var (
		merged []entry
		index  = make(map[string]int)
	)
	add := func(list []*openapi.Parameter, prefix string) error {
		for i, p := range list {
			field := fmt.Sprintf("%s[%d]", prefix, i)
			resolved, err := resolveParameter(p, doc, field)
			if err != nil {
				return err
			}
			key := parameterKey(resolved)
			if at, ok := index[key]; ok {
				merged[at] = entry{param: resolved, field: field}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, entry{param: resolved, field: field})
		}
		return nil
	}
	if err := add(pathLevelParams, "pathItem.parameters"); err != nil {
		return ParameterResult{}, err
	}
	if err := add(operationParams, "parameters"); err != nil {
		return ParameterResult{}, err
	}

	var (
		result   ParameterResult
		imports  [][]string
		compiler = compilerFor(doc)
	)
	for _, e := range merged {
		p := e.param
		param := Parameter{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required,
			Description: p.Description,
			Deprecated:  p.Deprecated,
			Schema:      p.Schema,
			Type:        "string",
		}
		if p.Schema != nil {
			expr, err := compiler.TypeExpr(p.Schema)
			if err != nil {
				return ParameterResult{}, fmt.Errorf("%s: %w", e.field, err)
			}
			param.Type = expr.Code
			imports = append(imports, expr.TypeReferences)
		}

		switch p.In {
		case openapi.InPath:
			param.Required = true
			result.Groups.Path = append(result.Groups.Path, param)
		case openapi.InQuery:
			result.Groups.Query = append(result.Groups.Query, param)
		case openapi.InHeader:
			result.Groups.Header = append(result.Groups.Header, param)
		case openapi.InCookie:
			result.Issues = append(result.Issues, issues.Issue{
				Path:     e.field,
				Message:  fmt.Sprintf("cookie parameter %q is not supported and was ignored", p.Name),
				Severity: severity.SeverityInfo,
			})
		default:
			result.Issues = append(result.Issues, issues.Issue{
				Path:     e.field,
				Message:  fmt.Sprintf("parameter %q has unknown location %q and was ignored", p.Name, p.In),
				Severity: severity.SeverityWarning,
			})
		}
	}
	result.Imports = mergeImports(imports...)
	return result, nil
}

// parameterKey identifies a parameter by location and name. Header names are
// case-insensitive.
func parameterKey(p *openapi.Parameter) string {
	name := p.Name
	if p.In == openapi.InHeader {
		name = strings.ToLower(name)
	}
	return p.In + ":" + name
}

// resolveParameter follows $ref chains through #/components/parameters/.
func resolveParameter(p *openapi.Parameter, doc *openapi.Document, field string) (*openapi.Parameter, error) {
	for depth := 0; p != nil && p.Ref != ""; depth++ {
		if depth == maxParameterRefDepth {
			return nil, fmt.Errorf("%s: %w: reference cycle through %q", field, oaserrors.ErrReference, p.Ref)
		}
		name, ok := pathutil.ComponentName(p.Ref, pathutil.RefPrefixParameters3)
		if !ok {
			return nil, &oaserrors.UnsupportedReferenceError{
				Ref:      p.Ref,
				Location: field,
				Expected: pathutil.RefPrefixParameters3,
			}
		}
		target, ok := doc.Components.Parameters[name]
		if !ok || target == nil {
			return nil, &oaserrors.MissingReferenceError{Ref: p.Ref, Location: field}
		}
		p = target
	}
	if p == nil {
		return nil, fmt.Errorf("%s: parameter is null", field)
	}
	return p, nil
}
