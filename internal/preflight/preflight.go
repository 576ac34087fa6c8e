// Package preflight runs an independent structural validation of the input
// document before generation. Findings never stop generation; they are
// reported as warnings so a lenient document can still produce a client.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/internal/severity"
)

// Check loads data with kin-openapi and validates it. Local references are
// resolved; external ones are not fetched.
func Check(ctx context.Context, data []byte) []issues.Issue {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return []issues.Issue{{
			Path:     "document",
			Message:  fmt.Sprintf("validation could not load the document: %v", err),
			Severity: severity.SeverityWarning,
		}}
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return toIssues(err)
	}
	return nil
}

func toIssues(err error) []issues.Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make([]issues.Issue, 0, len(multi))
		for _, e := range multi {
			out = append(out, toIssues(e)...)
		}
		return out
	}
	return []issues.Issue{{
		Path:     "document",
		Message:  "validation: " + firstLine(err.Error()),
		Severity: severity.SeverityWarning,
		Context:  err.Error(),
	}}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
