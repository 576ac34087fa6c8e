// Package issues provides the diagnostic type reported during generation.
package issues

import (
	"fmt"

	"github.com/erraggy/opgen/internal/severity"
)

// Issue represents a single non-fatal problem found while generating code.
type Issue struct {
	// Path is the JSON path to the problematic field (e.g., "paths./pets.get.parameters[2]")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Context provides additional information about the issue (optional)
	Context string
	// OperationContext identifies the operation the issue belongs to. Nil when
	// the issue is document-wide.
	OperationContext *OperationContext
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	pathWithContext := i.Path
	if i.OperationContext != nil && !i.OperationContext.IsEmpty() {
		pathWithContext = fmt.Sprintf("%s %s", i.Path, i.OperationContext.String())
	}

	result := fmt.Sprintf("%s %s: %s", symbol, pathWithContext, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Count returns how many of the given issues have exactly the given severity.
func Count(list []Issue, sev severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity == sev {
			n++
		}
	}
	return n
}
