// Package severity provides severity level constants for diagnostics reported
// while loading documents and generating operations.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import "fmt"

// Severity indicates the severity level of a generation diagnostic.
type Severity int

const (
	// SeverityError indicates a document problem that prevents a component
	// from being generated correctly.
	SeverityError Severity = iota

	// SeverityWarning indicates a lossy choice or a recommendation that does
	// not prevent generation.
	SeverityWarning

	// SeverityInfo indicates an informational notice about a processing choice,
	// such as an ignored cookie parameter.
	SeverityInfo

	// SeverityCritical indicates an operation that had to be skipped entirely.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Rank orders severities from least (0) to most (3) severe.
// Unknown values rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Parse converts a severity name back into its level.
func Parse(name string) (Severity, error) {
	switch name {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q", name)
	}
}
