package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"error level", SeverityError, "error"},
		{"warning level", SeverityWarning, "warning"},
		{"info level", SeverityInfo, "info"},
		{"critical level", SeverityCritical, "critical"},

		// Edge cases: Invalid severity values
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityInfo.Rank(), SeverityWarning.Rank())
	assert.Less(t, SeverityWarning.Rank(), SeverityError.Rank())
	assert.Less(t, SeverityError.Rank(), SeverityCritical.Rank())
	assert.Equal(t, -1, Severity(42).Rank())
}

func TestSeverityTextRoundTrip(t *testing.T) {
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityCritical} {
		text, err := sev.MarshalText()
		require.NoError(t, err)

		var got Severity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, sev, got)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("fatal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"fatal"`)
}
