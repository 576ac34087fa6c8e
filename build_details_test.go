package opgen

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result, "Version() should not return empty string")
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommitAndBuildTime(t *testing.T) {
	assert.NotEmpty(t, Commit())
	if bt := BuildTime(); bt != "unknown" {
		assert.Contains(t, bt, "T", "BuildTime() should be RFC3339, got: %s", bt)
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}
