package mcpserver

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearOPGENEnv unsets every OPGEN_MCP_* variable for the duration of the test.
func clearOPGENEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CACHE_ENABLED", "CACHE_MAX_SIZE", "CACHE_FILE_TTL",
		"CACHE_CONTENT_TTL", "CACHE_SWEEP_INTERVAL", "MAX_INLINE_SIZE",
		"CONCURRENCY", "CONTINUE_ON_ERROR", "UNKNOWN_RESPONSES", "VALIDATE",
	} {
		t.Setenv(envPrefix+key, "")
		require.NoError(t, os.Unsetenv(envPrefix+key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOPGENEnv(t)

	c := loadConfig()

	assert.Equal(t, defaultConfig(), c)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Zero(t, c.Concurrency)
	assert.False(t, c.ContinueOnError)
	assert.False(t, c.Validate)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOPGENEnv(t)
	t.Setenv("OPGEN_MCP_CACHE_ENABLED", "false")
	t.Setenv("OPGEN_MCP_CACHE_MAX_SIZE", "50")
	t.Setenv("OPGEN_MCP_CACHE_FILE_TTL", "30m")
	t.Setenv("OPGEN_MCP_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OPGEN_MCP_MAX_INLINE_SIZE", "2048")
	t.Setenv("OPGEN_MCP_CONCURRENCY", "4")
	t.Setenv("OPGEN_MCP_CONTINUE_ON_ERROR", "true")
	t.Setenv("OPGEN_MCP_UNKNOWN_RESPONSES", "true")
	t.Setenv("OPGEN_MCP_VALIDATE", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.Equal(t, 4, c.Concurrency)
	assert.True(t, c.ContinueOnError)
	assert.True(t, c.UnknownResponses)
	assert.True(t, c.Validate)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("unparseable value falls back to defaults", func(t *testing.T) {
		clearOPGENEnv(t)
		t.Setenv("OPGEN_MCP_CONCURRENCY", "8")
		t.Setenv("OPGEN_MCP_CACHE_FILE_TTL", "soon")

		assert.Equal(t, defaultConfig(), loadConfig())
	})

	t.Run("out of range numbers fall back individually", func(t *testing.T) {
		clearOPGENEnv(t)
		t.Setenv("OPGEN_MCP_CACHE_MAX_SIZE", "0")
		t.Setenv("OPGEN_MCP_MAX_INLINE_SIZE", "-1")
		t.Setenv("OPGEN_MCP_CONCURRENCY", "-2")
		t.Setenv("OPGEN_MCP_VALIDATE", "true")

		c := loadConfig()
		assert.Equal(t, 10, c.CacheMaxSize)
		assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
		assert.Zero(t, c.Concurrency)
		assert.True(t, c.Validate)
	})
}
