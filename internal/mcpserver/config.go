package mcpserver

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every variable name of serverConfig.
const envPrefix = "OPGEN_MCP_"

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool          `env:"CACHE_ENABLED"        envDefault:"true"`
	CacheMaxSize       int           `env:"CACHE_MAX_SIZE"       envDefault:"10"`
	CacheFileTTL       time.Duration `env:"CACHE_FILE_TTL"       envDefault:"15m"`
	CacheContentTTL    time.Duration `env:"CACHE_CONTENT_TTL"    envDefault:"15m"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"60s"`

	// MaxInlineSize bounds the size of inline document content.
	MaxInlineSize int64 `env:"MAX_INLINE_SIZE" envDefault:"10485760"`

	// Generation defaults. A tool argument can turn a flag on but not off.
	Concurrency      int  `env:"CONCURRENCY"       envDefault:"0"`
	ContinueOnError  bool `env:"CONTINUE_ON_ERROR" envDefault:"false"`
	UnknownResponses bool `env:"UNKNOWN_RESPONSES" envDefault:"false"`
	Validate         bool `env:"VALIDATE"          envDefault:"false"`
}

func defaultConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       true,
		CacheMaxSize:       10,
		CacheFileTTL:       15 * time.Minute,
		CacheContentTTL:    15 * time.Minute,
		CacheSweepInterval: 60 * time.Second,
		MaxInlineSize:      10 * 1024 * 1024,
	}
}

// loadConfig reads configuration from OPGEN_MCP_* environment variables.
// A value that cannot be parsed makes the whole set fall back to the
// defaults; out-of-range numbers fall back individually.
func loadConfig() *serverConfig {
	c, err := env.ParseAsWithOptions[serverConfig](env.Options{Prefix: envPrefix})
	if err != nil {
		slog.Warn("invalid OPGEN_MCP_* environment, using defaults", "error", err)
		return defaultConfig()
	}
	c.normalize()
	return &c
}

func (c *serverConfig) normalize() {
	def := defaultConfig()
	if c.CacheMaxSize <= 0 {
		slog.Warn("invalid cache size, using default", "value", c.CacheMaxSize, "default", def.CacheMaxSize)
		c.CacheMaxSize = def.CacheMaxSize
	}
	if c.CacheFileTTL <= 0 {
		c.CacheFileTTL = def.CacheFileTTL
	}
	if c.CacheContentTTL <= 0 {
		c.CacheContentTTL = def.CacheContentTTL
	}
	if c.MaxInlineSize <= 0 {
		slog.Warn("invalid inline size limit, using default", "value", c.MaxInlineSize, "default", def.MaxInlineSize)
		c.MaxInlineSize = def.MaxInlineSize
	}
	if c.Concurrency < 0 {
		c.Concurrency = 0
	}
}
