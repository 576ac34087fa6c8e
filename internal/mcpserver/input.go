package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/opgen/openapi"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *openapi.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore is a session-scoped cache of parsed documents. File inputs
// are keyed by (absolutePath, modTime), content inputs by a SHA-256 hash.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

func newSpecCache(maxSize int) *specCacheStore {
	return &specCacheStore{entries: make(map[string]*cacheEntry), maxSize: maxSize}
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *openapi.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.result
}

// put stores a result, evicting the least recently used entry at capacity.
func (c *specCacheStore) put(key string, result *openapi.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that removes expired entries every
// interval until ctx is cancelled. Only the first call starts one.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key of s, or "" when s should not be cached.
func (s specInput) cacheKey() string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// server's cache when it is enabled.
func (s *server) resolve(in specInput) (*openapi.ParseResult, error) {
	count := 0
	if in.File != "" {
		count++
	}
	if in.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}
	if in.Content != "" && int64(len(in.Content)) > s.cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set %sMAX_INLINE_SIZE to increase",
			len(in.Content), s.cfg.MaxInlineSize, envPrefix)
	}

	var key string
	ttl := s.cfg.CacheContentTTL
	if s.cfg.CacheEnabled {
		key = in.cacheKey()
		if in.File != "" {
			ttl = s.cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := s.cache.get(key); cached != nil {
			s.logger.Debug("document cache hit", "key", key)
			return cached, nil
		}
	}

	opts := []openapi.Option{openapi.WithLogger(s.logger)}
	if in.File != "" {
		opts = append(opts, openapi.WithFilePath(in.File))
	} else {
		opts = append(opts, openapi.WithBytes([]byte(in.Content)), openapi.WithSourceName("content.yaml"))
	}
	result, err := openapi.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		s.cache.put(key, result, ttl)
	}
	return result, nil
}
