// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes opgen generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/opgen"
	"github.com/erraggy/opgen/openapi"
)

const serverInstructions = `opgen MCP server: generates typed TypeScript + zod client operations from OpenAPI 3.x documents.

Tools:
- generate: run the full pipeline and write (or return) the client files
- describe_operation: show the assembled metadata of one or all operations as JSON

Configuration: defaults come from OPGEN_MCP_* environment variables set in your MCP client config.

Key settings:
- OPGEN_MCP_CACHE_ENABLED (default: true) - cache parsed documents per session
- OPGEN_MCP_CACHE_FILE_TTL (default: 15m) - cache TTL for file inputs
- OPGEN_MCP_CONCURRENCY (default: number of CPUs) - operation worker pool size
- OPGEN_MCP_CONTINUE_ON_ERROR (default: false) - skip failing operations instead of aborting
- OPGEN_MCP_UNKNOWN_RESPONSES (default: false) - return undeclared statuses instead of throwing
- OPGEN_MCP_VALIDATE (default: false) - validate documents with kin-openapi before generating`

// server carries the state shared by all tool handlers of one process.
type server struct {
	cfg    *serverConfig
	cache  *specCacheStore
	logger openapi.Logger
}

func newServer(cfg *serverConfig, logger openapi.Logger) *server {
	if logger == nil {
		logger = openapi.NopLogger{}
	}
	return &server{cfg: cfg, cache: newSpecCache(cfg.CacheMaxSize), logger: logger}
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. Logs must not go to stdout.
func Run(ctx context.Context, logger openapi.Logger) error {
	s := newServer(loadConfig(), logger)
	if s.cfg.CacheEnabled {
		s.cache.startSweeper(ctx, s.cfg.CacheSweepInterval)
	}

	srv := mcp.NewServer(
		&mcp.Implementation{Name: "opgen", Version: opgen.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	s.registerAllTools(srv)
	s.logger.Info("mcp server started", "version", opgen.Version())
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func (s *server) registerAllTools(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a typed TypeScript client (zod validators, one async function per operation, status-keyed result unions) from an OpenAPI 3.x document. With output_dir the files are written there, touching only changed files; check=true verifies instead of writing. Without output_dir the file contents are returned inline. Returns the generated operations and any issues.",
	}, s.handleGenerate)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "describe_operation",
		Description: "Assemble and return the metadata the generator derives for an operation: parameter groups, request body content types and parsing strategy, per-status response variants, security headers and type imports. Set operation_id to describe a single operation; otherwise every operation is described. Output is deterministic JSON.",
	}, s.handleDescribe)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern matches absolute filesystem paths so they are not leaked to
// MCP clients in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
