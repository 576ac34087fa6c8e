package generator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/internal/options"
	"github.com/erraggy/opgen/internal/preflight"
	"github.com/erraggy/opgen/internal/severity"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
	"github.com/erraggy/opgen/operation"
	"github.com/erraggy/opgen/render"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates features that may not generate perfectly
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates document problems that produce broken output
	SeverityError = severity.SeverityError
	// SeverityCritical indicates operations that were skipped
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "operations.ts", "schemas.ts")
	Name string
	// Content is the generated TypeScript source
	Content []byte
}

// GeneratedOperation records where one operation was emitted.
type GeneratedOperation struct {
	OperationID  string
	FunctionName string
	Method       string
	Path         string
	ParamsType   string
	ResultType   string
	Deprecated   bool
	File         string
}

// GenerateResult contains the results of generating a client from a document
type GenerateResult struct {
	// Files contains all generated files, sorted by name
	Files []GeneratedFile
	// SourcePath is where the document was loaded from
	SourcePath string
	// SourceVersion is the document's "openapi" value
	SourceVersion string
	// Title and Version come from the document's info object
	Title   string
	Version string
	// RunID correlates the log lines of one generation run
	RunID string
	// Operations lists the emitted operations in document order
	Operations []GeneratedOperation
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors
	ErrorCount int
	// CriticalCount is the total number of skipped operations
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// GeneratedTypes is the count of schema declarations emitted
	GeneratedTypes int
	// GeneratedOperations is the count of operations emitted
	GeneratedOperations int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator handles client generation from OpenAPI documents
type Generator struct {
	// Concurrency bounds the number of operations processed at once.
	// Values below 1 mean runtime.NumCPU().
	Concurrency int

	// GenerateContentTypeMaps emits request and response content-type maps
	// for bodies and statuses that declare several media types.
	// Default: true
	GenerateContentTypeMaps bool

	// ForceValidation validates every response with a schema, not only
	// JSON-like ones.
	ForceValidation bool

	// UnknownResponseMode returns undeclared statuses as UnknownApiResponse
	// instead of throwing.
	UnknownResponseMode bool

	// ContinueOnError records a critical issue for a failing operation and
	// skips it. When false the first failure aborts the run.
	ContinueOnError bool

	// RequestContentTypePriority overrides the preferred order of request
	// media types. Nil keeps the default order.
	RequestContentTypePriority []string

	// BaseURL is the default base URL written to config.ts. When empty the
	// first server URL of the document is used.
	BaseURL string

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// Validate runs an independent validation of the source document first
	// and reports its findings as warnings.
	Validate bool

	// Logger receives structured progress events. Nil discards them.
	Logger openapi.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		GenerateContentTypeMaps: true,
		IncludeInfo:             true,
	}
}

// Option is a function that configures a generation operation
type Option func(*generateConfig) error

type generateConfig struct {
	ctx context.Context

	filePath *string
	parsed   *openapi.ParseResult
	document *openapi.Document

	concurrency         int
	contentTypeMaps     bool
	forceValidation     bool
	unknownResponseMode bool
	continueOnError     bool
	requestPriority     []string
	baseURL             string
	includeInfo         bool
	validate            bool
	logger              openapi.Logger
}

// GenerateWithOptions generates a client using functional options.
// Exactly one input source must be given.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithUnknownResponseMode(true),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		Concurrency:                cfg.concurrency,
		GenerateContentTypeMaps:    cfg.contentTypeMaps,
		ForceValidation:            cfg.forceValidation,
		UnknownResponseMode:        cfg.unknownResponseMode,
		ContinueOnError:            cfg.continueOnError,
		RequestContentTypePriority: cfg.requestPriority,
		BaseURL:                    cfg.baseURL,
		IncludeInfo:                cfg.includeInfo,
		Validate:                   cfg.validate,
		Logger:                     cfg.logger,
	}

	switch {
	case cfg.filePath != nil:
		return g.Generate(cfg.ctx, *cfg.filePath)
	case cfg.parsed != nil:
		return g.GenerateParsed(cfg.ctx, *cfg.parsed)
	default:
		return g.GenerateParsed(cfg.ctx, openapi.ParseResult{
			SourcePath: "document",
			Version:    cfg.document.OpenAPI,
			Document:   cfg.document,
		})
	}
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		ctx:             context.Background(),
		contentTypeMaps: true,
		includeInfo:     true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("source",
		"must specify an input source (use WithFilePath, WithParsed or WithDocument)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil, cfg.document != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithContext sets the context that cancels generation.
func WithContext(ctx context.Context) Option {
	return func(cfg *generateConfig) error {
		if ctx == nil {
			return &oaserrors.ConfigError{Option: "context", Message: "context cannot be nil"}
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithFilePath specifies a file path to load and generate from
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already-parsed document to generate from
func WithParsed(result openapi.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result.Document == nil {
			return &oaserrors.ConfigError{Option: "parsed", Message: "parse result has no document"}
		}
		cfg.parsed = &result
		return nil
	}
}

// WithDocument specifies an in-memory document to generate from
func WithDocument(doc *openapi.Document) Option {
	return func(cfg *generateConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithConcurrency bounds the worker pool. Zero selects runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(cfg *generateConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "cannot be negative"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithContentTypeMaps enables or disables content-type maps
// Default: true
func WithContentTypeMaps(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.contentTypeMaps = enabled
		return nil
	}
}

// WithForceValidation validates non-JSON responses that declare a schema
func WithForceValidation(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.forceValidation = enabled
		return nil
	}
}

// WithUnknownResponseMode returns undeclared statuses instead of throwing
func WithUnknownResponseMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.unknownResponseMode = enabled
		return nil
	}
}

// WithContinueOnError skips failing operations instead of aborting
func WithContinueOnError(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.continueOnError = enabled
		return nil
	}
}

// WithRequestContentTypePriority sets the preferred order of request media
// types. Entries are compared by essence (parameters stripped).
func WithRequestContentTypePriority(mediaTypes ...string) Option {
	return func(cfg *generateConfig) error {
		for _, mt := range mediaTypes {
			if mt == "" {
				return &oaserrors.ConfigError{Option: "request content type priority", Message: "media type cannot be empty"}
			}
		}
		cfg.requestPriority = mediaTypes
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l openapi.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithBaseURL overrides the default base URL written to config.ts
func WithBaseURL(url string) Option {
	return func(cfg *generateConfig) error {
		cfg.baseURL = url
		return nil
	}
}

// WithIncludeInfo determines whether to include informational messages
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithValidation validates the source document before generating
func WithValidation(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.validate = enabled
		return nil
	}
}

// Generate loads the document at specPath and generates a client from it
func (g *Generator) Generate(ctx context.Context, specPath string) (*GenerateResult, error) {
	parseResult, err := openapi.ParseWithOptions(
		openapi.WithFilePath(specPath),
		openapi.WithLogger(g.logger()),
	)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse document: %w", err)
	}
	return g.GenerateParsed(ctx, *parseResult)
}

// GenerateParsed generates a client from an already-parsed document
func (g *Generator) GenerateParsed(ctx context.Context, parseResult openapi.ParseResult) (*GenerateResult, error) {
	if parseResult.Document == nil {
		return nil, fmt.Errorf("generator: parse result has no document")
	}
	startTime := time.Now()
	doc := parseResult.Document

	runID := uuid.NewString()
	log := g.logger().With("run_id", runID)
	log.Info("generation started",
		"source", parseResult.SourcePath,
		"operations", doc.OperationCount(),
		"schemas", len(doc.Components.Schemas))

	result := &GenerateResult{
		SourcePath:    parseResult.SourcePath,
		SourceVersion: parseResult.Version,
		Title:         doc.Info.Title,
		Version:       doc.Info.Version,
		RunID:         runID,
		Issues:        make([]GenerateIssue, 0),
	}

	if g.Validate {
		result.Issues = append(result.Issues, g.runPreflight(ctx, parseResult, log)...)
	}

	outcomes, err := g.processOperations(ctx, doc, log)
	if err != nil {
		return nil, err
	}

	kept, err := g.collect(outcomes, doc, result, log)
	if err != nil {
		return nil, err
	}

	files, err := g.emit(doc, kept, result)
	if err != nil {
		return nil, err
	}
	result.Files = files

	result.GenerateTime = time.Since(startTime)
	updateCounts(result)
	result.Success = result.CriticalCount == 0

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	log.Info("generation finished",
		"operations", result.GeneratedOperations,
		"types", result.GeneratedTypes,
		"critical", result.CriticalCount,
		"warnings", result.WarningCount,
		"elapsed", result.GenerateTime)
	return result, nil
}

// runPreflight validates the raw source bytes. Documents given in memory have
// none, so validation is skipped with a notice.
func (g *Generator) runPreflight(ctx context.Context, parseResult openapi.ParseResult, log openapi.Logger) []GenerateIssue {
	if len(parseResult.Data) == 0 {
		return []GenerateIssue{{
			Path:     "document",
			Message:  "validation skipped: the document was not loaded from source bytes",
			Severity: SeverityInfo,
		}}
	}
	found := preflight.Check(ctx, parseResult.Data)
	log.Debug("validation finished", "findings", len(found))
	return found
}

func (g *Generator) logger() openapi.Logger {
	if g.Logger == nil {
		return openapi.NopLogger{}
	}
	return g.Logger
}

func (g *Generator) concurrency() int {
	if g.Concurrency < 1 {
		return runtime.NumCPU()
	}
	return g.Concurrency
}

func (g *Generator) assemblyOptions() operation.Options {
	return operation.Options{
		GenerateContentTypeMaps: g.GenerateContentTypeMaps,
		ForceValidation:         g.ForceValidation,
		RequestPriority:         g.RequestContentTypePriority,
	}
}

func (g *Generator) renderOptions() render.Options {
	return render.Options{UnknownResponseMode: g.UnknownResponseMode}
}

// updateCounts updates the issue counts in the result
func updateCounts(result *GenerateResult) {
	result.InfoCount = issues.Count(result.Issues, SeverityInfo)
	result.WarningCount = issues.Count(result.Issues, SeverityWarning)
	result.ErrorCount = issues.Count(result.Issues, SeverityError)
	result.CriticalCount = issues.Count(result.Issues, SeverityCritical)
}
