package openapi

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/opgen/internal/options"
	"github.com/erraggy/opgen/oaserrors"
)

// ParseResult contains a loaded document and where it came from.
type ParseResult struct {
	// SourcePath is the file path, or a synthetic name for in-memory input
	SourcePath string
	// Version is the document's "openapi" value
	Version string
	// Document is the normalized document
	Document *Document
	// Data holds the raw bytes, kept for optional validators that reparse them
	Data []byte
}

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	sourceName *string
	logger     Logger
}

// WithFilePath parses the document at path.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader parses the document read from r.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithBytes parses the document in data.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		cfg.bytes = data
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath, useful for in-memory input.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithLogger sets the logger for the parse operation.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// ParseWithOptions loads an OpenAPI 3.x document using functional options.
//
// Example:
//
//	result, err := openapi.ParseWithOptions(openapi.WithFilePath("openapi.yaml"))
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("openapi: invalid options: %w", err)
		}
	}

	if err := options.ValidateSingleInputSource("input",
		"no input source: use WithFilePath, WithReader or WithBytes",
		"exactly one input source required",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	var (
		data       []byte
		sourcePath string
		err        error
	)
	switch {
	case cfg.filePath != nil:
		sourcePath = *cfg.filePath
		data, err = os.ReadFile(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("openapi: failed to read file: %w", err)
		}
	case cfg.reader != nil:
		sourcePath = "ParseReader.yaml"
		data, err = io.ReadAll(cfg.reader)
		if err != nil {
			return nil, fmt.Errorf("openapi: failed to read input: %w", err)
		}
	default:
		sourcePath = "ParseBytes.yaml"
		data = cfg.bytes
	}
	if cfg.sourceName != nil {
		sourcePath = *cfg.sourceName
	}

	doc, err := parseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("parsed document",
		"source", sourcePath,
		"version", doc.OpenAPI,
		"paths", len(doc.Paths),
		"schemas", len(doc.Components.Schemas))

	return &ParseResult{
		SourcePath: sourcePath,
		Version:    doc.OpenAPI,
		Document:   doc,
		Data:       data,
	}, nil
}

func parseBytes(data []byte, sourcePath string) (*Document, error) {
	var header struct {
		OpenAPI string `yaml:"openapi"`
		Swagger string `yaml:"swagger"`
	}
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, yamlParseError(sourcePath, err)
	}

	switch {
	case header.Swagger != "":
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("OpenAPI %s documents are not supported; convert to 3.x first", header.Swagger),
		}
	case header.OpenAPI == "":
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "missing openapi version field",
		}
	case !strings.HasPrefix(header.OpenAPI, "3."):
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("unsupported OpenAPI version: %s (only 3.x versions are supported)", header.OpenAPI),
		}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlParseError(sourcePath, err)
	}
	return &doc, nil
}

// yamlParseError converts a decoder error into a ParseError, keeping the
// position when the decoder reports one.
func yamlParseError(sourcePath string, err error) error {
	pe := &oaserrors.ParseError{Path: sourcePath, Cause: err}
	var loadErr *yaml.LoadError
	if errors.As(err, &loadErr) {
		pe.Message = "invalid document structure"
		pe.Line = loadErr.Line
		pe.Column = loadErr.Column
	}
	return pe
}
