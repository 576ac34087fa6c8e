package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/opgen/generator"
)

type generateInput struct {
	Spec              specInput `json:"spec"                           jsonschema:"The OpenAPI document to generate a client from"`
	OutputDir         string    `json:"output_dir,omitempty"           jsonschema:"Directory to write generated files to; when empty the file contents are returned inline"`
	Check             bool      `json:"check,omitempty"                jsonschema:"Write nothing and fail when output_dir is not up to date"`
	UnknownResponses  bool      `json:"unknown_responses,omitempty"    jsonschema:"Return undeclared statuses as UnknownApiResponse instead of throwing"`
	NoContentTypeMaps bool      `json:"no_content_type_maps,omitempty" jsonschema:"Use only the primary media type of multi-content bodies and responses"`
	ForceValidation   bool      `json:"force_validation,omitempty"     jsonschema:"Validate every response that has a schema\\, not only JSON ones"`
	ContinueOnError   bool      `json:"continue_on_error,omitempty"    jsonschema:"Skip failing operations instead of aborting"`
	Validate          bool      `json:"validate,omitempty"             jsonschema:"Validate the document with kin-openapi first and report findings as warnings"`
	BaseURL           string    `json:"base_url,omitempty"             jsonschema:"Default base URL of the client (default: the first server URL)"`
	RequestPriority   []string  `json:"request_priority,omitempty"     jsonschema:"Request media types in order of preference"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type generatedOperationInfo struct {
	OperationID string `json:"operation_id"`
	Function    string `json:"function"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type issueInfo struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Success             bool                     `json:"success"`
	OutputDir           string                   `json:"output_dir,omitempty"`
	Files               []generatedFileInfo      `json:"files"`
	Written             []string                 `json:"written,omitempty"`
	Unchanged           []string                 `json:"unchanged,omitempty"`
	Operations          []generatedOperationInfo `json:"operations"`
	GeneratedTypes      int                      `json:"generated_types"`
	GeneratedOperations int                      `json:"generated_operations"`
	WarningCount        int                      `json:"warning_count"`
	ErrorCount          int                      `json:"error_count"`
	CriticalCount       int                      `json:"critical_count"`
	Issues              []issueInfo              `json:"issues,omitempty"`
}

func (s *server) handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.Check && input.OutputDir == "" {
		return errResult(fmt.Errorf("check requires output_dir")), generateOutput{}, nil
	}

	parseResult, err := s.resolve(input.Spec)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithContext(ctx),
		generator.WithParsed(*parseResult),
		generator.WithLogger(s.logger),
		generator.WithConcurrency(s.cfg.Concurrency),
		generator.WithIncludeInfo(false),
		generator.WithContentTypeMaps(!input.NoContentTypeMaps),
		generator.WithForceValidation(input.ForceValidation),
		generator.WithUnknownResponseMode(input.UnknownResponses || s.cfg.UnknownResponses),
		generator.WithContinueOnError(input.ContinueOnError || s.cfg.ContinueOnError),
		generator.WithValidation(input.Validate || s.cfg.Validate),
	}
	if input.BaseURL != "" {
		opts = append(opts, generator.WithBaseURL(input.BaseURL))
	}
	if len(input.RequestPriority) > 0 {
		opts = append(opts, generator.WithRequestContentTypePriority(input.RequestPriority...))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:             result.Success,
		OutputDir:           input.OutputDir,
		GeneratedTypes:      result.GeneratedTypes,
		GeneratedOperations: result.GeneratedOperations,
		WarningCount:        result.WarningCount,
		ErrorCount:          result.ErrorCount,
		CriticalCount:       result.CriticalCount,
	}

	if input.OutputDir != "" {
		summary, err := result.WriteFilesWithOptions(input.OutputDir, generator.WriteOptions{Check: input.Check})
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		output.Written = summary.Written
		output.Unchanged = summary.Unchanged
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if input.OutputDir == "" {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}

	output.Operations = makeSlice[generatedOperationInfo](len(result.Operations))
	for _, op := range result.Operations {
		output.Operations = append(output.Operations, generatedOperationInfo{
			OperationID: op.OperationID,
			Function:    op.FunctionName,
			Method:      op.Method,
			Path:        op.Path,
			Deprecated:  op.Deprecated,
		})
	}

	for _, is := range result.Issues {
		output.Issues = append(output.Issues, issueInfo{
			Severity: is.Severity.String(),
			Path:     is.Path,
			Message:  is.Message,
		})
	}

	return nil, output, nil
}
