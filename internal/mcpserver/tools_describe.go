package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/opgen/operation"
)

type describeInput struct {
	Spec              specInput `json:"spec"                           jsonschema:"The OpenAPI document to describe"`
	OperationID       string    `json:"operation_id,omitempty"         jsonschema:"Describe only this operation; every operation when empty"`
	NoContentTypeMaps bool      `json:"no_content_type_maps,omitempty" jsonschema:"Use only the primary media type of multi-content bodies and responses"`
	ForceValidation   bool      `json:"force_validation,omitempty"     jsonschema:"Validate every response that has a schema\\, not only JSON ones"`
	RequestPriority   []string  `json:"request_priority,omitempty"     jsonschema:"Request media types in order of preference"`
}

// handleDescribe returns the metadata as deterministic JSON text, so the
// output is byte-stable across calls.
func (s *server) handleDescribe(_ context.Context, _ *mcp.CallToolRequest, input describeInput) (*mcp.CallToolResult, any, error) {
	parseResult, err := s.resolve(input.Spec)
	if err != nil {
		return errResult(err), nil, nil
	}

	opts := operation.Options{
		GenerateContentTypeMaps: !input.NoContentTypeMaps,
		ForceValidation:         input.ForceValidation,
		RequestPriority:         input.RequestPriority,
	}
	assembler := operation.NewAssembler(parseResult.Document, opts)

	var payload any
	if input.OperationID != "" {
		md, err := assembler.AssembleID(input.OperationID)
		if err != nil {
			return errResult(err), nil, nil
		}
		payload = md
	} else {
		all, err := assembler.AssembleAll()
		if err != nil {
			return errResult(err), nil, nil
		}
		payload = all
	}

	data, err := operation.MarshalMetadata(payload)
	if err != nil {
		return errResult(fmt.Errorf("failed to encode metadata: %w", err)), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
