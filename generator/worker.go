package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
	"github.com/erraggy/opgen/operation"
	"github.com/erraggy/opgen/render"
)

// outcome is the result of assembling and rendering one operation.
type outcome struct {
	ref      operation.Ref
	metadata *operation.Metadata
	fragment *render.Fragment
	err      error
}

// processOperations assembles and renders every operation on a bounded pool
// of goroutines. Results are stored by index so their order matches the
// document regardless of scheduling. Cancelling ctx stops new operations
// from starting; the call then waits for running ones and returns the
// context's error.
func (g *Generator) processOperations(ctx context.Context, doc *openapi.Document, log openapi.Logger) ([]outcome, error) {
	refs := operation.Operations(doc)
	asm := operation.NewAssembler(doc, g.assemblyOptions())
	ropts := g.renderOptions()

	results := make([]outcome, len(refs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, g.concurrency())

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("generator: %w", err)
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, fmt.Errorf("generator: %w", ctx.Err())
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(idx int, ref operation.Ref) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = processOne(asm, ref, ropts, log)
		}(i, ref)
	}
	wg.Wait()
	return results, nil
}

func processOne(asm *operation.Assembler, ref operation.Ref, opts render.Options, log openapi.Logger) outcome {
	md, err := asm.Assemble(ref.Path, ref.Method, ref.Item, ref.Operation)
	if err != nil {
		return outcome{ref: ref, err: err}
	}
	log.Debug("operation assembled",
		"operation_id", md.OperationID,
		"method", md.Method,
		"path", md.Path,
		"statuses", len(md.Responses.Statuses))
	return outcome{ref: ref, metadata: md, fragment: render.Operation(md, opts)}
}

// collect walks the outcomes in document order. Failed operations abort the
// run unless ContinueOnError is set, in which case they become critical
// issues. When two operations map to the same function name the first one
// wins and the later one is skipped with a warning.
func (g *Generator) collect(outcomes []outcome, doc *openapi.Document, result *GenerateResult, log openapi.Logger) ([]outcome, error) {
	taken := componentSchemaNames(doc)
	functions := make(map[string]string, len(outcomes))
	kept := make([]outcome, 0, len(outcomes))

	for _, o := range outcomes {
		if o.err == nil {
			o.err = inlineCollision(o.metadata, taken)
		}
		if o.err != nil {
			if !g.ContinueOnError {
				return nil, fmt.Errorf("generator: %w", o.err)
			}
			result.Issues = append(result.Issues, failureIssue(o))
			log.Warn("operation skipped", "path", o.ref.Path, "method", o.ref.Method, "error", o.err)
			continue
		}

		md := o.metadata
		result.Issues = append(result.Issues, md.Issues...)
		if prev, ok := functions[md.FunctionName]; ok {
			result.Issues = append(result.Issues, GenerateIssue{
				Path:     issues.FormatPath("paths", md.Path, strings.ToLower(md.Method), "operationId"),
				Message:  fmt.Sprintf("function %s is already generated for operation %s; operation skipped", md.FunctionName, prev),
				Severity: SeverityWarning,
				OperationContext: &issues.OperationContext{
					Method:      md.Method,
					Path:        md.Path,
					OperationID: md.OperationID,
				},
			})
			log.Warn("duplicate function name", "function", md.FunctionName, "operation_id", md.OperationID, "kept", prev)
			continue
		}
		functions[md.FunctionName] = md.OperationID
		for _, s := range md.InlineSchemas {
			taken[s.Name] = true
		}

		kept = append(kept, o)
		result.Operations = append(result.Operations, GeneratedOperation{
			OperationID:  md.OperationID,
			FunctionName: md.FunctionName,
			Method:       md.Method,
			Path:         md.Path,
			ParamsType:   render.ParamsName(md),
			ResultType:   render.ResultName(md),
			Deprecated:   md.Deprecated,
			File:         operationsFile,
		})
	}
	result.GeneratedOperations = len(kept)
	return kept, nil
}

// inlineCollision reports an inline schema whose synthesized name is already
// used by a component schema, an earlier operation or another inline schema
// of the same operation.
func inlineCollision(md *operation.Metadata, taken map[string]bool) error {
	own := make(map[string]bool, len(md.InlineSchemas))
	for _, s := range md.InlineSchemas {
		if taken[s.Name] || own[s.Name] {
			return &oaserrors.OperationError{
				OperationID: md.OperationID,
				Method:      md.Method,
				Path:        md.Path,
				Cause:       fmt.Errorf("inline schema name %s is already declared", s.Name),
			}
		}
		own[s.Name] = true
	}
	return nil
}

func failureIssue(o outcome) GenerateIssue {
	oc := &issues.OperationContext{
		Method: strings.ToUpper(o.ref.Method),
		Path:   o.ref.Path,
	}
	if o.ref.Operation != nil {
		oc.OperationID = o.ref.Operation.OperationID
	}
	return GenerateIssue{
		Path:             issues.FormatPath("paths", o.ref.Path, o.ref.Method),
		Message:          o.err.Error(),
		Severity:         SeverityCritical,
		OperationContext: oc,
	}
}
