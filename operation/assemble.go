package operation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

// Assembler builds Metadata for the operations of one document. It holds no
// per-operation state and is safe for concurrent use, provided the document
// is not modified while it is in use.
type Assembler struct {
	doc  *openapi.Document
	opts Options
}

// NewAssembler returns an Assembler for doc.
func NewAssembler(doc *openapi.Document, opts Options) *Assembler {
	return &Assembler{doc: doc, opts: opts}
}

// Options returns the options the assembler was created with.
func (a *Assembler) Options() Options {
	return a.opts
}

// Assemble derives the metadata of the operation at (path, method) of item.
// Parameters are analyzed first, then the request body, the responses and
// finally security. A missing operationId or an unresolvable reference fails
// the whole operation with an *oaserrors.OperationError; no partial metadata
// is returned.
func (a *Assembler) Assemble(path, method string, item *openapi.PathItem, op *openapi.Operation) (*Metadata, error) {
	upper := strings.ToUpper(method)
	if op == nil || op.OperationID == "" {
		return nil, &oaserrors.OperationError{
			Method: upper,
			Path:   path,
			Cause:  &oaserrors.MissingOperationIDError{Method: upper, Path: path},
		}
	}
	fail := func(err error) (*Metadata, error) {
		return nil, &oaserrors.OperationError{OperationID: op.OperationID, Method: upper, Path: path, Cause: err}
	}

	functionName := FunctionNameFor(op.OperationID)
	operationName := OperationNameFor(op.OperationID)
	md := &Metadata{
		OperationID:   op.OperationID,
		FunctionName:  functionName,
		OperationName: operationName,
		Method:        upper,
		Path:          path,
		Summary:       op.Summary,
		Description:   op.Description,
		Deprecated:    op.Deprecated,
		Tags:          op.Tags,
	}

	var pathLevel []*openapi.Parameter
	if item != nil {
		pathLevel = item.Parameters
	}
	params, err := ExtractParameterGroups(op.Parameters, pathLevel, a.doc)
	if err != nil {
		return fail(err)
	}
	md.Parameters = params.Groups

	body, err := AnalyzeRequestBody(op.RequestBody, operationName, a.doc, a.opts)
	if err != nil {
		return fail(err)
	}
	md.Body = body.Body

	responses, err := AnalyzeResponses(op.Responses, operationName, a.doc, a.opts)
	if err != nil {
		return fail(err)
	}
	md.Responses = responses.Analysis

	md.SecurityHeaders = OperationSecuritySchemes(op, a.doc)
	md.OverridesSecurity = HasSecurityOverride(op)

	md.TypeImports = mergeImports(params.Imports, body.Imports, responses.Imports)
	md.InlineSchemas = slices.Concat(body.Inline, responses.Inline)
	slices.SortFunc(md.InlineSchemas, func(x, y InlineSchema) int { return strings.Compare(x.Name, y.Name) })

	octx := &issues.OperationContext{Method: upper, Path: path, OperationID: op.OperationID}
	for _, list := range [][]issues.Issue{params.Issues, responses.Issues} {
		for _, is := range list {
			is.Path = issues.FormatPath("paths", path, method, is.Path)
			is.OperationContext = octx
			md.Issues = append(md.Issues, is)
		}
	}
	return md, nil
}

// AssembleAll assembles every operation of the document in document order
// (paths sorted, methods in fixed HTTP order). It stops at the first error.
func (a *Assembler) AssembleAll() ([]*Metadata, error) {
	var out []*Metadata
	for _, ref := range Operations(a.doc) {
		md, err := a.Assemble(ref.Path, ref.Method, ref.Item, ref.Operation)
		if err != nil {
			return nil, err
		}
		out = append(out, md)
	}
	return out, nil
}

// Ref locates one operation in a document.
type Ref struct {
	Path      string
	Method    string
	Item      *openapi.PathItem
	Operation *openapi.Operation
}

// Operations lists the operations of doc in document order: paths sorted,
// methods in openapi.Methods order.
func Operations(doc *openapi.Document) []Ref {
	if doc == nil {
		return nil
	}
	var out []Ref
	for _, path := range doc.SortedPaths() {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, mo := range item.Operations() {
			out = append(out, Ref{Path: path, Method: mo.Method, Item: item, Operation: mo.Operation})
		}
	}
	return out
}

// FunctionNameFor is the exported function name generated for operationID.
func FunctionNameFor(operationID string) string {
	return naming.FunctionName(operationID)
}

// OperationNameFor is the type name seed generated for operationID.
func OperationNameFor(operationID string) string {
	return naming.OperationName(naming.FunctionName(operationID))
}

// Find returns the operation of doc declaring operationID.
func Find(doc *openapi.Document, operationID string) (Ref, bool) {
	for _, ref := range Operations(doc) {
		if ref.Operation != nil && ref.Operation.OperationID == operationID {
			return ref, true
		}
	}
	return Ref{}, false
}

// AssembleID assembles the operation declaring operationID.
func (a *Assembler) AssembleID(operationID string) (*Metadata, error) {
	ref, ok := Find(a.doc, operationID)
	if !ok {
		return nil, fmt.Errorf("operation %q not found", operationID)
	}
	return a.Assemble(ref.Path, ref.Method, ref.Item, ref.Operation)
}
