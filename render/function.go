package render

import (
	"strings"

	"github.com/erraggy/opgen/operation"
)

// Options selects rendering behavior.
type Options struct {
	// UnknownResponseMode returns an UnknownApiResponse for undeclared
	// statuses instead of throwing UnexpectedStatusError.
	UnknownResponseMode bool
}

// configParam is the trailing argument of every generated function.
const configParam = "config: Partial<ApiConfig> = {}"

// Operation renders the complete fragment of one operation. It is a pure
// function of its arguments.
func Operation(md *operation.Metadata, opts Options) *Fragment {
	stmts, validators := Body(md, opts)
	return &Fragment{
		OperationID:      md.OperationID,
		Declarations:     Aliases(md),
		Comment:          Comment(md),
		Signature:        FunctionSignature(md, opts),
		Body:             stmts,
		TypeImports:      md.TypeImports,
		ValidatorImports: validators,
	}
}

// Comment renders the doc comment lines: summary, description, the method
// and path, and a deprecation tag.
func Comment(md *operation.Metadata) []string {
	var lines []string
	if s := commentText(md.Summary); s != "" {
		lines = append(lines, s)
	}
	if md.Description != "" && md.Description != md.Summary {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		for _, l := range strings.Split(md.Description, "\n") {
			if l = commentText(l); l != "" {
				lines = append(lines, l)
			}
		}
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, md.Method+" "+commentText(md.Path))
	if md.Deprecated {
		lines = append(lines, "@deprecated")
	}
	return lines
}

// FunctionSignature renders the signature of the generated function.
func FunctionSignature(md *operation.Metadata, opts Options) Signature {
	ret := ResultName(md)
	if opts.UnknownResponseMode {
		ret += " | UnknownApiResponse"
	}
	return Signature{
		Name:     md.FunctionName,
		Generics: Generics(md),
		Params:   []string{ParamsArgument(md), configParam},
		Return:   ret,
	}
}
