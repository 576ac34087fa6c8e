package render

import (
	"fmt"

	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/operation"
)

// Aliases renders the declarations emitted ahead of the function: the
// request and response content-type maps when they exist, the params type
// and the result union alias.
func Aliases(md *operation.Metadata) []Declaration {
	var out []Declaration
	if d, ok := RequestMapDeclaration(md); ok {
		out = append(out, d)
	}
	if d, ok := ResponseMapDeclaration(md); ok {
		out = append(out, d)
	}
	out = append(out, ParamsDeclaration(md), ResultDeclaration(md))
	return out
}

// RequestMapDeclaration renders {Op}RequestMap. It reports false when the
// body declares fewer than two media types or maps are disabled.
func RequestMapDeclaration(md *operation.Metadata) (Declaration, bool) {
	if !md.Body.HasMap() {
		return Declaration{}, false
	}
	buf := getBuffer()
	defer putBuffer(buf)

	name := RequestMapName(md)
	buf.WriteString("export type " + name + " = {\n")
	for _, ct := range maputil.SortedKeys(md.Body.RequestMap) {
		buf.WriteString(indent + naming.Quote(ct) + ": " + md.Body.RequestMap[ct] + ";\n")
	}
	buf.WriteString("};")
	return Declaration{Name: name, Code: buf.String()}, true
}

// ResponseMapDeclaration renders {Op}ResponseMap keyed by status, then media
// type. It reports false when no status declares several media types or
// maps are disabled.
func ResponseMapDeclaration(md *operation.Metadata) (Declaration, bool) {
	if !md.Responses.HasMap() {
		return Declaration{}, false
	}
	buf := getBuffer()
	defer putBuffer(buf)

	name := ResponseMapName(md)
	statuses := maputil.SortedKeys(md.Responses.ResponseMap)
	buf.WriteString("export type " + name + " = {\n")
	for _, status := range statuses {
		entry := md.Responses.ResponseMap[status]
		fmt.Fprintf(buf, "%s%d: {\n", indent, status)
		for _, ct := range maputil.SortedKeys(entry) {
			buf.WriteString(indent + indent + naming.Quote(ct) + ": " + entry[ct] + ";\n")
		}
		buf.WriteString(indent + "};\n")
	}
	buf.WriteString("};")
	return Declaration{Name: name, Code: buf.String()}, true
}

// ResultDeclaration renders the alias of the discriminated union.
func ResultDeclaration(md *operation.Metadata) Declaration {
	name := ResultName(md)
	return Declaration{Name: name, Code: "export type " + name + " = " + md.Responses.Union + ";"}
}
