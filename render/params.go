package render

import (
	"bytes"
	"strings"

	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/operation"
)

// Parameter groups as they appear in the params object.
const (
	groupPath    = "path"
	groupQuery   = "query"
	groupHeaders = "headers"
)

// emptyParams is the params type of an operation that takes no input.
const emptyParams = "Record<string, never>"

// ParamsDeclaration renders the params object type. Parameters are grouped
// by location so a query and a header parameter may share a name.
func ParamsDeclaration(md *operation.Metadata) Declaration {
	name := ParamsName(md)
	head := "export type " + name
	if generics := Generics(md); len(generics) > 0 {
		head += "<" + generics[0] + ">"
	}

	buf := getBuffer()
	defer putBuffer(buf)

	groups := []struct {
		key    string
		params []operation.Parameter
	}{
		{groupPath, md.Parameters.Path},
		{groupQuery, md.Parameters.Query},
		{groupHeaders, md.Parameters.Header},
	}
	for _, g := range groups {
		if len(g.params) == 0 {
			continue
		}
		buf.WriteString(indent + g.key + optionalMark(!anyRequired(g.params)) + ": {\n")
		for _, p := range g.params {
			writeMemberDoc(buf, indent+indent, p.Description, p.Deprecated)
			buf.WriteString(indent + indent + naming.PropertyKey(p.Name) + optionalMark(!p.Required) + ": " + p.Type + ";\n")
		}
		buf.WriteString(indent + "};\n")
	}

	if b := md.Body; b != nil {
		typ := b.TypeName
		if b.HasMap() {
			typ = RequestMapName(md) + "[" + RequestContentTypeParam + "]"
		}
		buf.WriteString(indent + "body" + optionalMark(!b.Required) + ": " + typ + ";\n")
		if b.HasMap() {
			buf.WriteString(indent + "contentType?: " + RequestContentTypeParam + ";\n")
		}
	}
	if md.Responses.HasMap() {
		cts := md.Responses.ContentTypes()
		quoted := make([]string, len(cts))
		for i, ct := range cts {
			quoted[i] = naming.Quote(ct)
		}
		buf.WriteString(indent + "accept?: " + strings.Join(quoted, " | ") + ";\n")
	}

	if buf.Len() == 0 {
		return Declaration{Name: name, Code: head + " = " + emptyParams + ";"}
	}
	return Declaration{Name: name, Code: head + " = {\n" + buf.String() + "};"}
}

// ParamsArgument renders the params argument of the signature. When nothing
// in it is required it defaults to an empty object, so the function can be
// called without arguments.
func ParamsArgument(md *operation.Metadata) string {
	arg := "params: " + ParamsName(md) + genericArgs(md)
	if !paramsRequired(md) {
		arg += " = {}"
	}
	return arg
}

func paramsRequired(md *operation.Metadata) bool {
	if md.Body != nil && md.Body.Required {
		return true
	}
	return anyRequired(md.Parameters.Path) || anyRequired(md.Parameters.Query) || anyRequired(md.Parameters.Header)
}

func anyRequired(params []operation.Parameter) bool {
	for _, p := range params {
		if p.Required {
			return true
		}
	}
	return false
}

func optionalMark(optional bool) string {
	if optional {
		return "?"
	}
	return ""
}

func writeMemberDoc(buf *bytes.Buffer, prefix, description string, deprecated bool) {
	text := commentText(description)
	switch {
	case text != "" && deprecated:
		buf.WriteString(prefix + "/** " + text + " @deprecated */\n")
	case text != "":
		buf.WriteString(prefix + "/** " + text + " */\n")
	case deprecated:
		buf.WriteString(prefix + "/** @deprecated */\n")
	}
}
