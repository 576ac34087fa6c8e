package render

import (
	"fmt"
	"strings"

	"github.com/erraggy/opgen/internal/contenttype"
	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/operation"
)

// bodyWriter accumulates the statements of one function body and the
// validators they call.
type bodyWriter struct {
	md         *operation.Metadata
	opts       Options
	stmts      []string
	validators map[string]bool
}

func (w *bodyWriter) line(depth int, format string, args ...any) {
	w.stmts = append(w.stmts, strings.Repeat(indent, depth)+fmt.Sprintf(format, args...))
}

// Body renders the statements of the function body and returns them with
// the sorted validator names they call. Sections appear in fixed order:
// headers, URL, request body, fetch, status dispatch.
func Body(md *operation.Metadata, opts Options) (stmts []string, validators []string) {
	w := &bodyWriter{md: md, opts: opts, validators: make(map[string]bool)}
	w.line(0, "const cfg = resolveConfig(config);")
	w.line(0, "const headers: Record<string, string> = { ...cfg.headers };")
	w.writeCredentials()
	w.writeHeaderParams()
	w.writeURL()
	w.writeRequestBody()
	w.writeAccept()
	w.writeFetch()
	w.writeDispatch()
	return w.stmts, maputil.SortedKeys(w.validators)
}

func (w *bodyWriter) writeCredentials() {
	for _, h := range w.md.SecurityHeaders {
		w.line(0, "setCredential(headers, cfg, %s, %s, %s, %t);",
			naming.Quote(h.SchemeName), naming.Quote(h.HeaderName), naming.Quote(string(h.Kind)), h.Required)
	}
}

func (w *bodyWriter) writeHeaderParams() {
	base := groupBase(groupHeaders, w.md.Parameters.Header)
	for _, p := range w.md.Parameters.Header {
		w.line(0, "setHeader(headers, %s, %s);", naming.Quote(p.Name), naming.Accessor(base, p.Name))
	}
}

func (w *bodyWriter) writeURL() {
	path := templatePath(w.md.Path, w.md.Parameters.Path)
	if len(w.md.Parameters.Query) == 0 {
		w.line(0, "const url = `${cfg.baseUrl}%s`;", path)
		return
	}
	base := groupBase(groupQuery, w.md.Parameters.Query)
	w.line(0, "const query = new URLSearchParams();")
	for _, p := range w.md.Parameters.Query {
		w.line(0, "appendQuery(query, %s, %s);", naming.Quote(p.Name), naming.Accessor(base, p.Name))
	}
	w.line(0, "const search = query.toString();")
	w.line(0, "const url = `${cfg.baseUrl}%s${search ? `?${search}` : \"\"}`;", path)
}

// templatePath turns a path template into template literal text with every
// declared path parameter interpolated and URI-encoded.
func templatePath(path string, params []operation.Parameter) string {
	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p.Name] = true
	}
	var b, literal strings.Builder
	rest := path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		name := rest[open+1 : open+end]
		if declared[name] {
			literal.WriteString(rest[:open])
			b.WriteString(templateText(literal.String()))
			literal.Reset()
			b.WriteString("${encodeURIComponent(String(" + naming.Accessor("params."+groupPath, name) + "))}")
		} else {
			literal.WriteString(rest[:open+end+1])
		}
		rest = rest[open+end+1:]
	}
	literal.WriteString(rest)
	b.WriteString(templateText(literal.String()))
	return b.String()
}

func (w *bodyWriter) writeRequestBody() {
	b := w.md.Body
	if b == nil {
		return
	}
	if !b.HasMap() {
		w.writeContentTypeHeader(0, b.ContentType)
		w.line(0, "const body = %s;", serializeExpr(b.ContentType, b.Required))
		return
	}
	w.line(0, "const contentType: string = params.contentType ?? %s;", naming.Quote(b.ContentType))
	w.line(0, "let body: BodyInit | undefined;")
	w.line(0, "switch (contentType) {")
	for _, ct := range b.ContentTypes {
		w.line(1, "case %s:", naming.Quote(ct))
		w.writeContentTypeHeader(2, ct)
		w.line(2, "body = %s;", serializeExpr(ct, b.Required))
		w.line(2, "break;")
	}
	w.line(0, "}")
}

// writeContentTypeHeader sets Content-Type, except for multipart bodies
// whose boundary is chosen by fetch.
func (w *bodyWriter) writeContentTypeHeader(depth int, ct string) {
	if contenttype.Essence(ct) == contenttype.MultipartForm {
		return
	}
	w.line(depth, "headers[\"Content-Type\"] = %s;", naming.Quote(ct))
}

// serializeExpr is the expression that encodes params.body for ct.
func serializeExpr(ct string, required bool) string {
	var expr string
	switch e := contenttype.Essence(ct); {
	case contenttype.IsJSONLike(e):
		expr = "JSON.stringify(params.body)"
	case e == contenttype.FormURLEncoded:
		expr = "encodeForm(params.body)"
	case e == contenttype.MultipartForm:
		expr = "encodeMultipart(params.body)"
	case contenttype.IsText(e):
		expr = "String(params.body)"
	default:
		expr = "params.body as unknown as BodyInit"
	}
	if required {
		return expr
	}
	return "params.body === undefined ? undefined : " + expr
}

func (w *bodyWriter) writeAccept() {
	cts := w.md.Responses.ContentTypes()
	if len(cts) == 0 {
		return
	}
	accept := naming.Quote(strings.Join(cts, ", "))
	if w.md.Responses.HasMap() {
		w.line(0, "headers[\"Accept\"] = params.accept ?? %s;", accept)
		return
	}
	w.line(0, "headers[\"Accept\"] = %s;", accept)
}

func (w *bodyWriter) writeFetch() {
	init := "{ method: " + naming.Quote(w.md.Method) + ", headers }"
	if w.md.Body != nil {
		init = "{ method: " + naming.Quote(w.md.Method) + ", headers, body }"
	}
	w.line(0, "const response = await cfg.fetch(url, %s);", init)
}

func (w *bodyWriter) writeDispatch() {
	statuses := w.md.Responses.Statuses
	if len(statuses) == 0 {
		w.writeDefault(0)
		return
	}
	w.line(0, "switch (response.status) {")
	for _, s := range statuses {
		w.writeStatus(s)
	}
	w.line(1, "default:")
	w.writeDefault(2)
	w.line(0, "}")
}

func (w *bodyWriter) writeStatus(s operation.StatusResponse) {
	if !s.HasContent() {
		w.line(1, "case %d:", s.StatusCode)
		w.line(2, "return { status: %d, data: undefined, response };", s.StatusCode)
		return
	}
	w.line(1, "case %d: {", s.StatusCode)
	if s.Strategy.RequiresRuntimeContentTypeCheck && len(s.Variants) > 1 {
		w.line(2, "const responseType = response.headers.get(\"Content-Type\") ?? \"\";")
		for _, v := range s.Variants[1:] {
			w.line(2, "if (matchesContentType(responseType, %s)) {", naming.Quote(v.ContentType))
			w.writeReturn(3, s.StatusCode, v)
			w.line(2, "}")
		}
	}
	primary, _ := s.Primary()
	w.writeReturn(2, s.StatusCode, primary)
	w.line(1, "}")
}

func (w *bodyWriter) writeReturn(depth, status int, v operation.ContentVariant) {
	w.line(depth, "const data = %s;", w.dataExpr(v))
	w.line(depth, "return { status: %d, data, response };", status)
}

// dataExpr reads the response body for one variant: validated against its
// schema, cast to the declared type, or left unknown.
func (w *bodyWriter) dataExpr(v operation.ContentVariant) string {
	var read string
	switch {
	case contenttype.IsJSONLike(v.ContentType):
		read = "await response.json()"
	case contenttype.IsText(v.ContentType):
		read = "await response.text()"
	default:
		read = "await response.blob()"
	}
	switch {
	case v.UseValidation:
		name := naming.ValidatorName(v.TypeName)
		w.validators[name] = true
		return name + ".parse(" + read + ")"
	case !v.HasSchema:
		return read
	case contenttype.IsJSONLike(v.ContentType):
		return "(" + read + ") as " + v.TypeName
	default:
		return "(" + read + ") as unknown as " + v.TypeName
	}
}

func (w *bodyWriter) writeDefault(depth int) {
	if w.opts.UnknownResponseMode {
		w.line(depth, "return { status: response.status, data: await readBody(response), response, unknown: true };")
		return
	}
	w.line(depth, "throw new UnexpectedStatusError(response.status, response);")
}

// groupBase is the accessor base of a parameter group; optional groups use
// optional chaining.
func groupBase(group string, params []operation.Parameter) string {
	if anyRequired(params) {
		return "params." + group
	}
	return "params." + group + "?."
}
