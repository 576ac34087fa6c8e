package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/openapi"
	"github.com/erraggy/opgen/operation"
)

// Names of the emitted files.
const (
	apiResponseFile = "api-response.ts"
	configFile      = "config.ts"
	errorsFile      = "errors.ts"
	indexFile       = "index.ts"
	operationsFile  = "operations.ts"
	schemasFile     = "schemas.ts"
	manifestFile    = "opgen-manifest.yaml"
)

// runtimeHelpers maps each helper a generated function may call to the
// module that exports it.
var runtimeHelpers = []struct {
	name   string
	module string
	isType bool
}{
	{"ApiResponse", "./api-response", true},
	{"UnknownApiResponse", "./api-response", true},
	{"matchesContentType", "./api-response", false},
	{"readBody", "./api-response", false},
	{"ApiConfig", "./config", true},
	{"appendQuery", "./config", false},
	{"encodeForm", "./config", false},
	{"encodeMultipart", "./config", false},
	{"resolveConfig", "./config", false},
	{"setCredential", "./config", false},
	{"setHeader", "./config", false},
	{"UnexpectedStatusError", "./errors", false},
}

// emit renders every output file, sorted by name. schemas.ts is rendered
// first because it can still add issues that the manifest counts.
func (g *Generator) emit(doc *openapi.Document, kept []outcome, result *GenerateResult) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, 7)

	buf := getTemplateBuffer(len(kept))
	types, err := g.writeSchemas(buf, doc, kept, result)
	if err != nil {
		putTemplateBuffer(buf, len(kept))
		return nil, err
	}
	files = append(files, GeneratedFile{Name: schemasFile, Content: bytes.Clone(buf.Bytes())})
	result.GeneratedTypes = types

	buf.Reset()
	writeOperations(buf, doc, kept)
	files = append(files, GeneratedFile{Name: operationsFile, Content: bytes.Clone(buf.Bytes())})
	putTemplateBuffer(buf, len(kept))

	scaffold, err := g.scaffolding(doc)
	if err != nil {
		return nil, err
	}
	files = append(files, scaffold...)

	updateCounts(result)
	manifest, err := result.Manifest().Encode()
	if err != nil {
		return nil, fmt.Errorf("generator: failed to encode manifest: %w", err)
	}
	files = append(files, GeneratedFile{Name: manifestFile, Content: manifest})

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// writeHeader writes the generated-code banner shared by every TypeScript file.
func writeHeader(buf *bytes.Buffer, doc *openapi.Document) {
	buf.WriteString("// Code generated by opgen. DO NOT EDIT.\n")
	if title := sourceLine(doc); title != "" {
		buf.WriteString("// Source: " + title + "\n")
	}
	buf.WriteString("\n")
}

func sourceLine(doc *openapi.Document) string {
	title := strings.Join(strings.Fields(doc.Info.Title), " ")
	version := strings.Join(strings.Fields(doc.Info.Version), " ")
	switch {
	case title != "" && version != "":
		return title + " " + version
	default:
		return title + version
	}
}

// writeOperations renders operations.ts: the imports the fragments need,
// then each fragment in document order separated by a blank line.
func writeOperations(buf *bytes.Buffer, doc *openapi.Document, kept []outcome) {
	bodies := make([]string, len(kept))
	var typeNames, validators []string
	for i, o := range kept {
		bodies[i] = o.fragment.String()
		typeNames = append(typeNames, o.fragment.TypeImports...)
		validators = append(validators, o.fragment.ValidatorImports...)
	}
	text := strings.Join(bodies, "\n")

	writeHeader(buf, doc)
	writeHelperImports(buf, text)
	writeImport(buf, true, dedupe(typeNames), "./schemas")
	writeImport(buf, false, dedupe(validators), "./schemas")
	if len(bodies) > 0 {
		buf.WriteString("\n")
		buf.WriteString(text)
	}
}

// writeHelperImports imports the runtime helpers that text actually uses.
func writeHelperImports(buf *bytes.Buffer, text string) {
	modules := []string{"./api-response", "./config", "./errors"}
	for _, module := range modules {
		var types, values []string
		for _, h := range runtimeHelpers {
			if h.module != module || !usesIdentifier(text, h.name) {
				continue
			}
			if h.isType {
				types = append(types, h.name)
			} else {
				values = append(values, h.name)
			}
		}
		writeImport(buf, true, types, module)
		writeImport(buf, false, values, module)
	}
}

func writeImport(buf *bytes.Buffer, typeOnly bool, names []string, module string) {
	if len(names) == 0 {
		return
	}
	keyword := "import"
	if typeOnly {
		keyword = "import type"
	}
	fmt.Fprintf(buf, "%s { %s } from %s;\n", keyword, strings.Join(names, ", "), naming.Quote(module))
}

// usesIdentifier reports whether name occurs in text as a whole identifier.
func usesIdentifier(text, name string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], name)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(name)
		if !identRune(text, start-1) && !identRune(text, end) {
			return true
		}
		i = end
	}
}

func identRune(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	c := text[i]
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := append([]string(nil), names...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

// baseURL is the configured base URL, else the first server URL.
func (g *Generator) baseURL(doc *openapi.Document) string {
	if g.BaseURL != "" {
		return strings.TrimSuffix(g.BaseURL, "/")
	}
	if len(doc.Servers) > 0 {
		return strings.TrimSuffix(doc.Servers[0].URL, "/")
	}
	return ""
}

// scaffoldData feeds the scaffolding templates.
type scaffoldData struct {
	Source      string
	BaseURL     string
	AuthHeaders []string
	Modules     []string
}

func (g *Generator) scaffolding(doc *openapi.Document) ([]GeneratedFile, error) {
	data := scaffoldData{
		Source:      sourceLine(doc),
		BaseURL:     g.baseURL(doc),
		AuthHeaders: operation.ExtractAuthHeaders(doc),
		Modules:     []string{"./api-response", "./config", "./errors", "./operations", "./schemas"},
	}
	names := []struct{ file, tmpl string }{
		{apiResponseFile, "api-response.ts.tmpl"},
		{configFile, "config.ts.tmpl"},
		{errorsFile, "errors.ts.tmpl"},
		{indexFile, "index.ts.tmpl"},
	}
	files := make([]GeneratedFile, 0, len(names))
	for _, n := range names {
		content, err := executeTemplate(n.tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("generator: failed to render %s: %w", n.file, err)
		}
		files = append(files, GeneratedFile{Name: n.file, Content: content})
	}
	return files, nil
}
