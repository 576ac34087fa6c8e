package generator

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/erraggy/opgen/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates *template.Template

func init() {
	var err error
	templates, err = template.New("").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}
}

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"quote": naming.Quote,
	"join":  strings.Join,
	// union renders names as a union of string literal types, or never.
	"union": func(names []string) string {
		if len(names) == 0 {
			return "never"
		}
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = naming.Quote(n)
		}
		return strings.Join(quoted, " | ")
	},
	"quoteAll": func(names []string) string {
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = naming.Quote(n)
		}
		return strings.Join(quoted, ", ")
	},
}

// executeTemplate executes a template by name and returns its bytes
func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
