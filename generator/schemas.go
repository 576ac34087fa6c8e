package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/opgen/internal/issues"
	"github.com/erraggy/opgen/internal/maputil"
	"github.com/erraggy/opgen/internal/naming"
	"github.com/erraggy/opgen/openapi"
	"github.com/erraggy/opgen/schemagen"
)

// schemaEntry is one declaration of schemas.ts.
type schemaEntry struct {
	name string
	node *openapi.SchemaNode
	// path locates the schema in the document for issues.
	path string
}

// componentSchemaNames returns the sanitized names of all component schemas.
func componentSchemaNames(doc *openapi.Document) map[string]bool {
	names := make(map[string]bool, len(doc.Components.Schemas))
	for raw := range doc.Components.Schemas {
		names[naming.SanitizeIdentifier(raw)] = true
	}
	return names
}

// componentEntries keys the component schemas by sanitized name. When two
// raw names sanitize to the same identifier the first in sorted order wins.
func componentEntries(doc *openapi.Document, result *GenerateResult) map[string]schemaEntry {
	entries := make(map[string]schemaEntry, len(doc.Components.Schemas))
	for _, raw := range maputil.SortedKeys(doc.Components.Schemas) {
		name := naming.SanitizeIdentifier(raw)
		path := issues.FormatPath("components", "schemas", raw)
		if prev, ok := entries[name]; ok {
			result.Issues = append(result.Issues, GenerateIssue{
				Path:     path,
				Message:  fmt.Sprintf("schema name %s is already used by %s; schema skipped", name, prev.path),
				Severity: SeverityWarning,
			})
			continue
		}
		entries[name] = schemaEntry{name: name, node: doc.Components.Schemas[raw], path: path}
	}
	return entries
}

// inlineEntries collects the inline schemas of the kept operations, sorted
// by name.
func inlineEntries(kept []outcome) []schemaEntry {
	var out []schemaEntry
	for _, o := range kept {
		md := o.metadata
		for _, s := range md.InlineSchemas {
			out = append(out, schemaEntry{
				name: s.Name,
				node: s.Schema,
				path: issues.FormatPath("paths", md.Path, strings.ToLower(md.Method)),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// schemaOrder returns component names so that every schema follows the
// schemas it references, visiting names in sorted order. References inside
// a cycle cannot all be satisfied; those are left to z.lazy.
func schemaOrder(names []string, deps map[string][]string) []string {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(names))
	order := make([]string, 0, len(names))

	var visit func(string)
	visit = func(n string) {
		if state[n] != 0 {
			return
		}
		state[n] = visiting
		for _, d := range deps[n] {
			if _, ok := deps[d]; ok {
				visit(d)
			}
		}
		state[n] = done
		order = append(order, n)
	}
	for _, n := range names {
		visit(n)
	}
	return order
}

// writeSchemas renders schemas.ts: component schemas in dependency order,
// then inline schemas by name. It returns the number of declared types.
func (g *Generator) writeSchemas(buf *bytes.Buffer, doc *openapi.Document, kept []outcome, result *GenerateResult) (int, error) {
	entries := componentEntries(doc, result)
	names := maputil.SortedKeys(entries)

	deps := make(map[string][]string, len(names))
	for _, n := range names {
		res, err := schemagen.New().Compile(entries[n].node)
		if err != nil {
			if err := g.schemaFailure(result, entries[n], err); err != nil {
				return 0, err
			}
			delete(entries, n)
			continue
		}
		deps[n] = res.TypeReferences
	}

	inline := inlineEntries(kept)
	for _, e := range inline {
		res, err := schemagen.New().TypeExpr(e.node)
		if err != nil {
			continue
		}
		deps[e.name] = res.TypeReferences
	}
	reportUndefined(deps, entries, inline, result)

	emitted := make(map[string]bool, len(entries)+len(inline))
	c := &schemagen.Compiler{Lazy: func(name string) bool { return !emitted[name] }}

	writeHeader(buf, doc)
	buf.WriteString("import { z } from \"zod\";\n")

	count := 0
	declare := func(e schemaEntry) error {
		if err := writeSchema(buf, c, e, emitted); err != nil {
			return g.schemaFailure(result, e, err)
		}
		emitted[e.name] = true
		count++
		return nil
	}
	for _, n := range schemaOrder(names, deps) {
		if _, ok := entries[n]; !ok {
			continue
		}
		if err := declare(entries[n]); err != nil {
			return 0, err
		}
	}
	for _, e := range inline {
		if err := declare(e); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// writeSchema declares one validator and its type. A schema that refers to
// something not yet declared (itself included) gets an explicit type so the
// z.lazy reference can be typed.
func writeSchema(buf *bytes.Buffer, c *schemagen.Compiler, e schemaEntry, emitted map[string]bool) error {
	v, err := c.Compile(e.node)
	if err != nil {
		return err
	}
	lazy := false
	for _, r := range v.TypeReferences {
		if !emitted[r] {
			lazy = true
			break
		}
	}
	validator := naming.ValidatorName(e.name)

	buf.WriteString("\n")
	writeSchemaDoc(buf, e.node)
	if !lazy {
		fmt.Fprintf(buf, "export const %s = %s;\n", validator, v.Code)
		fmt.Fprintf(buf, "export type %s = z.infer<typeof %s>;\n", e.name, validator)
		return nil
	}
	t, err := c.TypeExpr(e.node)
	if err != nil {
		return err
	}
	fmt.Fprintf(buf, "export type %s = %s;\n", e.name, t.Code)
	fmt.Fprintf(buf, "export const %s: z.ZodType<%s> = %s;\n", validator, e.name, v.Code)
	return nil
}

func writeSchemaDoc(buf *bytes.Buffer, node *openapi.SchemaNode) {
	if node == nil || node.Inline == nil {
		return
	}
	s := node.Inline
	text := strings.Join(strings.Fields(s.Description), " ")
	text = strings.ReplaceAll(text, "*/", `*\/`)
	switch {
	case text != "" && s.Deprecated:
		buf.WriteString("/** " + text + " @deprecated */\n")
	case text != "":
		buf.WriteString("/** " + text + " */\n")
	case s.Deprecated:
		buf.WriteString("/** @deprecated */\n")
	}
}

// reportUndefined records references to schemas that are never declared.
func reportUndefined(deps map[string][]string, entries map[string]schemaEntry, inline []schemaEntry, result *GenerateResult) {
	declared := make(map[string]bool, len(entries)+len(inline))
	paths := make(map[string]string, len(entries)+len(inline))
	for n, e := range entries {
		declared[n] = true
		paths[n] = e.path
	}
	for _, e := range inline {
		declared[e.name] = true
		paths[e.name] = e.path
	}
	for _, n := range maputil.SortedKeys(deps) {
		for _, r := range deps[n] {
			if declared[r] {
				continue
			}
			result.Issues = append(result.Issues, GenerateIssue{
				Path:     paths[n],
				Message:  fmt.Sprintf("schema %s references undefined schema %s", n, r),
				Severity: SeverityError,
			})
		}
	}
}

// schemaFailure aborts the run, or with ContinueOnError records a critical
// issue so the caller can skip the schema.
func (g *Generator) schemaFailure(result *GenerateResult, e schemaEntry, err error) error {
	if !g.ContinueOnError {
		return fmt.Errorf("generator: schema %s: %w", e.name, err)
	}
	result.Issues = append(result.Issues, GenerateIssue{
		Path:     e.path,
		Message:  fmt.Sprintf("schema %s skipped: %v", e.name, err),
		Severity: SeverityCritical,
	})
	return nil
}
