package generator

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// Manifest summarizes a generation run. It holds no timestamps or run ids so
// that regenerating an unchanged document reproduces it byte for byte.
type Manifest struct {
	Generator  string             `yaml:"generator"`
	Source     ManifestSource     `yaml:"source"`
	Files      []string           `yaml:"files"`
	Operations []ManifestOperation `yaml:"operations"`
	Issues     ManifestIssues     `yaml:"issues"`
}

// ManifestSource identifies the input document.
type ManifestSource struct {
	Title   string `yaml:"title,omitempty"`
	Version string `yaml:"version,omitempty"`
	OpenAPI string `yaml:"openapi,omitempty"`
}

// ManifestOperation is one generated function.
type ManifestOperation struct {
	OperationID string `yaml:"operationId"`
	Function    string `yaml:"function"`
	Method      string `yaml:"method"`
	Path        string `yaml:"path"`
	Params      string `yaml:"params"`
	Result      string `yaml:"result"`
	Deprecated  bool   `yaml:"deprecated,omitempty"`
	File        string `yaml:"file"`
}

// ManifestIssues counts issues by severity.
type ManifestIssues struct {
	Warnings int `yaml:"warnings"`
	Errors   int `yaml:"errors"`
	Critical int `yaml:"critical"`
}

// Manifest builds the manifest of the result. The manifest lists itself
// among the files.
func (r *GenerateResult) Manifest() Manifest {
	m := Manifest{
		Generator: "opgen",
		Source: ManifestSource{
			Title:   r.Title,
			Version: r.Version,
			OpenAPI: r.SourceVersion,
		},
		Files: []string{apiResponseFile, configFile, errorsFile, indexFile, manifestFile, operationsFile, schemasFile},
		Issues: ManifestIssues{
			Warnings: r.WarningCount,
			Errors:   r.ErrorCount,
			Critical: r.CriticalCount,
		},
		Operations: make([]ManifestOperation, 0, len(r.Operations)),
	}
	for _, op := range r.Operations {
		m.Operations = append(m.Operations, ManifestOperation{
			OperationID: op.OperationID,
			Function:    op.FunctionName,
			Method:      op.Method,
			Path:        op.Path,
			Params:      op.ParamsType,
			Result:      op.ResultType,
			Deprecated:  op.Deprecated,
			File:        op.File,
		})
	}
	return m
}

// Encode renders the manifest as YAML with two-space indentation.
func (m Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
