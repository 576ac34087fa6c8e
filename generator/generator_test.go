package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

func loadArchive(t testing.TB, path string) map[string]string {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)
	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}
	return files
}

func parseSource(t testing.TB, src string) openapi.ParseResult {
	t.Helper()
	result, err := openapi.ParseWithOptions(openapi.WithBytes([]byte(src)), openapi.WithSourceName("openapi.yaml"))
	require.NoError(t, err)
	return *result
}

func generatePetstore(t *testing.T, opts ...Option) (*GenerateResult, map[string]string) {
	t.Helper()
	files := loadArchive(t, "testdata/petstore.txtar")
	opts = append([]Option{WithParsed(parseSource(t, files["openapi.yaml"]))}, opts...)
	result, err := GenerateWithOptions(opts...)
	require.NoError(t, err)
	return result, files
}

func fileText(t *testing.T, result *GenerateResult, name string) string {
	t.Helper()
	f := result.GetFile(name)
	require.NotNil(t, f, "missing %s", name)
	return string(f.Content)
}

func TestGenerateGolden(t *testing.T) {
	result, files := generatePetstore(t)

	assert.True(t, result.Success)
	assert.Equal(t, "Petstore", result.Title)
	assert.Equal(t, "3.0.3", result.SourceVersion)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 4, result.GeneratedOperations)
	assert.Equal(t, 7, result.GeneratedTypes)

	var names []string
	for _, f := range result.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"api-response.ts", "config.ts", "errors.ts", "index.ts",
		"operations.ts", "opgen-manifest.yaml", "schemas.ts",
	}, names)

	assert.Equal(t, files["schemas.ts"], fileText(t, result, "schemas.ts"))
	assert.Equal(t, files["index.ts"], fileText(t, result, "index.ts"))
}

func TestGenerateOperationsFile(t *testing.T) {
	result, _ := generatePetstore(t)
	out := fileText(t, result, "operations.ts")

	assert.True(t, strings.HasPrefix(out, strings.Join([]string{
		"// Code generated by opgen. DO NOT EDIT.",
		"// Source: Petstore 1.0.0",
		"",
		`import type { ApiResponse } from "./api-response";`,
		`import type { ApiConfig } from "./config";`,
		`import { appendQuery, resolveConfig, setCredential } from "./config";`,
		`import { UnexpectedStatusError } from "./errors";`,
		"",
	}, "\n")), out)
	assert.Contains(t, out, `import { ListPets200ResponseSchema, PetSchema, TreeSchema } from "./schemas";`)
	assert.NotContains(t, out, "readBody")
	assert.NotContains(t, out, "ProblemSchema", "default responses are not dispatched")

	order := []string{"listPets", "createPet", "showPetById", "listTrees"}
	last := -1
	for _, fn := range order {
		i := strings.Index(out, "export async function "+fn)
		require.GreaterOrEqual(t, i, 0, fn)
		assert.Greater(t, i, last, "%s is out of document order", fn)
		last = i
	}

	assert.Contains(t, out, `setCredential(headers, cfg, "apiKey", "X-API-Key", "apiKey", true);`)
	listTrees := out[strings.Index(out, "export async function listTrees"):]
	assert.NotContains(t, listTrees, "setCredential", "an empty security override drops credentials")
}

func TestGenerateScaffolding(t *testing.T) {
	result, _ := generatePetstore(t)

	config := fileText(t, result, "config.ts")
	assert.Contains(t, config, `export type AuthHeaderName = "X-API-Key";`)
	assert.Contains(t, config, `export const AUTH_HEADER_NAMES: readonly AuthHeaderName[] = ["X-API-Key"];`)
	assert.Contains(t, config, `export const DEFAULT_BASE_URL = "https://petstore.example.com/v1";`)
	assert.Contains(t, config, `import { MissingCredentialError } from "./errors";`)

	errs := fileText(t, result, "errors.ts")
	for _, name := range []string{"ApiError", "UnexpectedStatusError", "MissingCredentialError"} {
		assert.Contains(t, errs, "export class "+name)
	}

	resp := fileText(t, result, "api-response.ts")
	assert.Contains(t, resp, "export type ApiResponse<S extends number, D> = {")
	assert.Contains(t, resp, "export type UnknownApiResponse = {")
	assert.Contains(t, resp, "export async function readBody(response: Response): Promise<unknown> {")

	result, _ = generatePetstore(t, WithBaseURL("http://localhost:8080/"))
	assert.Contains(t, fileText(t, result, "config.ts"), `export const DEFAULT_BASE_URL = "http://localhost:8080";`)
}

func TestGenerateNoAuthHeaders(t *testing.T) {
	src := `openapi: 3.1.0
info:
  title: Open
  version: "1"
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "204":
          description: ok
`
	result, err := GenerateWithOptions(WithParsed(parseSource(t, src)))
	require.NoError(t, err)
	config := fileText(t, result, "config.ts")
	assert.Contains(t, config, "export type AuthHeaderName = never;")
	assert.Contains(t, config, `export const DEFAULT_BASE_URL = "";`)
	assert.Equal(t, 0, result.GeneratedTypes)
}

func TestGenerateDeterministic(t *testing.T) {
	first, _ := generatePetstore(t, WithConcurrency(1))
	for _, n := range []int{0, 2, 8} {
		again, _ := generatePetstore(t, WithConcurrency(n))
		require.Len(t, again.Files, len(first.Files))
		for i := range first.Files {
			assert.Equal(t, first.Files[i].Name, again.Files[i].Name)
			assert.Equal(t, string(first.Files[i].Content), string(again.Files[i].Content), "%s differs at concurrency %d", first.Files[i].Name, n)
		}
		assert.NotEqual(t, first.RunID, again.RunID)
	}
}

func TestGenerateManifest(t *testing.T) {
	result, _ := generatePetstore(t)

	var m Manifest
	require.NoError(t, yaml.Unmarshal(result.GetFile("opgen-manifest.yaml").Content, &m))
	assert.Equal(t, "opgen", m.Generator)
	assert.Equal(t, "Petstore", m.Source.Title)
	assert.Contains(t, m.Files, "operations.ts")
	require.Len(t, m.Operations, 4)
	assert.Equal(t, ManifestOperation{
		OperationID: "showPetById",
		Function:    "showPetById",
		Method:      "GET",
		Path:        "/pets/{petId}",
		Params:      "ShowPetByIdParams",
		Result:      "ShowPetByIdResult",
		File:        "operations.ts",
	}, m.Operations[2])
	assert.Equal(t, result.Manifest(), m)
}

func TestUnknownResponseMode(t *testing.T) {
	result, _ := generatePetstore(t, WithUnknownResponseMode(true))
	out := fileText(t, result, "operations.ts")

	assert.Contains(t, out, `import type { ApiResponse, UnknownApiResponse } from "./api-response";`)
	assert.Contains(t, out, `import { readBody } from "./api-response";`)
	assert.NotContains(t, out, "UnexpectedStatusError")
}

const brokenSource = `openapi: 3.1.0
info:
  title: Broken
  version: "1"
paths:
  /a:
    get:
      responses:
        "200":
          description: no operationId
  /b:
    get:
      operationId: getB
      requestBody:
        content:
          application/json:
            schema:
              $ref: 'other.yaml#/B'
      responses:
        "200":
          description: ok
  /c:
    get:
      operationId: getC
      responses:
        "204":
          description: ok
`

func TestGenerateAbortsOnError(t *testing.T) {
	_, err := GenerateWithOptions(WithParsed(parseSource(t, brokenSource)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMissingOperationID))
	assert.Contains(t, err.Error(), "GET /a")
}

func TestGenerateContinueOnError(t *testing.T) {
	result, err := GenerateWithOptions(
		WithParsed(parseSource(t, brokenSource)),
		WithContinueOnError(true),
	)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.CriticalCount)
	assert.Equal(t, 1, result.GeneratedOperations)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, "getC", result.Operations[0].OperationID)

	var paths []string
	for _, is := range result.Issues {
		if is.Severity == SeverityCritical {
			paths = append(paths, is.Path)
		}
	}
	assert.Equal(t, []string{"paths./a.get", "paths./b.get"}, paths)

	out := fileText(t, result, "operations.ts")
	assert.Contains(t, out, "export async function getC")
	assert.NotContains(t, out, "getB")
}

func TestGenerateMissingSchemaComponent(t *testing.T) {
	src := `openapi: 3.1.0
info:
  title: Lost
  version: "1"
paths:
  /users:
    get:
      operationId: listUsers
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Nope'
  /ping:
    get:
      operationId: ping
      responses:
        "204":
          description: ok
components:
  schemas:
    User:
      type: object
`
	_, err := GenerateWithOptions(WithParsed(parseSource(t, src)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMissingReference))
	assert.Contains(t, err.Error(), "#/components/schemas/Nope")

	result, err := GenerateWithOptions(WithParsed(parseSource(t, src)), WithContinueOnError(true))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.CriticalCount)
	assert.Equal(t, 1, result.GeneratedOperations)
	assert.NotContains(t, fileText(t, result, "operations.ts"), "Nope")
}

func TestGenerateDuplicateFunctionName(t *testing.T) {
	src := `openapi: 3.1.0
info:
  title: Dupes
  version: "1"
paths:
  /first:
    get:
      operationId: get-item
      responses:
        "204":
          description: ok
  /second:
    get:
      operationId: getItem
      responses:
        "204":
          description: ok
`
	result, err := GenerateWithOptions(WithParsed(parseSource(t, src)))
	require.NoError(t, err)

	require.Len(t, result.Operations, 1)
	assert.Equal(t, "/first", result.Operations[0].Path)
	assert.Equal(t, 1, result.WarningCount)
	assert.True(t, result.Success)

	out := fileText(t, result, "operations.ts")
	assert.Equal(t, 1, strings.Count(out, "export async function getItem"))
}

func TestGenerateInlineNameCollision(t *testing.T) {
	src := `openapi: 3.1.0
info:
  title: Clash
  version: "1"
paths:
  /things:
    get:
      operationId: listThings
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  type: string
components:
  schemas:
    ListThings200Response:
      type: string
`
	_, err := GenerateWithOptions(WithParsed(parseSource(t, src)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline schema name ListThings200Response is already declared")
}

func TestGenerateInlineSubtypeCollision(t *testing.T) {
	src := `openapi: 3.1.0
info:
  title: Users
  version: "1"
paths:
  /users:
    post:
      operationId: createUser
      requestBody:
        content:
          application/json:
            schema: {type: object, properties: {name: {type: string}}}
          application/xml:
            schema: {type: object, properties: {id: {type: string}}}
          text/xml:
            schema: {type: object, properties: {key: {type: string}}}
      responses:
        "204":
          description: created
`
	result, err := GenerateWithOptions(WithParsed(parseSource(t, src)))
	require.NoError(t, err)
	assert.Zero(t, result.CriticalCount)

	schemas := fileText(t, result, "schemas.ts")
	for _, name := range []string{"CreateUserRequest", "CreateUserRequestXml", "CreateUserRequestTextXml"} {
		assert.Equal(t, 1, strings.Count(schemas, "export const "+name+"Schema "), name)
	}
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := loadArchive(t, "testdata/petstore.txtar")
	_, err := GenerateWithOptions(
		WithContext(ctx),
		WithParsed(parseSource(t, files["openapi.yaml"])),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerateIncludeInfo(t *testing.T) {
	src := `openapi: 3.1.0
info:
  title: Cookies
  version: "1"
paths:
  /me:
    get:
      operationId: me
      parameters:
        - name: session
          in: cookie
          schema:
            type: string
      responses:
        "204":
          description: ok
`
	result, err := GenerateWithOptions(WithParsed(parseSource(t, src)))
	require.NoError(t, err)
	assert.Positive(t, result.InfoCount)

	result, err = GenerateWithOptions(WithParsed(parseSource(t, src)), WithIncludeInfo(false))
	require.NoError(t, err)
	assert.Zero(t, result.InfoCount)
	for _, is := range result.Issues {
		assert.NotEqual(t, SeverityInfo, is.Severity)
	}
}

func TestApplyOptions(t *testing.T) {
	doc := &openapi.Document{OpenAPI: "3.1.0"}

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "no source", opts: nil, wantErr: "must specify an input source"},
		{name: "two sources", opts: []Option{WithFilePath("a.yaml"), WithDocument(doc)}, wantErr: "exactly one input source"},
		{name: "nil document", opts: []Option{WithDocument(nil)}, wantErr: "document cannot be nil"},
		{name: "negative concurrency", opts: []Option{WithDocument(doc), WithConcurrency(-1)}, wantErr: "cannot be negative"},
		{name: "empty priority entry", opts: []Option{WithDocument(doc), WithRequestContentTypePriority("application/json", "")}, wantErr: "media type cannot be empty"},
		{name: "nil parse result", opts: []Option{WithParsed(openapi.ParseResult{})}, wantErr: "parse result has no document"},
		{name: "valid", opts: []Option{WithDocument(doc), WithConcurrency(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := applyOptions(tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oaserrors.ErrConfig))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, cfg.concurrency)
			assert.True(t, cfg.contentTypeMaps)
		})
	}
}

func TestGenerateDocument(t *testing.T) {
	files := loadArchive(t, "testdata/petstore.txtar")
	parsed := parseSource(t, files["openapi.yaml"])

	result, err := GenerateWithOptions(WithDocument(parsed.Document))
	require.NoError(t, err)
	assert.Equal(t, "document", result.SourcePath)
	assert.Equal(t, files["schemas.ts"], fileText(t, result, "schemas.ts"))
}

func TestGenerateFilePath(t *testing.T) {
	_, err := New().Generate(context.Background(), "testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator: failed to parse document")
}

func TestGenerateValidation(t *testing.T) {
	src := `openapi: 3.0.3
info:
  title: Lenient
  version: "1"
paths:
  /items/{id}:
    get:
      operationId: getItem
      parameters:
        - name: id
          in: path
          schema:
            type: string
      responses:
        "204":
          description: ok
`
	result, err := GenerateWithOptions(WithParsed(parseSource(t, src)), WithValidation(true))
	require.NoError(t, err)
	assert.True(t, result.Success, "validation findings do not block generation")
	assert.Positive(t, result.WarningCount)
	assert.Equal(t, 1, result.GeneratedOperations)

	result, err = GenerateWithOptions(WithDocument(parseSource(t, src).Document), WithValidation(true))
	require.NoError(t, err)
	assert.Zero(t, result.WarningCount)
	require.NotEmpty(t, result.Issues)
	assert.Contains(t, result.Issues[0].Message, "validation skipped")
}
