package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/opgen/internal/severity"
)

func TestCheckValidDocument(t *testing.T) {
	src := `openapi: 3.0.3
info:
  title: Valid
  version: "1"
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "204":
          description: ok
`
	assert.Empty(t, Check(context.Background(), []byte(src)))
}

func TestCheckReportsWarnings(t *testing.T) {
	src := `openapi: 3.0.3
info:
  title: Missing responses
  version: "1"
paths:
  /ping:
    get:
      operationId: ping
      parameters:
        - name: id
          in: path
          schema:
            type: string
      responses:
        "204":
          description: ok
`
	found := Check(context.Background(), []byte(src))
	require.NotEmpty(t, found)
	for _, is := range found {
		assert.Equal(t, severity.SeverityWarning, is.Severity)
		assert.Contains(t, is.Message, "validation")
	}
}

func TestCheckUnloadable(t *testing.T) {
	found := Check(context.Background(), []byte("openapi: [unclosed"))
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "could not load")
	assert.Equal(t, severity.SeverityWarning, found[0].Severity)
}

func TestToIssuesFlattensMultiError(t *testing.T) {
	err := openapi3.MultiError{errors.New("first\ndetail"), errors.New("second")}
	found := toIssues(err)
	require.Len(t, found, 2)
	assert.Equal(t, "validation: first", found[0].Message)
	assert.Equal(t, "first\ndetail", found[0].Context)
	assert.Equal(t, "validation: second", found[1].Message)
}
