package operation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/opgen/openapi"
)

const storeDoc = `
openapi: 3.1.0
info:
  title: Store
  version: "1.0"
servers:
  - url: https://api.example.com
security:
  - bearerAuth: []
paths:
  /users:
    get:
      operationId: listUsers
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
        - name: X-Trace-Id
          in: header
          schema:
            type: string
        - name: session
          in: cookie
          schema:
            type: string
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/User'
        2XX:
          description: any success
    post:
      operationId: createUser
      summary: Create a user
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/User'
          application/x-www-form-urlencoded:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        "400":
          description: invalid
          content:
            application/json:
              schema:
                type: object
                properties:
                  message:
                    type: string
        default:
          description: error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
  /users/{id}:
    parameters:
      - name: id
        in: path
        required: false
        schema:
          type: string
      - name: verbose
        in: query
        schema:
          type: boolean
    get:
      operationId: getUser
      parameters:
        - $ref: '#/components/parameters/Verbose'
      responses:
        "500":
          description: broken
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        "404":
          description: missing
          content:
            application/json:
              schema:
                type: object
                properties:
                  reason:
                    type: string
    delete:
      operationId: deleteUser
      security: []
      responses:
        "204":
          description: deleted
  /reports/{id}:
    get:
      operationId: getReport
      security:
        - bearerAuth: []
          apiKey: []
        - apiKey: []
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          $ref: '#/components/responses/Report'
  /uploads:
    put:
      operationId: uploadFile
      requestBody:
        content:
          application/octet-stream: {}
      responses:
        "204":
          description: stored
components:
  schemas:
    User:
      type: object
      required: [id]
      properties:
        id:
          type: string
        name:
          type: string
    Error:
      type: object
      properties:
        message:
          type: string
    Report:
      type: object
      properties:
        rows:
          type: integer
  parameters:
    Verbose:
      name: verbose
      in: query
      required: true
      schema:
        type: boolean
  responses:
    Report:
      description: a report
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Report'
        text/csv:
          schema:
            type: string
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
    apiKey:
      type: apiKey
      in: header
      name: X-API-Key
    queryKey:
      type: apiKey
      in: query
      name: key
    basic:
      type: http
      scheme: basic
`

func parseDoc(t *testing.T, src string) *openapi.Document {
	t.Helper()
	result, err := openapi.ParseWithOptions(openapi.WithBytes([]byte(src)))
	require.NoError(t, err)
	return result.Document
}

func assembleOp(t *testing.T, doc *openapi.Document, path, method string, opts Options) *Metadata {
	t.Helper()
	item := doc.Paths[path]
	require.NotNil(t, item, "path %s", path)
	op := item.Operation(method)
	require.NotNil(t, op, "%s %s", method, path)
	md, err := NewAssembler(doc, opts).Assemble(path, method, item, op)
	require.NoError(t, err)
	return md
}
