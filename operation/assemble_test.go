package operation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/opgen/internal/severity"
	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

func TestAssembleCreateUser(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	md := assembleOp(t, doc, "/users", openapi.MethodPost, DefaultOptions())

	assert.Equal(t, "createUser", md.FunctionName)
	assert.Equal(t, "CreateUser", md.OperationName)
	assert.Equal(t, "POST", md.Method)
	assert.Equal(t, "Create a user", md.Summary)

	require.NotNil(t, md.Body)
	assert.True(t, md.Body.Required)
	assert.Equal(t, "application/json", md.Body.ContentType)
	assert.Equal(t, "User", md.Body.TypeName)
	assert.True(t, md.Body.HasMap())
	assert.Equal(t, map[string]string{
		"application/json":                  "User",
		"application/x-www-form-urlencoded": "CreateUserRequest",
	}, md.Body.RequestMap)

	assert.Equal(t, "ApiResponse<201, User> | ApiResponse<400, CreateUser400Response>", md.Responses.Union)
	assert.False(t, md.Responses.HasMap())
	assert.Equal(t, []string{"CreateUser400Response", "CreateUserRequest", "User"}, md.TypeImports)

	require.Len(t, md.InlineSchemas, 2)
	assert.Equal(t, "CreateUser400Response", md.InlineSchemas[0].Name)
	assert.Equal(t, "CreateUserRequest", md.InlineSchemas[1].Name)

	assert.False(t, md.OverridesSecurity)
	assert.Equal(t, []SecurityHeader{
		{SchemeName: "bearerAuth", HeaderName: "Authorization", Required: true, Kind: HeaderKindBearer},
	}, md.SecurityHeaders)
}

func TestAssembleWithoutContentTypeMaps(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	md := assembleOp(t, doc, "/users", openapi.MethodPost, Options{})

	require.NotNil(t, md.Body)
	assert.Nil(t, md.Body.RequestMap)
	assert.False(t, md.Body.HasMap())
	assert.Equal(t, "User", md.Body.TypeName)
	assert.Equal(t, []string{"CreateUser400Response", "User"}, md.TypeImports)
}

func TestAssembleDeterministic(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	a := NewAssembler(doc, DefaultOptions())

	first, err := a.AssembleAll()
	require.NoError(t, err)
	second, err := a.AssembleAll()
	require.NoError(t, err)

	b1, err := MarshalMetadata(first)
	require.NoError(t, err)
	b2, err := MarshalMetadata(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))

	reparsed := NewAssembler(parseDoc(t, storeDoc), DefaultOptions())
	third, err := reparsed.AssembleAll()
	require.NoError(t, err)
	b3, err := MarshalMetadata(third)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b3))
}

func TestAssembleAllOrder(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	all, err := NewAssembler(doc, DefaultOptions()).AssembleAll()
	require.NoError(t, err)

	var ids []string
	for _, md := range all {
		ids = append(ids, md.OperationID)
	}
	assert.Equal(t, []string{"getReport", "uploadFile", "listUsers", "createUser", "getUser", "deleteUser"}, ids)
}

func TestAssembleID(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	a := NewAssembler(doc, DefaultOptions())

	md, err := a.AssembleID("getUser")
	require.NoError(t, err)
	assert.Equal(t, "GET", md.Method)
	assert.Equal(t, "getUser", md.FunctionName)

	ref, ok := Find(doc, "deleteUser")
	require.True(t, ok)
	assert.Equal(t, openapi.MethodDelete, ref.Method)

	_, err = a.AssembleID("noSuchOperation")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `operation "noSuchOperation" not found`)
}

func TestAssembleMissingOperationID(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	op := &openapi.Operation{Summary: "anonymous"}

	md, err := NewAssembler(doc, DefaultOptions()).Assemble("/anon", openapi.MethodGet, nil, op)
	require.Error(t, err)
	assert.Nil(t, md)
	assert.True(t, errors.Is(err, oaserrors.ErrMissingOperationID))

	var opErr *oaserrors.OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "GET", opErr.Method)
	assert.Equal(t, "/anon", opErr.Path)
	assert.Empty(t, opErr.OperationID)
}

func TestAssembleUnsupportedReference(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	op := &openapi.Operation{
		OperationID: "brokenOp",
		RequestBody: &openapi.RequestBody{Content: map[string]*openapi.MediaType{
			"application/json": {Schema: openapi.RefNode("#/definitions/User")},
		}},
	}

	_, err := NewAssembler(doc, DefaultOptions()).Assemble("/broken", openapi.MethodPost, nil, op)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedReference))
	assert.Contains(t, err.Error(), `operation brokenOp (POST /broken): requestBody references unsupported $ref "#/definitions/User"`)

	var opErr *oaserrors.OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "brokenOp", opErr.OperationID)
}

func TestAssembleMissingComponent(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	op := &openapi.Operation{
		OperationID: "lost",
		Parameters:  []*openapi.Parameter{{Ref: "#/components/parameters/Nope"}},
	}

	_, err := NewAssembler(doc, DefaultOptions()).Assemble("/lost", openapi.MethodGet, nil, op)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMissingReference))
	assert.Contains(t, err.Error(), "operation lost (GET /lost)")
}

func TestAssembleMissingSchemaComponent(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	nope := openapi.RefNode("#/components/schemas/Nope")

	tests := []struct {
		name     string
		op       *openapi.Operation
		location string
	}{
		{
			name: "response schema",
			op: &openapi.Operation{
				OperationID: "lost",
				Responses: map[string]*openapi.Response{
					"200": {Content: map[string]*openapi.MediaType{"application/json": {Schema: nope}}},
				},
			},
			location: "responses.200",
		},
		{
			name: "request body schema",
			op: &openapi.Operation{
				OperationID: "lost",
				RequestBody: &openapi.RequestBody{Content: map[string]*openapi.MediaType{
					"application/json": {Schema: nope},
				}},
			},
			location: "requestBody",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssembler(doc, DefaultOptions()).Assemble("/lost", openapi.MethodPost, nil, tt.op)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrMissingReference))

			var missing *oaserrors.MissingReferenceError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, "#/components/schemas/Nope", missing.Ref)
			assert.Equal(t, tt.location, missing.Location)
			assert.Contains(t, err.Error(), "operation lost (POST /lost)")
		})
	}
}

func TestAssembleDegenerateOperation(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	op := &openapi.Operation{OperationID: "ping"}

	md, err := NewAssembler(doc, DefaultOptions()).Assemble("/ping", openapi.MethodGet, nil, op)
	require.NoError(t, err)
	assert.True(t, md.Parameters.Empty())
	assert.Nil(t, md.Body)
	assert.Empty(t, md.Responses.Statuses)
	assert.Equal(t, "never", md.Responses.Union)
	assert.Empty(t, md.TypeImports)
}

func TestAssembleIssuesCarryOperationContext(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	md := assembleOp(t, doc, "/users", openapi.MethodGet, DefaultOptions())

	require.Len(t, md.Issues, 2)
	for _, is := range md.Issues {
		assert.Equal(t, severity.SeverityInfo, is.Severity)
		require.NotNil(t, is.OperationContext)
		assert.Equal(t, "listUsers", is.OperationContext.OperationID)
	}
	assert.Equal(t, "paths./users.get.parameters[2]", md.Issues[0].Path)
	assert.Equal(t, "paths./users.get.responses.2XX", md.Issues[1].Path)
}

func TestReservedOperationID(t *testing.T) {
	assert.Equal(t, "delete_", FunctionNameFor("delete"))
	assert.Equal(t, "Delete", OperationNameFor("delete"))
	assert.Equal(t, "listUsers", FunctionNameFor("list-users"))
	assert.Equal(t, "ListUsers", OperationNameFor("list_users"))
}

func TestMarshalMetadata(t *testing.T) {
	doc := parseDoc(t, storeDoc)
	md := assembleOp(t, doc, "/users/{id}", openapi.MethodDelete, DefaultOptions())

	out, err := MarshalMetadata(md)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `"operationId": "deleteUser"`)
	assert.Contains(t, s, `"overridesSecurity": true`)
	assert.Contains(t, s, `"union": "ApiResponse<204, void>"`)
	assert.NotContains(t, s, "Issues")
}
