package operation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/openapi"
)

func TestNameContext(t *testing.T) {
	tests := []struct {
		ctx      NameContext
		name     string
		location string
	}{
		{RequestContext("CreateUser"), "CreateUserRequest", "requestBody"},
		{ResponseContext("GetUser", 404), "GetUser404Response", "responses.404"},
		{NameContext{OperationName: "CreateUser", MediaSuffix: "Xml"}, "CreateUserRequestXml", "requestBody"},
		{NameContext{OperationName: "GetUser", StatusCode: 200, MediaSuffix: "Csv"}, "GetUser200ResponseCsv", "responses.200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.ctx.InlineName())
			assert.Equal(t, tt.location, tt.ctx.Location())
		})
	}
}

func TestResolveTypeName(t *testing.T) {
	doc := &openapi.Document{Components: openapi.Components{Schemas: map[string]*openapi.SchemaNode{
		"user-profile.v2": openapi.InlineNode(&openapi.Schema{Types: []string{openapi.TypeObject}}),
	}}}

	t.Run("component reference", func(t *testing.T) {
		res, err := ResolveTypeName(openapi.RefNode("#/components/schemas/user-profile.v2"), doc, RequestContext("Op"))
		require.NoError(t, err)
		assert.Equal(t, "UserProfileV2", res.TypeName)
		assert.Equal(t, []string{"UserProfileV2"}, res.Imports)
		assert.Nil(t, res.Inline)
	})

	t.Run("inline schema", func(t *testing.T) {
		node := openapi.InlineNode(&openapi.Schema{Types: []string{openapi.TypeString}})
		res, err := ResolveTypeName(node, doc, ResponseContext("GetUser", 404))
		require.NoError(t, err)
		assert.Equal(t, "GetUser404Response", res.TypeName)
		assert.Equal(t, []string{"GetUser404Response"}, res.Imports)
		require.NotNil(t, res.Inline)
		assert.Same(t, node, res.Inline.Schema)
	})

	t.Run("inline name ignores content", func(t *testing.T) {
		a, err := ResolveTypeName(openapi.InlineNode(&openapi.Schema{Types: []string{openapi.TypeString}}), doc, ResponseContext("GetUser", 404))
		require.NoError(t, err)
		b, err := ResolveTypeName(openapi.InlineNode(&openapi.Schema{Types: []string{openapi.TypeObject}}), doc, ResponseContext("GetUser", 404))
		require.NoError(t, err)
		assert.Equal(t, a.TypeName, b.TypeName)
	})

	t.Run("nil schema", func(t *testing.T) {
		res, err := ResolveTypeName(nil, doc, RequestContext("Op"))
		require.NoError(t, err)
		assert.Empty(t, res.TypeName)
		assert.Empty(t, res.Imports)
	})

	t.Run("unsupported reference", func(t *testing.T) {
		_, err := ResolveTypeName(openapi.RefNode("#/components/responses/NotFound"), doc, ResponseContext("Op", 404))
		require.Error(t, err)
		var refErr *oaserrors.UnsupportedReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "responses.404", refErr.Location)
	})

	t.Run("missing component", func(t *testing.T) {
		_, err := ResolveTypeName(openapi.RefNode("#/components/schemas/Nope"), doc, ResponseContext("Op", 200))
		require.Error(t, err)
		var missing *oaserrors.MissingReferenceError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "#/components/schemas/Nope", missing.Ref)
		assert.Equal(t, "responses.200", missing.Location)
	})

	t.Run("nested missing component", func(t *testing.T) {
		node := openapi.InlineNode(&openapi.Schema{
			Types: []string{openapi.TypeArray},
			Items: openapi.RefNode("#/components/schemas/Nope"),
		})
		_, err := ResolveTypeName(node, doc, RequestContext("Op"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrMissingReference))
		assert.Contains(t, err.Error(), "requestBody")
	})

	t.Run("nested unsupported reference", func(t *testing.T) {
		node := openapi.InlineNode(&openapi.Schema{
			Types: []string{openapi.TypeObject},
			Properties: map[string]*openapi.SchemaNode{
				"owner": openapi.RefNode("https://example.com/owner.json"),
			},
		})
		_, err := ResolveTypeName(node, doc, RequestContext("Op"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedReference))
		assert.Contains(t, err.Error(), "requestBody")
	})
}

func TestMergeImports(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, mergeImports([]string{"C", "A"}, nil, []string{"B", "A"}))
	assert.Empty(t, mergeImports())
}
