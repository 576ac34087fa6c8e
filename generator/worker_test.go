package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/opgen/oaserrors"
	"github.com/erraggy/opgen/operation"
)

func TestInlineCollision(t *testing.T) {
	md := func(names ...string) *operation.Metadata {
		m := &operation.Metadata{OperationID: "createUser", Method: "POST", Path: "/users"}
		for _, n := range names {
			m.InlineSchemas = append(m.InlineSchemas, operation.InlineSchema{Name: n})
		}
		return m
	}
	tests := []struct {
		name    string
		md      *operation.Metadata
		taken   map[string]bool
		wantErr string
	}{
		{name: "distinct", md: md("CreateUserRequest", "CreateUserRequestXml"), taken: map[string]bool{"User": true}},
		{name: "component", md: md("CreateUserRequest"), taken: map[string]bool{"CreateUserRequest": true}, wantErr: "CreateUserRequest"},
		{name: "same operation", md: md("CreateUserRequestXml", "CreateUserRequestXml"), taken: map[string]bool{}, wantErr: "CreateUserRequestXml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := inlineCollision(tt.md, tt.taken)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var opErr *oaserrors.OperationError
			if assert.True(t, errors.As(err, &opErr)) {
				assert.Equal(t, "createUser", opErr.OperationID)
			}
			assert.Contains(t, err.Error(), "inline schema name "+tt.wantErr+" is already declared")
		})
	}
}
