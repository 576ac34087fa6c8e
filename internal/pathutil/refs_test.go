package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentName(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		prefix string
		want   string
		ok     bool
	}{
		{"schema", "#/components/schemas/User", RefPrefixSchemas, "User", true},
		{"escaped slash", "#/components/schemas/a~1b", RefPrefixSchemas, "a/b", true},
		{"escaped tilde", "#/components/schemas/a~0b", RefPrefixSchemas, "a~b", true},
		{"nested pointer", "#/components/schemas/User/properties/id", RefPrefixSchemas, "", false},
		{"wrong prefix", "#/components/parameters/Limit", RefPrefixSchemas, "", false},
		{"empty name", "#/components/schemas/", RefPrefixSchemas, "", false},
		{"external", "other.yaml#/components/schemas/User", RefPrefixSchemas, "", false},
		{"parameter", "#/components/parameters/Limit", RefPrefixParameters3, "Limit", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComponentName(tt.ref, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefBuilders(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", SchemaRef("Pet"))
	assert.Equal(t, "#/components/parameters/Limit", ParameterRef("Limit"))
	assert.True(t, IsLocal("#/components/schemas/Pet"))
	assert.False(t, IsLocal("pet.yaml"))
}
