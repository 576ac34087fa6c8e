package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t, "open <path>: no such file", sanitizeError(errors.New("open /home/dev/api/openapi.yaml: no such file")))
	assert.Equal(t, "relative/api.yaml is fine", sanitizeError(errors.New("relative/api.yaml is fine")))
}

func TestErrResult(t *testing.T) {
	r := errResult(errors.New("failed to write /tmp/out/index.ts"))
	assert.True(t, r.IsError)
	assert.Len(t, r.Content, 1)
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[string](3)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}
