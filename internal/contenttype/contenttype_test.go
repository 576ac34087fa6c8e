package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsJSONLike(t *testing.T) {
	tests := []struct {
		mediaType string
		want      bool
	}{
		{"application/json", true},
		{"application/problem+json", true},
		{"application/vnd.api+json", true},
		{"application/json; charset=utf-8", true},
		{"Application/JSON", true},
		{"application/x-ndjson", true},
		{"text/plain", false},
		{"application/xml", false},
		{"multipart/form-data", false},
		{"text/plain; profile=json", false},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJSONLike(tt.mediaType))
		})
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		declared []string
		all      []string
		jsonLike bool
		nonJSON  bool
		mixed    bool
		needsMap bool
	}{
		{name: "empty", declared: nil, all: nil},
		{name: "single json", declared: []string{JSON}, all: []string{JSON}, jsonLike: true},
		{
			name:     "two json-like",
			declared: []string{ProblemJSON, JSON},
			all:      []string{JSON, ProblemJSON},
			jsonLike: true,
			needsMap: true,
		},
		{
			name:     "mixed",
			declared: []string{TextPlain, JSON},
			all:      []string{JSON, TextPlain},
			jsonLike: true,
			nonJSON:  true,
			mixed:    true,
			needsMap: true,
		},
		{name: "only binary", declared: []string{OctetStream}, all: []string{OctetStream}, nonJSON: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.declared)
			assert.Equal(t, tt.all, a.All)
			assert.Equal(t, tt.declared, a.Declared)
			assert.Equal(t, tt.jsonLike, a.HasJSONLike)
			assert.Equal(t, tt.nonJSON, a.HasNonJSON)
			assert.Equal(t, tt.mixed, a.HasMixed)
			assert.Equal(t, tt.needsMap, a.NeedsMap())
		})
	}
}

func TestSelectRequest(t *testing.T) {
	tests := []struct {
		name     string
		types    []string
		priority []string
		want     string
	}{
		{name: "none", types: nil, want: ""},
		{name: "json beats form", types: []string{FormURLEncoded, JSON}, want: JSON},
		{name: "form beats multipart", types: []string{MultipartForm, FormURLEncoded}, want: FormURLEncoded},
		{name: "multipart beats text", types: []string{TextPlain, MultipartForm}, want: MultipartForm},
		{name: "text beats xml", types: []string{XML, TextPlain}, want: TextPlain},
		{name: "xml beats octet", types: []string{OctetStream, XML}, want: XML},
		{name: "parameters ignored", types: []string{"application/json; charset=utf-8", TextPlain}, want: "application/json; charset=utf-8"},
		{name: "fallback first declared", types: []string{"image/png", "application/pdf"}, want: "image/png"},
		{name: "vendor fallback first declared", types: []string{"application/vnd.zeta", "application/vnd.alpha"}, want: "application/vnd.zeta"},
		{name: "vendor json is not application/json", types: []string{"application/vnd.api+json", OctetStream}, want: OctetStream},
		{name: "custom priority", types: []string{JSON, FormURLEncoded}, priority: []string{FormURLEncoded}, want: FormURLEncoded},
		{name: "custom priority falls back", types: []string{JSON, "image/png"}, priority: []string{XML}, want: JSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectRequest(tt.types, tt.priority))
		})
	}
}

func TestSelectResponse(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{name: "none", types: nil, want: ""},
		{name: "json first", types: []string{ProblemJSON, JSON, TextPlain}, want: JSON},
		{name: "problem json second", types: []string{TextPlain, ProblemJSON, "application/vnd.a+json"}, want: ProblemJSON},
		{name: "first declared +json third", types: []string{TextPlain, "application/vnd.b+json", "application/vnd.a+json"}, want: "application/vnd.b+json"},
		{name: "fallback first declared", types: []string{"text/zeta", "text/alpha"}, want: "text/zeta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectResponse(tt.types))
		})
	}
}

func TestSelectionPriorityIgnoresDeclaredOrder(t *testing.T) {
	a := []string{"image/png", JSON, "text/csv"}
	b := []string{"text/csv", JSON, "image/png"}
	assert.Equal(t, JSON, SelectRequest(a, nil))
	assert.Equal(t, SelectRequest(a, nil), SelectRequest(b, nil))
	assert.Equal(t, SelectResponse(a), SelectResponse(b))
}

func TestIsText(t *testing.T) {
	assert.True(t, IsText("text/csv"))
	assert.True(t, IsText("application/xml"))
	assert.True(t, IsText(FormURLEncoded))
	assert.False(t, IsText(OctetStream))
	assert.False(t, IsText("image/png"))
}
