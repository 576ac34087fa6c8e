package operation

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// MarshalMetadata renders metadata as indented JSON. Map keys are sorted, so
// identical metadata always produces identical bytes.
func MarshalMetadata(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true), jsontext.WithIndent("  "))
}
