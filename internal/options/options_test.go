package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/opgen/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantMsg string
	}{
		{name: "exactly one", sources: []bool{false, true, false}},
		{name: "none", sources: []bool{false, false}, wantMsg: "none given"},
		{name: "no sources at all", sources: nil, wantMsg: "none given"},
		{name: "several", sources: []bool{true, false, true}, wantMsg: "too many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("input", "none given", "too many", tt.sources...)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))

			var cfgErr *oaserrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "input", cfgErr.Option)
			assert.Equal(t, tt.wantMsg, cfgErr.Message)
		})
	}
}
