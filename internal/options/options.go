// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/opgen/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// The returned error is an *oaserrors.ConfigError for option carrying
// noSourceMsg when nothing is set and multiSourceMsg when several are.
func ValidateSingleInputSource(option, noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{Option: option, Message: noSourceMsg}
	case sourceCount > 1:
		return &oaserrors.ConfigError{Option: option, Message: multiSourceMsg}
	}
	return nil
}
