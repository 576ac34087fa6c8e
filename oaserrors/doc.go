// Package oaserrors provides structured error types for the opgen library.
//
// Import path: github.com/erraggy/opgen/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and unsupported document versions
//   - [MissingReferenceError]: a local $ref whose target does not exist
//   - [UnsupportedReferenceError]: a $ref that no generation strategy can handle
//   - [MissingOperationIDError]: an operation without an operationId
//   - [OperationError]: wraps any of the above with the failing operation's identity
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches [MissingReferenceError] and [UnsupportedReferenceError]
//   - [ErrMissingReference]: Matches [MissingReferenceError]
//   - [ErrUnsupportedReference]: Matches [UnsupportedReferenceError]
//   - [ErrMissingOperationID]: Matches [MissingOperationIDError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Operation failures always carry the operation identity:
//
//	var opErr *oaserrors.OperationError
//	if errors.As(err, &opErr) {
//	    fmt.Printf("skipping %s %s\n", opErr.Method, opErr.Path)
//	}
//	if errors.Is(err, oaserrors.ErrUnsupportedReference) {
//	    // The document uses a $ref outside #/components/schemas/
//	}
package oaserrors
