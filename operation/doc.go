// Package operation derives the per-operation metadata record that code
// generation is driven by.
//
// For every operation the Assembler resolves parameters (path-level merged
// with operation-level), the request body and its content-type map, the
// responses ordered by numeric status with their discriminated union, and
// the credential headers that apply. The resulting Metadata is immutable and
// consumed by the render package.
//
// # Naming
//
// Inline schemas are named after the operation:
//
//	getUser, 404 response  -> GetUser404Response
//	createUser, body       -> CreateUserRequest
//
// When one body or status declares inline schemas under several media types,
// the first (the primary media type, then the rest sorted) keeps the base
// name and the others get a media type suffix such as
// CreateUserRequestXWwwFormUrlencoded.
//
// # Errors
//
// Assembly fails for the whole operation with an *oaserrors.OperationError
// when the operationId is missing or a reference cannot be resolved.
// Non-fatal findings such as skipped cookie parameters are returned as
// Metadata.Issues.
package operation
