// Package opgen generates typed TypeScript client operations from OpenAPI
// documents.
//
// For every operation that declares an operationId, opgen assembles a
// metadata record (parameter groups, request body content types, the
// status-ordered response analysis and the applicable security headers) and
// renders it into an exported async function together with the type aliases
// and content-type maps that describe its inputs and outputs. Schemas are
// emitted as zod validators so that JSON responses are checked at runtime.
//
// # Packages
//
//   - openapi: loads OpenAPI 3.0/3.1 documents into a normalized model
//   - operation: builds per-operation metadata (the generation core)
//   - render: turns metadata into structured TypeScript fragments
//   - schemagen: compiles schemas into zod validator code
//   - generator: orchestrates a full generation run and writes files
//   - oaserrors: structured error types shared by all packages
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./client"); err != nil {
//		log.Fatal(err)
//	}
//
// The opgen command wraps the same pipeline:
//
//	opgen generate -o ./client openapi.yaml
//	opgen describe --operation getUser openapi.yaml
package opgen
