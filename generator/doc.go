// Package generator produces a TypeScript client from an OpenAPI 3.x document.
//
// Each operation with an operationId becomes one exported async function
// that validates its responses with zod and returns a discriminated union
// keyed by status code. Generation is deterministic: the same document and
// options always yield byte-identical files.
//
// # Quick Start
//
// Generate using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithUnknownResponseMode(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./client"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.ContinueOnError = true
//	result, _ := g.Generate(ctx, "openapi.yaml")
//
// # Pipeline
//
// Operations are visited with paths sorted and methods in fixed HTTP order.
// Assembly and rendering run on a bounded worker pool (see WithConcurrency);
// results are reassembled in document order before anything is written, so
// the pool size never changes the output.
//
// A failing operation aborts the run by default. With WithContinueOnError
// it is recorded as a critical issue and left out. When two operations map
// to the same function name, the first one in document order is kept.
//
// # Generated Files
//
//   - schemas.ts: zod validators and types for component and inline schemas
//   - operations.ts: one function per operation plus its params type,
//     result union and content-type maps
//   - api-response.ts: ApiResponse, UnknownApiResponse and body helpers
//   - config.ts: ApiConfig, credentials and request encoding helpers
//   - errors.ts: ApiError, UnexpectedStatusError, MissingCredentialError
//   - index.ts: re-exports every module
//   - opgen-manifest.yaml: the operations and files of the run
//
// WriteFiles only touches files whose content changed; WriteFilesWithOptions
// with Check set verifies a checked-in client is current.
package generator
