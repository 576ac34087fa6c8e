// Package openapi loads OpenAPI 3.0 and 3.1 documents into the normalized
// model consumed by code generation.
//
// The model is intentionally narrower than the full OpenAPI object model: it
// keeps what operation generation reads (paths, operations, parameters,
// request bodies, responses, schemas and security) and normalizes the
// differences between 3.0 and 3.1 at load time:
//
//   - "type" is always a list; a 3.0 "nullable: true" adds "null" to it
//   - every schema position holds a [SchemaNode], which is either a $ref or an
//     inline [Schema], decided once while decoding
//   - an operation records whether its "security" key was present, so an
//     explicit empty list ("no auth") is distinguishable from an absent key
//
// OpenAPI 2.0 (Swagger) documents are rejected with an
// [oaserrors.ParseError]; convert them to 3.x first.
//
// # Usage
//
//	result, err := openapi.ParseWithOptions(openapi.WithFilePath("api.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, path := range result.Document.SortedPaths() {
//		for _, mo := range result.Document.Paths[path].Operations() {
//			fmt.Println(mo.Method, path, mo.Operation.OperationID)
//		}
//	}
package openapi
