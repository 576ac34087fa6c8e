// Package render turns operation metadata into TypeScript.
//
// Every renderer is a pure function of an *operation.Metadata: Aliases emits
// the content-type maps, the params type and the result union; Comment,
// FunctionSignature and Body build the function itself. Operation composes
// them into a Fragment, which is serialized by Fragment.String in a fixed
// order (declarations, comment, signature, body). Rendering the same
// metadata twice yields byte-identical text.
//
// The generated code relies on helpers emitted by the generator package:
// resolveConfig, setCredential, setHeader, appendQuery, encodeForm and
// encodeMultipart from config.ts, readBody and matchesContentType from
// api-response.ts, and UnexpectedStatusError from errors.ts.
package render
