// Package naming provides the identifier sanitization and case conversion
// used for every name opgen emits.
//
// All functions are pure: identical inputs always produce identical outputs,
// which keeps generated code stable across runs.
package naming
