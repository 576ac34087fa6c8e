package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// identifierCaser upper-cases the first letter of each word and leaves
	// the rest alone, so "userID" stays "UserID".
	identifierCaser = cases.Title(language.Und, cases.NoLower)
	// wordCaser title-cases lower-cased words, so "x-www-form-urlencoded"
	// becomes "XWwwFormUrlencoded".
	wordCaser = cases.Title(language.Und)
)

// typeScriptReserved lists words that cannot be used as a binding name in
// generated TypeScript modules.
var typeScriptReserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "implements": true, "interface": true,
	"let": true, "package": true, "private": true, "protected": true,
	"public": true, "static": true, "yield": true, "await": true,
}

// IsReserved reports whether name is a reserved word in the emitted language.
func IsReserved(name string) bool {
	return typeScriptReserved[name]
}

// words splits s on every rune that is not a letter or digit.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SanitizeIdentifier turns an arbitrary schema or component name into a
// valid PascalCase identifier. Non-alphanumeric runes separate words, each
// word's first letter is upper-cased, and a leading digit is prefixed with "T".
// Example: "user-profile.v2" -> "UserProfileV2"
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(identifierCaser.String(w))
	}
	name := b.String()
	if name == "" {
		return "Type"
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		name = "T" + name
	}
	return name
}

// ToPascalCase converts a string to PascalCase.
// Example: "get_user" -> "GetUser"
// Example: "getUser" -> "GetUser"
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}
	return SanitizeIdentifier(s)
}

// ToCamelCase converts a string to camelCase.
// Like PascalCase but with the first letter lowercase.
// Example: "user_profile" -> "userProfile"
// Example: "UserProfile" -> "userProfile"
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToTitleCase converts the first letter to uppercase.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FunctionName derives the exported function identifier for an operationId.
// Reserved words get a trailing underscore.
// Example: "list-users" -> "listUsers"
// Example: "delete" -> "delete_"
func FunctionName(operationID string) string {
	name := ToCamelCase(operationID)
	if IsReserved(name) {
		name += "_"
	}
	return name
}

// OperationName is FunctionName with its first letter upper-cased. It seeds
// every type name synthesized for the operation.
func OperationName(functionName string) string {
	return ToTitleCase(strings.TrimSuffix(functionName, "_"))
}

// MediaTypeSuffix converts a media type into a PascalCase suffix built from
// its subtype, used to tell apart inline schemas declared under several
// content types. Media type parameters are ignored.
// Example: "application/x-www-form-urlencoded" -> "XWwwFormUrlencoded"
// Example: "application/vnd.api+json; charset=utf-8" -> "VndApiJson"
func MediaTypeSuffix(mediaType string) string {
	mt, _, _ := strings.Cut(mediaType, ";")
	_, sub, ok := strings.Cut(strings.TrimSpace(mt), "/")
	if !ok {
		sub = mt
	}
	return suffixWords(sub)
}

// MediaTypeFullSuffix is like MediaTypeSuffix but keeps the top-level type,
// for media types whose subtypes collide.
// Example: "text/xml" -> "TextXml"
func MediaTypeFullSuffix(mediaType string) string {
	mt, _, _ := strings.Cut(mediaType, ";")
	return suffixWords(mt)
}

func suffixWords(s string) string {
	var b strings.Builder
	for _, w := range words(strings.ToLower(s)) {
		b.WriteString(wordCaser.String(w))
	}
	return b.String()
}

// PropertyKey returns s unchanged when it is a valid bare property key in an
// object literal, otherwise its double-quoted form.
func PropertyKey(s string) string {
	if s == "" {
		return `""`
	}
	for i, r := range s {
		valid := r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		if !valid {
			return Quote(s)
		}
	}
	return s
}

// Quote returns s as a double-quoted string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ValidatorName is the name of the exported validator constant for a type.
// Example: "User" -> "UserSchema"
func ValidatorName(typeName string) string {
	return typeName + "Schema"
}

// Accessor returns a property access expression on base. Keys that are not
// valid identifiers use bracket notation.
// Example: ("params.path", "id") -> "params.path.id"
// Example: ("params.headers?.", "X-Trace") -> `params.headers?.["X-Trace"]`
func Accessor(base, key string) string {
	if pk := PropertyKey(key); pk != key {
		return base + "[" + pk + "]"
	}
	if strings.HasSuffix(base, "?.") {
		return base + key
	}
	return base + "." + key
}
