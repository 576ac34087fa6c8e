// Package httputil provides HTTP status code and media type checks shared by
// the operation analyzers.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP status code bounds.
const (
	StatusCodeLength = 3   // "200", "404"
	MinStatusCode    = 100 // lowest valid status
	MaxStatusCode    = 599 // highest valid status
	WildcardChar     = 'X' // range keys such as "2XX"
)

const (
	minWildcardBoundary = '1'
	maxWildcardBoundary = '5'
)

// ValidateStatusCode reports whether code is a legal key of a responses
// object: "default", an "x-" extension, a range such as "4XX", or a numeric
// code between 100 and 599.
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if IsStatusRange(code) {
		return true
	}
	_, ok := ParseStatusCode(code)
	return ok
}

// IsStatusRange reports whether code is a range key between 1XX and 5XX.
func IsStatusRange(code string) bool {
	return len(code) == StatusCodeLength &&
		code[1] == WildcardChar && code[2] == WildcardChar &&
		code[0] >= minWildcardBoundary && code[0] <= maxWildcardBoundary
}

// ParseStatusCode parses a three-digit numeric status code.
func ParseStatusCode(code string) (int, bool) {
	if len(code) != StatusCodeLength {
		return 0, false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < MinStatusCode || n > MaxStatusCode {
		return 0, false
	}
	return n, true
}

// IsValidMediaType validates a media type per RFC 2045/2046, accepting the
// */* and type/* wildcards.
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
