// Package redact strips credentials, filesystem paths and stack traces from
// strings before they reach logs or error responses.
package redact

import "regexp"

// Placeholders substituted for redacted content.
const (
	RedactedKeyPlaceholder   = "[REDACTED_KEY]"
	RedactedPathPlaceholder  = "[REDACTED_PATH]"
	RedactedStackPlaceholder = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order. Credential rules keep the key name so the log line still
// says what was removed.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)(x-api-key|api[_-]?key|token|secret|password)(["'\s:=]+)[^"'\s,&;]{4,}`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/=]{8,}`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		replacement: RedactedStackPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`),
		replacement: RedactedPathPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+)+\.go(:\d+)?`),
		replacement: RedactedPathPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`/(?:home|root|usr|var|tmp|etc|opt)(/[\w.-]+)+`),
		replacement: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from err.Error().
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Secret describes a credential without revealing it.
func Secret(s string) string {
	if s == "" {
		return ""
	}
	return RedactedKeyPlaceholder
}
