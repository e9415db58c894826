// Package redact strips sensitive fragments from strings before they are
// logged. Database errors routinely echo connection strings, file paths and
// SQL text, none of which belong in logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order. Connection strings go first so that their
// hosts and paths are not partially matched by later rules.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres|postgresql|pgx|sqlite|file|db|database)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		"[STACK_TRACE_REDACTED]",
	},
	{
		regexp.MustCompile(
			`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|TRUNCATE)[\s\w,*()"` + "`" + `]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$?` + "`" + `]+)?`,
		),
		RedactedSQLPlaceholder,
	},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
	{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d{1,5})?\b`), RedactedHostPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
