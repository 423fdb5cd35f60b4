// Package redact scrubs sensitive fragments from error text before it is
// logged. Handlers never echo raw errors to clients, but the logs travel to
// shared aggregators, and driver errors happily embed connection strings,
// SQL statements and parent email addresses.
package redact

import "regexp"

// rule pairs a pattern with its replacement. Rules apply in order; the DSN
// rule must run before the host rule so credentials are gone before the
// remaining host fragment is rewritten.
type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	// postgres://user:pass@ up to the host
	{regexp.MustCompile(`(?i)postgres(?:ql)?://[^@\s]+@`), "[REDACTED_DSN]"},
	// three-part base64url JWTs
	{regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), "[REDACTED_TOKEN]"},
	// password=..., pwd: '...' and friends; a bare mention of the word
	// "password" without a value stays readable
	{regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[=:]\s*['"]?[^'"\s&]+`), "[REDACTED_CREDENTIAL]"},
	// SQL statements quoted back by the driver, values included
	{regexp.MustCompile(`(?i)\b(?:SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(?:FROM|INTO|SET|WHERE)\b[\s\S]*`), "[REDACTED_SQL]"},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
	// absolute paths of two or more segments
	{regexp.MustCompile(`(/[\w.-]+){2,}`), "[REDACTED_PATH]"},
	// host:port, including localhost and raw IPs
	{regexp.MustCompile(`(?i)\b(?:localhost|(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}|\d{1,3}(?:\.\d{1,3}){3}):\d{1,5}\b`), "[REDACTED_HOST]"},
}

// String replaces sensitive fragments of the input with bracketed
// placeholders.
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

// Error redacts err's message. A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
