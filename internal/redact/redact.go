package redact

import (
	"regexp"
	"strings"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credentials that may be echoed back
// in API error bodies or transport errors.
var secretPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	// Bearer tokens
	{regexp.MustCompile(`(?i)(Bearer\s+)[A-Za-z0-9._~+/=-]{8,}`), "${1}" + Placeholder},
	// Generic API keys in assignments
	{regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)(["']?\s*[:=]\s*["']?)[A-Za-z0-9/+=_.-]{8,}`), "${1}${2}" + Placeholder},
	// JWTs (three base64 segments separated by dots)
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`), Placeholder},
	// GitHub tokens
	{regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`), Placeholder},
	// Credentials embedded in URLs
	{regexp.MustCompile(`(https?://)[^/\s:@]+:[^/\s@]+@`), "${1}" + Placeholder + "@"},
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.re.ReplaceAllString(result, pat.repl)
	}
	return result
}

// Value replaces every occurrence of secret in text. Empty secrets are ignored.
func Value(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, Placeholder)
}

// Message applies Value for each known secret and then the Secrets heuristics.
func Message(text string, secrets ...string) string {
	for _, s := range secrets {
		text = Value(text, s)
	}
	return Secrets(text)
}
