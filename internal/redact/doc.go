// Package redact masks credentials before they reach CI logs.
//
// [Value] removes a known secret such as the configured API key; [Secrets]
// applies regex heuristics for bearer tokens, key assignments, JWTs, GitHub
// tokens and URL credentials. Matches are replaced with "[REDACTED]".
package redact
