// Package config loads driftgate configuration.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Action inputs (INPUT_API_KEY, INPUT_FAIL_ON, ...)
//  3. DRIFTGATE_* environment variables (DRIFTGATE_API_KEY, ...)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config] and [Config.Validate] to check the
// required inputs before contacting the API.
package config
