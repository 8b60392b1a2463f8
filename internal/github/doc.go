// Package github implements the GitHub Actions runner conventions driftgate
// relies on: INPUT_<NAME> action inputs, "::error::"-style workflow commands,
// and the GITHUB_OUTPUT and GITHUB_STEP_SUMMARY files.
package github
