// Package output renders drift reports.
//
// Four formats are supported:
//   - text        — the run summary and per-pair issue list printed to the CI log
//   - annotations — one "::error::", "::warning::" or "::notice::" line per issue
//   - json        — the full report, for the report_file input
//   - markdown    — a summary for $GITHUB_STEP_SUMMARY
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*drift.Report]. [WriteToFile] is
// a convenience helper for file destinations.
package output
