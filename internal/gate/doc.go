// Package gate runs a single drift check from validated configuration to
// printed report and threshold decision.
//
// The sequence is linear: validate inputs, POST the comparison, print the
// summary and per-pair details, emit annotations, publish step outputs, and
// finally compare the global risk with fail_on. [Runner.Run] returns the
// report instead of exiting so the caller alone maps it to an exit code.
package gate
