// Package cli wires together the Cobra command tree for the driftgate binary.
//
// The root command runs the drift check, so an action step can invoke the
// binary with no arguments. It also defines the check, config show and
// version subcommands, binds flags, reads configuration, and returns
// deterministic exit codes for CI gating.
package cli
