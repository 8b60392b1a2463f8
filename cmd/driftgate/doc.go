// Driftgate is a CI gate for environment configuration drift.
//
// It asks a drift-monitoring API to compare a set of environments against a
// baseline, prints a summary with per-issue CI annotations, and exits 1 when
// the reported risk meets the fail-on threshold.
//
// Usage:
//
//	driftgate                                   # run the check from INPUT_* / DRIFTGATE_* variables
//	driftgate check --fail-on medium            # same, with a flag override
//	driftgate config show                       # print the effective configuration
//	driftgate version
package main
