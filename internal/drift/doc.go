// Package drift defines the comparison result returned by the drift API and
// the risk model used to classify and gate on it.
//
// Risk levels are totally ordered low < medium < high. Unknown levels are
// normalized to low by [Normalize]; [ParseStrict] and [Response.Validate]
// reject them instead. Issues arrive either as plain strings or as objects;
// [Issue] holds both shapes and [Issue.Text] renders either one.
//
// [Response] decodes the "pairs" object into a slice that keeps the key
// order of the body, so reports list pairs exactly as the API sent them.
package drift
