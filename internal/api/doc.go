// Package api is a minimal client for the drift comparison endpoint.
//
// [Client.Compare] issues a single POST to <api_url>/api/compare with a
// bearer token and decodes the body into a [drift.Response]. Failures are
// reported as [*TransportError], [*ResponseFormatError] or [*APIError].
// There are no retries.
package api
