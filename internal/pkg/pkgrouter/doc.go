// Package pkgrouter serves the JSON API: an httprouter based Router that
// wraps handler results in a {message, data, meta} envelope, maps pkgerror
// values to HTTP statuses, and runs recover, correlation id and masked
// request logging middleware. Routes opt into bearer authentication with
// MiddlewareAuth.
package pkgrouter
