// Package pkgerror defines the structured Error used from storage up to the
// HTTP edge. Each Error carries a user-facing message, a Type and a Code; the
// Code picks the HTTP status and Retryable marks failures the client may try
// again, such as an unavailable database.
package pkgerror
