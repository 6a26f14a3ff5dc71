// Package pkgjwt issues and verifies the HS256 access tokens handed out at login.
//
// The token subject carries the authenticated account id; handlers never trust
// an account id coming from the request body.
package pkgjwt
