// Package pkglog installs the service's slog JSON logger. Records carry the
// service name plus, when the request context has them, the correlation id
// (_cID) and the authenticated account id (_sub).
package pkglog
