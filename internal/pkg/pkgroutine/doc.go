// Package pkgroutine runs background work such as the account directory
// refresher under a concurrency limit, and reports task failures and panics
// through Manager.Wait at shutdown.
package pkgroutine
