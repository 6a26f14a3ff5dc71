// Package pkguid generates identifiers: UUIDv7 strings for ledger entries,
// notification events and correlation ids, and Snowflake int64 ids for
// transfer records.
package pkguid
