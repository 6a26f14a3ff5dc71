// Package pkghash hashes and verifies account passwords with bcrypt.
package pkghash
