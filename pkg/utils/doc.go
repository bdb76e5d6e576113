// Package utils provides small helpers shared across sqldesk packages.
//
// # Identifier Utilities (identifier.go)
//
// SQLite accepts double-quoted identifiers. QuoteIdentifier produces them
// safely for names typed by a user:
//
//	utils.QuoteIdentifier("users")      // "users" in double quotes
//	utils.QuoteIdentifier(`say "hi"`)   // embedded quotes are doubled
//	utils.QuoteIdentifier(`"users"`)    // already quoted, returned as-is
//
// IsQuoted detects already quoted input, so quoting is idempotent.
// EscapeIdentifier skips that check and is the one to use for raw names read
// from sqlite_master, such as the table names passed to PRAGMA table_info.
package utils
