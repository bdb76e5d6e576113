package utils

import "strings"

// QuoteIdentifier wraps an identifier in double quotes for use in SQLite
// statements, doubling any embedded double quotes.
//
// Examples:
//   - "users" -> "\"users\""
//   - "my table" -> "\"my table\""
//   - "say \"hi\"" -> "\"say \"\"hi\"\"\""
//   - "\"users\"" -> "\"users\"" (already quoted, not double-quoted)
//   - "" -> ""
//
// Unlike a qualified name helper it never splits on dots: SQLite table names
// may legitimately contain them.
func QuoteIdentifier(name string) string {
	if name == "" {
		return ""
	}

	if IsQuoted(name) {
		return name
	}

	return EscapeIdentifier(name)
}

// EscapeIdentifier always wraps name in double quotes, doubling any embedded
// double quotes. Use it for raw names read back from the database, where a
// name that looks quoted really contains the quote characters.
//
// Examples:
//   - "users" -> "\"users\""
//   - "\"x\"" -> "\"\"\"x\"\"\""
func EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// IsQuoted checks if a string is already a single double-quoted identifier.
//
// Examples:
//   - "\"table\"" -> true
//   - "table" -> false
//   - "\"a\".\"b\"" -> false (qualified name, not a single identifier)
//   - "\"" -> false
func IsQuoted(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}

	inner := s[1 : len(s)-1]
	return !strings.Contains(strings.ReplaceAll(inner, `""`, ""), `"`)
}
