// Package format rewrites SQL scripts into a canonical, readable layout.
//
// The formatter is purely textual. It does not parse SQL, so it formats
// scripts that SQLite would reject just as readily as valid ones. Formatting
// runs the same steps in the same order every time:
//
//   - line endings are normalized to "\n"
//   - a line break is inserted before each clause keyword (FROM, WHERE,
//     LEFT JOIN, ...) that does not already start a line
//   - a blank line is inserted after each line that ends a statement
//   - keywords are uppercased
//   - trailing whitespace is stripped and long runs of blank lines collapsed
//
// The result is idempotent: formatting already formatted text changes nothing.
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//	pretty := formatter.Format("select a from t where b = 1")
//
//	// Leave strings, quoted identifiers and comments alone
//	formatter := format.New(format.Options{
//		Linebreaks:        true,
//		BlankLines:        true,
//		UppercaseKeywords: true,
//		Strict:            true,
//	})
//
//	// Functional API
//	var buf bytes.Buffer
//	err := format.Format(&buf, format.Defaults, script)
//
// By default the formatter treats the text naively and will happily uppercase
// a keyword inside a string literal. Strict mode uses the lexer package to skip
// literal and comment ranges in every step.
package format
