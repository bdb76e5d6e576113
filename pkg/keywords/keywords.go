// Package keywords holds the SQL keyword tables shared by the formatter and
// the highlighter, together with the word scanner both of them use.
//
// Two tables are exposed:
//
//   - the keyword set, used to uppercase words and to mark keyword spans
//   - the linebreak phrases, before which the formatter starts a new line
//
// Every word of every linebreak phrase is also part of the keyword set.
//
// Matching is always case-insensitive and on whole words, where a word is a
// maximal run of Unicode letters, digits and underscores:
//
//	words := keywords.Words("select name from fromage")
//	keywords.IsKeyword(words[2].Text) // true  ("from")
//	keywords.IsKeyword(words[3].Text) // false ("fromage")
package keywords

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	sqlKeywords = []string{
		"SELECT", "FROM", "WHERE", "INSERT", "INTO", "VALUES", "UPDATE", "SET",
		"DELETE", "CREATE", "TABLE", "DROP", "ALTER", "ADD", "RENAME",
		"JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "NATURAL",
		"ON", "AS", "AND", "OR", "NOT", "IS", "NULL", "IN", "LIKE", "BETWEEN",
		"ORDER", "BY", "GROUP", "HAVING", "DISTINCT", "LIMIT", "OFFSET",
		"UNION", "ALL", "EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END",
		"ASC", "DESC", "UNIQUE", "IF",
		"PRIMARY", "KEY", "FOREIGN", "REFERENCES", "CHECK", "DEFAULT", "CONSTRAINT",
		"INTEGER", "TEXT", "REAL", "NUMERIC", "BLOB", "BOOLEAN",
		"CASCADE", "RESTRICT", "NO", "ACTION",
		"VIEW", "TRIGGER", "BEFORE", "AFTER", "INSTEAD", "OF", "BEGIN", "COMMIT", "ROLLBACK", "TRANSACTION",
	}

	linebreakKeywords = []string{
		"SELECT", "FROM", "WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT", "OFFSET",
		"UNION", "VALUES", "INSERT INTO", "UPDATE", "SET", "DELETE FROM",
		"CREATE TABLE", "ALTER TABLE", "DROP TABLE",
		"JOIN", "INNER JOIN", "LEFT JOIN", "CROSS JOIN", "NATURAL JOIN", "ON",
	}

	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	keywordSet map[string]struct{}
	phrases    []Phrase
)

func init() {
	keywordSet = make(map[string]struct{}, len(sqlKeywords))
	for _, kw := range sqlKeywords {
		keywordSet[kw] = struct{}{}
	}

	phrases = make([]Phrase, 0, len(linebreakKeywords))
	for _, kw := range linebreakKeywords {
		p := Phrase(strings.Fields(kw))
		for _, w := range p {
			keywordSet[w] = struct{}{}
		}
		phrases = append(phrases, p)
	}

	// Longer phrases are tried first so "LEFT JOIN" wins over "JOIN"
	sort.SliceStable(phrases, func(i, j int) bool {
		if len(phrases[i]) != len(phrases[j]) {
			return len(phrases[i]) > len(phrases[j])
		}
		return len(phrases[i].String()) > len(phrases[j].String())
	})
}

type (
	// Phrase is a linebreak keyword made of one or more uppercase words.
	Phrase []string

	// Word is a single word found in a piece of text along with its byte range.
	Word struct {
		Text  string
		Start int
		End   int
	}
)

// String returns the phrase with its words joined by single spaces.
func (p Phrase) String() string {
	return strings.Join(p, " ")
}

// IsKeyword reports whether word is in the keyword set, ignoring case.
func IsKeyword(word string) bool {
	_, ok := keywordSet[strings.ToUpper(word)]
	return ok
}

// All returns a sorted copy of the keyword set.
func All() []string {
	out := make([]string, 0, len(keywordSet))
	for kw := range keywordSet {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Linebreaks returns the linebreak phrases, longest first.
func Linebreaks() []Phrase {
	out := make([]Phrase, len(phrases))
	copy(out, phrases)
	return out
}

// Words returns every word of s in order of appearance.
func Words(s string) []Word {
	locs := wordPattern.FindAllStringIndex(s, -1)
	words := make([]Word, 0, len(locs))
	for _, loc := range locs {
		words = append(words, Word{Text: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return words
}

// MatchPhrase tries every linebreak phrase, longest first, against the words
// of text starting at words[i]. Consecutive words of a phrase must be separated
// by whitespace only. It returns the number of words consumed by the match.
func MatchPhrase(text string, words []Word, i int) (int, bool) {
	for _, p := range phrases {
		if matchAt(text, words, i, p) {
			return len(p), true
		}
	}

	return 0, false
}

func matchAt(text string, words []Word, i int, p Phrase) bool {
	if i+len(p) > len(words) {
		return false
	}

	for k, w := range p {
		word := words[i+k]
		if !strings.EqualFold(word.Text, w) {
			return false
		}

		if k > 0 && !isBlank(text[words[i+k-1].End:word.Start]) {
			return false
		}
	}

	return true
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
