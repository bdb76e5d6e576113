// Package lexer splits SQL text into a flat token stream that is just precise
// enough to tell literals and comments apart from ordinary words.
//
// It is not a SQL tokenizer in the grammar sense: there are no operators,
// numbers or keywords. The formatter and the highlighter use it in strict
// mode to leave string literals, quoted identifiers and comments untouched.
package lexer

import (
	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Kind identifies the class of a token.
type Kind int

const (
	Other Kind = iota
	Whitespace
	Word
	String
	QuotedIdent
	LineComment
	BlockComment
)

var (
	// sqlLexer recognises the lexical classes that matter for strict formatting.
	// Unterminated block comments run to the end of the input; unterminated
	// strings fall through to Other one character at a time.
	sqlLexer = plexer.MustSimple([]plexer.SimpleRule{
		{Name: "LineComment", Pattern: `--[^\r\n]*`},
		{Name: "BlockComment", Pattern: `/\*(?s:.*?)(?:\*/|$)`},
		{Name: "String", Pattern: `'(?:[^']|'')*'`},
		{Name: "QuotedIdent", Pattern: `"(?:[^"]|"")*"|` + "`[^`]*`" + `|\[[^\]\r\n]*\]`},
		{Name: "Word", Pattern: `[\p{L}\p{N}_]+`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Other", Pattern: `.`},
	})

	kinds map[plexer.TokenType]Kind
)

func init() {
	names := map[string]Kind{
		"LineComment":  LineComment,
		"BlockComment": BlockComment,
		"String":       String,
		"QuotedIdent":  QuotedIdent,
		"Word":         Word,
		"Whitespace":   Whitespace,
		"Other":        Other,
	}

	kinds = make(map[plexer.TokenType]Kind, len(names))
	for name, tt := range sqlLexer.Symbols() {
		if k, ok := names[name]; ok {
			kinds[tt] = k
		}
	}
}

type (
	// Token is a lexeme with its byte range in the source text.
	Token struct {
		Kind  Kind
		Value string
		Start int
		End   int
	}

	// Range is a half-open byte range [Start, End).
	Range struct {
		Start int
		End   int
	}
)

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsLiteral reports whether the token must never be rewritten by a formatter:
// a comment, a string literal or a quoted identifier.
func (t Token) IsLiteral() bool {
	return t.IsComment() || t.Kind == String || t.Kind == QuotedIdent
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps reports whether [start, end) intersects the range.
func (r Range) Overlaps(start, end int) bool {
	return start < r.End && r.Start < end
}

// Tokenize returns the tokens of text in order. Every byte of text belongs to
// exactly one token. A nil slice is returned if the lexer rejects the input,
// which the catch-all rule makes unreachable for valid UTF-8.
func Tokenize(text string) []Token {
	lex, err := sqlLexer.LexString("", text)
	if err != nil {
		return nil
	}

	raw, err := plexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			continue
		}

		start := tok.Pos.Offset
		tokens = append(tokens, Token{
			Kind:  kinds[tok.Type],
			Value: tok.Value,
			Start: start,
			End:   start + len(tok.Value),
		})
	}

	return tokens
}

// Literals returns the byte ranges of every comment, string literal and quoted
// identifier in text.
func Literals(text string) []Range {
	var out []Range
	for _, tok := range Tokenize(text) {
		if tok.IsLiteral() {
			out = append(out, Range{Start: tok.Start, End: tok.End})
		}
	}
	return out
}

// InAny reports whether offset falls inside any of the sorted ranges.
func InAny(ranges []Range, offset int) bool {
	for _, r := range ranges {
		if r.Start > offset {
			return false
		}
		if r.Contains(offset) {
			return true
		}
	}
	return false
}
