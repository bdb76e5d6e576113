package format

import (
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/keywords"
	"github.com/pseudomuto/sqldesk/pkg/lexer"
)

var (
	// statementEnd matches a terminating semicolon optionally followed by a
	// same-line comment.
	statementEnd = regexp.MustCompile(`;[ \t]*(?:--[^\n]*)?$`)

	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankLineRuns = regexp.MustCompile(`\n{4,}`)
)

// Options controls which formatting steps run and how they treat literals.
type Options struct {
	// Linebreaks starts a new line before every linebreak keyword phrase
	Linebreaks bool
	// BlankLines puts a single blank line after each statement terminator
	BlankLines bool
	// UppercaseKeywords rewrites keywords in uppercase
	UppercaseKeywords bool
	// Strict leaves string literals, quoted identifiers and comments untouched
	Strict bool
}

// Defaults enables every step in the naive, literal-unaware mode.
var Defaults = Options{
	Linebreaks:        true,
	BlankLines:        true,
	UppercaseKeywords: true,
}

// Formatter rewrites SQL text into its canonical form.
type Formatter struct {
	opts Options
}

// New creates a new Formatter with the specified options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Options returns the options the formatter was created with.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format returns the canonical form of text. The steps always run in the same
// order: line endings, line breaks, blank lines, keyword casing, whitespace.
// Formatting is idempotent: Format(Format(x)) == Format(x).
func (f *Formatter) Format(text string) string {
	out := normalizeLineEndings(text)

	if f.opts.Linebreaks {
		out = insertLinebreaks(out, f.literals(out))
	}

	if f.opts.BlankLines {
		out = insertBlankLines(out, f.literals(out))
	}

	if f.opts.UppercaseKeywords {
		out = uppercaseKeywords(out, f.literals(out))
	}

	return NormalizeWhitespace(out)
}

// Keywords applies keyword casing only, honouring the Strict option. This is
// what is written when a script is saved.
func (f *Formatter) Keywords(text string) string {
	return uppercaseKeywords(text, f.literals(text))
}

// Write formats text and writes the result to w.
func (f *Formatter) Write(w io.Writer, text string) error {
	_, err := io.WriteString(w, f.Format(text))
	return errors.Wrap(err, "failed to write formatted SQL")
}

func (f *Formatter) literals(text string) []lexer.Range {
	if !f.opts.Strict {
		return nil
	}
	return lexer.Literals(text)
}

// Format formats text with opts and writes the result to w.
//
// Example usage:
//
//	var buf bytes.Buffer
//	if err := format.Format(&buf, format.Defaults, "select a from t where b = 1"); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(buf.String())
//
// Output:
//
//	SELECT a
//	FROM t
//	WHERE b = 1
func Format(w io.Writer, opts Options, text string) error {
	return New(opts).Write(w, text)
}

// InsertLinebreaks inserts a newline before every linebreak keyword phrase
// that does not already start a line. Only spaces and tabs may sit between a
// phrase and the previous newline for it to count as starting a line.
func InsertLinebreaks(text string) string {
	return insertLinebreaks(text, nil)
}

// InsertBlankLines makes sure a blank line follows every line that ends a
// statement, unless the next line is already blank or there is no next line.
func InsertBlankLines(text string) string {
	return insertBlankLines(text, nil)
}

// UppercaseKeywords rewrites every whole word found in the keyword set in
// uppercase. Other words are left as they are.
func UppercaseKeywords(text string) string {
	return uppercaseKeywords(text, nil)
}

// NormalizeWhitespace strips trailing spaces and tabs from every line,
// collapses runs of more than two blank lines to exactly two and trims
// trailing whitespace from the end of the text.
func NormalizeWhitespace(text string) string {
	out := trailingSpace.ReplaceAllString(text, "\n")
	out = blankLineRuns.ReplaceAllString(out, "\n\n\n")
	return strings.TrimRight(out, " \t\n")
}

func normalizeLineEndings(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}

	out := strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(out, "\r", "\n")
}

func insertLinebreaks(text string, skip []lexer.Range) string {
	words := keywords.Words(text)

	var (
		b    strings.Builder
		last int
	)

	for i := 0; i < len(words); {
		w := words[i]
		if lexer.InAny(skip, w.Start) {
			i++
			continue
		}

		n, ok := keywords.MatchPhrase(text, words, i)
		if !ok {
			i++
			continue
		}

		if !atLineStart(text, w.Start) {
			b.WriteString(text[last:w.Start])
			b.WriteByte('\n')
			last = w.Start
		}
		i += n
	}

	if last == 0 {
		return text
	}

	b.WriteString(text[last:])
	return b.String()
}

func atLineStart(text string, pos int) bool {
	for pos > 0 && (text[pos-1] == ' ' || text[pos-1] == '\t') {
		pos--
	}
	return pos == 0 || text[pos-1] == '\n'
}

func insertBlankLines(text string, skip []lexer.Range) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	offset := 0
	for i, line := range lines {
		out = append(out, line)

		if i+1 < len(lines) && endsStatement(line, offset, skip) && !isBlankLine(lines[i+1]) {
			out = append(out, "")
		}
		offset += len(line) + 1
	}

	return strings.Join(out, "\n")
}

func endsStatement(line string, offset int, skip []lexer.Range) bool {
	loc := statementEnd.FindStringIndex(line)
	if loc == nil {
		return false
	}
	return !lexer.InAny(skip, offset+loc[0])
}

func isBlankLine(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

func uppercaseKeywords(text string, skip []lexer.Range) string {
	var (
		b    strings.Builder
		last int
	)

	b.Grow(len(text))
	for _, w := range keywords.Words(text) {
		if !keywords.IsKeyword(w.Text) || lexer.InAny(skip, w.Start) {
			continue
		}

		b.WriteString(text[last:w.Start])
		b.WriteString(strings.ToUpper(w.Text))
		last = w.End
	}

	b.WriteString(text[last:])
	return b.String()
}
