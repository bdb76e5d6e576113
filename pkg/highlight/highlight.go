// Package highlight computes presentation spans for SQL text and renders them
// as coloured terminal output.
//
// Three kinds of span are produced: block comments, line comments and
// keywords. Spans never overlap and are returned sorted by their start offset.
// A keyword is never reported inside a comment, so a caller applying the spans
// as styles gets comment colouring wherever the two would compete:
//
//	for _, span := range highlight.New(highlight.Defaults).Spans("SELECT 1 -- FROM fake") {
//		fmt.Println(span.Kind, span.Start, span.End)
//	}
//
//	// keyword 0 6
//	// line_comment 9 21
package highlight

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/consts"
	"github.com/pseudomuto/sqldesk/pkg/keywords"
	"github.com/pseudomuto/sqldesk/pkg/lexer"
)

// Kind identifies what a span highlights.
type Kind int

const (
	Keyword Kind = iota
	LineComment
	BlockComment
)

// blockComment is non-greedy and runs to the end of the text when unterminated.
var blockComment = regexp.MustCompile(`(?s)/\*.*?(?:\*/|$)`)

// String returns the tag name of the kind.
func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case LineComment:
		return "line_comment"
	case BlockComment:
		return "block_comment"
	default:
		return "unknown"
	}
}

// IsComment reports whether the kind is a line or block comment.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment
}

type (
	// Span is a styled byte range [Start, End) of the highlighted text.
	Span struct {
		Kind  Kind
		Start int
		End   int
	}

	// Options configures a Highlighter.
	Options struct {
		// Strict ignores comment markers and keywords inside string literals and
		// quoted identifiers.
		Strict bool
		// KeywordColor is the foreground colour of keywords (hex or ANSI code).
		KeywordColor string
		// CommentColor is the foreground colour of comments (hex or ANSI code).
		CommentColor string
	}

	// Highlighter computes spans and renders highlighted text.
	Highlighter struct {
		opts Options
	}
)

// Defaults highlights naively with the default palette.
var Defaults = Options{
	KeywordColor: consts.DefaultKeywordColor,
	CommentColor: consts.DefaultCommentColor,
}

// Text returns the part of text covered by the span.
func (s Span) Text(text string) string {
	return text[s.Start:s.End]
}

// New creates a Highlighter. Empty colours fall back to the defaults.
func New(opts Options) *Highlighter {
	if opts.KeywordColor == "" {
		opts.KeywordColor = consts.DefaultKeywordColor
	}
	if opts.CommentColor == "" {
		opts.CommentColor = consts.DefaultCommentColor
	}

	return &Highlighter{opts: opts}
}

// Options returns the options in effect.
func (h *Highlighter) Options() Options {
	return h.opts
}

// Spans returns the disjoint spans of text sorted by start offset.
func (h *Highlighter) Spans(text string) []Span {
	if h.opts.Strict {
		return strictSpans(text)
	}
	return Spans(text)
}

// Spans computes spans without regard for string literals. Block comments are
// found first over the whole text, then line comments line by line, then
// keywords, keeping only the keywords that touch no comment.
func Spans(text string) []Span {
	var comments []Span
	for _, loc := range blockComment.FindAllStringIndex(text, -1) {
		comments = append(comments, Span{Kind: BlockComment, Start: loc[0], End: loc[1]})
	}

	blocks := len(comments)
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if s, ok := lineComment(line, offset, comments[:blocks]); ok {
			comments = append(comments, s)
		}
		offset += len(line)
	}

	spans := comments
	for _, w := range keywords.Words(text) {
		if keywords.IsKeyword(w.Text) && !overlapsAny(comments, w.Start, w.End) {
			spans = append(spans, Span{Kind: Keyword, Start: w.Start, End: w.End})
		}
	}

	sortSpans(spans)
	return spans
}

// lineComment finds the first "--" of line that is outside every block
// comment. The comment runs to the end of the line, or to the start of the
// next block comment when one opens inside it.
func lineComment(line string, offset int, blocks []Span) (Span, bool) {
	end := offset + len(strings.TrimRight(line, "\r\n"))

	for from := offset; from < end; {
		i := strings.Index(line[from-offset:end-offset], "--")
		if i < 0 {
			return Span{}, false
		}

		start := from + i
		if b, ok := containing(blocks, start); ok {
			from = b.End
			continue
		}

		for _, b := range blocks {
			if b.Start > start && b.Start < end {
				end = b.Start
				break
			}
		}

		return Span{Kind: LineComment, Start: start, End: end}, true
	}

	return Span{}, false
}

func strictSpans(text string) []Span {
	var spans []Span
	for _, tok := range lexer.Tokenize(text) {
		switch {
		case tok.Kind == lexer.BlockComment:
			spans = append(spans, Span{Kind: BlockComment, Start: tok.Start, End: tok.End})
		case tok.Kind == lexer.LineComment:
			spans = append(spans, Span{Kind: LineComment, Start: tok.Start, End: tok.End})
		case tok.Kind == lexer.Word && keywords.IsKeyword(tok.Value):
			spans = append(spans, Span{Kind: Keyword, Start: tok.Start, End: tok.End})
		}
	}

	return spans
}

func containing(spans []Span, offset int) (Span, bool) {
	for _, s := range spans {
		if offset >= s.Start && offset < s.End {
			return s, true
		}
	}
	return Span{}, false
}

func overlapsAny(spans []Span, start, end int) bool {
	for _, s := range spans {
		if (lexer.Range{Start: s.Start, End: s.End}).Overlaps(start, end) {
			return true
		}
	}
	return false
}

func sortSpans(spans []Span) {
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})
}

// Render writes text to w with every span coloured. Colours are only emitted
// when w is a terminal that supports them; otherwise the text is written
// unchanged.
func (h *Highlighter) Render(w io.Writer, text string) error {
	r := lipgloss.NewRenderer(w)
	keywordStyle := r.NewStyle().Foreground(lipgloss.Color(h.opts.KeywordColor)).Bold(true)
	commentStyle := r.NewStyle().Foreground(lipgloss.Color(h.opts.CommentColor)).Italic(true)

	var b strings.Builder
	last := 0
	for _, s := range h.Spans(text) {
		style := keywordStyle
		if s.Kind.IsComment() {
			style = commentStyle
		}

		b.WriteString(text[last:s.Start])
		b.WriteString(renderLines(style, s.Text(text)))
		last = s.End
	}
	b.WriteString(text[last:])

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "failed to write highlighted SQL")
}

// renderLines styles each line on its own so lipgloss does not pad a
// multi-line block comment into a rectangle.
func renderLines(style lipgloss.Style, text string) string {
	style = style.TabWidth(lipgloss.NoTabConversion)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
