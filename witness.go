package parsec

import (
	"fmt"
	"sort"
	"strings"
)

// Witness is the pluggable adapter that knows how to render a stream
// index as a human readable position, and a token as text, for
// diagnostics.  It exists because the element type of a stream may be
// a rune or an arbitrary pre-lexed token.
type Witness[T any] interface {
	// PositionAt maps a stream index to a source position.
	PositionAt(index int) Position

	// Describe renders a single token for error messages.
	Describe(tok T) string

	// Excerpt returns the source line containing pos, when the
	// witness has access to the original text.
	Excerpt(pos Position) (string, bool)
}

// ---- string witness ----

// stringWitness serves rune streams created from text.  Line lookup
// is a binary search over a precomputed table of line-start rune
// offsets.
type stringWitness struct {
	source []rune

	// lineStart holds 0-based rune offsets of each line start; line 1
	// always starts at offset 0.
	lineStart []int
}

func newStringWitness(source []rune) *stringWitness {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, r := range source {
		if r == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &stringWitness{source: source, lineStart: lineStart}
}

func (w *stringWitness) PositionAt(index int) Position {
	if index < 0 {
		index = 0
	}
	if index > len(w.source) {
		index = len(w.source)
	}

	// Find the first line starting after index, then step back one.
	line := sort.Search(len(w.lineStart), func(i int) bool {
		return w.lineStart[i] > index
	}) - 1
	if line < 0 {
		line = 0
	}

	return Position{
		Index:  index,
		Line:   line + 1,
		Column: index - w.lineStart[line] + 1,
	}
}

func (w *stringWitness) Describe(tok rune) string {
	return "`" + string(tok) + "`"
}

func (w *stringWitness) Excerpt(pos Position) (string, bool) {
	line := pos.Line - 1
	if line < 0 || line >= len(w.lineStart) {
		return "", false
	}
	start := w.lineStart[line]
	end := len(w.source)
	if line+1 < len(w.lineStart) {
		// drop the trailing newline
		end = w.lineStart[line+1] - 1
	}
	return string(w.source[start:end]), true
}

// ---- span witness ----

// SpanWitness serves token streams whose tokens carry spans into the
// original text: positions come from the token's own span, excerpts
// from the underlying source.
type SpanWitness[T any] struct {
	text     *stringWitness
	tokens   []T
	span     func(T) PositionRange
	describe func(T) string
}

// NewSpanWitness builds a witness for pre-lexed tokens over `source`.
// span extracts a token's source span; describe renders a token for
// error messages and may be nil to fall back to fmt's %v.
func NewSpanWitness[T any](source string, tokens []T, span func(T) PositionRange, describe func(T) string) *SpanWitness[T] {
	if describe == nil {
		describe = func(tok T) string { return fmt.Sprintf("%v", tok) }
	}
	return &SpanWitness[T]{
		text:     newStringWitness([]rune(source)),
		tokens:   tokens,
		span:     span,
		describe: describe,
	}
}

func (w *SpanWitness[T]) PositionAt(index int) Position {
	if len(w.tokens) == 0 {
		return StartPosition()
	}
	if index < 0 {
		index = 0
	}
	if index >= len(w.tokens) {
		// end of input: report just past the last token
		return w.span(w.tokens[len(w.tokens)-1]).End
	}
	return w.span(w.tokens[index]).Start
}

func (w *SpanWitness[T]) Describe(tok T) string { return w.describe(tok) }

func (w *SpanWitness[T]) Excerpt(pos Position) (string, bool) {
	return w.text.Excerpt(pos)
}

// ---- slice witness ----

// sliceWitness is the fallback for token streams with no source text:
// the position is the bare index and the excerpt is a rendering of
// the tokens themselves.
type sliceWitness[T any] struct {
	tokens   []T
	describe func(T) string
}

// NewSliceWitness builds the fallback witness.  describe may be nil
// to use fmt's %v.
func NewSliceWitness[T any](tokens []T, describe func(T) string) Witness[T] {
	if describe == nil {
		describe = func(tok T) string { return fmt.Sprintf("%v", tok) }
	}
	return &sliceWitness[T]{tokens: tokens, describe: describe}
}

func (w *sliceWitness[T]) PositionAt(index int) Position {
	return Position{Index: index, Line: 1, Column: index + 1}
}

func (w *sliceWitness[T]) Describe(tok T) string { return w.describe(tok) }

func (w *sliceWitness[T]) Excerpt(Position) (string, bool) {
	if len(w.tokens) == 0 {
		return "", false
	}
	parts := make([]string, len(w.tokens))
	for i, tok := range w.tokens {
		parts[i] = w.describe(tok)
	}
	return strings.Join(parts, " "), true
}
