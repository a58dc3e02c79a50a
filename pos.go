package parsec

import (
	"fmt"
	"strings"
)

// Position is an immutable cursor into a source buffer.  Index is
// 0-based and counts runes for character streams or tokens for
// pre-lexed streams.  Line and Column are 1-based and only meaningful
// when the position was derived from text.
type Position struct {
	Index  int
	Line   int
	Column int
}

// StartPosition returns the position at the very beginning of a
// source buffer.
func StartPosition() Position {
	return Position{Index: 0, Line: 1, Column: 1}
}

// Step advances the position over `text`, the span of source just
// consumed, recomputing line and column by scanning for newlines.
// O(len(text)) per step; steps correspond to token spans, not single
// characters.
func (p Position) Step(text string) Position {
	for _, r := range text {
		p.Index++
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	return p
}

func (p Position) String() string {
	if p.Line <= 0 {
		return fmt.Sprintf("%d", p.Index)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionRange is the span consumed by one successful parse step.
// End.Index is never smaller than Start.Index.
type PositionRange struct {
	Start Position
	End   Position
}

func NewPositionRange(start, end Position) PositionRange {
	return PositionRange{Start: start, End: end}
}

// String renders the span in the most compact unambiguous form:
// `c`, `c1..c2`, `l:c`, or `l:c1..l:c2`.
func (r PositionRange) String() string {
	startLine, startCol := r.Start.Line, r.Start.Column
	endLine, endCol := r.End.Line, r.End.Column
	if startLine == endLine && startLine == 1 {
		if startCol == endCol {
			return fmt.Sprintf("%d", startCol)
		}
		return fmt.Sprintf("%d..%d", startCol, endCol)
	}
	if startLine == endLine && startCol == endCol {
		return fmt.Sprintf("%d:%d", startLine, startCol)
	}
	return fmt.Sprintf("%d:%d..%d:%d", startLine, startCol, endLine, endCol)
}

// Contains reports whether `other` lies entirely within r.
func (r PositionRange) Contains(other PositionRange) bool {
	return other.Start.Index >= r.Start.Index && other.End.Index <= r.End.Index
}

// Text extracts the spanned runes from the original source.
func (r PositionRange) Text(source []rune) string {
	var b strings.Builder
	for i := r.Start.Index; i < r.End.Index && i < len(source); i++ {
		b.WriteRune(source[i])
	}
	return b.String()
}
