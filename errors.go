package parsec

import (
	"strconv"
	"strings"
)

// ParserError is the tagged union of everything that can go wrong
// during a parse.  Variants are plain value types so rendering sites
// can switch exhaustively over them.
type ParserError interface {
	// Message returns the human readable form of the error, without
	// any position information.
	Message() string

	isParserError()
}

// ErrExpected means the parser wanted `What` but did not find it.
type ErrExpected struct {
	What string
}

func (e ErrExpected) Message() string { return "expected " + e.What }
func (e ErrExpected) isParserError() {}

// ErrUnexpected means the parser found something explicitly
// disallowed at the current position.
type ErrUnexpected struct {
	What string
}

func (e ErrUnexpected) Message() string { return "unexpected " + e.What }
func (e ErrUnexpected) isParserError() {}

// ErrFailure is a semantic, user-level failure rather than a raw
// grammar mismatch, e.g. "headers can have a maximum of 6 hashtags".
type ErrFailure struct {
	Reason string
}

func (e ErrFailure) Message() string { return e.Reason }
func (e ErrFailure) isParserError() {}

// ErrFatal escalates any error to non-backtrackable: no enclosing
// Choice or Attempt may swallow it.
type ErrFatal struct {
	Inner ParserError
}

func (e ErrFatal) Message() string { return e.Inner.Message() }
func (e ErrFatal) isParserError() {}

// ErrOneOf is the union of simultaneous failures at the same
// position.
type ErrOneOf struct {
	Alternatives []ParserError
}

func (e ErrOneOf) Message() string {
	var expected, other []string
	for _, alt := range e.Alternatives {
		if exp, ok := alt.(ErrExpected); ok {
			expected = append(expected, exp.What)
			continue
		}
		other = append(other, alt.Message())
	}
	var parts []string
	if len(expected) > 0 {
		parts = append(parts, "expected "+joinOr(expected))
	}
	parts = append(parts, other...)
	return strings.Join(parts, "; ")
}

func (e ErrOneOf) isParserError() {}

// joinOr renders alternatives as "A", "A or B", or "A, B, or C".
func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
	}
}

// IsFatal reports whether err is, or contains at any level, an
// ErrFatal wrapper.
func IsFatal(err ParserError) bool {
	switch e := err.(type) {
	case ErrFatal:
		return true
	case ErrOneOf:
		for _, alt := range e.Alternatives {
			if IsFatal(alt) {
				return true
			}
		}
	}
	return false
}

// Union merges two errors raised at the same position into a single
// flattened ErrOneOf, dropping textual duplicates.
func Union(a, b ParserError) ParserError {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	var (
		alts []ParserError
		seen = map[string]struct{}{}
		add  func(e ParserError)
	)
	add = func(e ParserError) {
		if oneOf, ok := e.(ErrOneOf); ok {
			for _, alt := range oneOf.Alternatives {
				add(alt)
			}
			return
		}
		msg := e.Message()
		if _, ok := seen[msg]; ok {
			return
		}
		seen[msg] = struct{}{}
		alts = append(alts, e)
	}
	add(a)
	add(b)
	if len(alts) == 1 {
		return alts[0]
	}
	return ErrOneOf{Alternatives: alts}
}

// LocatedParserError is a ParserError pinned to the stream index it
// was raised at.
type LocatedParserError struct {
	Err   ParserError
	Index int
}

// Error implements the error interface with the bare message; use
// InputStream.ShowAllFailures for the full diagnostic.
func (e LocatedParserError) Error() string {
	return e.Err.Message() + " @ " + strconv.Itoa(e.Index)
}

// Merge combines two located errors: the deeper index wins outright
// because a failure that consumed more input is a better explanation
// of how far parsing got; equal indexes union both alternatives.
func (e LocatedParserError) Merge(other LocatedParserError) LocatedParserError {
	switch {
	case other.Index > e.Index:
		return other
	case other.Index < e.Index:
		return e
	default:
		return LocatedParserError{Err: Union(e.Err, other.Err), Index: e.Index}
	}
}
