package parsec

import "errors"

// ResultOrError runs p once over the stream and returns either the
// parsed value or the located error of the failing branch.  The
// stream must be fresh: it is mutated in place and is only good for
// one top-level run.
func ResultOrError[T, R any](p Parser[T, R], s *InputStream[T]) (R, *LocatedParserError) {
	r := p(s)
	if r.OK() {
		return r.Value, nil
	}
	var zero R
	if r.Err != nil {
		return zero, r.Err
	}
	err := LocatedParserError{Err: ErrFailure{Reason: "parse failed"}, Index: s.Index()}
	return zero, &err
}

// ResultOrErrorString is ResultOrError with the failure rendered as
// the full diagnostic: source name, line and column, excerpt with a
// caret, the expected set at the deepest failure point, and the last
// successfully parsed token for context.
func ResultOrErrorString[T, R any](p Parser[T, R], s *InputStream[T]) (R, error) {
	v, perr := ResultOrError(p, s)
	if perr == nil {
		return v, nil
	}
	var zero R
	return zero, errors.New(s.ShowAllFailures(*perr))
}

// MustParse runs p and panics with the full diagnostic on failure.
// Meant for parsing trusted fixed inputs, e.g. in tests.
func MustParse[T, R any](p Parser[T, R], s *InputStream[T]) R {
	v, err := ResultOrErrorString(p, s)
	if err != nil {
		panic(err)
	}
	return v
}
