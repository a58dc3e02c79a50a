package parsec

// Parser is a pure function from a stream to a result.  Parsers are
// ordinary values: they can be stored, passed around, combined, and
// invoked repeatedly against different streams.  All combinators in
// this package are built from this one shape.
//
// Backtracking discipline: a parser that fails without consuming
// leaves the cursor where it started, so Choice can retry a sibling
// alternative in place.  A parser that fails after consuming must not
// be silently abandoned; only an explicit Attempt opts back into
// backtracking past partial input.
type Parser[T, R any] func(s *InputStream[T]) ParseResult[R]

// Return always succeeds with v, consuming nothing.
func Return[T, R any](v R) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		return Succeed[T, R](s, s.Index(), v)
	}
}

// FailWith always fails with err at the current position, consuming
// nothing.
func FailWith[T, R any](err ParserError) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		at := s.Index()
		return FailAt[T, R](s, at, at, err)
	}
}

// Satisfy consumes exactly one token iff pred holds for it; otherwise
// it fails with Expected(label) at the current index, consuming
// nothing.
func Satisfy[T any](pred func(T) bool, label string) Parser[T, T] {
	return func(s *InputStream[T]) ParseResult[T] {
		at := s.Index()
		tok, ok := s.TryPeek(0)
		if !ok || !pred(tok) {
			return FailAt[T, T](s, at, at, ErrExpected{What: label})
		}
		s.Take(1)
		return Succeed[T, T](s, at, tok)
	}
}

// Any consumes and returns the next token, failing only at end of
// input.
func Any[T any]() Parser[T, T] {
	return Satisfy[T](func(T) bool { return true }, "any token")
}

// EOF succeeds, consuming nothing, iff the whole input has been
// consumed.
func EOF[T any]() Parser[T, struct{}] {
	return func(s *InputStream[T]) ParseResult[struct{}] {
		at := s.Index()
		if !s.AtEnd() {
			return FailAt[T, struct{}](s, at, at, ErrExpected{What: "end of input"})
		}
		return Succeed[T, struct{}](s, at, struct{}{})
	}
}

// Bind is the universal sequencing primitive: run p, and on success
// feed its value to f to obtain the parser for the rest of the input.
// A failure of either side short-circuits, keeping the consumed flag
// accurate across the boundary.
func Bind[T, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return func(s *InputStream[T]) ParseResult[B] {
		ra := p(s)
		if ra.Failed() {
			return forward[A, B](ra)
		}
		rb := f(ra.Value)(s)
		rb.Consumed = ra.Consumed || rb.Consumed
		rb.Start = ra.Start
		return rb
	}
}

// Map transforms the value of a successful parse.
func Map[T, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(s *InputStream[T]) ParseResult[B] {
		ra := p(s)
		if ra.Failed() {
			return forward[A, B](ra)
		}
		rb := forward[A, B](ra)
		rb.Status = StatusOK
		rb.Value = f(ra.Value)
		return rb
	}
}

// Then runs p then q, keeping q's value.
func Then[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Bind(p, func(A) Parser[T, B] { return q })
}

// ThenSkip runs p then q, keeping p's value.
func ThenSkip[T, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Bind(p, func(a A) Parser[T, A] {
		return Map(q, func(B) A { return a })
	})
}

// Seq2 runs two parsers in order and combines their values.
func Seq2[T, A, B, R any](pa Parser[T, A], pb Parser[T, B], combine func(A, B) R) Parser[T, R] {
	return Bind(pa, func(a A) Parser[T, R] {
		return Map(pb, func(b B) R { return combine(a, b) })
	})
}

// Seq3 runs three parsers in order and combines their values.
func Seq3[T, A, B, C, R any](pa Parser[T, A], pb Parser[T, B], pc Parser[T, C], combine func(A, B, C) R) Parser[T, R] {
	return Bind(pa, func(a A) Parser[T, R] {
		return Seq2(pb, pc, func(b B, c C) R { return combine(a, b, c) })
	})
}

// Sequential runs each parser in order, collecting all values.
func Sequential[T, R any](ps ...Parser[T, R]) Parser[T, []R] {
	return func(s *InputStream[T]) ParseResult[[]R] {
		start := s.Index()
		out := make([]R, 0, len(ps))
		consumed := false
		for _, p := range ps {
			r := p(s)
			if r.Failed() {
				f := forward[R, []R](r)
				f.Consumed = consumed || r.Consumed
				f.Start = start
				return f
			}
			consumed = consumed || r.Consumed
			out = append(out, r.Value)
		}
		return ParseResult[[]R]{
			Status:   StatusOK,
			Value:    out,
			Consumed: consumed,
			Start:    start,
			End:      s.Index(),
		}
	}
}

// Choice tries each alternative in order.  An alternative that fails
// without consuming is abandoned and the next one is tried at the
// same position; an alternative that fails after consuming, or
// fatally, propagates immediately with no fallthrough.  This is the
// standard PEG/Parsec rule that prevents silent mis-parses after
// partial matches.
func Choice[T, R any](ps ...Parser[T, R]) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		start := s.Index()
		var acc *LocatedParserError
		for _, p := range ps {
			r := p(s)
			if r.OK() || r.Status == StatusFatal || r.Consumed {
				return r
			}
			if r.Err != nil {
				if acc == nil {
					acc = r.Err
				} else {
					merged := acc.Merge(*r.Err)
					acc = &merged
				}
			}
		}
		if acc == nil {
			return FailAt[T, R](s, start, start, ErrFailure{Reason: "Choice requires at least one alternative"})
		}
		return FailAt[T, R](s, start, acc.Index, acc.Err)
	}
}

// Attempt wraps p so that even a consuming failure is reported as
// non-consuming, rewinding the cursor to where the attempt began.
// This explicitly opts back into backtracking past partial input; use
// sparingly, it can re-scan the same input repeatedly in a hot loop.
// Fatal failures pass through untouched.
func Attempt[T, R any](p Parser[T, R]) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		start := s.Index()
		r := p(s)
		if r.Status == StatusError && r.Consumed {
			s.Backtrack(start)
			r.Consumed = false
			r.End = start
		}
		return r
	}
}

// Cut commits to p: any failure is promoted to fatal, so once this
// production's distinguishing prefix has matched, no enclosing Choice
// may backtrack past a malformed body.
func Cut[T, R any](p Parser[T, R]) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		r := p(s)
		if r.Status == StatusError {
			r.Status = StatusFatal
			if r.Err != nil && !IsFatal(r.Err.Err) {
				r.Err = &LocatedParserError{Err: ErrFatal{Inner: r.Err.Err}, Index: r.Err.Index}
			}
		}
		return r
	}
}

// Many repeats p until it fails without consuming, collecting every
// value; zero repetitions succeed.  A repetition that succeeds while
// consuming nothing is a grammar bug that would loop forever, and
// fails fast instead.
func Many[T, R any](p Parser[T, R]) Parser[T, []R] {
	return func(s *InputStream[T]) ParseResult[[]R] {
		start := s.Index()
		var out []R
		consumed := false
		for {
			r := p(s)
			if r.OK() {
				if !r.Consumed {
					return zeroWidthRepetition[T, R](s, start, "Many")
				}
				out = append(out, r.Value)
				consumed = true
				continue
			}
			if r.Status == StatusFatal || r.Consumed {
				f := forward[R, []R](r)
				f.Consumed = consumed || r.Consumed
				f.Start = start
				return f
			}
			return ParseResult[[]R]{
				Status:   StatusOK,
				Value:    out,
				Consumed: consumed,
				Start:    start,
				End:      s.Index(),
			}
		}
	}
}

// Many1 is Many requiring at least one repetition.
func Many1[T, R any](p Parser[T, R]) Parser[T, []R] {
	return Bind(p, func(head R) Parser[T, []R] {
		return Map(Many(p), func(tail []R) []R {
			return append([]R{head}, tail...)
		})
	})
}

// SepBy parses zero or more p separated by sep, collecting the p
// values.  The same zero-width guard as Many applies to both p and
// the separator pair.
func SepBy[T, R, S any](p Parser[T, R], sep Parser[T, S]) Parser[T, []R] {
	return func(s *InputStream[T]) ParseResult[[]R] {
		start := s.Index()
		first := p(s)
		if first.Failed() {
			if first.Status == StatusFatal || first.Consumed {
				f := forward[R, []R](first)
				return f
			}
			return ParseResult[[]R]{Status: StatusOK, Value: nil, Start: start, End: s.Index()}
		}
		out := []R{first.Value}
		consumed := first.Consumed
		for {
			before := s.Index()
			rs := sep(s)
			if rs.Failed() {
				if rs.Status == StatusFatal || rs.Consumed {
					f := forward[S, []R](rs)
					f.Consumed = true
					f.Start = start
					return f
				}
				break
			}
			r := p(s)
			if r.Failed() {
				f := forward[R, []R](r)
				f.Consumed = true
				f.Start = start
				return f
			}
			if s.Index() == before {
				return zeroWidthRepetition[T, R](s, start, "SepBy")
			}
			out = append(out, r.Value)
			consumed = true
		}
		return ParseResult[[]R]{
			Status:   StatusOK,
			Value:    out,
			Consumed: consumed,
			Start:    start,
			End:      s.Index(),
		}
	}
}

func zeroWidthRepetition[T, R any](s *InputStream[T], start int, combinator string) ParseResult[[]R] {
	err := ErrFatal{Inner: ErrFailure{
		Reason: "parser accepted empty input inside " + combinator + "; the grammar would loop forever",
	}}
	return FailAt[T, []R](s, start, s.Index(), err)
}

// Optional tries p and succeeds with the zero value of R when p fails
// without consuming.  Consuming and fatal failures still propagate.
func Optional[T, R any](p Parser[T, R]) Parser[T, R] {
	var zero R
	return OptionalOr(p, zero)
}

// OptionalOr is Optional with an explicit fallback value.
func OptionalOr[T, R any](p Parser[T, R], fallback R) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		start := s.Index()
		r := p(s)
		if r.Status == StatusError && !r.Consumed {
			return Succeed[T, R](s, start, fallback)
		}
		return r
	}
}

// Label replaces the description of p's failure with a human readable
// rule name, preserving the failure position, so diagnostics name the
// grammar rule instead of leaking low-level token expectations.
// Fatal failures keep their own message.
func Label[T, R any](p Parser[T, R], name string) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		r := p(s)
		if r.Status == StatusError && r.Err != nil {
			at := r.Err.Index
			relabeled := LocatedParserError{Err: ErrExpected{What: name}, Index: at}
			s.RecordFailure(relabeled)
			r.Err = &relabeled
		}
		return r
	}
}

// Between parses open, then p, then close, keeping p's value.
func Between[T, O, R, C any](open Parser[T, O], p Parser[T, R], close Parser[T, C]) Parser[T, R] {
	return Then(open, ThenSkip(p, close))
}

// Peek runs p and unconditionally rewinds, succeeding zero-width with
// p's value when p matched.  Failures are reported non-consuming, and
// fatal failures are demoted to plain ones: inside a predicate a
// commitment to a branch is meaningless.
func Peek[T, R any](p Parser[T, R]) Parser[T, R] {
	return func(s *InputStream[T]) ParseResult[R] {
		start := s.Index()
		r := p(s)
		s.Backtrack(start)
		if r.OK() {
			return ParseResult[R]{Status: StatusOK, Value: r.Value, Start: start, End: start}
		}
		at := start
		var err ParserError = ErrFailure{Reason: "lookahead failed"}
		if r.Err != nil {
			at = r.Err.Index
			err = r.Err.Err
		}
		if fatal, ok := err.(ErrFatal); ok {
			err = fatal.Inner
		}
		return ParseResult[R]{
			Status: StatusError,
			Err:    &LocatedParserError{Err: err, Index: at},
			Start:  start,
			End:    start,
		}
	}
}

// NotFollowedBy succeeds zero-width iff p fails here, and fails with
// Unexpected(label) when p matches.
func NotFollowedBy[T, R any](p Parser[T, R], label string) Parser[T, struct{}] {
	return func(s *InputStream[T]) ParseResult[struct{}] {
		start := s.Index()
		r := p(s)
		s.Backtrack(start)
		if r.OK() {
			return FailAt[T, struct{}](s, start, start, ErrUnexpected{What: label})
		}
		return ParseResult[struct{}]{Status: StatusOK, Start: start, End: start}
	}
}
