package parsec

import "strings"

// Rune-level primitives for grammars that run directly over text.
// They are all plain Satisfy/Succeed compositions; nothing here knows
// more about the stream than any client parser could.

// Rune matches exactly r.
func Rune(r rune) Parser[rune, rune] {
	return Satisfy[rune](func(c rune) bool { return c == r }, "`"+string(r)+"`")
}

// RuneRange matches any rune between lo and hi inclusive.
func RuneRange(lo, hi rune) Parser[rune, rune] {
	return Satisfy[rune](func(c rune) bool { return c >= lo && c <= hi }, "`"+string(lo)+"-"+string(hi)+"`")
}

// OneOfRunes matches any of the given runes.
func OneOfRunes(rs ...rune) Parser[rune, rune] {
	set := make(map[rune]struct{}, len(rs))
	labels := make([]string, len(rs))
	for i, r := range rs {
		set[r] = struct{}{}
		labels[i] = "`" + string(r) + "`"
	}
	label := joinOr(labels)
	return Satisfy[rune](func(c rune) bool {
		_, ok := set[c]
		return ok
	}, label)
}

// Digit matches a single ASCII digit.
func Digit() Parser[rune, rune] {
	return Satisfy[rune](func(c rune) bool { return c >= '0' && c <= '9' }, "digit")
}

// Literal matches the exact string lit.  The match is atomic: on a
// mismatch anywhere inside the literal the parser fails at the start
// without consuming, so Choice can try a sibling alternative.
func Literal(lit string) Parser[rune, string] {
	runes := []rune(lit)
	return func(s *InputStream[rune]) ParseResult[string] {
		start := s.Index()
		for i, want := range runes {
			got, ok := s.TryPeek(i)
			if !ok || got != want {
				return FailAt[rune, string](s, start, start, ErrExpected{What: "`" + lit + "`"})
			}
		}
		s.Take(len(runes))
		return Succeed[rune, string](s, start, lit)
	}
}

var spacingRunes = map[rune]struct{}{
	' ':  {},
	'\t': {},
	'\r': {},
	'\n': {},
}

// Whitespace consumes zero or more spacing runes and returns them.
func Whitespace() Parser[rune, string] {
	return func(s *InputStream[rune]) ParseResult[string] {
		start := s.Index()
		var b strings.Builder
		for {
			c, ok := s.TryPeek(0)
			if !ok {
				break
			}
			if _, spacing := spacingRunes[c]; !spacing {
				break
			}
			b.WriteRune(c)
			s.Take(1)
		}
		return Succeed[rune, string](s, start, b.String())
	}
}
