package parsec

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// RegexTokenizer declares one token-recognition rule.  Rules are
// tried in the order they were given to the lexer, so order encodes
// priority: a keyword rule should precede a generic identifier rule.
type RegexTokenizer[T any] struct {
	// Name identifies the rule in configuration errors.
	Name string

	// Pattern is a regexp2 pattern.  It is matched anchored at the
	// current offset: a match that starts anywhere later is ignored.
	// Lookarounds are available for lookahead-sensitive tokens.
	Pattern string

	// Options are passed through to the regex engine.
	Options regexp2.RegexOptions

	// Skip consumes the match without producing a token, e.g. for
	// whitespace and comments.
	Skip bool

	// Make converts an anchored match into a token and the number of
	// runes actually consumed, which may differ from the match length.
	// Returning ok=false rejects the match and falls through to the
	// next rule.  May be nil for Skip rules, which then consume the
	// full match.
	Make func(pos Position, m *regexp2.Match) (tok T, consumed int, ok bool)
}

type lexRule[T any] struct {
	def RegexTokenizer[T]
	re  *regexp2.Regexp
}

// RegexLexer converts a raw character source into a token list by
// trying an ordered list of regex rules at each position.  Separate
// per-rule regexes, rather than one big alternation, keep priority
// ordering and conflict resolution explicit at the cost of a little
// redundant scanning.
type RegexLexer[T any] struct {
	rules []lexRule[T]
}

// NewRegexLexer compiles every rule eagerly; pattern errors and
// non-Skip rules without a Make callback surface here, not at
// tokenize time.
func NewRegexLexer[T any](rules ...RegexTokenizer[T]) (*RegexLexer[T], error) {
	l := &RegexLexer[T]{rules: make([]lexRule[T], 0, len(rules))}
	for i, def := range rules {
		name := def.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if !def.Skip && def.Make == nil {
			return nil, fmt.Errorf("lexer rule %s: non-skip rules need a Make callback", name)
		}
		re, err := regexp2.Compile(def.Pattern, def.Options)
		if err != nil {
			return nil, fmt.Errorf("lexer rule %s: %w", name, err)
		}
		l.rules = append(l.rules, lexRule[T]{def: def, re: re})
	}
	return l, nil
}

// MustRegexLexer is NewRegexLexer that panics on configuration
// errors, for package-level lexer variables.
func MustRegexLexer[T any](rules ...RegexTokenizer[T]) *RegexLexer[T] {
	l, err := NewRegexLexer(rules...)
	if err != nil {
		panic(err)
	}
	return l
}

// LexError is the fatal outcome of Tokenize: some position matched no
// rule.  There is no partial result.
type LexError struct {
	Pos    Position
	Report string
}

func (e *LexError) Error() string { return e.Report }

// Tokenize converts source into tokens.  At each position the rules
// are tried in order; the first whose regex matches exactly at the
// offset and whose callback accepts wins, and the cursor advances by
// the callback-reported consumed length.  If no rule matches, lexing
// fails with a pretty-printed pointer into the source and the most
// recently produced token for context.
func (l *RegexLexer[T]) Tokenize(name, source string) ([]T, error) {
	var (
		runes   = []rune(source)
		pos     = StartPosition()
		out     []T
		last    T
		lastAt  PositionRange
		hasLast bool
	)
	for pos.Index < len(runes) {
		matched := false
		for ri, rule := range l.rules {
			m, err := rule.re.FindStringMatchStartingAt(source, pos.Index)
			if err != nil || m == nil || m.Index != pos.Index {
				// regexp2 searches forward from the offset; anything
				// starting later is not a match here
				continue
			}
			consumed := m.Length
			var tok T
			ok := true
			if rule.def.Make != nil {
				tok, consumed, ok = rule.def.Make(pos, m)
			}
			if !ok {
				continue
			}
			if consumed <= 0 || pos.Index+consumed > len(runes) {
				return nil, fmt.Errorf("lexer rule %s consumed %d runes at %s", ruleName(rule.def, ri), consumed, pos)
			}
			end := pos.Step(string(runes[pos.Index : pos.Index+consumed]))
			if !rule.def.Skip {
				out = append(out, tok)
				last = tok
				lastAt = NewPositionRange(pos, end)
				hasLast = true
			}
			pos = end
			matched = true
			break
		}
		if !matched {
			context := ""
			if hasLast {
				context = fmt.Sprintf("most recently produced token was %v at %s", last, lastAt)
			}
			w := newStringWitness(runes)
			excerpt, hasExcerpt := w.Excerpt(pos)
			return nil, &LexError{
				Pos:    pos,
				Report: formatDiagnostic(name, pos, excerpt, hasExcerpt, "no token rule matches the input", context),
			}
		}
	}
	return out, nil
}

func ruleName[T any](def RegexTokenizer[T], i int) string {
	if def.Name != "" {
		return def.Name
	}
	return fmt.Sprintf("#%d", i)
}
