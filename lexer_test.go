package parsec

import (
	"errors"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lexTok struct {
	Kind string
	Text string
	Span PositionRange
}

func makeLexTok(kind string) func(Position, *regexp2.Match) (lexTok, int, bool) {
	return func(pos Position, m *regexp2.Match) (lexTok, int, bool) {
		text := m.String()
		return lexTok{
			Kind: kind,
			Text: text,
			Span: NewPositionRange(pos, pos.Step(text)),
		}, m.Length, true
	}
}

var (
	spaceRule = RegexTokenizer[lexTok]{Name: "space", Pattern: `[ \t\r\n]+`, Skip: true}
	identRule = RegexTokenizer[lexTok]{Name: "ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Make: makeLexTok("ident")}
)

func kindsAndTexts(tokens []lexTok) [][2]string {
	out := make([][2]string, len(tokens))
	for i, tok := range tokens {
		out[i] = [2]string{tok.Kind, tok.Text}
	}
	return out
}

func TestLexerPriorityWithLookahead(t *testing.T) {
	// the keyword rule refuses a prefix match via lookahead, so
	// "ifx" falls through to the identifier rule
	keyword := RegexTokenizer[lexTok]{Name: "keyword", Pattern: `if(?![A-Za-z0-9_])`, Make: makeLexTok("keyword")}
	lexer := MustRegexLexer(spaceRule, keyword, identRule)

	t.Run("Prefix does not shadow a longer identifier", func(t *testing.T) {
		tokens, err := lexer.Tokenize("input", "ifx")
		require.NoError(t, err)
		assert.Equal(t, [][2]string{{"ident", "ifx"}}, kindsAndTexts(tokens))
	})

	t.Run("Standalone keyword wins by rule order", func(t *testing.T) {
		tokens, err := lexer.Tokenize("input", "if x")
		require.NoError(t, err)
		assert.Equal(t, [][2]string{{"keyword", "if"}, {"ident", "x"}}, kindsAndTexts(tokens))
	})

	t.Run("Order encodes priority", func(t *testing.T) {
		reversed := MustRegexLexer(spaceRule, identRule, keyword)
		tokens, err := reversed.Tokenize("input", "if x")
		require.NoError(t, err)
		// with the identifier rule first, "if" is just an identifier
		assert.Equal(t, [][2]string{{"ident", "if"}, {"ident", "x"}}, kindsAndTexts(tokens))
	})
}

func TestLexerCallbackRejection(t *testing.T) {
	// same behavior as the lookahead variant, expressed by the
	// conversion callback rejecting a structurally matching token
	source := "ifx"
	runes := []rune(source)
	keyword := RegexTokenizer[lexTok]{
		Name:    "keyword",
		Pattern: `if`,
		Make: func(pos Position, m *regexp2.Match) (lexTok, int, bool) {
			next := pos.Index + m.Length
			if next < len(runes) && (runes[next] == '_' ||
				(runes[next] >= 'a' && runes[next] <= 'z') ||
				(runes[next] >= 'A' && runes[next] <= 'Z') ||
				(runes[next] >= '0' && runes[next] <= '9')) {
				return lexTok{}, 0, false
			}
			return makeLexTok("keyword")(pos, m)
		},
	}
	lexer := MustRegexLexer(spaceRule, keyword, identRule)

	tokens, err := lexer.Tokenize("input", source)
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"ident", "ifx"}}, kindsAndTexts(tokens))
}

func TestLexerAnchoredAtOffset(t *testing.T) {
	number := RegexTokenizer[lexTok]{Name: "number", Pattern: `[0-9]+`, Make: makeLexTok("number")}
	lexer := MustRegexLexer(number)

	// a match further ahead must not be found: lexing fails at the
	// first offset that matches no rule
	_, err := lexer.Tokenize("input", "ab12")
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 0, lexErr.Pos.Index)
	assert.Contains(t, lexErr.Report, "input:1:1")
	assert.Contains(t, lexErr.Report, "no token rule matches")
}

func TestLexerFailureContext(t *testing.T) {
	number := RegexTokenizer[lexTok]{Name: "number", Pattern: `[0-9]+`, Make: makeLexTok("number")}
	lexer := MustRegexLexer(spaceRule, number)

	_, err := lexer.Tokenize("input", "12 !")
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 3, lexErr.Pos.Index)
	assert.Contains(t, lexErr.Report, "input:1:4")
	assert.Contains(t, lexErr.Report, "^")
	assert.Contains(t, lexErr.Report, "most recently produced token")
}

func TestLexerConsumedLengthOverride(t *testing.T) {
	// the callback may consume less than the raw match, enabling
	// lookahead-sensitive tokens
	shortA := RegexTokenizer[lexTok]{
		Name:    "a-with-lookahead",
		Pattern: `ab+`,
		Make: func(pos Position, m *regexp2.Match) (lexTok, int, bool) {
			return lexTok{Kind: "a", Text: "a", Span: NewPositionRange(pos, pos.Step("a"))}, 1, true
		},
	}
	bRule := RegexTokenizer[lexTok]{Name: "b", Pattern: `b`, Make: makeLexTok("b")}
	lexer := MustRegexLexer(shortA, bRule)

	tokens, err := lexer.Tokenize("input", "abb")
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"a", "a"}, {"b", "b"}, {"b", "b"}}, kindsAndTexts(tokens))
}

func TestLexerLineTracking(t *testing.T) {
	lexer := MustRegexLexer(spaceRule, identRule)

	tokens, err := lexer.Tokenize("input", "ab\ncd")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, Position{Index: 0, Line: 1, Column: 1}, tokens[0].Span.Start)
	assert.Equal(t, Position{Index: 3, Line: 2, Column: 1}, tokens[1].Span.Start)
	assert.Equal(t, Position{Index: 5, Line: 2, Column: 3}, tokens[1].Span.End)
}

func TestLexerConstructionErrors(t *testing.T) {
	t.Run("Bad pattern", func(t *testing.T) {
		_, err := NewRegexLexer(RegexTokenizer[lexTok]{Name: "broken", Pattern: `(`, Make: makeLexTok("x")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("Non-skip rule without a callback", func(t *testing.T) {
		_, err := NewRegexLexer(RegexTokenizer[lexTok]{Name: "anon", Pattern: `x`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Make callback")
	})
}

func TestLexerZeroConsumptionGuard(t *testing.T) {
	maybeX := RegexTokenizer[lexTok]{Name: "maybe-x", Pattern: `x?`, Skip: true}
	lexer := MustRegexLexer(maybeX)

	_, err := lexer.Tokenize("input", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consumed 0")
	assert.False(t, errors.As(err, new(*LexError)))
}
