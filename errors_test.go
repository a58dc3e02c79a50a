package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Err      ParserError
		Expected string
	}{
		{
			Name:     "Expected",
			Err:      ErrExpected{What: "number"},
			Expected: "expected number",
		},
		{
			Name:     "Unexpected",
			Err:      ErrUnexpected{What: "`#`"},
			Expected: "unexpected `#`",
		},
		{
			Name:     "Failure",
			Err:      ErrFailure{Reason: "headers can have a maximum of 6 hashtags"},
			Expected: "headers can have a maximum of 6 hashtags",
		},
		{
			Name:     "Fatal keeps the inner message",
			Err:      ErrFatal{Inner: ErrExpected{What: "`)`"}},
			Expected: "expected `)`",
		},
		{
			Name: "OneOf of two expectations",
			Err: ErrOneOf{Alternatives: []ParserError{
				ErrExpected{What: "`a`"},
				ErrExpected{What: "`b`"},
			}},
			Expected: "expected `a` or `b`",
		},
		{
			Name: "OneOf of three expectations",
			Err: ErrOneOf{Alternatives: []ParserError{
				ErrExpected{What: "`a`"},
				ErrExpected{What: "`b`"},
				ErrExpected{What: "`c`"},
			}},
			Expected: "expected `a`, `b`, or `c`",
		},
		{
			Name: "OneOf mixing expectations and failures",
			Err: ErrOneOf{Alternatives: []ParserError{
				ErrExpected{What: "number"},
				ErrFailure{Reason: "value out of range"},
			}},
			Expected: "expected number; value out of range",
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, test.Err.Message())
		})
	}
}

func TestUnion(t *testing.T) {
	t.Run("Duplicates collapse", func(t *testing.T) {
		err := Union(ErrExpected{What: "digit"}, ErrExpected{What: "digit"})
		assert.Equal(t, ErrExpected{What: "digit"}, err)
	})

	t.Run("Distinct errors become OneOf", func(t *testing.T) {
		err := Union(ErrExpected{What: "`a`"}, ErrExpected{What: "`b`"})
		oneOf, ok := err.(ErrOneOf)
		require.True(t, ok)
		assert.Len(t, oneOf.Alternatives, 2)
	})

	t.Run("Nested OneOf flattens", func(t *testing.T) {
		inner := ErrOneOf{Alternatives: []ParserError{
			ErrExpected{What: "`a`"},
			ErrExpected{What: "`b`"},
		}}
		err := Union(inner, ErrExpected{What: "`c`"})
		oneOf, ok := err.(ErrOneOf)
		require.True(t, ok)
		assert.Len(t, oneOf.Alternatives, 3)
		assert.Equal(t, "expected `a`, `b`, or `c`", oneOf.Message())
	})

	t.Run("Nil operands pass through", func(t *testing.T) {
		assert.Equal(t, ErrExpected{What: "x"}, Union(nil, ErrExpected{What: "x"}))
		assert.Equal(t, ErrExpected{What: "x"}, Union(ErrExpected{What: "x"}, nil))
	})
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(ErrExpected{What: "x"}))
	assert.True(t, IsFatal(ErrFatal{Inner: ErrExpected{What: "x"}}))
	assert.True(t, IsFatal(ErrOneOf{Alternatives: []ParserError{
		ErrExpected{What: "x"},
		ErrFatal{Inner: ErrFailure{Reason: "boom"}},
	}}))
}

func TestLocatedMerge(t *testing.T) {
	shallow := LocatedParserError{Err: ErrExpected{What: "`a`"}, Index: 1}
	deep := LocatedParserError{Err: ErrExpected{What: "`b`"}, Index: 5}

	t.Run("Deeper index wins outright", func(t *testing.T) {
		assert.Equal(t, deep, shallow.Merge(deep))
		assert.Equal(t, deep, deep.Merge(shallow))
	})

	t.Run("Equal index unions", func(t *testing.T) {
		other := LocatedParserError{Err: ErrExpected{What: "`c`"}, Index: 5}
		merged := deep.Merge(other)
		assert.Equal(t, 5, merged.Index)
		assert.Equal(t, "expected `b` or `c`", merged.Err.Message())
	})
}
