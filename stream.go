package parsec

// InputStream is a mutable read cursor over an immutable token
// buffer, plus the shared diagnostic accumulator for one parse run.
// Create one per top-level parse invocation; it is not safe for use
// by concurrent parses.  Parser values themselves are pure and freely
// shareable.
type InputStream[T any] struct {
	name    string
	source  []T
	index   int
	witness Witness[T]

	// maxErr is the deepest failure observed across the whole run,
	// kept even after backtracking, purely for diagnostics.
	maxErr *LocatedParserError

	// lastTaken is the index of the most recently consumed token, or
	// -1, used for "most recently parsed token" context in reports.
	lastTaken int
}

// NewInputStream builds a stream over pre-lexed tokens.  `name`
// identifies the source in diagnostics; `witness` renders tokens and
// positions and may be nil to fall back to index-based positions.
func NewInputStream[T any](name string, source []T, witness Witness[T]) *InputStream[T] {
	if witness == nil {
		witness = NewSliceWitness[T](source, nil)
	}
	return &InputStream[T]{
		name:      name,
		source:    source,
		witness:   witness,
		lastTaken: -1,
	}
}

// NewStringStream builds a rune stream over raw text with line and
// column tracking.
func NewStringStream(name, text string) *InputStream[rune] {
	source := []rune(text)
	return NewInputStream[rune](name, source, newStringWitness(source))
}

func (s *InputStream[T]) Name() string { return s.name }

// Index returns the current read cursor.
func (s *InputStream[T]) Index() int { return s.index }

// Len returns the total number of tokens in the buffer.
func (s *InputStream[T]) Len() int { return len(s.source) }

// AtEnd reports whether the whole input has been consumed.
func (s *InputStream[T]) AtEnd() bool { return s.index >= len(s.source) }

// TryPeek returns the token `offset` positions ahead of the cursor
// without moving it.  The second return is false past either end of
// the buffer.
func (s *InputStream[T]) TryPeek(offset int) (T, bool) {
	i := s.index + offset
	if i < 0 || i >= len(s.source) {
		var zero T
		return zero, false
	}
	return s.source[i], true
}

// Take advances the cursor by n accepted tokens.  It does not itself
// decide success or failure; callers only move the cursor after a
// token has been accepted.
func (s *InputStream[T]) Take(n int) {
	if n <= 0 {
		return
	}
	s.index += n
	if s.index > len(s.source) {
		s.index = len(s.source)
	}
	s.lastTaken = s.index - 1
}

// Backtrack rewinds the cursor to an earlier index.  Only explicit
// backtracking combinators (Attempt, lookahead) call this; Choice
// never needs to because it only retries branches that did not move
// the cursor.
func (s *InputStream[T]) Backtrack(index int) {
	if index < 0 {
		index = 0
	}
	if index < s.index {
		s.index = index
	}
}

// RecordFailure folds err into the stream's running max-error using
// the deeper-index-wins merge rule.  Called on every failure,
// including ones later discarded by backtracking; it never affects
// control flow.
func (s *InputStream[T]) RecordFailure(err LocatedParserError) {
	if s.maxErr == nil {
		s.maxErr = &err
		return
	}
	merged := s.maxErr.Merge(err)
	s.maxErr = &merged
}

// MaxError returns the deepest failure recorded so far, or nil.
func (s *InputStream[T]) MaxError() *LocatedParserError {
	return s.maxErr
}

// PositionAt maps a stream index to a source position via the
// witness.
func (s *InputStream[T]) PositionAt(index int) Position {
	return s.witness.PositionAt(index)
}

// ShowAllFailures renders err merged with the deepest failure the
// stream saw while backtracking, pretty printed with the source
// excerpt, a caret at the failing column, and the most recently
// parsed token for context.  This is the user-facing diagnostic
// surface.
func (s *InputStream[T]) ShowAllFailures(err LocatedParserError) string {
	if s.maxErr != nil {
		err = err.Merge(*s.maxErr)
	}
	pos := s.witness.PositionAt(err.Index)
	excerpt, hasExcerpt := s.witness.Excerpt(pos)
	context := ""
	if s.lastTaken >= 0 && s.lastTaken < len(s.source) {
		tok := s.source[s.lastTaken]
		span := NewPositionRange(
			s.witness.PositionAt(s.lastTaken),
			s.witness.PositionAt(s.lastTaken+1),
		)
		context = "most recently parsed token was " + s.witness.Describe(tok) + " at " + span.String()
	}
	return formatDiagnostic(s.name, pos, excerpt, hasExcerpt, err.Err.Message(), context)
}
