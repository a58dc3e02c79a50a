package parsec

// Status classifies the outcome of running one parser.
type Status int

const (
	// StatusOK means the parser matched and Value is valid.
	StatusOK Status = iota
	// StatusError is a recoverable failure: an enclosing Choice may
	// retry a sibling alternative if no input was consumed.
	StatusError
	// StatusFatal is a committed failure that no backtracking
	// combinator may swallow.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	case StatusFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseResult is the outcome of running one parser over a stream.
// Value is valid iff Status is StatusOK; Err is set iff it is not.
// Consumed tells enclosing combinators whether the cursor moved, the
// signal Choice uses to decide whether backtracking is allowed.
// Start and End are the stream-index range the attempt covered.
type ParseResult[R any] struct {
	Status   Status
	Value    R
	Err      *LocatedParserError
	Consumed bool
	Start    int
	End      int
}

// OK reports whether the parse succeeded.
func (r ParseResult[R]) OK() bool { return r.Status == StatusOK }

// Failed reports whether the parse failed, fatally or not.
func (r ParseResult[R]) Failed() bool { return r.Status != StatusOK }

// Succeed builds an OK result for the span start..s.Index().
// Zero-width successes are legal and report Consumed=false so that
// repetition combinators can detect them.
func Succeed[T, R any](s *InputStream[T], start int, v R) ParseResult[R] {
	end := s.Index()
	return ParseResult[R]{
		Status:   StatusOK,
		Value:    v,
		Consumed: end != start,
		Start:    start,
		End:      end,
	}
}

// FailAt builds a failing result for an error raised at index `at`,
// recording it in the stream's running max-error.  The result is
// fatal when err is (or wraps) ErrFatal.
func FailAt[T, R any](s *InputStream[T], start, at int, err ParserError) ParseResult[R] {
	located := LocatedParserError{Err: err, Index: at}
	s.RecordFailure(located)
	status := StatusError
	if IsFatal(err) {
		status = StatusFatal
	}
	return ParseResult[R]{
		Status:   status,
		Err:      &located,
		Consumed: s.Index() != start,
		Start:    start,
		End:      s.Index(),
	}
}

// forward carries a failure across a result-type boundary, keeping
// status, error, consumption and range intact.
func forward[A, B any](r ParseResult[A]) ParseResult[B] {
	return ParseResult[B]{
		Status:   r.Status,
		Err:      r.Err,
		Consumed: r.Consumed,
		Start:    r.Start,
		End:      r.End,
	}
}
