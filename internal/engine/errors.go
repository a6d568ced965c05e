// errors.go implements the error taxonomy described at the engine boundary:
// validation, decoding, encoding and rule-violation failures are all
// surfaced to the caller as a typed Error, never logged or retried here.

package engine

import "fmt"

// Kind classifies an Error for the benefit of an HTTP collaborator deciding
// a status code (see internal/httpapi): Validation/Decoding/Encoding/
// RuleViolation map to 400, Internal maps to 500.
type Kind int

const (
	// Validation covers malformed squares, algebraic strings, or placing
	// the none piece/color sentinel.
	Validation Kind = iota
	// Decoding covers malformed FEN (wrong field count, bad rank sums,
	// unknown piece letters, unparseable counters).
	Decoding
	// Encoding covers malformed serialized payloads (e.g. a bitboard
	// string of the wrong length).
	Encoding
	// RuleViolation covers illegal moves, castling without rights/ability,
	// moving in a finished game, or moving out of turn.
	RuleViolation
	// Internal covers invariant breaks that should never happen given a
	// valid GameState, such as a castling right surviving with no rook on
	// its recorded square.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Decoding:
		return "decoding"
	case Encoding:
		return "encoding"
	case RuleViolation:
		return "rule violation"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the engine's single error type. Callers should inspect Kind to
// decide how to report the failure; Message is safe to show to an end user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
