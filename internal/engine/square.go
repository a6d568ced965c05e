// square.go defines board square indices and their algebraic string form.
//
// Squares are numbered 0..63, A1=0 through H8=63: files run A..H with
// increasing index and ranks run 1..8 with increasing index, so
// square = rank*8 + file.

package engine

import "fmt"

// Square is a board square index in 0..63. NoSquare (64) is the sentinel
// used for "no en-passant target this side".
type Square int

// NoSquare is the sentinel value meaning "not applicable", used for the
// en-passant target fields.
const NoSquare Square = 64

// Named constants for all 64 squares, A1 through H8 in index order.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// File returns the file (0=A..7=H) of the square.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the rank (0=rank1..7=rank8) of the square.
func (s Square) Rank() int { return int(s) / 8 }

// Valid reports whether s is a real board square (0..63).
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// String renders the square in algebraic notation, e.g. "e4". NoSquare
// renders as "-".
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	if !s.Valid() {
		return "?"
	}
	return string(rune('a'+s.File())) + string(rune('1'+s.Rank()))
}

// ParseSquare parses an algebraic square string such as "E2" (case
// insensitive). "-" parses to NoSquare.
func ParseSquare(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	if len(s) != 2 {
		return 0, &Error{Kind: Validation, Message: fmt.Sprintf("malformed square %q: want 2 characters", s)}
	}

	file := s[0]
	if file >= 'A' && file <= 'H' {
		file = file - 'A' + 'a'
	}
	if file < 'a' || file > 'h' {
		return 0, &Error{Kind: Validation, Message: fmt.Sprintf("malformed square %q: bad file", s)}
	}

	rank := s[1]
	if rank < '1' || rank > '8' {
		return 0, &Error{Kind: Validation, Message: fmt.Sprintf("malformed square %q: bad rank", s)}
	}

	return Square(int(rank-'1')*8 + int(file-'a')), nil
}
