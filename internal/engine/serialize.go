// serialize.go implements the two representations a GameState crosses a
// persistence or transport boundary in: a bitboard's 64-character binary
// string, and the Snapshot document internal/store saves and reloads a
// session from.

package engine

import "strings"

// ToBinaryString renders b as 64 characters of '0'/'1', square H8 (bit 63)
// at position 0 through A1 (bit 0) at position 63 (MSB first), matching the
// document form ParseBitBoard reads back.
func (b BitBoard) ToBinaryString() string {
	var sb strings.Builder
	sb.Grow(64)
	for sq := Square(63); sq >= 0; sq-- {
		if b.Get(sq) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBitBoard parses a 64-character '0'/'1' string produced by
// ToBinaryString back into a BitBoard: position 0 is square H8 (bit 63),
// position 63 is square A1 (bit 0).
func ParseBitBoard(s string) (BitBoard, error) {
	if len(s) != 64 {
		return 0, newError(Encoding, "bitboard string has length %d, want 64", len(s))
	}
	var b BitBoard
	for i, sq := 0, Square(63); sq >= 0; i, sq = i+1, sq-1 {
		switch s[i] {
		case '1':
			b.Set(sq)
		case '0':
		default:
			return 0, newError(Encoding, "bitboard string has invalid character %q at position %d", string(s[i]), i)
		}
	}
	return b, nil
}

// Snapshot is the document form of a GameState that internal/store persists
// and reloads. The position travels as a FEN string rather than as raw
// bitboard fields: a document store's native integer type is signed and
// FEN sidesteps that entirely, the same overflow ToBinaryString's
// MSB-first bit string exists to dodge for a caller that needs per-bitboard
// fields instead of a combined position string. The move log and terminal
// outcome ride alongside the FEN since it alone can't reconstruct them.
type Snapshot struct {
	FEN      string         `bson:"fen" json:"fen"`
	MoveLog  []MoveLogEntry `bson:"move_log" json:"move_log"`
	Winner   int8           `bson:"winner" json:"winner"`
	Draw     bool           `bson:"draw" json:"draw"`
	Resigned bool           `bson:"resigned" json:"resigned"`
}

// Snapshot captures g's full state for persistence.
func (g *GameState) Snapshot() Snapshot {
	return Snapshot{
		FEN:      g.ToFEN(),
		MoveLog:  g.MoveLog(),
		Winner:   int8(g.winner),
		Draw:     g.draw,
		Resigned: g.resigned,
	}
}

// FromSnapshot reconstructs a GameState previously captured with Snapshot.
// The legal-move cache and check state are recomputed fresh from the
// restored FEN rather than stored, since they're cheap to derive and
// storing them would risk drift from the authoritative position.
func FromSnapshot(s Snapshot) (*GameState, error) {
	g, err := FromFEN(s.FEN)
	if err != nil {
		return nil, err
	}
	g.moveLog = append([]MoveLogEntry(nil), s.MoveLog...)
	g.winner = Color(s.Winner)
	g.draw = s.Draw
	g.resigned = s.Resigned
	return g, nil
}
