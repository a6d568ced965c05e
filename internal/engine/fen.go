// fen.go implements Forsyth-Edwards Notation round-tripping: the six
// space-separated fields (piece placement, active color, castling rights,
// en-passant target, half-move clock, full-move number) that serialize a
// GameState.

package engine

import (
	"strconv"
	"strings"
)

// ParsePiecePlacement decodes FEN's first field (ranks 8 down to 1,
// separated by '/', each rank a run of piece letters and digit gap counts)
// into a ChessBoard.
func ParsePiecePlacement(field string) (ChessBoard, error) {
	var b ChessBoard
	rows := strings.Split(field, "/")
	if len(rows) != 8 {
		return b, newError(Decoding, "piece placement %q: want 8 ranks, got %d", field, len(rows))
	}

	for i, row := range rows {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(row) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, color, ok := ParsePieceLetter(ch)
			if !ok {
				return b, newError(Decoding, "piece placement %q: unknown piece letter %q", field, string(ch))
			}
			if file > 7 {
				return b, newError(Decoding, "piece placement %q: rank %d overflows 8 files", field, rank+1)
			}
			if err := b.PlacePiece(Square(rank*8+file), piece, color); err != nil {
				return b, err
			}
			file++
		}
		if file != 8 {
			return b, newError(Decoding, "piece placement %q: rank %d sums to %d files, want 8", field, rank+1, file)
		}
	}
	return b, nil
}

// SerializePiecePlacement encodes b into FEN's piece-placement field.
func SerializePiecePlacement(b ChessBoard) string {
	var ranks [8]string
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		gap := 0
		for file := 0; file < 8; file++ {
			piece, color := b.PieceAndColorAt(Square(rank*8 + file))
			if color == NoColor {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			sb.WriteByte(piece.FENLetter(color))
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
		ranks[7-rank] = sb.String()
	}
	return strings.Join(ranks[:], "/")
}

// FromFEN parses a complete six-field FEN string into a new GameState.
// Castling-right home squares are re-derived from the board (supporting
// Chess960-style starts) when the corresponding right is set; otherwise the
// standard E1/A1/H1 (or rank-8 mirror) squares are assumed, since they are
// never consulted without the matching right.
func FromFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, newError(Decoding, "fen %q: want 6 fields, got %d", fen, len(fields))
	}

	board, err := ParsePiecePlacement(fields[0])
	if err != nil {
		return nil, err
	}

	var active Color
	switch fields[1] {
	case "w":
		active = White
	case "b":
		active = Black
	default:
		return nil, newError(Decoding, "fen %q: active color %q must be \"w\" or \"b\"", fen, fields[1])
	}

	castling := fields[2]
	kingsideRights := [2]bool{strings.Contains(castling, "K"), strings.Contains(castling, "k")}
	queensideRights := [2]bool{strings.Contains(castling, "Q"), strings.Contains(castling, "q")}
	if castling != "-" {
		for _, ch := range []byte(castling) {
			switch ch {
			case 'K', 'Q', 'k', 'q':
			default:
				return nil, newError(Decoding, "fen %q: castling field %q has unknown letter %q", fen, castling, string(ch))
			}
		}
	}

	epTarget, err := ParseSquare(fields[3])
	if err != nil {
		return nil, err
	}

	halfMove, err := strconv.Atoi(fields[4])
	if err != nil || halfMove < 0 {
		return nil, newError(Decoding, "fen %q: half-move clock %q must be a non-negative integer", fen, fields[4])
	}
	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		return nil, newError(Decoding, "fen %q: full-move number %q must be a positive integer", fen, fields[5])
	}

	var kingSquare, kingsideRook, queensideRook [2]Square
	for _, c := range [2]Color{White, Black} {
		kingSquare[c] = board.FindKing(c)
		if !kingSquare[c].Valid() {
			kingSquare[c] = standardKingHome[c]
		}

		kingsideRook[c] = standardKingsideRook[c]
		if kingsideRights[c] {
			if sq := board.FindRook(c, true); sq.Valid() {
				kingsideRook[c] = sq
			}
		}
		queensideRook[c] = standardQueensideRook[c]
		if queensideRights[c] {
			if sq := board.FindRook(c, false); sq.Valid() {
				queensideRook[c] = sq
			}
		}
	}

	// The passive side (the one that just moved) owns the en-passant target:
	// FEN's field names the square a pawn passed over, and only the side
	// that did NOT just move can capture onto it next.
	var enPassant [2]Square
	enPassant[active] = NoSquare
	enPassant[active.Opponent()] = epTarget

	g := &GameState{
		board:           board,
		sideToMove:      active,
		halfMoveCount:   halfMove,
		fullMoveCount:   fullMove,
		initialPawnMask: [2]BitBoard{White: 0x000000000000FF00, Black: 0x00FF000000000000},
		enPassant:       enPassant,
		kingSquare:      kingSquare,
		kingsideRook:    kingsideRook,
		queensideRook:   queensideRook,
		kingsideRights:  kingsideRights,
		queensideRights: queensideRights,
		winner:          NoColor,
	}
	if err := g.update(); err != nil {
		return nil, err
	}
	return g, nil
}

// ToFEN serializes g into its six-field FEN string.
func (g *GameState) ToFEN() string {
	var castling strings.Builder
	if g.kingsideRights[White] {
		castling.WriteByte('K')
	}
	if g.queensideRights[White] {
		castling.WriteByte('Q')
	}
	if g.kingsideRights[Black] {
		castling.WriteByte('k')
	}
	if g.queensideRights[Black] {
		castling.WriteByte('q')
	}
	castlingField := castling.String()
	if castlingField == "" {
		castlingField = "-"
	}

	epField := g.enPassant[g.sideToMove.Opponent()].String()

	return strings.Join([]string{
		SerializePiecePlacement(g.board),
		g.sideToMove.String(),
		castlingField,
		epField,
		strconv.Itoa(g.halfMoveCount),
		strconv.Itoa(g.fullMoveCount),
	}, " ")
}
