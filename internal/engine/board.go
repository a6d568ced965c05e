// board.go defines ChessBoard: the twelve-bitboard container (two color
// masks plus six piece masks) and the board-level move/castling/check
// operations layered on top of it.

package engine

// ChessBoard is a stateful board position: which squares each color
// occupies, and which squares each piece kind occupies. A square is
// occupied by color c and piece p iff colors[c] and pieces[p] are both set
// at that square.
type ChessBoard struct {
	colors [2]BitBoard
	pieces [numPieceKinds]BitBoard
}

// NewChessBoard returns the standard chess starting position.
func NewChessBoard() ChessBoard {
	var b ChessBoard
	backRank := [8]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b.placePiece(Square(file), backRank[file], White)
		b.placePiece(Square(8+file), Pawn, White)
		b.placePiece(Square(48+file), Pawn, Black)
		b.placePiece(Square(56+file), backRank[file], Black)
	}
	return b
}

// PieceAt returns the piece kind at sq, or NoPiece if empty.
func (b *ChessBoard) PieceAt(sq Square) Piece {
	for p := Piece(0); p < numPieceKinds; p++ {
		if b.pieces[p].Get(sq) {
			return p
		}
	}
	return NoPiece
}

// ColorAt returns the color occupying sq, or NoColor if empty.
func (b *ChessBoard) ColorAt(sq Square) Color {
	if b.colors[White].Get(sq) {
		return White
	}
	if b.colors[Black].Get(sq) {
		return Black
	}
	return NoColor
}

// PieceAndColorAt returns both PieceAt and ColorAt for sq.
func (b ChessBoard) PieceAndColorAt(sq Square) (Piece, Color) {
	return b.PieceAt(sq), b.ColorAt(sq)
}

// IsOccupied reports whether any piece stands on sq.
func (b *ChessBoard) IsOccupied(sq Square) bool {
	return b.ColorAt(sq) != NoColor
}

// MaskBy returns the bitboard of squares occupied by piece/color. Returns 0
// for the none sentinels.
func (b *ChessBoard) MaskBy(piece Piece, color Color) BitBoard {
	if piece < 0 || int(piece) >= numPieceKinds || (color != White && color != Black) {
		return 0
	}
	return b.pieces[piece] & b.colors[color]
}

// Occupancy returns the combined occupancy of both colors.
func (b ChessBoard) Occupancy() BitBoard {
	return b.colors[White] | b.colors[Black]
}

// placePiece sets sq in the piece and color boards without validation.
func (b *ChessBoard) placePiece(sq Square, piece Piece, color Color) {
	b.colors[color].Set(sq)
	b.pieces[piece].Set(sq)
}

// removePieceAt clears whichever piece/color occupies sq. No-op if empty.
func (b *ChessBoard) removePieceAt(sq Square) {
	piece, color := b.PieceAndColorAt(sq)
	if color == NoColor {
		return
	}
	b.colors[color].Clear(sq)
	if piece != NoPiece {
		b.pieces[piece].Clear(sq)
	}
}

// PlacePiece sets sq to piece/color, failing if either is the none
// sentinel.
func (b *ChessBoard) PlacePiece(sq Square, piece Piece, color Color) error {
	if piece == NoPiece || piece < 0 || int(piece) >= numPieceKinds {
		return newError(Validation, "cannot place the none piece at %s", sq)
	}
	if color != White && color != Black {
		return newError(Validation, "cannot place a piece with the none color at %s", sq)
	}
	b.placePiece(sq, piece, color)
	return nil
}

// RelocatePiece clears from and sets to in the piece/color board the
// occupant of from belongs to. It is the caller's responsibility to have
// already cleared any pre-existing occupant at to.
func (b *ChessBoard) RelocatePiece(from, to Square) {
	piece, color := b.PieceAndColorAt(from)
	if color == NoColor {
		return
	}
	b.colors[color].Clear(from)
	b.pieces[piece].Clear(from)
	b.colors[color].Set(to)
	b.pieces[piece].Set(to)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MakeMove applies the board-level move from->to: captures, en-passant
// captures, en-passant target bookkeeping and castling-rights bookkeeping.
// It returns false (not an error) when from is empty or to holds a
// same-color piece. enPassant/kingsideRights/queensideRights are indexed by
// color and mutated in place. The second return value reports whether the
// move was a capture or a pawn move, the signal MakeMove's caller uses to
// reset the half-move clock.
func (b *ChessBoard) MakeMove(from, to Square, enPassant *[2]Square, kingsideRights, queensideRights *[2]bool) (ok, capturedOrPawnMove bool) {
	moved, color := b.PieceAndColorAt(from)
	if moved == NoPiece {
		return false, false
	}
	destColor := b.ColorAt(to)
	if destColor == color {
		return false, false
	}
	opponent := color.Opponent()
	isCapture := destColor == opponent

	if isCapture {
		b.removePieceAt(to)
	}
	b.removePieceAt(from)
	b.placePiece(to, moved, color)

	isPawnMove := moved == Pawn
	if isPawnMove && to == enPassant[opponent] {
		var behind Square
		if color == White {
			behind = to - 8
		} else {
			behind = to + 8
		}
		b.removePieceAt(behind)
		isCapture = true
		enPassant[opponent] = NoSquare
	}

	if isPawnMove && absInt(int(to)-int(from)) == 16 {
		enPassant[color] = Square((int(from) + int(to)) / 2)
	} else {
		enPassant[color] = NoSquare
	}

	switch moved {
	case King:
		kingsideRights[color] = false
		queensideRights[color] = false
	case Rook:
		if kingSq := b.FindKing(color); kingSq.Valid() {
			if from > kingSq {
				kingsideRights[color] = false
			} else {
				queensideRights[color] = false
			}
		}
	}

	return true, isCapture || isPawnMove
}

// PromoteToQueen replaces whatever piece stands at sq with a queen of the
// same color. No-op if sq is empty.
func (b *ChessBoard) PromoteToQueen(sq Square) {
	piece, color := b.PieceAndColorAt(sq)
	if color == NoColor || piece == Queen {
		return
	}
	b.pieces[piece].Clear(sq)
	b.pieces[Queen].Set(sq)
}

// CastleKingside relocates the king to the G file and the rook to the F
// file on their shared home rank.
func (b *ChessBoard) CastleKingside(kingSq, rookSq Square) {
	b.castle(kingSq, rookSq, 6, 5)
}

// CastleQueenside relocates the king to the C file and the rook to the D
// file on their shared home rank.
func (b *ChessBoard) CastleQueenside(kingSq, rookSq Square) {
	b.castle(kingSq, rookSq, 2, 3)
}

func (b *ChessBoard) castle(kingSq, rookSq Square, kingFile, rookFile int) {
	color := b.ColorAt(kingSq)
	rank := kingSq.Rank()
	newKingSq := Square(rank*8 + kingFile)
	newRookSq := Square(rank*8 + rookFile)

	b.removePieceAt(kingSq)
	b.removePieceAt(rookSq)
	b.placePiece(newKingSq, King, color)
	b.placePiece(newRookSq, Rook, color)
}

// FindKing returns the square of color's king, or NoSquare if it has none
// (which never happens in a position satisfying the one-king invariant).
func (b *ChessBoard) FindKing(color Color) Square {
	kings := b.MaskBy(King, color)
	if kings == 0 {
		return NoSquare
	}
	return kings.Bits()[0]
}

// FindRook returns the square of color's kingside (kingside=true) or
// queenside rook relative to its king: the friendly rook on the king's rank
// with the outermost file on that side. Returns NoSquare if none qualifies.
func (b *ChessBoard) FindRook(color Color, kingside bool) Square {
	kingSq := b.FindKing(color)
	if !kingSq.Valid() {
		return NoSquare
	}
	rooks := b.MaskBy(Rook, color)
	best := NoSquare
	for _, sq := range rooks.Bits() {
		if sq.Rank() != kingSq.Rank() {
			continue
		}
		if kingside && sq.File() > kingSq.File() {
			if !best.Valid() || sq.File() > best.File() {
				best = sq
			}
		}
		if !kingside && sq.File() < kingSq.File() {
			if !best.Valid() || sq.File() < best.File() {
				best = sq
			}
		}
	}
	return best
}

// castleCorridor returns the squares strictly between rookSq and kingSq,
// plus kingSq itself, obtained by ray-filling from the rook toward the
// king. If any square between them is occupied, that occupant (not the
// king) is the first blocker hit and kingSq will be absent from the
// result — the caller checks for that to detect "path blocked".
func castleCorridor(kingSq, rookSq Square, occ BitBoard) BitBoard {
	if kingSq > rookSq {
		return PopulateRight(rookSq, 7, occ)
	}
	return PopulateLeft(rookSq, 7, occ)
}

// attackedSquares returns the union of the action masks (quiet moves plus
// attacks) of every piece of the given color, used to test whether a
// castling corridor is safe to pass through. Pawns' quiet double-push
// extension is not modeled here (initialPawnMask=0): it never reaches a
// castling corridor on a back rank in a reachable position.
func (b *ChessBoard) attackedSquares(color Color) BitBoard {
	occ := b.Occupancy()
	own := b.colors[color]
	var attacked BitBoard
	for _, sq := range own.Bits() {
		piece := b.PieceAt(sq)
		reach := ReachMask(piece, color, sq, occ, 0)
		move := MoveMask(reach, b.colors[White], b.colors[Black])
		attack := AttackMask(piece, color, sq, reach, b.colors[color.Opponent()], NoSquare)
		attacked |= ActionMask(move, attack)
	}
	return attacked
}

func (b *ChessBoard) canCastle(color Color, kingside bool) bool {
	kingSq := b.FindKing(color)
	if !kingSq.Valid() {
		return false
	}
	rookSq := b.FindRook(color, kingside)
	if !rookSq.Valid() {
		return false
	}
	if p, c := b.PieceAndColorAt(kingSq); p != King || c != color {
		return false
	}
	if p, c := b.PieceAndColorAt(rookSq); p != Rook || c != color {
		return false
	}

	corridor := castleCorridor(kingSq, rookSq, b.Occupancy())
	if !corridor.Get(kingSq) {
		return false
	}
	return corridor&b.attackedSquares(color.Opponent()) == 0
}

// CanCastleKingside reports whether color's king and the kingside rook
// FindRook locates on the king's rank have a clear, unattacked corridor
// between them. Whether that rank is the home rank is not checked here, and
// castling rights are not consulted — both belong to GameState.
func (b *ChessBoard) CanCastleKingside(color Color) bool {
	return b.canCastle(color, true)
}

// CanCastleQueenside is CanCastleKingside's queenside counterpart.
func (b *ChessBoard) CanCastleQueenside(color Color) bool {
	return b.canCastle(color, false)
}

// GetKingCheckPositions returns the squares of enemy pieces currently
// attacking color's king, computed by intersecting each piece kind's king-
// threat mask with the opponent's actual board for that piece kind. An
// empty result means color's king is not in check.
func (b *ChessBoard) GetKingCheckPositions(color Color) BitBoard {
	kingSq := b.FindKing(color)
	if !kingSq.Valid() {
		return 0
	}
	occ := b.Occupancy()
	opponent := color.Opponent()

	var threats BitBoard
	for p := Piece(0); p < numPieceKinds; p++ {
		threatMask := KingThreatMask(p, color, kingSq, occ, 0)
		threats |= threatMask & b.pieces[p] & b.colors[opponent]
	}
	return threats
}

// IsKingCheck reports whether color's king is currently attacked.
func (b *ChessBoard) IsKingCheck(color Color) bool {
	return b.GetKingCheckPositions(color) != 0
}

// GenerateLegalMoves returns every legal destination for each of color's
// pieces: the action mask of every friendly piece, filtered by simulating
// each candidate on a cloned board and rejecting any that leaves color's
// own king in check. initialPawnMask marks color's pawns' starting squares
// (enabling the two-square opening push); enPassant is indexed by color and
// holds each side's current en-passant target.
func (b *ChessBoard) GenerateLegalMoves(color Color, initialPawnMask BitBoard, enPassant [2]Square) AvailableMoves {
	var moves AvailableMoves
	opponent := color.Opponent()
	occ := b.Occupancy()
	oppEPTarget := enPassant[opponent]

	for _, sq := range b.colors[color].Bits() {
		piece := b.PieceAt(sq)
		reach := ReachMask(piece, color, sq, occ, initialPawnMask)
		move := MoveMask(reach, b.colors[White], b.colors[Black])
		attack := AttackMask(piece, color, sq, reach, b.colors[opponent], oppEPTarget)
		action := ActionMask(move, attack)

		var legal BitBoard
		for _, dest := range action.Bits() {
			clone := *b
			cloneEP := enPassant
			var kr, qr [2]bool
			ok, _ := clone.MakeMove(sq, dest, &cloneEP, &kr, &qr)
			if ok && !clone.IsKingCheck(color) {
				legal.Set(dest)
			}
		}
		if legal != 0 {
			moves.Entries = append(moves.Entries, MoveOrigin{From: sq, To: legal})
		}
	}
	return moves
}
