// attacks.go implements PieceAttacks: pure functions mapping a piece, its
// color, its square, and the occupancy it sees to the reach mask, the quiet
// move mask, and the attack mask, per the per-piece rules in the component
// design.

package engine

// ReachMask returns the squares piece/color at sq can influence along its
// movement rays or hops, including the first blocker (see BitBoard's
// ray-fill contract). occ is the combined occupancy of both colors.
// initialPawnMask marks the squares a pawn of this color starts on, used to
// allow the two-square opening push.
func ReachMask(piece Piece, color Color, sq Square, occ, initialPawnMask BitBoard) BitBoard {
	switch piece {
	case Pawn:
		return pawnReach(color, sq, occ, initialPawnMask)
	case Knight:
		return knightReach(sq)
	case Bishop:
		return PopulateDiag(sq, 7, occ)
	case Rook:
		return PopulateVertHor(sq, 7, occ)
	case Queen:
		return PopulateDiag(sq, 7, occ) | PopulateVertHor(sq, 7, occ)
	case King:
		return PopulateDiag(sq, 1, occ) | PopulateVertHor(sq, 1, occ)
	default:
		return 0
	}
}

func pawnReach(color Color, sq Square, occ, initialPawnMask BitBoard) BitBoard {
	if color == White {
		reach := PopulateUp(sq, 1, occ)
		if initialPawnMask.Get(sq) {
			reach |= PopulateUp(sq, 2, occ)
		}
		return reach
	}
	reach := PopulateDown(sq, 1, occ)
	if initialPawnMask.Get(sq) {
		reach |= PopulateDown(sq, 2, occ)
	}
	return reach
}

// knightJumps are the eight (drow, dcol) offsets of a knight's hop.
var knightJumps = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

func knightReach(sq Square) BitBoard {
	var reach BitBoard
	for _, jump := range knightJumps {
		reach |= PopulateJump(sq, jump[0], jump[1])
	}
	return reach
}

// MoveMask returns the quiet-move squares: the reach mask with every
// occupied square (either color) removed.
func MoveMask(reach, white, black BitBoard) BitBoard {
	return reach &^ white &^ black
}

// pawnAttackOffsets are the forward-diagonal (drow, dcol) offsets a pawn of
// the given color captures on.
var pawnAttackOffsets = map[Color][2][2]int{
	White: {{1, -1}, {1, 1}},
	Black: {{-1, -1}, {-1, 1}},
}

// AttackMask returns the squares piece/color at sq attacks: for non-pawns
// this is reach & opponent occupancy. For pawns it is the two forward
// diagonal squares, intersected with the opponent's pieces or its
// en-passant target square.
func AttackMask(piece Piece, color Color, sq Square, reach, opponent BitBoard, opponentEPTarget Square) BitBoard {
	if piece == Pawn {
		var diag BitBoard
		for _, off := range pawnAttackOffsets[color] {
			diag |= PopulateJump(sq, off[0], off[1])
		}
		target := opponent
		if opponentEPTarget.Valid() {
			target |= 1 << uint(opponentEPTarget)
		}
		return diag & target
	}
	return reach & opponent
}

// ActionMask is the union of the quiet-move mask and the attack mask: the
// full set of candidate destinations before check-legality filtering.
func ActionMask(move, attack BitBoard) BitBoard {
	return move | attack
}

// KingThreatMask returns the squares from which an enemy piece of kind p
// could attack a king of color kingColor standing at kingSq: it pretends a
// piece of kind p and color kingColor stands on kingSq and returns its
// attack mask, which by symmetry is exactly the set of squares an enemy p
// would need to occupy to threaten kingSq. Intersecting the result with the
// opponent's actual board for piece p tells you whether the king is
// threatened by that piece kind.
func KingThreatMask(p Piece, kingColor Color, kingSq Square, occ, ownInitialPawnMask BitBoard) BitBoard {
	reach := ReachMask(p, kingColor, kingSq, occ, ownInitialPawnMask)
	if p == Pawn {
		return AttackMask(p, kingColor, kingSq, reach, ^BitBoard(0), NoSquare)
	}
	return reach
}
