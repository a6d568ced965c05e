// bitboard.go implements BitBoard: a 64-bit set of squares, with the eight
// directional ray-fill primitives used throughout move generation.

package engine

import "math/bits"

// BitBoard is a set of squares, one bit per square, bit i set meaning
// square i (LSB-indexed, A1=bit0 .. H8=bit63) is a member.
type BitBoard uint64

// Get reports whether square i is set. Out-of-range i returns false.
func (b BitBoard) Get(i Square) bool {
	if !i.Valid() {
		return false
	}
	return b&(1<<uint(i)) != 0
}

// Set marks square i as a member. Out-of-range i is a no-op.
func (b *BitBoard) Set(i Square) {
	if !i.Valid() {
		return
	}
	*b |= 1 << uint(i)
}

// Clear removes square i from the set. Out-of-range i is a no-op.
func (b *BitBoard) Clear(i Square) {
	if !i.Valid() {
		return
	}
	*b &^= 1 << uint(i)
}

// Flip toggles membership of square i. Out-of-range i is a no-op.
func (b *BitBoard) Flip(i Square) {
	if !i.Valid() {
		return
	}
	*b ^= 1 << uint(i)
}

// WithBit returns a copy of b with square i additionally set.
func (b BitBoard) WithBit(i Square) BitBoard {
	cp := b
	cp.Set(i)
	return cp
}

// Bits enumerates the indices of set bits, ascending.
func (b BitBoard) Bits() []Square {
	squares := make([]Square, 0, bits.OnesCount64(uint64(b)))
	for v := uint64(b); v != 0; v &= v - 1 {
		squares = append(squares, Square(bits.TrailingZeros64(v)))
	}
	return squares
}

// And returns the bitwise intersection of b and other.
func (b BitBoard) And(other BitBoard) BitBoard { return b & other }

// Or returns the bitwise union of b and other.
func (b BitBoard) Or(other BitBoard) BitBoard { return b | other }

// Not returns the bitwise complement of b.
func (b BitBoard) Not() BitBoard { return ^b }

// Empty reports whether no square is set.
func (b BitBoard) Empty() bool { return b == 0 }

// rayFill walks from origin in the direction (df, dr) file/rank steps per
// iteration, marking each visited square, stopping at the first set bit in
// block (inclusive: the blocker square IS marked), at the board edge, or
// after maxSteps. origin itself is never marked.
func rayFill(origin Square, maxSteps int, block BitBoard, df, dr int) BitBoard {
	var result BitBoard
	file, rank := origin.File(), origin.Rank()
	for step := 0; step < maxSteps; step++ {
		file += df
		rank += dr
		if file < 0 || file > 7 || rank < 0 || rank > 7 {
			break
		}
		sq := Square(rank*8 + file)
		result.Set(sq)
		if block.Get(sq) {
			break
		}
	}
	return result
}

// PopulateUp ray-fills upward (increasing rank).
func PopulateUp(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, 0, 1)
}

// PopulateDown ray-fills downward (decreasing rank).
func PopulateDown(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, 0, -1)
}

// PopulateLeft ray-fills toward file A (decreasing file). From file 0 this
// adds no squares.
func PopulateLeft(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, -1, 0)
}

// PopulateRight ray-fills toward file H (increasing file).
func PopulateRight(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, 1, 0)
}

// PopulateUpLeft ray-fills the up-left diagonal.
func PopulateUpLeft(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, -1, 1)
}

// PopulateUpRight ray-fills the up-right diagonal.
func PopulateUpRight(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, 1, 1)
}

// PopulateDownLeft ray-fills the down-left diagonal.
func PopulateDownLeft(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, -1, -1)
}

// PopulateDownRight ray-fills the down-right diagonal.
func PopulateDownRight(origin Square, maxSteps int, block BitBoard) BitBoard {
	return rayFill(origin, maxSteps, block, 1, -1)
}

// PopulateVertHor unions the four orthogonal rays, the reach pattern shared
// by rooks and queens.
func PopulateVertHor(origin Square, maxSteps int, block BitBoard) BitBoard {
	return PopulateUp(origin, maxSteps, block) |
		PopulateDown(origin, maxSteps, block) |
		PopulateLeft(origin, maxSteps, block) |
		PopulateRight(origin, maxSteps, block)
}

// PopulateDiag unions the four diagonal rays, the reach pattern shared by
// bishops and queens.
func PopulateDiag(origin Square, maxSteps int, block BitBoard) BitBoard {
	return PopulateUpLeft(origin, maxSteps, block) |
		PopulateUpRight(origin, maxSteps, block) |
		PopulateDownLeft(origin, maxSteps, block) |
		PopulateDownRight(origin, maxSteps, block)
}

// PopulateJump sets the single square offset from origin by (drow, dcol),
// if that offset stays on the board. Used for knight moves.
func PopulateJump(origin Square, drow, dcol int) BitBoard {
	file := origin.File() + dcol
	rank := origin.Rank() + drow
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0
	}
	var b BitBoard
	b.Set(Square(rank*8 + file))
	return b
}
