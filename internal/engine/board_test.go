package engine

import "testing"

func TestNewChessBoardPlacement(t *testing.T) {
	b := NewChessBoard()

	testcases := []struct {
		sq    Square
		piece Piece
		color Color
	}{
		{A1, Rook, White},
		{E1, King, White},
		{H1, Rook, White},
		{D1, Queen, White},
		{A2, Pawn, White},
		{A8, Rook, Black},
		{E8, King, Black},
		{D8, Queen, Black},
		{H7, Pawn, Black},
	}

	for _, tc := range testcases {
		piece, color := b.PieceAndColorAt(tc.sq)
		if piece != tc.piece || color != tc.color {
			t.Fatalf("%s: got (%v, %v), want (%v, %v)", tc.sq, piece, color, tc.piece, tc.color)
		}
	}

	for file := 0; file < 8; file++ {
		sq := Square(16 + file)
		if b.IsOccupied(sq) {
			t.Fatalf("%s should be empty on a fresh board", sq)
		}
	}
}

func TestMakeMoveCapture(t *testing.T) {
	b := NewChessBoard()
	var ep [2]Square
	var kr, qr [2]bool
	ep[White], ep[Black] = NoSquare, NoSquare

	ok, capture := b.MakeMove(E2, E4, &ep, &kr, &qr)
	if !ok || capture != true {
		t.Fatalf("e2e4: got (%v, %v), want (true, true)", ok, capture)
	}
	if ep[White] != E3 {
		t.Fatalf("e2e4 should set white's en-passant target to e3, got %s", ep[White])
	}

	ok, capture = b.MakeMove(E7, E5, &ep, &kr, &qr)
	if !ok || !capture {
		t.Fatalf("e7e5: got (%v, %v), want (true, true)", ok, capture)
	}

	ok, capture = b.MakeMove(D1, H5, &ep, &kr, &qr)
	if !ok || capture {
		t.Fatalf("queen quiet move: got (%v, %v), want (true, false)", ok, capture)
	}
}

func TestMakeMoveEnPassant(t *testing.T) {
	b := NewChessBoard()
	var ep [2]Square
	var kr, qr [2]bool
	ep[White], ep[Black] = NoSquare, NoSquare

	b.MakeMove(E2, E4, &ep, &kr, &qr)
	b.MakeMove(A7, A6, &ep, &kr, &qr)
	b.MakeMove(E4, E5, &ep, &kr, &qr)
	ok, capture := b.MakeMove(D7, D5, &ep, &kr, &qr)
	if !ok {
		t.Fatalf("d7d5 should succeed")
	}
	if ep[Black] != D6 {
		t.Fatalf("d7d5 should set black's en-passant target to d6, got %s", ep[Black])
	}

	ok, capture = b.MakeMove(E5, D6, &ep, &kr, &qr)
	if !ok || !capture {
		t.Fatalf("exd6 e.p.: got (%v, %v), want (true, true)", ok, capture)
	}
	if p, c := b.PieceAndColorAt(D5); p != NoPiece || c != NoColor {
		t.Fatalf("captured pawn should be removed from d5, found (%v, %v)", p, c)
	}
	if p, _ := b.PieceAndColorAt(D6); p != Pawn {
		t.Fatalf("capturing pawn should land on d6, found %v", p)
	}
}

func TestRookMoveClearsOnlyItsSideCastlingRight(t *testing.T) {
	b := NewChessBoard()
	var ep [2]Square
	kr := [2]bool{true, true}
	qr := [2]bool{true, true}
	ep[White], ep[Black] = NoSquare, NoSquare

	b.MakeMove(A2, A4, &ep, &kr, &qr) // vacate a2 so the rook can move there
	b.MakeMove(A1, A2, &ep, &kr, &qr)
	if qr[White] {
		t.Fatalf("moving the queenside rook should clear white's queenside right")
	}
	if !kr[White] {
		t.Fatalf("moving the queenside rook should not clear white's kingside right")
	}
}

func TestCastleKingsideClearsBothRanksquares(t *testing.T) {
	var b ChessBoard
	b.PlacePiece(E1, King, White)
	b.PlacePiece(H1, Rook, White)

	b.CastleKingside(E1, H1)

	if p, c := b.PieceAndColorAt(G1); p != King || c != White {
		t.Fatalf("king should land on g1, found (%v, %v)", p, c)
	}
	if p, c := b.PieceAndColorAt(F1); p != Rook || c != White {
		t.Fatalf("rook should land on f1, found (%v, %v)", p, c)
	}
	if b.IsOccupied(E1) || b.IsOccupied(H1) {
		t.Fatalf("e1 and h1 should be vacated after castling")
	}
}

func TestCanCastleKingsideBlockedByPiece(t *testing.T) {
	var b ChessBoard
	b.PlacePiece(E1, King, White)
	b.PlacePiece(H1, Rook, White)
	b.PlacePiece(F1, Bishop, White)

	if b.CanCastleKingside(White) {
		t.Fatalf("castling should be blocked by the bishop on f1")
	}
}

func TestCanCastleKingsideBlockedByAttack(t *testing.T) {
	var b ChessBoard
	b.PlacePiece(E1, King, White)
	b.PlacePiece(H1, Rook, White)
	b.PlacePiece(F8, Rook, Black) // attacks f1 down the f-file

	if b.CanCastleKingside(White) {
		t.Fatalf("castling should be blocked because f1 is attacked")
	}
}

func TestIsKingCheckByRook(t *testing.T) {
	var b ChessBoard
	b.PlacePiece(E1, King, White)
	b.PlacePiece(E8, Rook, Black)

	if !b.IsKingCheck(White) {
		t.Fatalf("white king on the same file as a black rook should be in check")
	}
	if b.IsKingCheck(Black) {
		t.Fatalf("black has no king on the board in this fixture, should not report check")
	}
}

func TestGenerateLegalMovesExcludesSelfCheck(t *testing.T) {
	var b ChessBoard
	b.PlacePiece(E1, King, White)
	b.PlacePiece(E2, Rook, White)
	b.PlacePiece(E8, Rook, Black)

	moves := b.GenerateLegalMoves(White, 0, [2]Square{NoSquare, NoSquare})
	dests := moves.Destinations(E2)
	for _, sq := range dests.Bits() {
		if sq.File() != E2.File() {
			t.Fatalf("pinned rook should only be able to move along the e-file, got a move to %s", sq)
		}
	}
}

func TestGenerateLegalMovesStalemate(t *testing.T) {
	var b ChessBoard
	b.PlacePiece(A1, King, White)
	b.PlacePiece(B3, Queen, Black)
	b.PlacePiece(C2, King, Black)

	moves := b.GenerateLegalMoves(White, 0, [2]Square{NoSquare, NoSquare})
	if moves.Len() != 0 {
		t.Fatalf("expected no legal moves in this stalemate fixture, got %d", moves.Len())
	}
	if b.IsKingCheck(White) {
		t.Fatalf("stalemate fixture should not have white in check")
	}
}
