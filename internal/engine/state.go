// state.go implements GameState: the full mutable position (board plus
// clocks, castling rights, en-passant targets and cached legal moves) and
// the operations that mutate it one ply at a time.

package engine

// standard home squares, used as the Chess960 fallback when a castling
// right names a rook that re-deriving the board can't locate.
var (
	standardKingHome      = [2]Square{E1, E8}
	standardKingsideRook  = [2]Square{H1, H8}
	standardQueensideRook = [2]Square{A1, A8}
)

// GameState is one chess game in progress: a ChessBoard plus everything the
// board itself doesn't know how to track — whose turn it is, the clocks,
// castling rights and home squares, each side's en-passant target, the
// cached legal-move set for both colors, and the terminal outcome once the
// game ends.
type GameState struct {
	board ChessBoard

	sideToMove    Color
	halfMoveCount int
	fullMoveCount int

	initialPawnMask [2]BitBoard
	enPassant       [2]Square

	kingSquare     [2]Square
	kingsideRook   [2]Square
	queensideRook  [2]Square
	kingsideRights [2]bool
	queensideRights [2]bool

	legalMoves      [2]AvailableMoves
	checkState      [2]bool
	canKingside     [2]bool
	canQueenside    [2]bool

	winner   Color
	draw     bool
	resigned bool

	moveLog []MoveLogEntry
}

// NewGameState returns a fresh game in the standard starting position, White
// to move. The starting position can never fail update's legal-move
// computation, so this never panics in practice.
func NewGameState() *GameState {
	g := &GameState{
		board:           NewChessBoard(),
		sideToMove:      White,
		fullMoveCount:   1,
		initialPawnMask: [2]BitBoard{White: 0x000000000000FF00, Black: 0x00FF000000000000},
		enPassant:       [2]Square{NoSquare, NoSquare},
		kingSquare:      standardKingHome,
		kingsideRook:    standardKingsideRook,
		queensideRook:   standardQueensideRook,
		kingsideRights:  [2]bool{true, true},
		queensideRights: [2]bool{true, true},
		winner:          NoColor,
	}
	if err := g.update(); err != nil {
		panic(err)
	}
	return g
}

// Board returns a copy of the current position.
func (g *GameState) Board() ChessBoard { return g.board }

// SideToMove returns the color on move.
func (g *GameState) SideToMove() Color { return g.sideToMove }

// Winner returns the winning color, or NoColor if the game has no winner
// (in progress, drawn, or not yet finished).
func (g *GameState) Winner() Color { return g.winner }

// IsDraw reports whether the game ended in a stalemate draw.
func (g *GameState) IsDraw() bool { return g.draw }

// IsResigned reports whether the game ended by resignation.
func (g *GameState) IsResigned() bool { return g.resigned }

// IsFinished reports whether the game has a winner or ended in a draw.
func (g *GameState) IsFinished() bool { return g.winner != NoColor || g.draw }

// IsCheck reports whether color's king is currently attacked.
func (g *GameState) IsCheck(color Color) bool { return g.checkState[color] }

// HalfMoveCount returns the half-move clock (plies since the last capture
// or pawn move).
func (g *GameState) HalfMoveCount() int { return g.halfMoveCount }

// FullMoveCount returns the full-move counter, incremented after Black
// moves.
func (g *GameState) FullMoveCount() int { return g.fullMoveCount }

// MoveLog returns the applied-move history in order.
func (g *GameState) MoveLog() []MoveLogEntry {
	return append([]MoveLogEntry(nil), g.moveLog...)
}

// LegalMovesView flattens color's cached legal moves into the read-only
// shape exposed outside the engine.
func (g *GameState) LegalMovesView(color Color) LegalMoves {
	view := LegalMoves{
		Color:           color,
		CurrentTurn:     color == g.sideToMove,
		CastleKingside:  g.canKingside[color],
		CastleQueenside: g.canQueenside[color],
	}
	for _, entry := range g.legalMoves[color].Entries {
		for _, to := range entry.To.Bits() {
			view.Cells = append(view.Cells, MoveCell{From: entry.From.String(), To: to.String()})
		}
	}
	return view
}

// MakeMove applies a single from/to move: delegates to the board, appends a
// move-log entry, auto-promotes a pawn landing on the back rank to a queen,
// advances the clock, and recomputes cached state. ok is false (with a nil
// error) when the move is not legal from the board's perspective; this does
// not distinguish "illegal" from "caller should check LegalMovesView first",
// since DoMove already does that check before calling MakeMove.
func (g *GameState) MakeMove(from, to Square) (ok bool, err error) {
	if g.IsFinished() {
		return false, newError(RuleViolation, "game is already finished")
	}

	moved := g.board.PieceAt(from)
	applied, capturedOrPawnMove := g.board.MakeMove(from, to, &g.enPassant, &g.kingsideRights, &g.queensideRights)
	if !applied {
		return false, nil
	}

	if moved == Pawn && (to.Rank() == 0 || to.Rank() == 7) {
		g.board.PromoteToQueen(to)
	}

	g.moveLog = append(g.moveLog, MoveLogEntry{From: int(from), To: int(to)})
	g.tick(capturedOrPawnMove)
	if err := g.update(); err != nil {
		return false, err
	}
	return true, nil
}

// CastleKingside performs color's kingside castle if canKingside[color]
// currently holds, clearing both castling rights for color afterward.
func (g *GameState) CastleKingside(color Color) (bool, error) {
	return g.castle(color, true)
}

// CastleQueenside performs color's queenside castle if canQueenside[color]
// currently holds, clearing both castling rights for color afterward.
func (g *GameState) CastleQueenside(color Color) (bool, error) {
	return g.castle(color, false)
}

func (g *GameState) castle(color Color, kingside bool) (bool, error) {
	if g.IsFinished() {
		return false, newError(RuleViolation, "game is already finished")
	}
	allowed := g.canQueenside[color]
	logFlag := LogCastleQueenside
	if kingside {
		allowed = g.canKingside[color]
		logFlag = LogCastleKingside
	}
	if !allowed {
		return false, nil
	}

	if kingside {
		g.board.CastleKingside(g.kingSquare[color], g.kingsideRook[color])
	} else {
		g.board.CastleQueenside(g.kingSquare[color], g.queensideRook[color])
	}
	g.kingsideRights[color] = false
	g.queensideRights[color] = false
	g.enPassant[color] = NoSquare

	g.moveLog = append(g.moveLog, MoveLogEntry{From: logFlag, To: int(color)})
	g.tick(false)
	if err := g.update(); err != nil {
		return false, err
	}
	return true, nil
}

// Resign ends the game immediately in color's opponent's favor. No move-log
// entry is appended and the cached legal moves are left as they stood.
func (g *GameState) Resign(color Color) error {
	if g.IsFinished() {
		return newError(RuleViolation, "game is already finished")
	}
	g.winner = color.Opponent()
	g.resigned = true
	return nil
}

// DoMove is the session-facing entry point: asColor must be the side to
// move, and a normal move must already appear in that side's cached legal
// moves. Castle requests are routed to CastleKingside/CastleQueenside, which
// re-check ability themselves.
func (g *GameState) DoMove(asColor Color, q MoveQuery) (bool, error) {
	if g.IsFinished() {
		return false, newError(RuleViolation, "game is already finished")
	}
	if asColor != g.sideToMove {
		return false, newError(RuleViolation, "it is not %s's turn", asColor)
	}

	kind, from, to, err := q.classify()
	if err != nil {
		return false, err
	}

	switch kind {
	case queryCastleKingside:
		return g.CastleKingside(asColor)
	case queryCastleQueenside:
		return g.CastleQueenside(asColor)
	default:
		if !g.legalMoves[asColor].HasMove(from, to) {
			return false, newError(RuleViolation, "%s-%s is not a legal move", from, to)
		}
		return g.MakeMove(from, to)
	}
}

// update recomputes every cached derived field after a mutation: legal
// moves and check state for both colors, castling ability for both colors,
// and checkmate/stalemate detection for the side now on move. It never
// actually fails in this implementation (legal-move generation and check
// detection are total functions over a well-formed board), but returns an
// error to keep the failure path explicit rather than silently swallowed if
// that ever changes.
func (g *GameState) update() error {
	for _, c := range [2]Color{White, Black} {
		g.legalMoves[c] = g.board.GenerateLegalMoves(c, g.initialPawnMask[c], g.enPassant)
		g.checkState[c] = g.board.IsKingCheck(c)
		g.canKingside[c] = g.kingsideRights[c] && g.board.CanCastleKingside(c)
		g.canQueenside[c] = g.queensideRights[c] && g.board.CanCastleQueenside(c)
	}

	side := g.sideToMove
	if g.legalMoves[side].Len() == 0 && !g.canKingside[side] && !g.canQueenside[side] {
		if g.checkState[side] {
			g.winner = side.Opponent()
		} else {
			g.draw = true
		}
	}
	return nil
}

// tick resets or advances the half-move clock, advances the full-move
// counter after Black's move, and flips the side to move.
func (g *GameState) tick(capturedOrPawnMove bool) {
	if capturedOrPawnMove {
		g.halfMoveCount = 0
	} else {
		g.halfMoveCount++
	}
	if g.sideToMove == Black {
		g.fullMoveCount++
	}
	g.sideToMove = g.sideToMove.Opponent()
}
