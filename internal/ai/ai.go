// Package ai implements the engine's move-suggestion adapter: given a
// GameState, return the move the side to move should play next. The
// original service delegated this to the pleco search library; no
// equivalent binding exists in the Go ecosystem this module draws from, so
// this package implements its own fixed-depth negamax search with
// alpha-beta pruning and iterative deepening.
package ai

import (
	"context"
	"math"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

// DefaultMaxDepth is the deepest ply iterative deepening searches to absent
// an explicit budget, matching the original adapter's fixed depth 6.
const DefaultMaxDepth = 6

// pieceValue is the material weight used by Evaluate, in centipawns.
var pieceValue = [6]int{
	engine.Pawn:   100,
	engine.Bishop: 330,
	engine.Knight: 320,
	engine.Rook:   500,
	engine.Queen:  900,
	engine.King:   0,
}

// Searcher finds the best move for the side to move in a GameState.
// MaxDepth bounds iterative deepening; zero means DefaultMaxDepth.
type Searcher struct {
	MaxDepth int
}

// candidate is one move available to the side to move, normal or castle,
// paired with the GameState it produces.
type candidate struct {
	query engine.MoveQuery
	child *engine.GameState
}

// GetNextMove returns the move the side to move should play, as a
// MoveQuery ready for GameState.DoMove. It never mutates state: all search
// happens on cloned board positions. ctx cancellation aborts the search
// early and returns the best move found by the last completed depth.
func (s Searcher) GetNextMove(ctx context.Context, state *engine.GameState) (engine.MoveQuery, error) {
	if state.IsFinished() {
		return engine.MoveQuery{}, &engine.Error{Kind: engine.RuleViolation, Message: "cannot suggest a move in a finished game"}
	}

	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	color := state.SideToMove()
	roots := candidates(state, color)
	if len(roots) == 0 {
		return engine.MoveQuery{}, &engine.Error{Kind: engine.RuleViolation, Message: "side to move has no legal moves"}
	}

	var best engine.MoveQuery
	haveBest := false

depthLoop:
	for depth := 1; depth <= maxDepth; depth++ {
		select {
		case <-ctx.Done():
			break depthLoop
		default:
		}

		bestScore := math.MinInt32
		var bestAtDepth engine.MoveQuery
		foundAtDepth := false

		for _, c := range roots {
			score := -negamax(ctx, c.child, depth-1, math.MinInt32+1, math.MaxInt32-1, color.Opponent())
			if !foundAtDepth || score > bestScore {
				bestScore = score
				bestAtDepth = c.query
				foundAtDepth = true
			}
		}

		if !foundAtDepth {
			break
		}
		if ctx.Err() != nil && haveBest {
			// This depth was interrupted; keep the last completed one.
			break
		}
		best = bestAtDepth
		haveBest = true

		select {
		case <-ctx.Done():
			break depthLoop
		default:
		}
	}

	if !haveBest {
		return engine.MoveQuery{}, &engine.Error{Kind: engine.Internal, Message: "search produced no candidate move"}
	}
	return best, nil
}

// candidates enumerates every legal move available to color in state as a
// (query, resulting position) pair, including castling.
func candidates(state *engine.GameState, color engine.Color) []candidate {
	legal := state.LegalMovesView(color)
	out := make([]candidate, 0, len(legal.Cells)+2)

	for _, cell := range legal.Cells {
		from, err := engine.ParseSquare(cell.From)
		if err != nil {
			continue
		}
		to, err := engine.ParseSquare(cell.To)
		if err != nil {
			continue
		}
		child := cloneAndApply(state, from, to)
		if child == nil {
			continue
		}
		f, t := cell.From, cell.To
		out = append(out, candidate{query: engine.MoveQuery{From: &f, To: &t}, child: child})
	}

	if legal.CastleKingside {
		if child := cloneAndCastle(state, color, true); child != nil {
			yes := true
			out = append(out, candidate{query: engine.MoveQuery{CastleKingside: &yes}, child: child})
		}
	}
	if legal.CastleQueenside {
		if child := cloneAndCastle(state, color, false); child != nil {
			yes := true
			out = append(out, candidate{query: engine.MoveQuery{CastleQueenside: &yes}, child: child})
		}
	}

	return out
}

// cloneAndApply replays state's FEN into a fresh GameState and applies one
// move, returning nil if either step fails. This is the search's
// clone-on-simulate boundary: it never mutates the caller's state.
func cloneAndApply(state *engine.GameState, from, to engine.Square) *engine.GameState {
	clone, err := engine.FromFEN(state.ToFEN())
	if err != nil {
		return nil
	}
	ok, err := clone.MakeMove(from, to)
	if err != nil || !ok {
		return nil
	}
	return clone
}

// cloneAndCastle is cloneAndApply's castling counterpart.
func cloneAndCastle(state *engine.GameState, color engine.Color, kingside bool) *engine.GameState {
	clone, err := engine.FromFEN(state.ToFEN())
	if err != nil {
		return nil
	}
	if kingside {
		ok, err := clone.CastleKingside(color)
		if err != nil || !ok {
			return nil
		}
		return clone
	}
	ok, err := clone.CastleQueenside(color)
	if err != nil || !ok {
		return nil
	}
	return clone
}

// negamax searches state to the given depth from perspective's point of
// view, returning a score where positive favors perspective.
func negamax(ctx context.Context, state *engine.GameState, depth, alpha, beta int, perspective engine.Color) int {
	select {
	case <-ctx.Done():
		return evaluate(state, perspective)
	default:
	}

	if state.IsFinished() {
		return terminalScore(state, perspective)
	}
	if depth == 0 {
		return evaluate(state, perspective)
	}

	roots := candidates(state, state.SideToMove())
	if len(roots) == 0 {
		return terminalScore(state, perspective)
	}

	best := math.MinInt32 + 1
	for _, c := range roots {
		score := -negamax(ctx, c.child, depth-1, -beta, -alpha, perspective.Opponent())
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	return best
}

// terminalScore scores a finished position heavily in favor of whichever
// side won, or zero for a draw.
func terminalScore(state *engine.GameState, perspective engine.Color) int {
	switch {
	case state.IsDraw():
		return 0
	case state.Winner() == perspective:
		return 1_000_000
	case state.Winner() != engine.NoColor:
		return -1_000_000
	default:
		return 0
	}
}

// evaluate scores a non-terminal position by material and mobility,
// positive favoring perspective.
func evaluate(state *engine.GameState, perspective engine.Color) int {
	board := state.Board()
	score := 0
	for _, c := range [2]engine.Color{engine.White, engine.Black} {
		sign := 1
		if c != perspective {
			sign = -1
		}
		for p := engine.Pawn; p < engine.NoPiece; p++ {
			count := len(board.MaskBy(p, c).Bits())
			score += sign * count * pieceValue[p]
		}
	}

	mobility := len(state.LegalMovesView(perspective).Cells)
	opponentMobility := len(state.LegalMovesView(perspective.Opponent()).Cells)
	score += (mobility - opponentMobility) * 2

	return score
}
