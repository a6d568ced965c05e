// Command board prints a FEN position as an ASCII diagram, the Go
// equivalent of treepeck-chego's printBitboard/FormatPosition helpers used
// to visualize a position during development.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

var pieceSymbols = map[engine.Piece][2]rune{
	engine.Pawn:   {'P', 'p'},
	engine.Knight: {'N', 'n'},
	engine.Bishop: {'B', 'b'},
	engine.Rook:   {'R', 'r'},
	engine.Queen:  {'Q', 'q'},
	engine.King:   {'K', 'k'},
}

func main() {
	flag.Parse()
	fen := flag.Arg(0)
	if fen == "" {
		fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	}

	state, err := engine.FromFEN(fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lemonchess-board: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(formatPosition(state))
}

func formatPosition(state *engine.GameState) string {
	board := state.Board()
	out := ""
	for rank := 7; rank >= 0; rank-- {
		out += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := engine.Square(rank*8 + file)
			piece, color := board.PieceAndColorAt(sq)
			symbol := '.'
			if color != engine.NoColor {
				symbols := pieceSymbols[piece]
				if color == engine.White {
					symbol = symbols[0]
				} else {
					symbol = symbols[1]
				}
			}
			out += fmt.Sprintf("%c  ", symbol)
		}
		out += "\n"
	}
	out += "   a  b  c  d  e  f  g  h\n"
	out += fmt.Sprintf("Side to move: %s\n", state.SideToMove())
	if state.IsFinished() {
		switch {
		case state.IsResigned():
			out += fmt.Sprintf("Finished: %s resigned\n", state.Winner().Opponent())
		case state.IsDraw():
			out += "Finished: draw (stalemate)\n"
		default:
			out += fmt.Sprintf("Finished: checkmate, %s wins\n", state.Winner())
		}
	}
	return out
}
