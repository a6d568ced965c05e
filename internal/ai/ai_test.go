package ai

import (
	"context"
	"testing"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

func TestGetNextMovePlaysSomethingLegal(t *testing.T) {
	state := engine.NewGameState()
	searcher := Searcher{MaxDepth: 2}

	query, err := searcher.GetNextMove(context.Background(), state)
	if err != nil {
		t.Fatalf("GetNextMove: unexpected error: %v", err)
	}
	if query.From == nil || query.To == nil {
		t.Fatalf("GetNextMove should return a from/to move at depth 2 in the opening position")
	}

	from, err := engine.ParseSquare(*query.From)
	if err != nil {
		t.Fatalf("ParseSquare(from): %v", err)
	}
	to, err := engine.ParseSquare(*query.To)
	if err != nil {
		t.Fatalf("ParseSquare(to): %v", err)
	}
	if !state.LegalMovesView(engine.White).CurrentTurn {
		t.Fatalf("expected white to move")
	}
	ok, err := state.MakeMove(from, to)
	if err != nil || !ok {
		t.Fatalf("suggested move %s-%s should be legal, got ok=%v err=%v", from, to, ok, err)
	}
}

func TestGetNextMoveTakesMateInOne(t *testing.T) {
	// Black king boxed in by its own pawns on the back rank; Ra1-a8 is mate.
	state, err := engine.FromFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: unexpected error: %v", err)
	}
	searcher := Searcher{MaxDepth: 2}
	query, err := searcher.GetNextMove(context.Background(), state)
	if err != nil {
		t.Fatalf("GetNextMove: unexpected error: %v", err)
	}
	if query.From == nil || *query.From != "a1" || query.To == nil || *query.To != "a8" {
		from, to := "<nil>", "<nil>"
		if query.From != nil {
			from = *query.From
		}
		if query.To != nil {
			to = *query.To
		}
		t.Fatalf("expected Ra1-a8 as the only mating move, got %s-%s", from, to)
	}

	ok, err := state.MakeMove(engine.A1, engine.A8)
	if err != nil || !ok {
		t.Fatalf("Ra1-a8: got ok=%v err=%v", ok, err)
	}
	if !state.IsFinished() || state.Winner() != engine.White {
		t.Fatalf("Ra1-a8 should be checkmate for white")
	}
}
