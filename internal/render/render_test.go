package render

import (
	"bytes"
	"image/gif"
	"image/png"
	"testing"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

func TestBoardProducesFullSizeImage(t *testing.T) {
	state := engine.NewGameState()
	img := Board(state.Board(), engine.White, 1)
	bounds := img.Bounds()
	if bounds.Dx() != boardPixels || bounds.Dy() != boardPixels {
		t.Fatalf("Board size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), boardPixels, boardPixels)
	}
}

func TestBoardUpscales(t *testing.T) {
	state := engine.NewGameState()
	img := Board(state.Board(), engine.White, 2)
	bounds := img.Bounds()
	if bounds.Dx() != boardPixels*2 || bounds.Dy() != boardPixels*2 {
		t.Fatalf("Board size at scale 2 = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), boardPixels*2, boardPixels*2)
	}
}

func TestEncodePNGProducesValidPNG(t *testing.T) {
	state := engine.NewGameState()
	var buf bytes.Buffer
	if err := EncodePNG(&buf, state.Board(), engine.White, 1); err != nil {
		t.Fatalf("EncodePNG: unexpected error: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("encoded PNG failed to decode: %v", err)
	}
}

func TestHistoryGIFFrameCountAndDelays(t *testing.T) {
	state := engine.NewGameState()
	ok, err := state.MakeMove(engine.E2, engine.E4)
	if err != nil || !ok {
		t.Fatalf("e2e4: ok=%v err=%v", ok, err)
	}
	ok, err = state.MakeMove(engine.E7, engine.E5)
	if err != nil || !ok {
		t.Fatalf("e7e5: ok=%v err=%v", ok, err)
	}

	var buf bytes.Buffer
	if err := HistoryGIF(&buf, state, engine.White, 1); err != nil {
		t.Fatalf("HistoryGIF: unexpected error: %v", err)
	}

	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("encoded GIF failed to decode: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Fatalf("expected 3 frames (start + 2 plies), got %d", len(decoded.Image))
	}
	for i, delay := range decoded.Delay {
		want := frameDelayNormal
		if i == len(decoded.Delay)-1 {
			want = frameDelayFinal
		}
		if delay != want {
			t.Fatalf("frame %d delay = %d, want %d", i, delay, want)
		}
	}
}
