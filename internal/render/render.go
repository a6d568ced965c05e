// Package render implements the board-image and history-GIF adapters: the
// engine's only consumers of a GameState's position for display, never for
// legality. Piece artwork is generated procedurally with simple vector
// glyphs rather than loaded from on-disk assets, since no image files ship
// with this module.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"

	"github.com/Zitronenjoghurt/lemon-chess/internal/engine"
)

// SquareSize is the pixel width/height of one board square in the static
// image and each GIF frame before any caller-requested upscaling.
const SquareSize = 48

// boardPixels is the full 8x8 board's side length at SquareSize.
const boardPixels = SquareSize * 8

var (
	lightSquare = color.RGBA{0xEE, 0xEE, 0xD2, 0xFF}
	darkSquare  = color.RGBA{0x76, 0x96, 0x56, 0xFF}
	whitePiece  = color.RGBA{0xFA, 0xFA, 0xFA, 0xFF}
	blackPiece  = color.RGBA{0x20, 0x20, 0x20, 0xFF}
)

// Board draws board from perspective's point of view: White sees rank 8 at
// the top and file A on the left; Black sees the position rotated 180
// degrees. scale upscales the result with nearest-neighbor filtering,
// matching the original service's FilterType::Nearest resize; scale <= 0 is
// treated as 1 (no upscaling).
func Board(board engine.ChessBoard, perspective engine.Color, scale int) image.Image {
	base := image.NewRGBA(image.Rect(0, 0, boardPixels, boardPixels))
	paintSquares(base, board, perspective)

	if scale <= 1 {
		return base
	}
	scaled := image.NewRGBA(image.Rect(0, 0, boardPixels*scale, boardPixels*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Over, nil)
	return scaled
}

// paintSquares fills in the checkerboard and every occupied square's piece
// glyph, flipping the mapping from board coordinates to pixel coordinates
// when perspective is Black.
func paintSquares(dst *image.RGBA, board engine.ChessBoard, perspective engine.Color) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			px, py := screenCell(file, rank, perspective)
			cellRect := image.Rect(px*SquareSize, py*SquareSize, (px+1)*SquareSize, (py+1)*SquareSize)

			squareColor := darkSquare
			if (file+rank)%2 == 1 {
				squareColor = lightSquare
			}
			draw.Draw(dst, cellRect, &image.Uniform{squareColor}, image.Point{}, draw.Src)

			sq := engine.Square(rank*8 + file)
			piece, c := board.PieceAndColorAt(sq)
			if c == engine.NoColor {
				continue
			}
			glyph := PieceGlyph(piece, c)
			draw.Draw(dst, cellRect, glyph, image.Point{}, draw.Over)
		}
	}
}

// screenCell maps a board (file, rank) pair to the (column, row) cell it
// occupies on screen for the given viewing perspective.
func screenCell(file, rank int, perspective engine.Color) (col, row int) {
	if perspective == engine.Black {
		return 7 - file, rank
	}
	return file, 7 - rank
}

// PieceGlyph returns a SquareSize x SquareSize image of piece/color: a
// filled circle sized to roughly half the square for pawns, growing toward
// the full square for more valuable pieces, which is enough to
// distinguish piece kinds at a glance without shipping bitmap assets. This
// is the seam a real asset pack would replace.
func PieceGlyph(piece engine.Piece, c engine.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, SquareSize, SquareSize))
	fg := whitePiece
	if c == engine.Black {
		fg = blackPiece
	}

	radius := glyphRadius(piece)
	center := SquareSize / 2
	for y := 0; y < SquareSize; y++ {
		for x := 0; x < SquareSize; x++ {
			dx, dy := x-center, y-center
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, fg)
			}
		}
	}
	return img
}

// glyphRadius scales a piece's glyph to its relative value, pawns smallest
// and the king and queen filling most of the square.
func glyphRadius(piece engine.Piece) int {
	switch piece {
	case engine.Pawn:
		return SquareSize / 4
	case engine.Knight, engine.Bishop:
		return SquareSize * 3 / 10
	case engine.Rook:
		return SquareSize * 7 / 20
	case engine.Queen:
		return SquareSize * 2 / 5
	case engine.King:
		return SquareSize * 9 / 20
	default:
		return 0
	}
}

// EncodePNG writes board as a static PNG to w.
func EncodePNG(w io.Writer, board engine.ChessBoard, perspective engine.Color, scale int) error {
	return png.Encode(w, Board(board, perspective, scale))
}

// frameDelayNormal and frameDelayFinal are GIF frame delays in 1/100ths of a
// second: 100ms per intermediate ply, held 500ms on the final position.
const (
	frameDelayNormal = 10
	frameDelayFinal  = 50
)

// HistoryGIF replays state's move log from the starting position and
// encodes one frame per ply (plus the starting position) as an animated
// GIF, held from perspective's point of view. The final frame is held five
// times as long as the others so a viewer can rest on the end position.
func HistoryGIF(w io.Writer, state *engine.GameState, perspective engine.Color, scale int) error {
	frames, err := replayFrames(state)
	if err != nil {
		return err
	}

	anim := gif.GIF{}
	for i, board := range frames {
		palettized := toPaletted(Board(board, perspective, scale))
		anim.Image = append(anim.Image, palettized)
		delay := frameDelayNormal
		if i == len(frames)-1 {
			delay = frameDelayFinal
		}
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// replayFrames rebuilds the sequence of board positions state passed
// through, from the initial position through the position after its last
// logged move. Castling log entries are replayed as castles; normal
// entries as plain from/to moves. Replay never fails on a log produced by
// GameState itself, but a decoding error is still surfaced rather than
// panicking on corrupted storage.
func replayFrames(state *engine.GameState) ([]engine.ChessBoard, error) {
	live := engine.NewGameState()
	frames := []engine.ChessBoard{live.Board()}

	for _, entry := range state.MoveLog() {
		color := live.SideToMove()
		switch {
		case entry.IsCastleKingside():
			if _, err := live.CastleKingside(color); err != nil {
				return nil, err
			}
		case entry.IsCastleQueenside():
			if _, err := live.CastleQueenside(color); err != nil {
				return nil, err
			}
		default:
			if _, err := live.MakeMove(engine.Square(entry.From), engine.Square(entry.To)); err != nil {
				return nil, err
			}
		}
		frames = append(frames, live.Board())
	}
	return frames, nil
}

// toPaletted quantizes img to the GIF format's indexed-color requirement.
func toPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	palette := color.Palette{lightSquare, darkSquare, whitePiece, blackPiece, color.Transparent}
	paletted := image.NewPaletted(bounds, palette)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Over)
	return paletted
}
