package board

import (
	"github.com/daystram/kingside/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height
)

// offset is a (horizontal, vertical) step relative to the moving side:
// +h is to the mover's right, +v is toward the opponent.
type offset struct {
	h, v position.Pos
}

var (
	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	offsetsKnight = [8]offset{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	offsetsKing = [8]offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	offsetsLateral  = []offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	offsetsDiagonal = []offset{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	offsetsAll      = append(append([]offset{}, offsetsLateral...), offsetsDiagonal...)

	// MaterialValue is the centipawn value of each piece kind.
	MaterialValue = [6 + 1]int32{
		PiecePawn:   100,
		PieceKnight: 320,
		PieceBishop: 330,
		PieceRook:   500,
		PieceQueen:  900,
		PieceKing:   0,
	}
)
