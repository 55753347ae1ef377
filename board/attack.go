package board

import "github.com/daystram/kingside/position"

// IsSquareAttacked reports whether any piece of side by could capture on pos
// with its next move. It only looks at attack geometry, never at legality,
// so it is safe to call from inside move generation.
func (b *Board) IsSquareAttacked(pos position.Pos, by Side) bool {
	// pawns attack diagonally forward, so look one row back from by's view
	for _, h := range [2]position.Pos{-1, 1} {
		if sq, ok := RelativeSquare(pos, h, -1, by); ok && b.cells[sq] == NewCell(by, PiecePawn) {
			return true
		}
	}

	for _, o := range offsetsKnight {
		if sq, ok := RelativeSquare(pos, o.h, o.v, by); ok && b.cells[sq] == NewCell(by, PieceKnight) {
			return true
		}
	}

	for _, o := range offsetsAll {
		diagonal := o.h != 0 && o.v != 0
		for step := position.Pos(1); ; step++ {
			sq, ok := RelativeSquare(pos, o.h*step, o.v*step, by)
			if !ok {
				break
			}
			c := b.cells[sq]
			if c.IsEmpty() {
				continue
			}
			if c.Side() == by {
				switch c.Piece() {
				case PieceQueen:
					return true
				case PieceBishop:
					if diagonal {
						return true
					}
				case PieceRook:
					if !diagonal {
						return true
					}
				}
			}
			break
		}
	}

	for _, o := range offsetsKing {
		if sq, ok := RelativeSquare(pos, o.h, o.v, by); ok && b.cells[sq] == NewCell(by, PieceKing) {
			return true
		}
	}

	return false
}
