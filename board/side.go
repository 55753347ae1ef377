package board

import "github.com/daystram/kingside/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// SymbolFEN returns the active colour field of a FEN string.
func (s Side) SymbolFEN() string {
	if s == SideBlack {
		return "b"
	}
	return "w"
}

// HomeRow is the row holding the side's king and rooks at the start of the game.
func (s Side) HomeRow() position.Pos {
	if s == SideWhite {
		return 7
	}
	return 0
}

// PawnStartRow is the row a side's pawns may double-step from.
func (s Side) PawnStartRow() position.Pos {
	if s == SideWhite {
		return 6
	}
	return 1
}

// PromotionRow is the far row a side's pawns promote on.
func (s Side) PromotionRow() position.Pos {
	if s == SideWhite {
		return 0
	}
	return 7
}
