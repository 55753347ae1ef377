package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// PawnPromoteCandidates represents the candidates for pawn promotion, in generation order.
var PawnPromoteCandidates = []Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

// IsPromotable reports whether a pawn may promote to p.
func (p Piece) IsPromotable() bool {
	return p == PieceQueen || p == PieceRook || p == PieceBishop || p == PieceKnight
}

// IsSlider reports whether p moves along rays.
func (p Piece) IsSlider() bool {
	return p == PieceBishop || p == PieceRook || p == PieceQueen
}

func (p Piece) SymbolAlgebra(s Side) string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(s)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		default:
			return ""
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		default:
			return ""
		}
	default:
		return ""
	}
}

// pieceFromSymbol decodes a FEN piece letter.
func pieceFromSymbol(sym rune) (Side, Piece, bool) {
	s := SideWhite
	if sym >= 'a' && sym <= 'z' {
		s = SideBlack
		sym &^= 0x20
	}
	switch sym {
	case 'P':
		return s, PiecePawn, true
	case 'B':
		return s, PieceBishop, true
	case 'N':
		return s, PieceKnight, true
	case 'R':
		return s, PieceRook, true
	case 'Q':
		return s, PieceQueen, true
	case 'K':
		return s, PieceKing, true
	default:
		return SideUnknown, PieceUnknown, false
	}
}

// Cell is the content of a single square: a side and a piece kind packed
// into one byte. The zero value is an empty square.
type Cell uint8

const CellEmpty Cell = 0

func NewCell(s Side, p Piece) Cell {
	return Cell(uint8(s)<<4 | uint8(p))
}

func (c Cell) Side() Side {
	return Side(c >> 4)
}

func (c Cell) Piece() Piece {
	return Piece(c & 0x0F)
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) String() string {
	return c.Piece().SymbolFEN(c.Side())
}
