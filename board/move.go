package board

import "github.com/daystram/kingside/position"

// Move is a value produced by the generators and consumed by Board.Push.
// Captured is bookkeeping for ordering and display only; Push re-reads the
// board for the piece it actually removes.
type Move struct {
	From, To position.Pos
	Piece    Piece
	Captured Cell

	IsTurn      Side
	IsCastle    bool
	IsEnPassant bool
	IsPromote   Piece
}

// MoveKey identifies a move by its squares and promotion choice.
type MoveKey uint16

const MoveKeyNull MoveKey = 0

func (m Move) Key() MoveKey {
	return MoveKey(uint16(m.From) | uint16(m.To)<<6 | uint16(m.IsPromote)<<12)
}

func (m Move) IsNull() bool {
	return m.From == m.To
}

func (m Move) Equals(other Move) bool {
	return m.Key() == other.Key()
}

func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty() || m.IsEnPassant
}

// IsTactical reports whether the move changes material: captures, en passant and promotions.
func (m Move) IsTactical() bool {
	return m.IsCapture() || m.IsPromote != PieceUnknown
}

func (m Move) String() string {
	return m.Algebra()
}

func (m Move) Algebra() string {
	if m.IsCastle {
		if m.To.Col() > m.From.Col() {
			return "0-0"
		}
		return "0-0-0"
	}
	nt := m.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
	if m.IsCapture() {
		if m.Piece == PiecePawn {
			nt += m.From.Col().NotationComponentCol()
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsPromote != PieceUnknown {
		nt += "=" + m.IsPromote.SymbolAlgebra(SideWhite)
	}
	if m.IsEnPassant {
		nt += " e.p."
	}
	return nt
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.IsPromote.SymbolAlgebra(SideBlack)
}

// undo captures everything Push changed so Pop can restore it exactly.
type undo struct {
	mv Move

	captured    Cell
	capturedPos position.Pos

	enPassant    position.Pos
	castleRights CastleRights

	rookFrom, rookTo position.Pos
	promotedFrom     Cell
}
