package board

import "github.com/daystram/kingside/position"

// generator appends the pseudo-legal moves of the piece on from to mvs.
type generator func(b *Board, from position.Pos, s Side, mvs []Move) []Move

var generators = [6 + 1]generator{
	PiecePawn:   genPawnMoves,
	PieceBishop: genBishopMoves,
	PieceKnight: genKnightMoves,
	PieceRook:   genRookMoves,
	PieceQueen:  genQueenMoves,
	PieceKing:   genKingMoves,
}

// PseudoLegalMoves returns the moves the piece on from could make following
// its movement pattern, ignoring whether its own king is left in check and
// whose turn it is.
func (b *Board) PseudoLegalMoves(from position.Pos) []Move {
	return b.AppendPseudoLegalMoves(nil, from)
}

// AppendPseudoLegalMoves is PseudoLegalMoves appending to mvs.
func (b *Board) AppendPseudoLegalMoves(mvs []Move, from position.Pos) []Move {
	c := b.cells[from]
	if c.IsEmpty() {
		return mvs
	}
	return generators[c.Piece()](b, from, c.Side(), mvs)
}

// newMove builds a quiet move or a capture depending on the target's content.
func (b *Board) newMove(from, to position.Pos, s Side, p Piece) Move {
	return Move{
		From:     from,
		To:       to,
		Piece:    p,
		Captured: b.cells[to],
		IsTurn:   s,
	}
}

func genSliderMoves(b *Board, from position.Pos, s Side, p Piece, dirs []offset, mvs []Move) []Move {
	for _, o := range dirs {
		for step := position.Pos(1); ; step++ {
			to, ok := RelativeSquare(from, o.h*step, o.v*step, s)
			if !ok {
				break
			}
			target := b.cells[to]
			if target.IsEmpty() {
				mvs = append(mvs, b.newMove(from, to, s, p))
				continue
			}
			if target.Side() != s {
				mvs = append(mvs, b.newMove(from, to, s, p))
			}
			break
		}
	}
	return mvs
}

func genBishopMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	return genSliderMoves(b, from, s, PieceBishop, offsetsDiagonal, mvs)
}

func genRookMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	return genSliderMoves(b, from, s, PieceRook, offsetsLateral, mvs)
}

func genQueenMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	return genSliderMoves(b, from, s, PieceQueen, offsetsAll, mvs)
}

func genStepperMoves(b *Board, from position.Pos, s Side, p Piece, offsets []offset, mvs []Move) []Move {
	for _, o := range offsets {
		to, ok := RelativeSquare(from, o.h, o.v, s)
		if !ok {
			continue
		}
		if target := b.cells[to]; !target.IsEmpty() && target.Side() == s {
			continue
		}
		mvs = append(mvs, b.newMove(from, to, s, p))
	}
	return mvs
}

func genKnightMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	return genStepperMoves(b, from, s, PieceKnight, offsetsKnight[:], mvs)
}

func genKingMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	mvs = genStepperMoves(b, from, s, PieceKing, offsetsKing[:], mvs)
	return genCastleMoves(b, from, s, mvs)
}

// genCastleMoves emits a king move of two files with IsCastle set. Board.Push
// re-derives the rook relocation from the direction of travel.
func genCastleMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	row := s.HomeRow()
	if from != position.NewPos(row, 4) || !b.castleRights.IsSideAllowed(s) {
		return mvs
	}
	opp := s.Opposite()
	if b.IsSquareAttacked(from, opp) {
		return mvs
	}

	for _, kingside := range [2]bool{true, false} {
		d := CastleDirectionOf(s, kingside)
		if !b.castleRights.IsAllowed(d) || b.cells[d.RookHome()] != NewCell(s, PieceRook) {
			continue
		}
		empty, transit := []position.Pos{5, 6}, []position.Pos{5, 6}
		if !kingside {
			empty, transit = []position.Pos{1, 2, 3}, []position.Pos{3, 2}
		}
		if !b.rowEmpty(row, empty) || b.rowAttacked(row, transit, opp) {
			continue
		}
		mvs = append(mvs, Move{
			From:     from,
			To:       position.NewPos(row, transit[len(transit)-1]),
			Piece:    PieceKing,
			IsTurn:   s,
			IsCastle: true,
		})
	}
	return mvs
}

func (b *Board) rowEmpty(row position.Pos, cols []position.Pos) bool {
	for _, col := range cols {
		if !b.cells[position.NewPos(row, col)].IsEmpty() {
			return false
		}
	}
	return true
}

func (b *Board) rowAttacked(row position.Pos, cols []position.Pos, by Side) bool {
	for _, col := range cols {
		if b.IsSquareAttacked(position.NewPos(row, col), by) {
			return true
		}
	}
	return false
}

func genPawnMoves(b *Board, from position.Pos, s Side, mvs []Move) []Move {
	// appendPawn explodes a move onto the far rank into its promotion choices
	appendPawn := func(mv Move) {
		if mv.To.Row() != s.PromotionRow() {
			mvs = append(mvs, mv)
			return
		}
		for _, prom := range PawnPromoteCandidates {
			mv.IsPromote = prom
			mvs = append(mvs, mv)
		}
	}

	if one, ok := RelativeSquare(from, 0, 1, s); ok && b.cells[one].IsEmpty() {
		appendPawn(b.newMove(from, one, s, PiecePawn))
		if from.Row() == s.PawnStartRow() {
			if two, ok := RelativeSquare(from, 0, 2, s); ok && b.cells[two].IsEmpty() {
				mvs = append(mvs, b.newMove(from, two, s, PiecePawn))
			}
		}
	}

	for _, h := range [2]position.Pos{-1, 1} {
		to, ok := RelativeSquare(from, h, 1, s)
		if !ok {
			continue
		}
		target := b.cells[to]
		if !target.IsEmpty() && target.Side() != s {
			appendPawn(b.newMove(from, to, s, PiecePawn))
			continue
		}
		if to != b.enPassant {
			continue
		}
		beside, _ := RelativeSquare(from, h, 0, s)
		if victim := b.cells[beside]; victim == NewCell(s.Opposite(), PiecePawn) {
			mv := b.newMove(from, to, s, PiecePawn)
			mv.Captured = victim
			mv.IsEnPassant = true
			mvs = append(mvs, mv)
		}
	}
	return mvs
}
