package engine

import (
	"slices"

	"github.com/daystram/kingside/board"
)

const (
	scoreOrderTT        int32 = 1_000_000
	scoreOrderPromotion int32 = 900_000
	scoreOrderCapture   int32 = 800_000
	scoreOrderKiller    int32 = 700_000
	scoreOrderKiller2   int32 = 690_000
	scoreOrderHistory   int32 = 600_000 // quiet moves never outrank killers
	scoreOrderCastle    int32 = 50
)

// rankMVVLVA orders victims and attackers; the king attacks last.
var rankMVVLVA = [6 + 1]int32{
	board.PiecePawn:   1,
	board.PieceKnight: 2,
	board.PieceBishop: 3,
	board.PieceRook:   4,
	board.PieceQueen:  5,
	board.PieceKing:   6,
}

type scoredMove struct {
	mv    board.Move
	score int32
}

// orderMoves scores every move once, then sorts mvs in place by descending
// score. Moves with equal scores keep their generation order.
func (sc *searchContext) orderMoves(mvs []board.Move, ttMove board.MoveKey, ply int) []board.Move {
	scored := sc.scored[:0]
	for _, mv := range mvs {
		scored = append(scored, scoredMove{mv: mv, score: sc.scoreMove(mv, ttMove, ply)})
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})
	for i := range scored {
		mvs[i] = scored[i].mv
	}
	sc.scored = scored
	return mvs
}

func (sc *searchContext) scoreMove(mv board.Move, ttMove board.MoveKey, ply int) int32 {
	key := mv.Key()
	switch {
	case ttMove != board.MoveKeyNull && key == ttMove:
		return scoreOrderTT
	case mv.IsPromote != board.PieceUnknown:
		return scoreOrderPromotion + board.MaterialValue[mv.IsPromote]
	case mv.IsCapture():
		return scoreOrderCapture + 10*rankMVVLVA[mv.Captured.Piece()] - rankMVVLVA[mv.Piece]
	case key == sc.killers[ply][0]:
		return scoreOrderKiller
	case key == sc.killers[ply][1]:
		return scoreOrderKiller2
	}
	score := min(sc.history[mv.From][mv.To], scoreOrderHistory)
	if mv.IsCastle {
		score += scoreOrderCastle
	}
	return score
}

// storeKiller keeps the two most recent distinct cutoff moves at ply.
func (sc *searchContext) storeKiller(ply int, mv board.Move) {
	key := mv.Key()
	if sc.killers[ply][0] == key {
		return
	}
	sc.killers[ply][1] = sc.killers[ply][0]
	sc.killers[ply][0] = key
}

func (sc *searchContext) storeHistory(mv board.Move, depth int) {
	sc.history[mv.From][mv.To] += int32(depth * depth)
}
