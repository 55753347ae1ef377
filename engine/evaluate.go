package engine

import (
	"math"
	"math/bits"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/position"
)

const (
	phaseTotal = 24

	scoreBishopPair   int32 = 30
	scoreDoubledPawn  int32 = -10
	scoreIsolatedPawn int32 = -15
	scorePassedPawn   int32 = 10
	scorePassedRank   int32 = 5
)

var (
	// PST tables taken from https://www.chessprogramming.org/Simplified_Evaluation_Function,
	// indexed by square from White's side. Black reads the mirrored square.
	scorePiecePosition = [6 + 1][64]int32{
		board.PiecePawn: {
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		board.PieceKnight: {
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		board.PieceBishop: {
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		board.PieceRook: {
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		board.PieceQueen: {
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		board.PieceKing: {
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}
	scoreKingEndgame = [64]int32{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}

	piecePhase = [6 + 1]int{
		board.PieceKnight: 1,
		board.PieceBishop: 1,
		board.PieceRook:   2,
		board.PieceQueen:  4,
	}
)

// Evaluate returns the static score of b in centipawns, positive when
// perspective is better off. It scans the board once.
func Evaluate(b *board.Board, perspective board.Side) int32 {
	var (
		score   int32 // from White's side
		phase   int
		bishops [2 + 1]int
		kings   [2 + 1]position.Pos
		pawns   [2 + 1][board.Width]uint8 // bit per row, per file
	)
	kings[board.SideWhite], kings[board.SideBlack] = position.PosInvalid, position.PosInvalid

	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		c := b.PieceAt(pos)
		if c.IsEmpty() {
			continue
		}
		s, p := c.Side(), c.Piece()
		switch p {
		case board.PieceKing:
			kings[s] = pos
			continue
		case board.PieceBishop:
			bishops[s]++
		case board.PiecePawn:
			pawns[s][pos.Col()] |= 1 << pos.Row()
		}
		phase += piecePhase[p]
		score += sign(s) * (board.MaterialValue[p] + scorePiecePosition[p][squareFor(pos, s)])
	}

	endgameWeight := 1 - float64(clamp(phase, 0, phaseTotal))/phaseTotal
	for _, s := range []board.Side{board.SideWhite, board.SideBlack} {
		if kings[s] != position.PosInvalid {
			score += sign(s) * kingScore(squareFor(kings[s], s), endgameWeight)
		}
		if bishops[s] >= 2 {
			score += sign(s) * scoreBishopPair
		}
		score += sign(s) * pawnStructureScore(&pawns, s)
	}

	if perspective == board.SideBlack {
		return -score
	}
	return score
}

// kingScore blends the midgame and endgame king tables, rounding half up.
func kingScore(sq position.Pos, endgameWeight float64) int32 {
	mg := float64(scorePiecePosition[board.PieceKing][sq])
	eg := float64(scoreKingEndgame[sq])
	return int32(math.Floor(mg*(1-endgameWeight) + eg*endgameWeight + 0.5))
}

// pawnStructureScore scores the doubled, isolated and passed pawns of side s.
func pawnStructureScore(pawns *[2 + 1][board.Width]uint8, s board.Side) int32 {
	var score int32
	own, enemy := &pawns[s], &pawns[s.Opposite()]
	for col := position.Pos(0); col < board.Width; col++ {
		n := bits.OnesCount8(own[col])
		if n == 0 {
			continue
		}
		if n > 1 {
			score += scoreDoubledPawn * int32(n-1)
		}

		var adjacent, blockers uint8
		if col > 0 {
			adjacent |= own[col-1]
			blockers |= enemy[col-1]
		}
		if col < board.Width-1 {
			adjacent |= own[col+1]
			blockers |= enemy[col+1]
		}
		blockers |= enemy[col]
		if adjacent == 0 {
			score += scoreIsolatedPawn
		}

		for rows := own[col]; rows != 0; rows &= rows - 1 {
			row := bits.TrailingZeros8(rows)
			var ahead uint8
			var advance int
			if s == board.SideWhite {
				ahead = uint8(1)<<row - 1 // rows toward rank 8
				advance = int(s.PawnStartRow()) - row
			} else {
				ahead = ^(uint8(1)<<(row+1) - 1)
				advance = row - int(s.PawnStartRow())
			}
			if blockers&ahead == 0 {
				score += scorePassedPawn + scorePassedRank*int32(max(advance, 0))
			}
		}
	}
	return score
}

func squareFor(pos position.Pos, s board.Side) position.Pos {
	if s == board.SideBlack {
		return pos.Mirror()
	}
	return pos
}

func sign(s board.Side) int32 {
	if s == board.SideBlack {
		return -1
	}
	return 1
}
