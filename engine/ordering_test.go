package engine

import (
	"testing"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/game"
)

func findLegal(t *testing.T, g *game.Game, uci string) board.Move {
	t.Helper()
	mv, err := g.MoveFromUCI(uci)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return mv
}

func TestScoreMove(t *testing.T) {
	t.Parallel()
	g := mustGame(t, "r3k2r/1P6/8/8/3p4/2Q5/8/R3K2R w KQkq - 0 1")
	sc := newSearchContext()
	ttMove := findLegal(t, g, "e1g1")
	sc.storeKiller(2, findLegal(t, g, "c3c4"))
	sc.storeKiller(2, findLegal(t, g, "c3c5"))
	sc.storeHistory(findLegal(t, g, "h1h2"), 3)
	sc.storeHistory(findLegal(t, g, "e1c1"), 2)

	tests := []struct {
		uci  string
		want int32
	}{
		{uci: "e1g1", want: scoreOrderTT},
		{uci: "b7a8q", want: scoreOrderPromotion + 900},
		{uci: "b7b8n", want: scoreOrderPromotion + 320},
		{uci: "a1a8", want: scoreOrderCapture + 10*4 - 4},
		{uci: "c3d4", want: scoreOrderCapture + 10*1 - 5},
		{uci: "c3c5", want: scoreOrderKiller},
		{uci: "c3c4", want: scoreOrderKiller2},
		{uci: "h1h2", want: 9},
		{uci: "e1c1", want: 4 + scoreOrderCastle},
		{uci: "a1b1", want: 0},
	}
	for _, tt := range tests {
		if got := sc.scoreMove(findLegal(t, g, tt.uci), ttMove.Key(), 2); got != tt.want {
			t.Errorf("unexpected score for %s: got=%d want=%d", tt.uci, got, tt.want)
		}
	}

	// killers belong to their ply
	if got := sc.scoreMove(findLegal(t, g, "c3c5"), board.MoveKeyNull, 3); got != 0 {
		t.Errorf("unexpected killer score at another ply: got=%d want=0", got)
	}
	// history never reaches the killers
	sc.history[findLegal(t, g, "a1b1").From][findLegal(t, g, "a1b1").To] = 2 * scoreOrderKiller
	if got := sc.scoreMove(findLegal(t, g, "a1b1"), board.MoveKeyNull, 2); got != scoreOrderHistory {
		t.Errorf("unexpected capped history score: got=%d want=%d", got, scoreOrderHistory)
	}
}

func TestOrderMoves(t *testing.T) {
	t.Parallel()
	g := mustGame(t, "r3k2r/1P6/8/8/3p4/2Q5/8/R3K2R w KQkq - 0 1")
	sc := newSearchContext()
	ttMove := findLegal(t, g, "h1h2")

	generated := g.LegalMoves()
	ordered := sc.orderMoves(append([]board.Move(nil), generated...), ttMove.Key(), 0)
	if len(ordered) != len(generated) {
		t.Fatalf("unexpected move count: got=%d want=%d", len(ordered), len(generated))
	}
	if !ordered[0].Equals(ttMove) {
		t.Errorf("unexpected first move: got=%s want=%s", ordered[0].UCI(), ttMove.UCI())
	}
	if ordered[1].UCI() != "b7b8q" || ordered[2].UCI() != "b7a8q" {
		t.Errorf("unexpected promotion order: got=%s,%s want=b7b8q,b7a8q", ordered[1].UCI(), ordered[2].UCI())
	}

	// scores never increase, and equal scores keep generation order
	index := make(map[board.MoveKey]int, len(generated))
	for i, mv := range generated {
		index[mv.Key()] = i
	}
	for i := 1; i < len(ordered); i++ {
		prev, cur := sc.scoreMove(ordered[i-1], ttMove.Key(), 0), sc.scoreMove(ordered[i], ttMove.Key(), 0)
		if prev < cur {
			t.Errorf("unsorted at %d: %s=%d before %s=%d", i, ordered[i-1].UCI(), prev, ordered[i].UCI(), cur)
		}
		if prev == cur && index[ordered[i-1].Key()] > index[ordered[i].Key()] {
			t.Errorf("unstable at %d: %s before %s", i, ordered[i-1].UCI(), ordered[i].UCI())
		}
	}
}

func TestStoreKiller(t *testing.T) {
	t.Parallel()
	g := mustGame(t, board.DefaultStartingPositionFEN)
	sc := newSearchContext()
	e2e4, d2d4, g1f3 := findLegal(t, g, "e2e4"), findLegal(t, g, "d2d4"), findLegal(t, g, "g1f3")

	sc.storeKiller(1, e2e4)
	sc.storeKiller(1, e2e4)
	if sc.killers[1] != [2]board.MoveKey{e2e4.Key(), board.MoveKeyNull} {
		t.Errorf("duplicate killer stored: got=%v", sc.killers[1])
	}
	sc.storeKiller(1, d2d4)
	sc.storeKiller(1, g1f3)
	if sc.killers[1] != [2]board.MoveKey{g1f3.Key(), d2d4.Key()} {
		t.Errorf("unexpected killers: got=%v want=%v", sc.killers[1], [2]board.MoveKey{g1f3.Key(), d2d4.Key()})
	}
	sc.storeKiller(1, d2d4)
	if sc.killers[1] != [2]board.MoveKey{d2d4.Key(), g1f3.Key()} {
		t.Errorf("unexpected killers: got=%v want=%v", sc.killers[1], [2]board.MoveKey{d2d4.Key(), g1f3.Key()})
	}
}
