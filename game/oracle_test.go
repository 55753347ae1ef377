package game

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"github.com/daystram/kingside/board"
)

var oraclePositions = []string{
	board.DefaultStartingPositionFEN,
	fenKiwipete,
	fenPosition3,
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

func dragontoothUCI(b *dragontoothmg.Board) []string {
	var ucis []string
	for _, mv := range b.GenerateLegalMoves() {
		ucis = append(ucis, mv.String())
	}
	sort.Strings(ucis)
	return ucis
}

func TestLegalMovesMatchDragontooth(t *testing.T) {
	t.Parallel()
	const (
		playouts = 8
		plies    = 60
	)
	if testing.Short() {
		t.Skip("skipping random playouts in short mode")
	}

	for i, fen := range oraclePositions {
		i, fen := i, fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewSource(int64(i) + 1))
			for n := 0; n < playouts; n++ {
				g := mustGame(t, fen)
				ref := dragontoothmg.ParseFen(fen)
				for ply := 0; ply < plies; ply++ {
					got, want := legalUCI(g), dragontoothUCI(&ref)
					if strings.Join(got, ",") != strings.Join(want, ",") {
						t.Fatalf("legal moves differ at %s: got=%v want=%v", g.FEN(), got, want)
					}
					if len(got) == 0 {
						break
					}
					pick := got[r.Intn(len(got))]
					playUCI(t, g, pick)
					for _, mv := range ref.GenerateLegalMoves() {
						if mv.String() == pick {
							ref.Apply(mv)
							break
						}
					}
				}
				for g.Board().Depth() > 0 {
					g.Undo()
				}
				if got := g.FEN(); got != mustGame(t, fen).FEN() {
					t.Errorf("unexpected fen after unwinding: got=%s want=%s", got, fen)
				}
			}
		})
	}
}

func TestStateMatchesNotnil(t *testing.T) {
	t.Parallel()
	const plies = 80
	if testing.Short() {
		t.Skip("skipping random playouts in short mode")
	}

	for i, fen := range oraclePositions {
		i, fen := i, fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			opt, err := chess.FEN(fen)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			pos := chess.NewGame(opt).Position()
			g := mustGame(t, fen)
			r := rand.New(rand.NewSource(int64(i) + 100))
			for ply := 0; ply < plies; ply++ {
				want := StateRunning
				switch pos.Status() {
				case chess.Checkmate:
					want = StateCheckmate
				case chess.Stalemate:
					want = StateStalemate
				}
				got := g.State()
				if got == StateCheck {
					got = StateRunning
				}
				if got != want {
					t.Fatalf("state differs at %s: got=%s want=%s", g.FEN(), got, want)
				}
				// placement, turn and castling rights must agree
				if gf, wf := strings.Fields(g.FEN())[:3], strings.Fields(pos.String())[:3]; strings.Join(gf, " ") != strings.Join(wf, " ") {
					t.Fatalf("position differs: got=%v want=%v", gf, wf)
				}
				valid := pos.ValidMoves()
				if len(valid) != len(g.LegalMoves()) {
					t.Fatalf("legal move count differs at %s: got=%d want=%d", g.FEN(), len(g.LegalMoves()), len(valid))
				}
				if len(valid) == 0 {
					break
				}
				mv := valid[r.Intn(len(valid))]
				playUCI(t, g, chess.UCINotation{}.Encode(pos, mv))
				pos = pos.Update(mv)
			}
		})
	}
}

func TestFoolsMateMatchesNotnil(t *testing.T) {
	t.Parallel()
	ref := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	g := mustGame(t, board.DefaultStartingPositionFEN)
	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := ref.MoveStr(uci); err != nil {
			t.Fatal("unexpected error:", err)
		}
		playUCI(t, g, uci)
	}
	if ref.Method() != chess.Checkmate {
		t.Fatalf("reference did not see checkmate: %s", ref.Method())
	}
	if got := g.State(); got != StateCheckmate {
		t.Errorf("unexpected state: got=%s want=%s", got, StateCheckmate)
	}
}
