package game

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/position"
)

const (
	fenKiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	fenPosition3 = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
)

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGame(WithFEN(fen))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return g
}

func playUCI(t *testing.T, g *Game, ucis ...string) {
	t.Helper()
	for _, uci := range ucis {
		mv, err := g.MoveFromUCI(uci)
		if err != nil {
			t.Fatalf("cannot play %s: %v\n%s", uci, err, g.Board().Dump())
		}
		g.Apply(mv)
	}
}

func legalUCI(g *Game) []string {
	var ucis []string
	for _, mv := range g.LegalMoves() {
		ucis = append(ucis, mv.UCI())
	}
	sort.Strings(ucis)
	return ucis
}

func countNodes(g *Game, depth int) int {
	if depth == 0 {
		return 1
	}
	var nodes int
	for _, mv := range g.LegalMoves() {
		g.Apply(mv)
		nodes += countNodes(g, depth-1)
		g.Undo()
	}
	return nodes
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	g, err := NewGame()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if g.Turn() != board.SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", g.Turn(), board.SideWhite)
	}
	if got := g.FEN(); got != board.DefaultStartingPositionFEN {
		t.Errorf("unexpected fen: got=%s want=%s", got, board.DefaultStartingPositionFEN)
	}

	if _, err := NewGame(WithFEN("8/8/8/8/8/8/8/8 w - - 0 1")); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("unexpected error: got=%v want=%v", err, board.ErrInvalidFEN)
	}
}

func TestLegalMovesCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		depth int
		want  int
	}{
		{name: "start d1", fen: board.DefaultStartingPositionFEN, depth: 1, want: 20},
		{name: "start d2", fen: board.DefaultStartingPositionFEN, depth: 2, want: 400},
		{name: "start d3", fen: board.DefaultStartingPositionFEN, depth: 3, want: 8902},
		{name: "kiwipete d1", fen: fenKiwipete, depth: 1, want: 48},
		{name: "kiwipete d2", fen: fenKiwipete, depth: 2, want: 2039},
		{name: "position 3 d1", fen: fenPosition3, depth: 1, want: 14},
		{name: "position 3 d2", fen: fenPosition3, depth: 2, want: 191},
		{name: "position 3 d3", fen: fenPosition3, depth: 3, want: 2812},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, tt.fen)
			before := g.FEN()
			if got := countNodes(g, tt.depth); got != tt.want {
				t.Errorf("unexpected node count: got=%d want=%d", got, tt.want)
			}
			if after := g.FEN(); after != before {
				t.Errorf("game changed by traversal: got=%s want=%s", after, before)
			}
		})
	}
}

func TestFoolsMate(t *testing.T) {
	t.Parallel()
	g := mustGame(t, board.DefaultStartingPositionFEN)
	playUCI(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if g.Turn() != board.SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", g.Turn(), board.SideWhite)
	}
	if !g.IsInCheck(board.SideWhite) {
		t.Errorf("white should be in check\n%s", g.Board().Dump())
	}
	if got := len(g.LegalMoves()); got != 0 {
		t.Errorf("unexpected legal move count: got=%d want=0", got)
	}
	if got := g.State(); got != StateCheckmate {
		t.Errorf("unexpected state: got=%s want=%s", got, StateCheckmate)
	}
}

func TestState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want State
	}{
		{name: "start", fen: board.DefaultStartingPositionFEN, want: StateRunning},
		{name: "check", fen: "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", want: StateCheck},
		{name: "quiet", fen: "6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1", want: StateRunning},
		{name: "mated", fen: "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", want: StateCheckmate},
		{name: "queen stalemate", fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", want: StateStalemate},
		{name: "pawn stalemate", fen: "k7/P7/K7/8/8/8/8/8 b - - 0 1", want: StateStalemate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, tt.fen)
			if got := g.State(); got != tt.want {
				t.Errorf("unexpected state: got=%s want=%s\n%s", got, tt.want, g.Board().Dump())
			}
		})
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()
	if !StateCheck.IsRunning() || !StateCheck.IsCheck() {
		t.Errorf("check should be running and in check")
	}
	if StateCheckmate.IsRunning() || !StateCheckmate.IsCheckmate() {
		t.Errorf("checkmate should not be running")
	}
	if !StateStalemate.IsDraw() || StateStalemate.IsCheck() {
		t.Errorf("stalemate should be a draw without check")
	}
}

func TestLegalMovesEscapeCheck(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{
			name: "pinned knight cannot move",
			fen:  "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			name: "evade or capture the checker",
			fen:  "4k3/8/8/8/8/8/4r3/R3K3 w - - 0 1",
			want: []string{"e1d1", "e1e2", "e1f1"},
		},
		{
			name: "en passant exposing the king",
			fen:  "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1",
			want: []string{"a5a4", "a5a6", "a5b4", "a5b5", "a5b6", "e5e6"},
		},
		{
			name: "castling out of check is illegal",
			fen:  "4k3/8/8/8/4r3/8/8/R3K2R w KQ - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGame(t, tt.fen)
			got := legalUCI(g)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("unexpected legal moves: got=%v want=%v\n%s", got, tt.want, g.Board().Dump())
			}
		})
	}
}

func TestLegalMovesLeaveKingSafe(t *testing.T) {
	t.Parallel()
	g := mustGame(t, fenKiwipete)
	for _, mv := range g.LegalMoves() {
		mover := g.Turn()
		g.Apply(mv)
		if g.IsInCheck(mover) {
			t.Errorf("move %s leaves %s in check", mv.UCI(), mover)
		}
		// the opponent may never have a pseudo-legal king capture after a legal move
		for pos := position.Pos(0); pos < board.TotalCells; pos++ {
			c := g.Board().PieceAt(pos)
			if c.IsEmpty() || c.Side() != g.Turn() {
				continue
			}
			for _, reply := range g.Board().PseudoLegalMoves(pos) {
				if reply.Captured.Piece() == board.PieceKing {
					t.Errorf("reply %s captures king after %s", reply.UCI(), mv.UCI())
				}
			}
		}
		g.Undo()
	}
}

func TestCastleRightsPermanent(t *testing.T) {
	t.Parallel()
	g := mustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	playUCI(t, g, "h1h2", "a8a7", "h2h1", "a7a8")

	if got := g.Board().CastleRights().String(); got != "Qk" {
		t.Errorf("unexpected castle rights: got=%s want=Qk", got)
	}
	got := legalUCI(g)
	for _, uci := range got {
		if uci == "e1g1" {
			t.Errorf("kingside castling regenerated after rook returned")
		}
	}

	for i := 0; i < 4; i++ {
		g.Undo()
	}
	if got := g.Board().CastleRights().String(); got != "KQkq" {
		t.Errorf("unexpected castle rights after undo: got=%s want=KQkq", got)
	}
}

func TestFindKing(t *testing.T) {
	t.Parallel()
	g := mustGame(t, board.DefaultStartingPositionFEN)
	e1, _ := position.NewPosFromNotation("e1")
	e8, _ := position.NewPosFromNotation("e8")
	if got := g.FindKing(board.SideWhite); got != e1 {
		t.Errorf("unexpected white king: got=%s want=%s", got, e1)
	}
	if got := g.FindKing(board.SideBlack); got != e8 {
		t.Errorf("unexpected black king: got=%s want=%s", got, e8)
	}

	g.Board().SetPiece(e8, board.CellEmpty)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrKingNotFound) {
			t.Errorf("unexpected panic: got=%v want=%v", r, ErrKingNotFound)
		}
	}()
	g.FindKing(board.SideBlack)
}

func TestMoveFromUCI(t *testing.T) {
	t.Parallel()
	g := mustGame(t, "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1")
	mv, err := g.MoveFromUCI("b7b8n")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if mv.IsPromote != board.PieceKnight {
		t.Errorf("unexpected promotion: got=%s want=%s", mv.IsPromote, board.PieceKnight)
	}
	for _, uci := range []string{"b7b8", "e1e3", "e8e7", "zz"} {
		if _, err := g.MoveFromUCI(uci); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("unexpected error for %s: got=%v want=%v", uci, err, ErrIllegalMove)
		}
	}
}

func TestClone(t *testing.T) {
	t.Parallel()
	g := mustGame(t, board.DefaultStartingPositionFEN)
	playUCI(t, g, "e2e4")
	c := g.Clone()
	playUCI(t, c, "e7e5", "g1f3")

	if g.Turn() != board.SideBlack || g.Board().Depth() != 1 {
		t.Errorf("original changed by clone: turn=%s depth=%d", g.Turn(), g.Board().Depth())
	}
	c.Undo()
	c.Undo()
	if c.FEN() != g.FEN() {
		t.Errorf("unexpected clone fen: got=%s want=%s", c.FEN(), g.FEN())
	}
	if c.Undo().UCI() != "e2e4" {
		t.Errorf("clone lost shared history")
	}
}
