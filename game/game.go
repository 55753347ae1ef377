package game

import (
	"errors"
	"fmt"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/position"
)

var (
	ErrKingNotFound = errors.New("king not found")
	ErrIllegalMove  = errors.New("illegal move")
)

// Game owns the board and the side to move. It does not enforce turn order
// on Apply; callers push only moves obtained from LegalMoves.
type Game struct {
	board *board.Board
	turn  board.Side
}

type gameConfig struct {
	fen string
}

type GameOption func(*gameConfig)

func WithFEN(fen string) GameOption {
	return func(cfg *gameConfig) {
		cfg.fen = fen
	}
}

func NewGame(opts ...GameOption) (*Game, error) {
	cfg := &gameConfig{
		fen: board.DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	b, turn, err := board.NewBoard(board.WithFEN(cfg.fen))
	if err != nil {
		return nil, err
	}
	return &Game{
		board: b,
		turn:  turn,
	}, nil
}

// Board exposes the live board. Renderers must treat it as read-only.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Turn() board.Side {
	return g.turn
}

func (g *Game) SwitchTurn() {
	g.turn = g.turn.Opposite()
}

// Apply pushes mv and hands the turn over.
func (g *Game) Apply(mv board.Move) {
	g.board.Push(mv)
	g.SwitchTurn()
}

// Undo reverts the most recent Apply.
func (g *Game) Undo() board.Move {
	g.SwitchTurn()
	return g.board.Pop()
}

// LegalMoves returns the moves of the side to move that do not leave its own
// king attacked.
func (g *Game) LegalMoves() []board.Move {
	return g.AppendLegalMoves(make([]board.Move, 0, 48))
}

// AppendLegalMoves is LegalMoves appending to mvs.
func (g *Game) AppendLegalMoves(mvs []board.Move) []board.Move {
	var pseudo [32]board.Move
	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		c := g.board.PieceAt(pos)
		if c.IsEmpty() || c.Side() != g.turn {
			continue
		}
		for _, mv := range g.board.AppendPseudoLegalMoves(pseudo[:0], pos) {
			if g.isSafe(mv) {
				mvs = append(mvs, mv)
			}
		}
	}
	return mvs
}

// isSafe tries mv and reports whether the mover's king survives it. The
// deferred calls restore the board and turn on every path out.
func (g *Game) isSafe(mv board.Move) bool {
	mover := g.turn
	g.board.Push(mv)
	defer g.board.Pop()
	g.SwitchTurn()
	defer g.SwitchTurn()
	return !g.IsInCheck(mover)
}

// IsInCheck reports whether side s's king is attacked by the opponent.
func (g *Game) IsInCheck(s board.Side) bool {
	return g.board.IsSquareAttacked(g.FindKing(s), s.Opposite())
}

// FindKing returns the square of side s's king. A missing king means the
// board was corrupted, so it panics.
func (g *Game) FindKing(s board.Side) position.Pos {
	king := board.NewCell(s, board.PieceKing)
	for pos := position.Pos(0); pos < board.TotalCells; pos++ {
		if g.board.PieceAt(pos) == king {
			return pos
		}
	}
	panic(fmt.Errorf("%w: %s", ErrKingNotFound, s))
}

// State derives the game state for the side to move.
func (g *Game) State() State {
	hasMoves := len(g.LegalMoves()) > 0
	inCheck := g.IsInCheck(g.turn)
	switch {
	case inCheck && hasMoves:
		return StateCheck
	case inCheck:
		return StateCheckmate
	case hasMoves:
		return StateRunning
	default:
		return StateStalemate
	}
}

func (g *Game) FEN() string {
	return board.MarshalFEN(g.board, g.turn)
}

// Key returns the transposition key of the current position.
func (g *Game) Key() string {
	return g.board.Key(g.turn)
}

// Clone returns an independent copy for use by another goroutine.
func (g *Game) Clone() *Game {
	return &Game{
		board: g.board.Clone(),
		turn:  g.turn,
	}
}

// MoveFromUCI returns the legal move written in coordinate notation, e.g. "e7e8q".
func (g *Game) MoveFromUCI(uci string) (board.Move, error) {
	for _, mv := range g.LegalMoves() {
		if mv.UCI() == uci {
			return mv, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, uci)
}

func (g *Game) DebugString() string {
	return fmt.Sprintf("turn: %s\n%s\nstat: %s", g.turn, g.board.DebugString(), g.State())
}
