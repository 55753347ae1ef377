package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/kingside/position"
)

var (
	ErrInvalidFEN       = errors.New("invalid fen")
	ErrEmptyHistory     = errors.New("pop on empty history")
	ErrUnknownPromotion = errors.New("unknown promotion piece")

	colorCellLight = color.New(color.FgBlack, color.BgHiWhite)
	colorCellDark  = color.New(color.FgBlack, color.BgGreen)
	colorLabel     = color.New(color.Bold)
)

// Board is the mutable placement grid plus castling rights and the en passant
// target. It knows nothing about whose turn it is. Every Push must be paired
// with exactly one Pop.
type Board struct {
	cells        [TotalCells]Cell
	enPassant    position.Pos
	castleRights CastleRights

	history []undo
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// NewBoard creates a board, at the standard starting position unless
// WithFEN is given, and returns it with the side to move.
func NewBoard(opts ...BoardOption) (*Board, Side, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}
	return UnmarshalFEN(cfg.fen)
}

func newEmptyBoard() *Board {
	return &Board{
		enPassant: position.PosInvalid,
		history:   make([]undo, 0, 64),
	}
}

func (b *Board) PieceAt(pos position.Pos) Cell {
	return b.cells[pos]
}

func (b *Board) SetPiece(pos position.Pos, c Cell) {
	b.cells[pos] = c
}

func (b *Board) SquareEmpty(pos position.Pos) bool {
	return b.cells[pos].IsEmpty()
}

// EnPassant returns the square a capturing pawn would land on, if any.
func (b *Board) EnPassant() (position.Pos, bool) {
	return b.enPassant, b.enPassant != position.PosInvalid
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// Depth returns the number of moves pushed and not yet popped.
func (b *Board) Depth() int {
	return len(b.history)
}

// RelativeSquare offsets from by h files to the mover's right and v ranks
// toward the opponent, as seen by side s. ok is false off the board.
func RelativeSquare(from position.Pos, h, v position.Pos, s Side) (position.Pos, bool) {
	row, col := from.Row(), from.Col()
	if s == SideWhite {
		row, col = row-v, col+h
	} else {
		row, col = row+v, col-h
	}
	if !position.InBounds(row, col) {
		return position.PosInvalid, false
	}
	return row*Width + col, true
}

// Push applies mv without validating it. Callers must only push moves
// produced by the generators.
func (b *Board) Push(mv Move) {
	mover := b.cells[mv.From]
	u := undo{
		mv:           mv,
		captured:     b.cells[mv.To],
		capturedPos:  mv.To,
		enPassant:    b.enPassant,
		castleRights: b.castleRights,
		rookFrom:     position.PosInvalid,
		rookTo:       position.PosInvalid,
	}

	b.enPassant = position.PosInvalid

	// the captured pawn sits beside the mover, not on the destination
	if mv.IsEnPassant {
		u.capturedPos = position.NewPos(mv.From.Row(), mv.To.Col())
		u.captured = b.cells[u.capturedPos]
		b.cells[u.capturedPos] = CellEmpty
	}

	b.cells[mv.To] = mover
	b.cells[mv.From] = CellEmpty

	if mv.IsPromote != PieceUnknown {
		if !mv.IsPromote.IsPromotable() {
			panic(fmt.Errorf("%w: %d", ErrUnknownPromotion, mv.IsPromote))
		}
		u.promotedFrom = mover
		b.cells[mv.To] = NewCell(mover.Side(), mv.IsPromote)
	}

	if mover.Piece() == PiecePawn {
		if d := mv.To.Row() - mv.From.Row(); d == 2 || d == -2 {
			b.enPassant = position.NewPos((mv.From.Row()+mv.To.Row())/2, mv.From.Col())
		}
	}

	// rook relocation is derived from the king's direction of travel
	if mv.IsCastle {
		row := mv.From.Row()
		u.rookFrom, u.rookTo = position.NewPos(row, 7), position.NewPos(row, 5)
		if mv.To.Col() < mv.From.Col() {
			u.rookFrom, u.rookTo = position.NewPos(row, 0), position.NewPos(row, 3)
		}
		b.cells[u.rookTo] = b.cells[u.rookFrom]
		b.cells[u.rookFrom] = CellEmpty
	}

	switch mover.Piece() {
	case PieceKing:
		b.castleRights.revokeSide(mover.Side())
	case PieceRook:
		b.castleRights.revokeRookHome(mv.From)
	}
	if !u.captured.IsEmpty() {
		b.castleRights.revokeRookHome(u.capturedPos)
	}

	b.history = append(b.history, u)
}

// Pop reverts the most recent Push and returns its move.
func (b *Board) Pop() Move {
	if len(b.history) == 0 {
		panic(ErrEmptyHistory)
	}
	u := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	mv := u.mv

	mover := b.cells[mv.To]
	if !u.promotedFrom.IsEmpty() {
		mover = u.promotedFrom
	}

	if u.rookFrom != position.PosInvalid {
		b.cells[u.rookFrom] = b.cells[u.rookTo]
		b.cells[u.rookTo] = CellEmpty
	}

	b.cells[mv.From] = mover
	b.cells[mv.To] = CellEmpty
	b.cells[u.capturedPos] = u.captured

	b.enPassant = u.enPassant
	b.castleRights = u.castleRights
	return mv
}

// FEN returns the piece placement field: rank 8 first, runs of empty squares
// as digits, White upper case.
func (b *Board) FEN() string {
	builder := strings.Builder{}
	for row := position.Pos(0); row < Height; row++ {
		var skip uint8
		for col := position.Pos(0); col < Width; col++ {
			c := b.cells[row*Width+col]
			if c.IsEmpty() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteRune(rune(skip + '0'))
				skip = 0
			}
			_, _ = builder.WriteString(c.String())
		}
		if skip != 0 {
			_, _ = builder.WriteRune(rune(skip + '0'))
		}
		if row < Height-1 {
			_, _ = builder.WriteRune('/')
		}
	}
	return builder.String()
}

// Key returns the canonical transposition key for the position with turn to move.
func (b *Board) Key(turn Side) string {
	ep := "-"
	if b.enPassant != position.PosInvalid {
		ep = b.enPassant.Col().NotationComponentCol()
	}
	return b.FEN() + " " + turn.SymbolFEN() + " " + ep + " " + b.castleRights.String()
}

func (b *Board) Clone() *Board {
	bb := *b
	bb.history = make([]undo, len(b.history), cap(b.history))
	copy(bb.history, b.history)
	return &bb
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for row := position.Pos(0); row < Height; row++ {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", row.NotationComponentRow()))
		for col := position.Pos(0); col < Width; col++ {
			sym := b.cells[row*Width+col].String()
			if sym == "" {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for col := position.Pos(0); col < Width; col++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", col.NotationComponentCol()))
	}
	return builder.String()
}

func (b *Board) Draw() string {
	builder := strings.Builder{}
	for row := position.Pos(0); row < Height; row++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", row.NotationComponentRow()))
		for col := position.Pos(0); col < Width; col++ {
			c := b.cells[row*Width+col]
			sym := c.Piece().SymbolUnicode(c.Side(), false)
			if c.IsEmpty() {
				sym = " "
			}
			if row%2^col%2 == 0 {
				_, _ = builder.WriteString(colorCellLight.Sprintf(" %s ", sym))
			} else {
				_, _ = builder.WriteString(colorCellDark.Sprintf(" %s ", sym))
			}
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for col := position.Pos(0); col < Width; col++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", col.NotationComponentCol()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	ep := "-"
	if b.enPassant != position.PosInvalid {
		ep = b.enPassant.Notation()
	}
	return fmt.Sprintf("cast: %04b (%s)\nenp:  %s\nhist: %d", uint8(b.castleRights), b.castleRights, ep, len(b.history))
}
