package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/daystram/kingside/position"
)

// UnmarshalFEN decodes a six-field FEN into a board and the side to move.
// Move clocks are validated but not kept.
func UnmarshalFEN(fen string) (*Board, Side, error) {
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return nil, SideUnknown, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	b := newEmptyBoard()
	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return nil, SideUnknown, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	var kings [2 + 1]int
	for row := position.Pos(0); row < Height; row++ {
		col := position.Pos(0)
		for _, cell := range rows[row] {
			if col >= Width {
				return nil, SideUnknown, fmt.Errorf("%w: too many cells", ErrInvalidFEN)
			}
			if cell != '0' && unicode.IsDigit(cell) {
				skip := position.Pos(cell - '0')
				if col+skip > Width {
					return nil, SideUnknown, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				col += skip
				continue
			}
			s, p, ok := pieceFromSymbol(cell)
			if !ok {
				return nil, SideUnknown, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if p == PieceKing {
				kings[s]++
			}
			b.cells[row*Width+col] = NewCell(s, p)
			col++
		}
		if col != Width {
			return nil, SideUnknown, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}
	if kings[SideWhite] != 1 || kings[SideBlack] != 1 {
		return nil, SideUnknown, fmt.Errorf("%w: need exactly one king per side", ErrInvalidFEN)
	}

	var turn Side
	switch segments[1] {
	case "w":
		turn = SideWhite
	case "b":
		turn = SideBlack
	default:
		return nil, SideUnknown, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) == 0 || len(segments[2]) > 4 {
		return nil, SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		switch e {
		case 'K':
			b.castleRights.Set(CastleDirectionWhiteKingside, true)
		case 'k':
			b.castleRights.Set(CastleDirectionBlackKingside, true)
		case 'Q':
			b.castleRights.Set(CastleDirectionWhiteQueenside, true)
		case 'q':
			b.castleRights.Set(CastleDirectionBlackQueenside, true)
		default:
			if i == 0 && e == '-' && len(segments[2]) == 1 {
				break crLoop
			}
			return nil, SideUnknown, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return nil, SideUnknown, fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if pos.Row() != 2 && pos.Row() != 5 {
			return nil, SideUnknown, fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
		b.enPassant = pos
	}

	if _, err := strconv.ParseUint(segments[4], 10, 16); err != nil {
		return nil, SideUnknown, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	if _, err := strconv.ParseUint(segments[5], 10, 16); err != nil {
		return nil, SideUnknown, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}

	return b, turn, nil
}

// MarshalFEN encodes the board with turn to move. Clocks are not tracked and
// are always written as "0 1".
func MarshalFEN(b *Board, turn Side) string {
	ep := "-"
	if b.enPassant != position.PosInvalid {
		ep = b.enPassant.Notation()
	}
	return fmt.Sprintf("%s %s %s %s 0 1", b.FEN(), turn.SymbolFEN(), b.castleRights, ep)
}
