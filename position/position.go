package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// PosInvalid marks the absence of a square.
	PosInvalid Pos = -1
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square index in row-major order. Row 0 is rank 8 (Black's home rank)
// and row 7 is rank 1 (White's home rank); column 0 is file a.
type Pos int8

func NewPos(row, col Pos) Pos {
	if !InBounds(row, col) {
		return PosInvalid
	}
	return row*MaxComponentScalar + col
}

// InBounds reports whether the row and column both lie on the board.
func InBounds(row, col Pos) bool {
	return row >= 0 && row < MaxComponentScalar && col >= 0 && col < MaxComponentScalar
}

func NewPosFromNotation(n string) (Pos, error) {
	row, col, err := notationToRowCol(n)
	if err != nil {
		return PosInvalid, err
	}
	return row*MaxComponentScalar + col, nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) IsValid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

func (p Pos) Notation() string {
	if !p.IsValid() {
		return ""
	}
	return p.Col().NotationComponentCol() + p.Row().NotationComponentRow()
}

func (p Pos) Row() Pos {
	return p / MaxComponentScalar
}

func (p Pos) Col() Pos {
	return p % MaxComponentScalar
}

// Mirror returns the square reflected across the board's horizontal midline.
func (p Pos) Mirror() Pos {
	return (MaxComponentScalar-1-p.Row())*MaxComponentScalar + p.Col()
}

func notationToRowCol(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	col, err := notationToCol(n[0])
	if err != nil {
		return 0, 0, err
	}
	row, err := notationToRow(n[1])
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

func notationToCol(x byte) (Pos, error) {
	if x < 'a' || x >= 'a'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToRow(y byte) (Pos, error) {
	if y < '1' || y >= '1'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return MaxComponentScalar - 1 - Pos(y-'1'), nil
}

// NotationComponentCol returns the file letter of a column.
func (p Pos) NotationComponentCol() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

// NotationComponentRow returns the rank digit of a row.
func (p Pos) NotationComponentRow() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('8' - p))
}
