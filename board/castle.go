package board

import "github.com/daystram/kingside/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteKingside
	CastleDirectionWhiteQueenside
	CastleDirectionBlackKingside
	CastleDirectionBlackQueenside
)

var (
	maskCastleRights = [5]CastleRights{
		CastleDirectionWhiteKingside:  0b1000,
		CastleDirectionWhiteQueenside: 0b0100,
		CastleDirectionBlackKingside:  0b0010,
		CastleDirectionBlackQueenside: 0b0001,
	}

	// CastleRightsAll is the starting position's rights.
	CastleRightsAll CastleRights = 0b1111
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteKingside:
		return "White 0-0"
	case CastleDirectionWhiteQueenside:
		return "White 0-0-0"
	case CastleDirectionBlackKingside:
		return "Black 0-0"
	case CastleDirectionBlackQueenside:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteKingside || d == CastleDirectionWhiteQueenside
}

func (d CastleDirection) IsKingside() bool {
	return d == CastleDirectionWhiteKingside || d == CastleDirectionBlackKingside
}

// RookHome returns the corner square the castling rook starts from.
func (d CastleDirection) RookHome() position.Pos {
	s := SideBlack
	if d.IsWhite() {
		s = SideWhite
	}
	if d.IsKingside() {
		return position.NewPos(s.HomeRow(), 7)
	}
	return position.NewPos(s.HomeRow(), 0)
}

// CastleDirectionOf returns the castling direction for a side.
func CastleDirectionOf(s Side, kingside bool) CastleDirection {
	switch {
	case s == SideWhite && kingside:
		return CastleDirectionWhiteKingside
	case s == SideWhite:
		return CastleDirectionWhiteQueenside
	case s == SideBlack && kingside:
		return CastleDirectionBlackKingside
	case s == SideBlack:
		return CastleDirectionBlackQueenside
	default:
		return CastleDirectionUnknown
	}
}

// CastleRights holds the kingside and queenside rights of both sides as four
// independent bits. It is a plain value, so copying it snapshots the rights.
type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteQueenside]|maskCastleRights[CastleDirectionWhiteKingside]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackQueenside]|maskCastleRights[CastleDirectionBlackKingside]) != 0
}

// revokeSide clears both rights of a side.
func (c *CastleRights) revokeSide(s Side) {
	c.Set(CastleDirectionOf(s, true), false)
	c.Set(CastleDirectionOf(s, false), false)
}

// revokeRookHome clears the right tied to a rook corner, if pos is one.
func (c *CastleRights) revokeRookHome(pos position.Pos) {
	for _, d := range []CastleDirection{
		CastleDirectionWhiteKingside,
		CastleDirectionWhiteQueenside,
		CastleDirectionBlackKingside,
		CastleDirectionBlackQueenside,
	} {
		if d.RookHome() == pos {
			c.Set(d, false)
		}
	}
}

// String returns the FEN castling field.
func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	var s string
	if c.IsAllowed(CastleDirectionWhiteKingside) {
		s += "K"
	}
	if c.IsAllowed(CastleDirectionWhiteQueenside) {
		s += "Q"
	}
	if c.IsAllowed(CastleDirectionBlackKingside) {
		s += "k"
	}
	if c.IsAllowed(CastleDirectionBlackQueenside) {
		s += "q"
	}
	return s
}
