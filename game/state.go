package game

type State uint8

const (
	// StateUnknown is when game state is unknown.
	StateUnknown State = iota

	// StateRunning is when the side to move has legal moves and is not in check.
	StateRunning

	// StateCheck is when the side to move is in check but can escape.
	StateCheck

	// StateCheckmate is when the side to move is in check with no legal moves.
	StateCheckmate

	// StateStalemate is when the side to move has no legal moves and is not in check.
	StateStalemate
)

func (s State) IsRunning() bool {
	switch s {
	case StateRunning, StateCheck:
		return true
	default:
		return false
	}
}

func (s State) IsCheck() bool {
	return s == StateCheck || s == StateCheckmate
}

func (s State) IsCheckmate() bool {
	return s == StateCheckmate
}

func (s State) IsDraw() bool {
	return s == StateStalemate
}

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "StateUnknown"
	case StateRunning:
		return "StateRunning"
	case StateCheck:
		return "StateCheck"
	case StateCheckmate:
		return "StateCheckmate"
	case StateStalemate:
		return "StateStalemate"
	default:
		return ""
	}
}
