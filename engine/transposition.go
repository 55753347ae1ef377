package engine

import (
	"github.com/daystram/kingside/board"
)

type EntryType uint8

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeExact:
		return "exact"
	case EntryTypeLowerBound:
		return "lower"
	case EntryTypeUpperBound:
		return "upper"
	default:
		return "unknown"
	}
}

// TranspositionTable caches search results by position key. It lives for a
// single Search call.
type TranspositionTable struct {
	table map[string]entry

	// stats
	hits   int
	misses int
	writes int
}

type entry struct {
	typ   EntryType
	mv    board.MoveKey
	score int32
	depth int
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{
		table: make(map[string]entry),
	}
}

// Set stores a result searched to depth, replacing any entry already held for
// key. Mate scores are stored relative to the node, not the root.
func (t *TranspositionTable) Set(key string, typ EntryType, mv board.MoveKey, score int32, depth, ply int) {
	t.writes++
	t.table[key] = entry{
		typ:   typ,
		mv:    mv,
		score: scoreToTT(score, ply),
		depth: depth,
	}
}

// Get returns the stored result for key with mate scores re-based to ply.
func (t *TranspositionTable) Get(key string, ply int) (EntryType, board.MoveKey, int32, int, bool) {
	e, ok := t.table[key]
	if !ok {
		t.misses++
		return EntryTypeUnknown, board.MoveKeyNull, 0, 0, false
	}
	t.hits++
	return e.typ, e.mv, scoreFromTT(e.score, ply), e.depth, true
}

func (t *TranspositionTable) Len() int {
	return len(t.table)
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (int, int, int) {
	return t.hits, t.misses, t.writes
}

func scoreToTT(score int32, ply int) int32 {
	switch {
	case score > scoreMateBound:
		return score + int32(ply)
	case score < -scoreMateBound:
		return score - int32(ply)
	default:
		return score
	}
}

func scoreFromTT(score int32, ply int) int32 {
	switch {
	case score > scoreMateBound:
		return score - int32(ply)
	case score < -scoreMateBound:
		return score + int32(ply)
	default:
		return score
	}
}
