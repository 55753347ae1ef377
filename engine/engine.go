package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/game"
)

const (
	// MaxPly bounds the search depth and the quiescence extension below it.
	MaxPly = 64

	ScoreMate     int32 = 100_000
	ScoreInfinite int32 = 1_000_000

	scoreMateBound = ScoreMate - MaxPly
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrInvalidDepth = errors.New("invalid search depth")
)

func DefaultLogger(a ...any) {
	fmt.Println(a...)
}

type EngineConfig struct {
	Logger func(...any)
	Debug  bool
}

type Engine struct {
	logger func(...any)
	debug  bool
}

// Result is the outcome of the deepest fully completed iteration.
type Result struct {
	Move    board.Move
	Score   int32
	Depth   int
	Nodes   uint64
	PV      []board.Move
	Elapsed time.Duration
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultLogger
	}
	return &Engine{
		logger: cfg.Logger,
		debug:  cfg.Debug,
	}
}

// searchContext holds the tables of one Search call.
type searchContext struct {
	tt      *TranspositionTable
	killers [MaxPly + 1][2]board.MoveKey
	history [board.TotalCells][board.TotalCells]int32
	nodes   uint64
	scored  []scoredMove
}

func newSearchContext() *searchContext {
	return &searchContext{
		tt:     NewTranspositionTable(),
		scored: make([]scoredMove, 0, 64),
	}
}

// Search finds the best move for the side to move in g by iterative
// deepening up to maxDepth. g is explored in place and left as it was given;
// the move is not applied. Deepening stops once a mate is found, so
// Result.Depth may be less than maxDepth.
func (e *Engine) Search(g *game.Game, maxDepth int) (Result, error) {
	if maxDepth < 1 || maxDepth > MaxPly {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, maxDepth)
	}
	if len(g.LegalMoves()) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	sc := newSearchContext()
	var res Result
	for d := 1; d <= maxDepth; d++ {
		startTime := time.Now()
		score, mv := e.searchRoot(sc, g, d)
		res.Elapsed += time.Since(startTime)

		res.Move, res.Score, res.Depth, res.Nodes = mv, score, d, sc.nodes
		res.PV = principalVariation(sc.tt, g, d)
		e.logIteration(g, res)

		if abs(score) > scoreMateBound {
			break
		}
	}
	return res, nil
}

// FindBestMove returns the best move, or false when the side to move has
// no legal moves. maxDepth is clamped to 1..MaxPly.
func (e *Engine) FindBestMove(g *game.Game, maxDepth int) (board.Move, bool) {
	res, err := e.Search(g, clamp(maxDepth, 1, MaxPly))
	if err != nil {
		return board.Move{}, false
	}
	return res.Move, true
}

// FindBestMove searches g with a silent engine.
func FindBestMove(g *game.Game, maxDepth int) (board.Move, bool) {
	return NewEngine(&EngineConfig{Logger: func(...any) {}}).FindBestMove(g, maxDepth)
}

// searchRoot never takes a table cutoff so that a move is always chosen.
func (e *Engine) searchRoot(sc *searchContext, g *game.Game, depth int) (int32, board.Move) {
	sc.nodes++
	key := g.Key()
	_, ttMove, _, _, _ := sc.tt.Get(key, 0)

	alpha, beta := -ScoreInfinite, ScoreInfinite
	bestScore := -ScoreInfinite
	var bestMove board.Move
	for _, mv := range sc.orderMoves(g.LegalMoves(), ttMove, 0) {
		g.Apply(mv)
		score := -e.negamax(sc, g, depth-1, 1, -beta, -alpha)
		g.Undo()

		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
		if score > alpha {
			alpha = score
		}
	}
	sc.tt.Set(key, EntryTypeExact, bestMove.Key(), bestScore, depth, 0)
	return bestScore, bestMove
}

func (e *Engine) negamax(sc *searchContext, g *game.Game, depth, ply int, alpha, beta int32) int32 {
	if depth <= 0 {
		return e.quiescence(sc, g, ply, alpha, beta)
	}
	sc.nodes++

	key := g.Key()
	ttType, ttMove, ttScore, ttDepth, ok := sc.tt.Get(key, ply)
	if ok && ttDepth >= depth {
		switch ttType {
		case EntryTypeExact:
			return ttScore
		case EntryTypeLowerBound:
			alpha = max(alpha, ttScore)
		case EntryTypeUpperBound:
			beta = min(beta, ttScore)
		}
		if alpha >= beta {
			return ttScore
		}
	}
	alphaOrig := alpha

	mvs := g.LegalMoves()
	if len(mvs) == 0 {
		if g.IsInCheck(g.Turn()) {
			return -(ScoreMate - int32(ply))
		}
		return 0
	}

	bestScore := -ScoreInfinite
	var bestMove board.Move
	for _, mv := range sc.orderMoves(mvs, ttMove, ply) {
		g.Apply(mv)
		score := -e.negamax(sc, g, depth-1, ply+1, -beta, -alpha)
		g.Undo()

		if score > bestScore {
			bestScore = score
			bestMove = mv
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !mv.IsTactical() {
				sc.storeKiller(ply, mv)
				sc.storeHistory(mv, depth)
			}
			break
		}
	}

	ttType = EntryTypeExact
	if bestScore <= alphaOrig {
		ttType = EntryTypeUpperBound
	} else if bestScore >= beta {
		ttType = EntryTypeLowerBound
	}
	sc.tt.Set(key, ttType, bestMove.Key(), bestScore, depth, ply)
	return bestScore
}

// quiescence resolves captures and promotions below the horizon. It fails
// hard against the window, except for mate and stalemate which are exact.
func (e *Engine) quiescence(sc *searchContext, g *game.Game, ply int, alpha, beta int32) int32 {
	sc.nodes++

	mvs := g.LegalMoves()
	if len(mvs) == 0 {
		if g.IsInCheck(g.Turn()) {
			return -(ScoreMate - int32(ply))
		}
		return 0
	}

	standPat := Evaluate(g.Board(), g.Turn())
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= MaxPly {
		return alpha
	}

	tactical := mvs[:0]
	for _, mv := range mvs {
		if mv.IsTactical() {
			tactical = append(tactical, mv)
		}
	}
	for _, mv := range sc.orderMoves(tactical, board.MoveKeyNull, ply) {
		g.Apply(mv)
		score := -e.quiescence(sc, g, ply+1, -beta, -alpha)
		g.Undo()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// principalVariation follows the stored best moves from the root, stopping at
// the first position without a legal stored move.
func principalVariation(tt *TranspositionTable, g *game.Game, depth int) []board.Move {
	var pv []board.Move
	for len(pv) < depth {
		_, key, _, _, ok := tt.Get(g.Key(), len(pv))
		if !ok || key == board.MoveKeyNull {
			break
		}
		var next board.Move
		var found bool
		for _, mv := range g.LegalMoves() {
			if mv.Key() == key {
				next, found = mv, true
				break
			}
		}
		if !found {
			break
		}
		g.Apply(next)
		pv = append(pv, next)
	}
	for range pv {
		g.Undo()
	}
	return pv
}

func (e *Engine) logIteration(g *game.Game, res Result) {
	nps := float64(res.Nodes) / (res.Elapsed + 1).Seconds()
	if e.debug {
		e.logger(message.NewPrinter(language.English).
			Sprintf("depth:%d [%s] nodes:%d (%.0fn/s) t:%s\n    %s",
				res.Depth, formatScoreDebug(res.Score), res.Nodes, nps, res.Elapsed, formatPV(res.PV, (board.Move).Algebra)))
		return
	}
	e.logger(fmt.Sprintf("info depth %d score %s time %d nodes %d nps %.0f pv %s",
		res.Depth, formatScoreUCI(res.Score), res.Elapsed.Milliseconds(), res.Nodes, nps, formatPV(res.PV, (board.Move).UCI)))
}

func formatPV(pv []board.Move, notation func(board.Move) string) string {
	builder := strings.Builder{}
	for i, mv := range pv {
		_, _ = builder.WriteString(notation(mv))
		if i < len(pv)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

// mateIn converts a mate score to full moves, negative when getting mated.
func mateIn(s int32) int32 {
	plies := ScoreMate - abs(s)
	if s > 0 {
		return (plies + 1) / 2
	}
	return -(plies / 2)
}

func formatScoreDebug(s int32) string {
	if abs(s) > scoreMateBound {
		n := mateIn(s)
		if n > 0 {
			return fmt.Sprintf("#+%d", n)
		}
		return fmt.Sprintf("#-%d", -n)
	}
	if s > 0 {
		return fmt.Sprintf("+%.2f", float64(s)/100)
	}
	if s < 0 {
		return fmt.Sprintf("%.2f", float64(s)/100)
	}
	return "0"
}

func formatScoreUCI(s int32) string {
	if abs(s) > scoreMateBound {
		return fmt.Sprintf("mate %d", mateIn(s))
	}
	return fmt.Sprintf("cp %d", s)
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	return max(lo, min(x, hi))
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
