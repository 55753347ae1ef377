package bench

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/game"
)

// Counters tallies a perft run. Everything but Nodes counts the moves made
// on the last ply; Checks counts the leaves where the side to move is in check.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (c *Counters) add(o Counters) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassants += o.EnPassants
	c.Castles += o.Castles
	c.Promotions += o.Promotions
	c.Checks += o.Checks
}

// Perft walks every legal line from fen to depth and reports the totals on
// out. With verbose, each root move's subtree size is reported as well.
func Perft(depth int, fen string, parallel, verbose bool, out chan<- string) (Counters, error) {
	g, err := game.NewGame(
		game.WithFEN(fen),
	)
	if err != nil {
		return Counters{}, err
	}

	var c Counters
	start := time.Now()
	if parallel {
		c, err = runPerftParallel(g, depth, verbose, out)
		if err != nil {
			return Counters{}, err
		}
	} else {
		runPerft(g, depth, true, verbose, out, &c)
	}
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			depth, c.Nodes, int(float64(c.Nodes)/elapsed.Seconds()), c.Captures, c.EnPassants, c.Castles, c.Promotions, c.Checks, elapsed.Seconds())

	return c, nil
}

func runPerft(g *game.Game, d int, root, verbose bool, out chan<- string, c *Counters) uint64 {
	if d == 0 {
		c.Nodes++
		return 1
	}

	var sum uint64
	for _, mv := range g.LegalMoves() {
		var child uint64
		g.Apply(mv)
		if d != 1 {
			child = runPerft(g, d-1, false, verbose, out, c)
		} else {
			child = 1
			c.add(leafCounters(g, mv))
		}
		g.Undo()
		if verbose && root {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

// runPerftParallel splits the root moves across workers, each walking its own
// clone of the game.
func runPerftParallel(g *game.Game, d int, verbose bool, out chan<- string) (Counters, error) {
	var total Counters
	if d == 0 {
		total.Nodes = 1
		return total, nil
	}

	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, mv := range g.LegalMoves() {
		mv := mv
		gg := g.Clone()
		eg.Go(func() error {
			var c Counters
			var child uint64
			gg.Apply(mv)
			if d != 1 {
				child = runPerft(gg, d-1, false, false, out, &c)
			} else {
				child = 1
				c = leafCounters(gg, mv)
			}
			gg.Undo()

			if verbose {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			mu.Lock()
			total.add(c)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Counters{}, err
	}
	return total, nil
}

// leafCounters tallies a single last-ply move already applied to g.
func leafCounters(g *game.Game, mv board.Move) Counters {
	c := Counters{Nodes: 1}
	if mv.IsCapture() {
		c.Captures++
	}
	if mv.IsEnPassant {
		c.EnPassants++
	}
	if mv.IsCastle {
		c.Castles++
	}
	if mv.IsPromote.IsPromotable() {
		c.Promotions++
	}
	if g.IsInCheck(g.Turn()) {
		c.Checks++
	}
	return c
}
