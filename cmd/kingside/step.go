package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/kingside/game"
)

// step plays random legal moves from fen, timing the core operations.
func step(fen string) error {
	log.Println("============ step")
	var (
		timesLegalMoves []time.Duration
		timesApply      []time.Duration
		timesState      []time.Duration
	)
	g, err := game.NewGame(game.WithFEN(fen))
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(1))
stepLoop:
	for step := 0; step < 5000; step++ {
		t1 := time.Now()
		mvs := g.LegalMoves()
		t2 := time.Now()
		timesLegalMoves = append(timesLegalMoves, t2.Sub(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", g.State())
		}
		mv := mvs[r.Intn(len(mvs))]

		t1 = time.Now()
		g.Apply(mv)
		t2 = time.Now()
		timesApply = append(timesApply, t2.Sub(t1))

		t1 = time.Now()
		st := g.State()
		t2 = time.Now()
		timesState = append(timesState, t2.Sub(t1))

		fmt.Printf("\n===== [#%d] %s: %s\n", step/2+1, mv.IsTurn, mv)
		fmt.Println(g.Board().Draw())
		fmt.Println(g.FEN())
		fmt.Println(g.DebugString())
		switch {
		case !st.IsRunning():
			break stepLoop
		case st.IsCheck():
			<-time.After(100 * time.Millisecond)
			fallthrough
		default:
			<-time.After(10 * time.Millisecond)
		}
	}

	avg := func(ds []time.Duration) time.Duration {
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(g.State())
	fmt.Println("legal:", avg(timesLegalMoves))
	fmt.Println("apply:", avg(timesApply))
	fmt.Println("state:", avg(timesState))
	return nil
}
