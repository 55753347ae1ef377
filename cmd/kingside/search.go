package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/daystram/kingside/board"
	"github.com/daystram/kingside/engine"
	"github.com/daystram/kingside/game"
)

// search pits the engine, playing the side to move, against a random mover.
func search(fen string, steps, depth int, debug bool) error {
	r := rand.New(rand.NewSource(time.Now().Unix()))
	g, err := game.NewGame(game.WithFEN(fen))
	if err != nil {
		return err
	}
	e := engine.NewEngine(&engine.EngineConfig{
		Debug: debug,
	})
	fmt.Println(g.Board().Draw())
	fmt.Println(g.FEN())
	fmt.Println(g.DebugString())

	playingSide := g.Turn()
	getMove := func(g *game.Game) (board.Move, error) {
		if g.Turn() != playingSide {
			mvs := g.LegalMoves()
			return mvs[r.Intn(len(mvs))], nil
		}
		res, err := e.Search(g, depth)
		if err != nil {
			return board.Move{}, err
		}
		return res.Move, nil
	}

	var history []board.Move
	for step := 0; step < 2*steps && g.State().IsRunning(); step++ {
		mv, err := getMove(g)
		if err != nil {
			return err
		}
		g.Apply(mv)
		history = append(history, mv)

		fmt.Printf("\n>>> %s: %s\n", mv.IsTurn, mv)
		fmt.Println(g.FEN())
		fmt.Println(g.Board().Draw())
	}
	log.Println("=============== game ended:", g.State())
	fmt.Println(g.FEN())
	dumpHistory(history)

	return nil
}

func dumpHistory(mvs []board.Move) {
	for i, mv := range mvs {
		if mv.IsTurn == board.SideWhite || i == 0 {
			fmt.Printf("%d.", i/2+1)
		}
		fmt.Printf("%s ", mv)
	}
	fmt.Println()
}
