package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/kingside/game"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	g, err := game.NewGame(game.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", g.Turn())
	fmt.Println(g.Board().Dump())
	fmt.Println(g.Board().Draw())
	fmt.Println(g.State())
	dumpMoves(g)

	if draw {
		for _, mv := range g.LegalMoves() {
			g.Apply(mv)
			fmt.Println(mv)
			fmt.Println(g.Board().Draw())
			fmt.Println(g.FEN())
			g.Undo()
		}
	}
	return nil
}

func dumpMoves(g *game.Game) {
	mvs := g.LegalMoves()
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] [%s] %s %s %s => %s (cap=%v) (enp=%v) (cas=%v) (pro=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), mv.IsTurn, mv.Piece.Name(), mv.From.Notation(), mv.To.Notation(), mv.IsCapture(), mv.IsEnPassant, mv.IsCastle, mv.IsPromote.Name())
	}
}
