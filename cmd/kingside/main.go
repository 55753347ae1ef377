package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/daystram/kingside/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")
	fen     = flag.String("fen", board.DefaultStartingPositionFEN, "starting position")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftRun      = flag.Bool("perft", false, "run perft mode")
	perftDepth    = flag.Int("perft.depth", 4, "perft depth in perft mode")
	perftParallel = flag.Bool("perft.parallel", true, "split root moves across workers in perft mode")

	stepRun = flag.Bool("step", false, "run step mode")

	searchRun   = flag.Bool("search", false, "run search mode")
	searchDepth = flag.Int("search.depth", 4, "search max depth in search mode")
	searchSteps = flag.Int("search.steps", 50, "full moves to play in search mode")
	searchDebug = flag.Bool("search.debug", false, "log human readable search info in search mode")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain()
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain() error {
	switch {
	case *movegenRun:
		return movegen(*fen, *movegenDraw)
	case *perftRun:
		return perft(*perftDepth, *fen, *perftParallel)
	case *stepRun:
		return step(*fen)
	case *searchRun:
		return search(*fen, *searchSteps, *searchDepth, *searchDebug)
	}
	flag.Usage()
	return nil
}
