package main

import (
	"log"

	"github.com/daystram/kingside/bench"
)

func perft(depth int, fen string, parallel bool) error {
	name := "dfs"
	if parallel {
		name = "parallel dfs"
	}
	log.Printf("============ perft(%d): %s\n", depth, name)

	out := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range out {
			log.Println(line)
		}
	}()

	_, err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	<-done
	return err
}
