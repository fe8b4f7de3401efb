package main

import (
	"flag"
	"fmt"
	"os"

	"terrainchess/internal/terrainchess"
)

func main() {
	modeName := flag.String("mode", "duel-ns", "duel-ns, duel-ew, quadrant or alliance")
	flag.Parse()

	mode, ok := terrainchess.ParseMode(*modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeName)
		os.Exit(2)
	}

	g := terrainchess.NewGame(mode, nil)
	all := terrainchess.Actor{ArrangeAll: true}
	if err := g.SetClassicalFormation(all, g.Active()); err != nil {
		fmt.Fprintln(os.Stderr, "formation:", err)
		os.Exit(1)
	}
	l := g.Layout("classical")
	fmt.Println("Layout:", terrainchess.EncodeLayout(l))
	fmt.Printf("Fingerprint: %016x\n", l.Fingerprint())

	for _, f := range g.Active() {
		if err := g.Ready(f); err != nil {
			fmt.Fprintln(os.Stderr, "ready:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Legal moves for %s: %d\n", g.Turn(), len(g.AllLegalMoves()))
}
