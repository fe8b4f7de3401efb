package terrainchess

import (
	"math/rand"
	"testing"
)

func newTestGame(m Mode) *Game {
	return NewGame(m, rand.New(rand.NewSource(42)))
}

func at(t testing.TB, row, col int) int {
	t.Helper()
	sq, ok := Square(row, col)
	if !ok {
		t.Fatalf("(%d,%d) is off the board", row, col)
	}
	return sq
}

func put(g *Game, row, col int, f Faction, pt PieceType) {
	g.pos.Board[indexOf(row, col)] = MakePiece(f, pt)
}

func lay(g *Game, row, col int, tr Terrain) {
	g.pos.Terrain[indexOf(row, col)] = tr
}

// fight skips deployment and hands the move to turn.
func fight(g *Game, turn Faction) {
	g.phase = PhaseCombat
	g.turn = turn
}

func targets(moves []Move) map[int]bool {
	out := make(map[int]bool, len(moves))
	for _, mv := range moves {
		out[mv.To] = true
	}
	return out
}

func arrangeAll(t *testing.T, g *Game) {
	t.Helper()
	all := Actor{ArrangeAll: true}
	if err := g.RandomizeTerrain(all, g.Active(), 0); err != nil {
		t.Fatalf("randomize terrain: %v", err)
	}
	if err := g.RandomizeUnits(all, g.Active()); err != nil {
		t.Fatalf("randomize units: %v", err)
	}
}

func readyAll(t *testing.T, g *Game) {
	t.Helper()
	for _, f := range g.Active() {
		if err := g.Ready(f); err != nil {
			t.Fatalf("ready %s: %v", f, err)
		}
	}
}
