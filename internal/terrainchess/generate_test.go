package terrainchess

import "testing"

func TestCanPlaceUnit(t *testing.T) {
	tests := []struct {
		pt   PieceType
		tr   Terrain
		want bool
	}{
		{PieceRook, Forest, false},
		{PieceKnight, Forest, false},
		{PieceBishop, Forest, true},
		{PieceBishop, Swamp, false},
		{PieceKnight, Swamp, false},
		{PieceRook, Swamp, true},
		{PieceRook, Mountain, false},
		{PieceBishop, Mountain, false},
		{PieceKnight, Mountain, true},
		{PieceQueen, Mountain, true},
		{PieceKing, Forest, true},
		{PiecePawn, Swamp, true},
		{PieceRook, Desert, true},
		{PieceQueen, Desert, false},
		{PieceKing, Desert, false},
		{PiecePawn, Desert, false},
		{PieceNone, Desert, true},
	}
	for _, tt := range tests {
		if got := CanPlaceUnit(tt.pt, tt.tr); got != tt.want {
			t.Errorf("CanPlaceUnit(%s, %s) = %v, want %v", tt.pt, tt.tr, got, tt.want)
		}
	}
}

// Any cell a piece could be placed on it can also move onto, and the only
// terrain it may enter without being placeable there is desert.
func TestMovesRespectPlacementRules(t *testing.T) {
	for pt := PiecePawn; pt <= PieceKing; pt++ {
		for tr := Flat; tr < numTerrains; tr++ {
			g := newTestGame(ModeDuelNS)
			for sq := range g.pos.Terrain {
				g.pos.Terrain[sq] = tr
			}
			put(g, 6, 5, White, pt)
			moves := g.pos.GenerateMoves(at(t, 6, 5), 0)
			for _, mv := range moves {
				dst := g.pos.Terrain[mv.To]
				if !CanPlaceUnit(pt, dst) && dst != Desert {
					t.Fatalf("%s moved onto %s", pt, dst)
				}
			}
			if terrainBlocks(pt, tr) && len(moves) != 0 {
				t.Fatalf("%s has %d moves on a board of %s", pt, len(moves), tr)
			}
			if !terrainBlocks(pt, tr) && len(moves) == 0 {
				t.Fatalf("%s has no moves on a board of %s", pt, tr)
			}
		}
	}
}

func TestRookRay(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	put(g, 8, 3, White, PieceRook)
	lay(g, 8, 5, Forest)
	lay(g, 5, 3, Desert)
	put(g, 8, 1, White, PiecePawn)
	put(g, 10, 3, Black, PiecePawn)

	got := targets(g.pos.GenerateMoves(at(t, 8, 3), 0))
	want := []int{
		at(t, 8, 4),
		at(t, 7, 3), at(t, 6, 3), at(t, 5, 3),
		at(t, 8, 2),
		at(t, 9, 3), at(t, 10, 3),
	}
	if len(got) != len(want) {
		t.Fatalf("rook has %d targets, want %d", len(got), len(want))
	}
	for _, sq := range want {
		if !got[sq] {
			r, c := Coords(sq)
			t.Errorf("missing target (%d,%d)", r, c)
		}
	}
}

func TestKnightJumpsOverEverything(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	put(g, 8, 8, White, PieceKnight)
	for _, d := range kingDirs {
		lay(g, 8+d[0], 8+d[1], Mountain)
	}
	put(g, 7, 8, White, PiecePawn)
	lay(g, 6, 7, Forest)
	put(g, 10, 9, Black, PiecePawn)
	put(g, 10, 7, White, PiecePawn)

	got := targets(g.pos.GenerateMoves(at(t, 8, 8), 0))
	if len(got) != 6 {
		t.Fatalf("knight has %d targets, want 6", len(got))
	}
	if got[at(t, 6, 7)] || got[at(t, 10, 7)] {
		t.Fatal("knight landed on forest or an ally")
	}
	if !got[at(t, 10, 9)] {
		t.Fatal("knight cannot capture")
	}
}

func TestQueenKnightCompound(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	put(g, 5, 5, White, PieceQueen)
	for _, d := range kingDirs {
		put(g, 5+d[0], 5+d[1], White, PiecePawn)
	}
	moves := g.pos.GenerateMoves(at(t, 5, 5), 0)
	if len(moves) != len(knightJumps) {
		t.Fatalf("boxed queen has %d moves, want %d", len(moves), len(knightJumps))
	}
}

func TestPawnMoves(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	put(g, 8, 4, White, PiecePawn)
	got := targets(g.pos.GenerateMoves(at(t, 8, 4), 0))
	if len(got) != 2 || !got[at(t, 7, 4)] || !got[at(t, 10, 4)] {
		t.Fatalf("lone pawn targets = %v", got)
	}

	put(g, 7, 4, Black, PiecePawn)
	put(g, 7, 5, Black, PiecePawn)
	put(g, 7, 3, White, PiecePawn)
	got = targets(g.pos.GenerateMoves(at(t, 8, 4), 0))
	if got[at(t, 7, 4)] {
		t.Fatal("pawn captured straight ahead")
	}
	if !got[at(t, 7, 5)] || got[at(t, 7, 3)] {
		t.Fatalf("pawn captures = %v", got)
	}
	if !got[at(t, 10, 4)] {
		t.Fatal("backflip lost when the front is blocked")
	}
}

func TestQuadrantPawnHeadsToCentre(t *testing.T) {
	g := newTestGame(ModeQuadrant)
	put(g, 9, 2, White, PiecePawn)
	put(g, 8, 2, Black, PiecePawn)
	put(g, 9, 3, Red, PiecePawn)
	got := targets(g.pos.GenerateMoves(at(t, 9, 2), 0))
	for _, sq := range []int{at(t, 8, 3), at(t, 8, 2), at(t, 9, 3), at(t, 11, 0)} {
		if !got[sq] {
			r, c := Coords(sq)
			t.Errorf("missing target (%d,%d)", r, c)
		}
	}
	if len(got) != 4 {
		t.Fatalf("pawn has %d targets, want 4", len(got))
	}
}

func TestDuelEWPawnMovesEast(t *testing.T) {
	g := newTestGame(ModeDuelEW)
	put(g, 5, 4, Red, PiecePawn)
	got := targets(g.pos.GenerateMoves(at(t, 5, 4), 0))
	if len(got) != 2 || !got[at(t, 5, 5)] || !got[at(t, 5, 2)] {
		t.Fatalf("lone red pawn targets = %v", got)
	}

	put(g, 5, 5, Blue, PiecePawn)
	put(g, 4, 5, Blue, PiecePawn)
	got = targets(g.pos.GenerateMoves(at(t, 5, 4), 0))
	if got[at(t, 5, 5)] || !got[at(t, 4, 5)] || !got[at(t, 5, 2)] {
		t.Fatalf("blocked red pawn targets = %v", got)
	}

	put(g, 6, 7, Blue, PiecePawn)
	got = targets(g.pos.GenerateMoves(at(t, 6, 7), 0))
	if !got[at(t, 6, 6)] || !got[at(t, 6, 9)] || got[at(t, 6, 8)] {
		t.Fatalf("blue pawn targets = %v", got)
	}
}

func TestAllianceAlliesAreNotEnemies(t *testing.T) {
	tests := []struct {
		mode       Mode
		wantTarget bool
		wantCheck  bool
	}{
		{ModeAlliance, false, false},
		{ModeQuadrant, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			g := newTestGame(tt.mode)
			put(g, 9, 3, White, PieceRook)
			put(g, 9, 8, Blue, PieceKing)
			put(g, 9, 0, Black, PiecePawn)

			got := targets(g.pos.GenerateMoves(at(t, 9, 3), 0))
			if got[at(t, 9, 8)] != tt.wantTarget {
				t.Errorf("rook targets blue king = %v, want %v", got[at(t, 9, 8)], tt.wantTarget)
			}
			if got[at(t, 9, 9)] {
				t.Error("rook slid through the blue king")
			}
			if !got[at(t, 9, 7)] || !got[at(t, 9, 0)] {
				t.Errorf("rook targets = %v", got)
			}
			if g.pos.InCheck(Blue) != tt.wantCheck {
				t.Errorf("InCheck(blue) = %v, want %v", g.pos.InCheck(Blue), tt.wantCheck)
			}
		})
	}
}

func TestJoust(t *testing.T) {
	north := func(t *testing.T) int { return at(t, 8, 5) }

	t.Run("open", func(t *testing.T) {
		g := newTestGame(ModeDuelNS)
		put(g, 10, 5, White, PieceKing)
		got := targets(g.pos.GenerateMoves(at(t, 10, 5), 0))
		if !got[north(t)] || !got[at(t, 10, 7)] || !got[at(t, 10, 3)] {
			t.Fatalf("jousts missing: %v", got)
		}
	})
	t.Run("over an ally", func(t *testing.T) {
		g := newTestGame(ModeDuelNS)
		put(g, 10, 5, White, PieceKing)
		put(g, 9, 5, White, PiecePawn)
		if !targets(g.pos.GenerateMoves(at(t, 10, 5), 0))[north(t)] {
			t.Fatal("joust over an ally refused")
		}
	})
	t.Run("over an enemy", func(t *testing.T) {
		g := newTestGame(ModeDuelNS)
		put(g, 10, 5, White, PieceKing)
		put(g, 9, 5, Black, PiecePawn)
		if targets(g.pos.GenerateMoves(at(t, 10, 5), 0))[north(t)] {
			t.Fatal("joust over an enemy allowed")
		}
	})
	t.Run("attacked midpoint", func(t *testing.T) {
		g := newTestGame(ModeDuelNS)
		put(g, 10, 5, White, PieceKing)
		put(g, 9, 0, Black, PieceRook)
		got := targets(g.pos.GenerateMoves(at(t, 10, 5), 0))
		if got[north(t)] {
			t.Fatal("joust through an attacked cell allowed")
		}
		if !got[at(t, 10, 7)] {
			t.Fatal("unrelated joust lost")
		}
	})
	t.Run("depth bound", func(t *testing.T) {
		g := newTestGame(ModeDuelNS)
		put(g, 10, 5, White, PieceKing)
		for _, mv := range g.pos.GenerateMoves(at(t, 10, 5), 1) {
			r, c := Coords(mv.To)
			if abs(r-10) > 1 || abs(c-5) > 1 {
				t.Fatalf("joust to (%d,%d) generated at depth 1", r, c)
			}
		}
	})
}

// Kings whose jousts land on the same cell must still resolve.
func TestFacingKingsTerminate(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	put(g, 8, 5, White, PieceKing)
	put(g, 4, 5, Black, PieceKing)
	put(g, 7, 4, White, PieceQueen)
	put(g, 5, 6, Black, PieceQueen)
	if !g.pos.IsAttacked(at(t, 6, 5), White, 0) {
		t.Fatal("black queen should reach (6,5)")
	}
	if n := len(g.pos.AllLegalMoves(White)); n == 0 {
		t.Fatal("white has no moves")
	}
	if n := len(g.pos.AllLegalMoves(Black)); n == 0 {
		t.Fatal("black has no moves")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
