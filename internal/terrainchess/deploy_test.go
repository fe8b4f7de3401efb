package terrainchess

import (
	"errors"
	"math/rand"
	"testing"
)

var all = Actor{ArrangeAll: true}

func TestFormationsAreComplete(t *testing.T) {
	for _, fm := range Formations {
		for _, width := range []int{Cols, Cols / 2} {
			var counts Army
			seen := make(map[[2]int]bool)
			for _, s := range fm.Slots(width) {
				if s.Row < 0 || s.Row >= Rows/2 || s.Col < 0 || s.Col >= width {
					t.Fatalf("%s/%d: slot %+v outside the territory", fm.Name, width, s)
				}
				if seen[[2]int{s.Row, s.Col}] {
					t.Fatalf("%s/%d: slot (%d,%d) used twice", fm.Name, width, s.Row, s.Col)
				}
				seen[[2]int{s.Row, s.Col}] = true
				counts[s.Piece]++
			}
			if counts != DefaultArmy() {
				t.Fatalf("%s/%d: army %v", fm.Name, width, counts)
			}
		}
		if got, ok := FormationByName(fm.Name); !ok || got.Name != fm.Name {
			t.Fatalf("lookup of %s failed", fm.Name)
		}
	}
}

func TestRandomizeTerrain(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	if err := g.RandomizeTerrain(all, g.Active(), 0); err != nil {
		t.Fatal(err)
	}
	for _, f := range g.Active() {
		if n := g.pos.placedTerrain(f, -1); n != 16 {
			t.Fatalf("%s has %d tiles", f, n)
		}
		if g.TerrainInventory(f).Total() != 0 {
			t.Fatalf("%s still has tiles in stock", f)
		}
	}
	if err := g.RandomizeTerrain(all, []Faction{White}, 5); err != nil {
		t.Fatal(err)
	}
	if n := g.pos.placedTerrain(White, -1); n != 5 {
		t.Fatalf("override left %d tiles", n)
	}
	if g.TerrainInventory(White).Total() != 11 {
		t.Fatalf("stock = %v", g.TerrainInventory(White))
	}
}

func TestRandomDeploymentIsLegal(t *testing.T) {
	for m := Mode(0); m < numModes; m++ {
		for seed := int64(1); seed <= 6; seed++ {
			g := NewGame(m, rand.New(rand.NewSource(seed)))
			arrangeAll(t, g)
			for sq, pc := range g.pos.Board {
				if pc == 0 {
					continue
				}
				if !InTerritory(pc.Faction(), m, sq) {
					t.Fatalf("%s seed %d: %s outside its territory", m, seed, pc)
				}
				if !CanPlaceUnit(pc.Type(), g.pos.Terrain[sq]) {
					t.Fatalf("%s seed %d: %s on %s", m, seed, pc, g.pos.Terrain[sq])
				}
			}
			for _, f := range g.Active() {
				if !g.pos.KingExists(f) {
					t.Fatalf("%s seed %d: %s has no king", m, seed, f)
				}
				if n := g.pos.placedTerrain(f, -1); n > m.TerrainQuota() {
					t.Fatalf("%s seed %d: %s has %d tiles", m, seed, f, n)
				}
			}
		}
	}
}

func TestRandomizationIsReproducible(t *testing.T) {
	a := NewGame(ModeQuadrant, rand.New(rand.NewSource(99)))
	b := NewGame(ModeQuadrant, rand.New(rand.NewSource(99)))
	arrangeAll(t, a)
	arrangeAll(t, b)
	if EncodeLayout(a.Layout("")) != EncodeLayout(b.Layout("")) {
		t.Fatal("same seed produced different deployments")
	}
}

func TestArrangeOnlyOwnTerritory(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	white := Actor{Faction: White}
	if err := g.RandomizeUnits(white, []Faction{Black}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("white arranging black: %v", err)
	}
	if g.pos.placedArmy(Black).Total() != 0 {
		t.Fatal("forbidden arrangement touched the board")
	}
	if err := g.RandomizeUnits(white, []Faction{White}); err != nil {
		t.Fatal(err)
	}
	if err := g.RandomizeUnits(Actor{Faction: Red}, []Faction{Red}); !errors.Is(err, ErrUnknownFaction) {
		t.Fatalf("red in duel-ns: %v", err)
	}
}

func TestClassicalFormation(t *testing.T) {
	tests := []struct {
		mode     Mode
		kingSlot [2]int
	}{
		{ModeDuelNS, [2]int{0, 6}},
		{ModeDuelEW, [2]int{0, 6}},
		{ModeQuadrant, [2]int{0, 0}},
	}
	for _, tt := range tests {
		g := newTestGame(tt.mode)
		if err := g.SetClassicalFormation(all, g.Active()); err != nil {
			t.Fatal(err)
		}
		for _, f := range g.Active() {
			sq, _ := LocalToSquare(f, tt.mode, tt.kingSlot[0], tt.kingSlot[1])
			if g.PieceAt(sq) != MakePiece(f, PieceKing) {
				t.Fatalf("%s/%s: no king on its slot", tt.mode, f)
			}
			if g.Inventory(f).Total() != 0 {
				t.Fatalf("%s/%s: %d units left in stock", tt.mode, f, g.Inventory(f).Total())
			}
			if n := g.pos.placedTerrain(f, -1); n != tt.mode.TerrainQuota() {
				t.Fatalf("%s/%s: %d tiles", tt.mode, f, n)
			}
		}
	}
}

func TestMirrorBoard(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	if err := g.SetClassicalFormation(all, []Faction{White}); err != nil {
		t.Fatal(err)
	}
	if err := g.MirrorBoard(Actor{Faction: White}, White); !errors.Is(err, ErrForbidden) {
		t.Fatalf("white overwriting black: %v", err)
	}
	if err := g.MirrorBoard(Actor{Faction: Black}, White); err != nil {
		t.Fatal(err)
	}
	for _, sq := range Territory(White, ModeDuelNS) {
		dst := Rotate180(sq)
		if g.TerrainAt(dst) != g.TerrainAt(sq) {
			t.Fatalf("terrain differs at %d", dst)
		}
		if pc := g.PieceAt(sq); pc != 0 && g.PieceAt(dst) != MakePiece(Black, pc.Type()) {
			t.Fatalf("%s at %d mirrored as %s", pc, sq, g.PieceAt(dst))
		}
	}
	if g.Inventory(Black).Total() != 0 || g.TerrainInventory(Black).Total() != 0 {
		t.Fatal("black inventories not recounted")
	}

	before := EncodeLayout(g.Layout(""))
	if err := g.MirrorBoard(all, Black); err != nil {
		t.Fatal(err)
	}
	if EncodeLayout(g.Layout("")) != before {
		t.Fatal("mirroring back changed the board")
	}
}

func TestChiGardenOverlay(t *testing.T) {
	src := newTestGame(ModeDuelNS)
	if err := src.SetClassicalFormation(all, src.Active()); err != nil {
		t.Fatal(err)
	}
	seed := EncodeLayout(src.Layout("garden"))

	g := newTestGame(ModeDuelEW)
	g.SetSeedSource(SeedList{seed})
	if err := g.ApplyChiGarden(all, []Faction{Red}); err != nil {
		t.Fatal(err)
	}
	if g.Inventory(Red).Total() != 0 {
		t.Fatalf("red stock = %v", g.Inventory(Red))
	}
	if g.pos.placedArmy(Blue).Total() != 0 {
		t.Fatal("overlay touched blue")
	}
	for sq, pc := range g.pos.Board {
		if pc != 0 && !InTerritory(pc.Faction(), ModeDuelEW, sq) {
			t.Fatalf("%s outside its territory", pc)
		}
	}
}

func TestChiGardenTerrainOnly(t *testing.T) {
	g := newTestGame(ModeDuelEW)
	if err := g.SetFormation(all, []Faction{Red}, Classical); err != nil {
		t.Fatal(err)
	}
	seed := Layout{Mode: ModeDuelEW}
	for sq, pc := range g.pos.Board {
		if pt := pc.Type(); pt == PieceRook || pt == PieceBishop {
			seed.Terrain = append(seed.Terrain, TerrainTile{Square: sq, Terrain: Mountain})
		}
	}
	g.SetSeedSource(SeedList{EncodeLayout(seed)})
	if err := g.ApplyChiGarden(Actor{Faction: Red}, []Faction{Red}); err != nil {
		t.Fatal(err)
	}
	inv := g.Inventory(Red)
	if inv[PieceRook] != 2 || inv[PieceBishop] != 2 || inv.Total() != 4 {
		t.Fatalf("stock after overlay = %v", inv)
	}
	if n := g.pos.placedTerrain(Red, -1); n != 4 {
		t.Fatalf("%d tiles after overlay", n)
	}
}

func TestChiGardenWithoutSeeds(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	if err := g.ApplyChiGarden(all, g.Active()); !errors.Is(err, ErrNoSeed) {
		t.Fatalf("no source: %v", err)
	}
	quad := EncodeLayout(Layout{Mode: ModeQuadrant})
	g.SetSeedSource(SeedList{quad, "garbage"})
	if err := g.ApplyChiGarden(all, g.Active()); !errors.Is(err, ErrNoSeed) {
		t.Fatalf("no matching seed: %v", err)
	}
}
