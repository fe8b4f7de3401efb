package terrainchess

import (
	"errors"
	"testing"
)

func TestPlacePieceRules(t *testing.T) {
	g := newTestGame(ModeDuelNS)

	if err := g.PlacePiece(White, 0, 0, PieceRook); !errors.Is(err, ErrOutsideTerritory) {
		t.Fatalf("outside territory: %v", err)
	}
	if err := g.PlacePiece(Red, 0, 0, PieceRook); !errors.Is(err, ErrUnknownFaction) {
		t.Fatalf("foreign faction: %v", err)
	}
	if err := g.PlaceTerrain(White, 8, 0, Forest); err != nil {
		t.Fatal(err)
	}
	if err := g.PlacePiece(White, 8, 0, PieceRook); !errors.Is(err, ErrIncompatible) {
		t.Fatalf("rook on forest: %v", err)
	}
	if err := g.PlacePiece(White, 9, 0, PieceRook); err != nil {
		t.Fatal(err)
	}
	if err := g.PlacePiece(White, 9, 0, PieceQueen); !errors.Is(err, ErrOccupied) {
		t.Fatalf("occupied cell: %v", err)
	}
	if err := g.PlaceTerrain(White, 9, 0, Mountain); !errors.Is(err, ErrIncompatible) {
		t.Fatalf("mountain under a rook: %v", err)
	}
	if err := g.PlacePiece(White, 9, 1, PieceRook); err != nil {
		t.Fatal(err)
	}
	if err := g.PlacePiece(White, 9, 2, PieceRook); !errors.Is(err, ErrInventoryEmpty) {
		t.Fatalf("third rook: %v", err)
	}
	if got := g.Inventory(White)[PieceRook]; got != 0 {
		t.Fatalf("rooks in stock = %d", got)
	}
	if err := g.PlacePiece(White, 9, 1, PieceNone); err != nil {
		t.Fatal(err)
	}
	if got := g.Inventory(White)[PieceRook]; got != 1 {
		t.Fatalf("rooks in stock after lifting = %d", got)
	}
	if err := g.PlacePiece(White, 9, 5, PieceNone); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("lifting an empty cell: %v", err)
	}
}

func TestInventoryMatchesBoard(t *testing.T) {
	g := newTestGame(ModeQuadrant)
	arrangeAll(t, g)
	for _, f := range g.Active() {
		placed := g.pos.placedArmy(f)
		inv := g.Inventory(f)
		for pt, n := range DefaultArmy() {
			if placed[pt]+inv[pt] != n {
				t.Fatalf("%s %s: placed %d + stock %d != %d", f, PieceType(pt), placed[pt], inv[pt], n)
			}
		}
		tiles := g.pos.placedStock(f)
		stock := g.TerrainInventory(f)
		for tr, n := range ModeQuadrant.TerrainAllowance() {
			if tiles[tr]+stock[tr] != n {
				t.Fatalf("%s %s: laid %d + stock %d != %d", f, Terrain(tr), tiles[tr], stock[tr], n)
			}
		}
	}
}

func TestTerrainQuota(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	cells := Territory(White, ModeDuelNS)
	for i := 0; i < 16; i++ {
		r, c := Coords(cells[i])
		if err := g.PlaceTerrain(White, r, c, PlaceableTerrains[i/4]); err != nil {
			t.Fatalf("tile %d: %v", i, err)
		}
	}
	before := g.TerrainInventory(White)
	r, c := Coords(cells[16])
	if err := g.PlaceTerrain(White, r, c, Forest); !errors.Is(err, ErrTerrainQuota) {
		t.Fatalf("17th tile: %v", err)
	}
	if g.TerrainInventory(White) != before || g.TerrainAt(cells[16]) != Flat {
		t.Fatal("rejected tile changed the match")
	}

	// Swapping a tile in place is not a new tile.
	r0, c0 := Coords(cells[0])
	if err := g.PlaceTerrain(White, r0, c0, Flat); err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceTerrain(White, r0, c0, Forest); err != nil {
		t.Fatal(err)
	}
	if err := g.PlaceTerrain(White, r0, c0, Forest); err != nil {
		t.Fatalf("same tile again: %v", err)
	}
}

func TestSetupEditsClearReady(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	if err := g.Ready(White); err != nil {
		t.Fatal(err)
	}
	if !g.IsReady(White) {
		t.Fatal("white not ready")
	}
	if err := g.PlacePiece(White, 11, 0, PieceKing); err != nil {
		t.Fatal(err)
	}
	if g.IsReady(White) {
		t.Fatal("placement kept white ready")
	}
}

func TestNewGameWithFactions(t *testing.T) {
	g, err := NewGameWithFactions(ModeQuadrant, []Faction{Blue, White, Black}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Active(); len(got) != 3 || got[0] != White || got[2] != Blue {
		t.Fatalf("active = %v", got)
	}
	if g.Inventory(Red).Total() != 0 {
		t.Fatal("absent faction has an inventory")
	}
	if _, err := NewGameWithFactions(ModeDuelNS, []Faction{White, Red}, nil); err == nil {
		t.Fatal("red accepted in duel-ns")
	}
	if _, err := NewGameWithFactions(ModeQuadrant, []Faction{White}, nil); err == nil {
		t.Fatal("single faction accepted")
	}
}

func TestSetMode(t *testing.T) {
	g := newTestGame(ModeDuelNS)
	if err := g.PlacePiece(White, 11, 0, PieceKing); err != nil {
		t.Fatal(err)
	}
	if err := g.SetMode(Actor{Faction: White}, ModeQuadrant); !errors.Is(err, ErrForbidden) {
		t.Fatalf("set mode without arrange-all: %v", err)
	}
	if err := g.SetMode(Actor{ArrangeAll: true}, ModeQuadrant); err != nil {
		t.Fatal(err)
	}
	if g.Mode() != ModeQuadrant || len(g.Active()) != 4 {
		t.Fatalf("mode %s active %v", g.Mode(), g.Active())
	}
	if g.PieceAt(at(t, 11, 0)) != 0 {
		t.Fatal("old deployment survived the reset")
	}
	if g.TerrainInventory(Red) != ModeQuadrant.TerrainAllowance() {
		t.Fatal("terrain stock not reset")
	}
}
