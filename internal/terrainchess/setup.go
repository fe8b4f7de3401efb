package terrainchess

import "fmt"

func (g *Game) setupCell(f Faction, row, col int) (int, error) {
	if err := g.requireSetup(); err != nil {
		return -1, err
	}
	if err := g.requireActive(f); err != nil {
		return -1, err
	}
	sq, ok := Square(row, col)
	if !ok || !InTerritory(f, g.pos.Mode, sq) {
		return -1, fmt.Errorf("%w: %s at (%d,%d)", ErrOutsideTerritory, f, row, col)
	}
	return sq, nil
}

// PlacePiece puts a unit of type pt from f's inventory on (row, col).
// PieceNone takes f's unit on that cell back into the inventory.
func (g *Game) PlacePiece(f Faction, row, col int, pt PieceType) error {
	sq, err := g.setupCell(f, row, col)
	if err != nil {
		return err
	}
	cur := g.pos.Board[sq]
	if pt == PieceNone {
		if cur == 0 || cur.Faction() != f {
			return fmt.Errorf("%w: no %s unit at (%d,%d)", ErrIllegalMove, f, row, col)
		}
		g.pos.Board[sq] = 0
		g.inventory[f][cur.Type()]++
		g.ready[f] = false
		return nil
	}
	if pt < PiecePawn || pt > PieceKing {
		return fmt.Errorf("%w: unknown piece %d", ErrIllegalMove, pt)
	}
	if cur != 0 {
		return fmt.Errorf("%w: (%d,%d) holds %s", ErrOccupied, row, col, cur)
	}
	if g.inventory[f][pt] == 0 {
		return fmt.Errorf("%w: no %s left", ErrInventoryEmpty, pt)
	}
	if !CanPlaceUnit(pt, g.pos.Terrain[sq]) {
		return fmt.Errorf("%w: %s on %s", ErrIncompatible, pt, g.pos.Terrain[sq])
	}
	g.pos.Board[sq] = MakePiece(f, pt)
	g.inventory[f][pt]--
	g.ready[f] = false
	return nil
}

// PlaceTerrain lays a tile of type t from f's terrain inventory on (row, col).
// Flat lifts the tile on that cell back into the inventory.
func (g *Game) PlaceTerrain(f Faction, row, col int, t Terrain) error {
	sq, err := g.setupCell(f, row, col)
	if err != nil {
		return err
	}
	if t < Flat || t >= numTerrains {
		return fmt.Errorf("%w: unknown terrain %d", ErrIllegalMove, t)
	}
	cur := g.pos.Terrain[sq]
	if t == cur {
		return nil
	}
	if pc := g.pos.Board[sq]; pc != 0 && !CanPlaceUnit(pc.Type(), t) {
		return fmt.Errorf("%w: %s on %s", ErrIncompatible, pc.Type(), t)
	}
	if t != Flat {
		if g.pos.placedTerrain(f, sq) >= g.pos.Mode.TerrainQuota() {
			return fmt.Errorf("%w: %d tiles", ErrTerrainQuota, g.pos.Mode.TerrainQuota())
		}
		if g.terrainInv[f][t] == 0 {
			return fmt.Errorf("%w: no %s left", ErrInventoryEmpty, t)
		}
		g.terrainInv[f][t]--
	}
	if cur != Flat {
		g.terrainInv[f][cur]++
	}
	g.pos.Terrain[sq] = t
	g.ready[f] = false
	return nil
}

// Ready marks f as done deploying. Once every active faction is ready the
// match enters combat with the first faction in turn order to move.
func (g *Game) Ready(f Faction) error {
	if err := g.requireSetup(); err != nil {
		return err
	}
	if err := g.requireActive(f); err != nil {
		return err
	}
	g.ready[f] = true
	for _, a := range g.pos.Active {
		if !g.ready[a] {
			return nil
		}
	}
	g.startCombat()
	return nil
}
