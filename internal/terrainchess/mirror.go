package terrainchess

// MirrorBoard copies f's territory, units and terrain, onto the territory of
// its paired faction under 180° rotation. The partner's previous deployment is
// replaced and its inventories become the default allowance minus what now
// stands on the board. The partner is the faction being arranged.
func (g *Game) MirrorBoard(a Actor, f Faction) error {
	if err := g.requireSetup(); err != nil {
		return err
	}
	if err := g.requireActive(f); err != nil {
		return err
	}
	target := Paired(g.pos.Mode, f)
	if err := g.authorize(a, []Faction{target}); err != nil {
		return err
	}
	for sq, pc := range g.pos.Board {
		if pc != 0 && pc.Faction() == target {
			g.pos.Board[sq] = 0
		}
	}
	for _, src := range territoryTable[g.pos.Mode][f] {
		dst := Rotate180(src)
		g.pos.Terrain[dst] = g.pos.Terrain[src]
		g.pos.Board[dst] = 0
		if pc := g.pos.Board[src]; pc != 0 && pc.Faction() == f {
			g.pos.Board[dst] = MakePiece(target, pc.Type())
		}
	}
	g.recountInventory(target)
	g.ready[target] = false
	return nil
}

// recountInventory rebuilds f's inventories from what f has on the board.
func (g *Game) recountInventory(f Faction) {
	army := DefaultArmy()
	placed := g.pos.placedArmy(f)
	for pt := range army {
		army[pt] -= placed[pt]
		if army[pt] < 0 {
			army[pt] = 0
		}
	}
	g.inventory[f] = army

	stock := g.pos.Mode.TerrainAllowance()
	used := g.pos.placedStock(f)
	for t := range stock {
		stock[t] -= used[t]
		if stock[t] < 0 {
			stock[t] = 0
		}
	}
	g.terrainInv[f] = stock
}
