package terrainchess

// terrainBlocks reports whether pt can neither stand on nor pass through t.
// Desert never blocks: it is handled by the walker and by CanPlaceUnit.
func terrainBlocks(pt PieceType, t Terrain) bool {
	switch t {
	case Flat, Desert:
		return false
	case Forest:
		return pt == PieceRook || pt == PieceKnight
	case Swamp:
		return pt == PieceBishop || pt == PieceKnight
	case Mountain:
		return pt == PieceRook || pt == PieceBishop
	}
	return true
}

// CanPlaceUnit reports whether a unit of type pt may occupy terrain t.
// Only rooks hold desert without being stranded there.
func CanPlaceUnit(pt PieceType, t Terrain) bool {
	if pt == PieceNone {
		return true
	}
	if t == Desert {
		return pt == PieceRook
	}
	return !terrainBlocks(pt, t)
}

// placedTerrain counts the non-flat tiles in f's territory, ignoring skip.
func (p *Position) placedTerrain(f Faction, skip int) int {
	n := 0
	for _, sq := range territoryTable[p.Mode][f] {
		if sq != skip && p.Terrain[sq] != Flat {
			n++
		}
	}
	return n
}

// placedArmy counts f's pieces on the board by type.
func (p *Position) placedArmy(f Faction) Army {
	var a Army
	for _, pc := range p.Board {
		if pc != 0 && pc.Faction() == f {
			a[pc.Type()]++
		}
	}
	return a
}

func (p *Position) placedStock(f Faction) TerrainStock {
	var s TerrainStock
	for _, sq := range territoryTable[p.Mode][f] {
		if t := p.Terrain[sq]; t != Flat {
			s[t]++
		}
	}
	return s
}
