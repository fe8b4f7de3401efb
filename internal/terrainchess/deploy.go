package terrainchess

// randomPlacementShare is the probability that RandomizeUnits scatters units
// freely instead of picking a formation template.
const randomPlacementShare = 0.4

func shuffle(rng Rand, xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// clearUnits lifts all of f's units back into its inventory.
func (g *Game) clearUnits(f Faction) {
	for sq, pc := range g.pos.Board {
		if pc != 0 && pc.Faction() == f {
			g.pos.Board[sq] = 0
		}
	}
	g.inventory[f] = DefaultArmy()
}

// clearTerrain lifts every tile in f's territory back into its inventory.
func (g *Game) clearTerrain(f Faction) {
	for _, sq := range territoryTable[g.pos.Mode][f] {
		if t := g.pos.Terrain[sq]; t != Flat {
			g.terrainInv[f][t]++
			g.pos.Terrain[sq] = Flat
		}
	}
}

// scatterTerrain lays random tiles on flat cells of f's territory until it
// holds target tiles, never exceeding the quota and never under a unit that
// could not stand on the tile.
func (g *Game) scatterTerrain(f Faction, target int) {
	if q := g.pos.Mode.TerrainQuota(); target > q {
		target = q
	}
	cells := Territory(f, g.pos.Mode)
	shuffle(g.rng, cells)
	placed := g.pos.placedTerrain(f, -1)
	opts := make([]Terrain, 0, len(PlaceableTerrains))
	for _, sq := range cells {
		if placed >= target {
			return
		}
		if g.pos.Terrain[sq] != Flat {
			continue
		}
		opts = opts[:0]
		for _, t := range PlaceableTerrains {
			if g.terrainInv[f][t] > 0 && CanPlaceUnit(g.pos.Board[sq].Type(), t) {
				opts = append(opts, t)
			}
		}
		if len(opts) == 0 {
			continue
		}
		t := opts[g.rng.Intn(len(opts))]
		g.terrainInv[f][t]--
		g.pos.Terrain[sq] = t
		placed++
	}
}

// placeFormation redeploys f's army on the template. Tiles under a slot that
// the unit cannot hold are lifted.
func (g *Game) placeFormation(f Faction, fm Formation) {
	g.clearUnits(f)
	_, width := territoryDims(g.pos.Mode)
	for _, s := range fm.Slots(width) {
		sq, ok := LocalToSquare(f, g.pos.Mode, s.Row, s.Col)
		if !ok || g.pos.Board[sq] != 0 || g.inventory[f][s.Piece] == 0 {
			continue
		}
		if t := g.pos.Terrain[sq]; !CanPlaceUnit(s.Piece, t) {
			g.terrainInv[f][t]++
			g.pos.Terrain[sq] = Flat
		}
		g.pos.Board[sq] = MakePiece(f, s.Piece)
		g.inventory[f][s.Piece]--
	}
}

var placementOrder = [...]PieceType{PieceKing, PieceQueen, PieceRook, PieceBishop, PieceKnight, PiecePawn}

// placeRandomly scatters f's army over legal cells of its territory. The king
// avoids cells already attacked by an enemy when it can.
func (g *Game) placeRandomly(f Faction) {
	g.clearUnits(f)
	cells := territoryTable[g.pos.Mode][f]
	free := make([]int, 0, len(cells))
	for _, pt := range placementOrder {
		for g.inventory[f][pt] > 0 {
			free = free[:0]
			for _, sq := range cells {
				if g.pos.Board[sq] == 0 && CanPlaceUnit(pt, g.pos.Terrain[sq]) {
					free = append(free, sq)
				}
			}
			if pt == PieceKing {
				if safe := g.safeCells(f, free); len(safe) > 0 {
					free = safe
				}
			}
			if len(free) == 0 {
				break
			}
			sq := free[g.rng.Intn(len(free))]
			g.pos.Board[sq] = MakePiece(f, pt)
			g.inventory[f][pt]--
		}
	}
}

func (g *Game) safeCells(f Faction, cells []int) []int {
	var out []int
	for _, sq := range cells {
		if !g.pos.IsAttacked(sq, f, maxDepth) {
			out = append(out, sq)
		}
	}
	return out
}

// RandomizeTerrain relays the terrain of each target faction at random:
// the full quota, or override tiles when 0 < override < quota.
func (g *Game) RandomizeTerrain(a Actor, factions []Faction, override int) error {
	if err := g.authorize(a, factions); err != nil {
		return err
	}
	for _, f := range factions {
		n := g.pos.Mode.TerrainQuota()
		if override > 0 && override < n {
			n = override
		}
		g.clearTerrain(f)
		g.scatterTerrain(f, n)
		g.ready[f] = false
	}
	return nil
}

// RandomizeUnits redeploys each target faction either freely at random or on
// a randomly chosen formation template.
func (g *Game) RandomizeUnits(a Actor, factions []Faction) error {
	if err := g.authorize(a, factions); err != nil {
		return err
	}
	for _, f := range factions {
		if g.rng.Float64() < randomPlacementShare {
			g.placeRandomly(f)
		} else {
			g.placeFormation(f, Formations[g.rng.Intn(len(Formations))])
		}
		g.ready[f] = false
	}
	return nil
}

// SetClassicalFormation deploys the classical template and tops the terrain
// up to the full quota.
func (g *Game) SetClassicalFormation(a Actor, factions []Faction) error {
	return g.SetFormation(a, factions, Classical)
}

// SetFormation deploys fm for each target faction and fills its terrain quota.
func (g *Game) SetFormation(a Actor, factions []Faction, fm Formation) error {
	if err := g.authorize(a, factions); err != nil {
		return err
	}
	for _, f := range factions {
		g.placeFormation(f, fm)
		g.scatterTerrain(f, g.pos.Mode.TerrainQuota())
		g.ready[f] = false
	}
	return nil
}
