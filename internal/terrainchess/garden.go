package terrainchess

import "fmt"

// ApplyChiGarden overlays a stored layout onto each target faction's
// territory. A layout is picked at random among the seeds whose mode matches
// the match or adapts to it.
func (g *Game) ApplyChiGarden(a Actor, factions []Faction) error {
	if err := g.authorize(a, factions); err != nil {
		return err
	}
	cands := g.gardenCandidates()
	if len(cands) == 0 {
		return fmt.Errorf("%w: %s", ErrNoSeed, g.pos.Mode)
	}
	for _, f := range factions {
		g.overlay(f, cands[g.rng.Intn(len(cands))])
		g.ready[f] = false
	}
	return nil
}

func (g *Game) gardenCandidates() []Layout {
	if g.seeds == nil {
		return nil
	}
	var out []Layout
	for _, s := range g.seeds.Seeds() {
		l, err := DecodeLayout(s)
		if err != nil {
			continue
		}
		if adapted, ok := AdaptLayout(l, g.pos.Mode); ok {
			out = append(out, adapted)
		}
	}
	return out
}

// overlay replaces f's territory with the part of l that covers it. When l
// has units there, f's units are replaced too; otherwise only the terrain
// changes and f keeps every unit that can still stand where it is.
func (g *Game) overlay(f Faction, l Layout) {
	m := g.pos.Mode
	var units []PlacedPiece
	for _, pp := range l.Pieces {
		if InTerritory(f, m, pp.Square) {
			units = append(units, pp)
		}
	}

	g.clearTerrain(f)
	if len(units) > 0 {
		g.clearUnits(f)
	}
	placed, quota := 0, m.TerrainQuota()
	for _, tt := range l.Terrain {
		if placed >= quota {
			break
		}
		if !InTerritory(f, m, tt.Square) || g.terrainInv[f][tt.Terrain] == 0 {
			continue
		}
		g.pos.Terrain[tt.Square] = tt.Terrain
		g.terrainInv[f][tt.Terrain]--
		placed++
	}

	if len(units) > 0 {
		for _, pp := range units {
			sq, pt := pp.Square, pp.Type
			if g.pos.Board[sq] != 0 || g.inventory[f][pt] == 0 || !CanPlaceUnit(pt, g.pos.Terrain[sq]) {
				continue
			}
			g.pos.Board[sq] = MakePiece(f, pt)
			g.inventory[f][pt]--
		}
		return
	}

	for _, sq := range territoryTable[m][f] {
		pc := g.pos.Board[sq]
		if pc != 0 && pc.Faction() == f && !CanPlaceUnit(pc.Type(), g.pos.Terrain[sq]) {
			g.pos.Board[sq] = 0
			g.inventory[f][pc.Type()]++
		}
	}
}
