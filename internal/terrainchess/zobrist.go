package terrainchess

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces  [NumFactions][numPieceTypes][NumSquares]uint64
	zobristTerrain [numTerrains][NumSquares]uint64
	zobristMode    [numModes]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for f := 0; f < NumFactions; f++ {
			for pt := 1; pt < numPieceTypes; pt++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[f][pt][sq] = next()
				}
			}
		}
		for t := 1; t < numTerrains; t++ {
			for sq := 0; sq < NumSquares; sq++ {
				zobristTerrain[t][sq] = next()
			}
		}
		for m := range zobristMode {
			zobristMode[m] = next()
		}
	})
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == 0 || !validSquare(sq) {
		return 0
	}
	f, pt := pc.Faction(), pc.Type()
	if !f.valid() || pt <= PieceNone || pt >= numPieceTypes {
		return 0
	}
	return zobristPieces[f][pt][sq]
}

// Fingerprint hashes the mode, units and terrain of p. Equal deployments
// share a fingerprint, which the seed library uses to skip duplicates.
func (p *Position) Fingerprint() uint64 {
	initZobrist()

	var h uint64
	if p.Mode.Valid() {
		h = zobristMode[p.Mode]
	}
	for sq := 0; sq < NumSquares; sq++ {
		h ^= pieceHashKey(p.Board[sq], sq)
		if t := p.Terrain[sq]; t > Flat && t < numTerrains {
			h ^= zobristTerrain[t][sq]
		}
	}
	return h
}

// Fingerprint hashes the layout the same way as Position.Fingerprint.
func (l Layout) Fingerprint() uint64 {
	b, t := l.Grids()
	p := Position{Mode: l.Mode, Board: b, Terrain: t}
	return p.Fingerprint()
}
