package terrainchess

// genSlide walks one ray. Blocked terrain ends the ray without a move, an
// ally ends it, an enemy is captured and ends it, and desert is entered but
// never passed.
func genSlide(p *Position, from int, pc Piece, d [2]int, moves *[]Move) {
	pt, f := pc.Type(), pc.Faction()
	r, c := rowOf(from)+d[0], colOf(from)+d[1]
	for onBoard(r, c) {
		to := indexOf(r, c)
		if terrainBlocks(pt, p.Terrain[to]) {
			return
		}
		dst := p.Board[to]
		if dst != 0 && !p.isEnemy(f, dst.Faction()) {
			return
		}
		*moves = append(*moves, Move{From: from, To: to})
		if dst != 0 || p.Terrain[to] == Desert {
			return
		}
		r += d[0]
		c += d[1]
	}
}
