package terrainchess

// landing reports whether pc may finish a step on to: the terrain must carry
// it and the cell must be empty or hold an enemy.
func landing(p *Position, pc Piece, to int) bool {
	if terrainBlocks(pc.Type(), p.Terrain[to]) {
		return false
	}
	dst := p.Board[to]
	return dst == 0 || p.isEnemy(pc.Faction(), dst.Faction())
}

// genStep tests a single landing cell. Jumps ignore whatever lies between.
func genStep(p *Position, from int, pc Piece, d [2]int, moves *[]Move) {
	r, c := rowOf(from)+d[0], colOf(from)+d[1]
	if !onBoard(r, c) {
		return
	}
	if to := indexOf(r, c); landing(p, pc, to) {
		*moves = append(*moves, Move{From: from, To: to})
	}
}

func genQuietStep(p *Position, from int, pc Piece, d [2]int, moves *[]Move) {
	r, c := rowOf(from)+d[0], colOf(from)+d[1]
	if !onBoard(r, c) {
		return
	}
	to := indexOf(r, c)
	if p.Board[to] == 0 && !terrainBlocks(pc.Type(), p.Terrain[to]) {
		*moves = append(*moves, Move{From: from, To: to})
	}
}

func genCapture(p *Position, from int, pc Piece, d [2]int, moves *[]Move) {
	r, c := rowOf(from)+d[0], colOf(from)+d[1]
	if !onBoard(r, c) {
		return
	}
	to := indexOf(r, c)
	if dst := p.Board[to]; dst != 0 && landing(p, pc, to) {
		*moves = append(*moves, Move{From: from, To: to})
	}
}

// genJoust is the king's two-cell orthogonal leap. The midpoint may hold a
// friendly piece but no enemy, and no enemy may attack it.
func genJoust(p *Position, from int, pc Piece, d [2]int, moves *[]Move) {
	row, col := rowOf(from), colOf(from)
	mr, mc := row+d[0], col+d[1]
	r, c := row+2*d[0], col+2*d[1]
	if !onBoard(r, c) {
		return
	}
	to := indexOf(r, c)
	if !landing(p, pc, to) {
		return
	}
	mid := indexOf(mr, mc)
	if m := p.Board[mid]; m != 0 && p.isEnemy(pc.Faction(), m.Faction()) {
		return
	}
	if p.IsAttacked(mid, pc.Faction(), 1) {
		return
	}
	*moves = append(*moves, Move{From: from, To: to})
}
