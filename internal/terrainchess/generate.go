package terrainchess

// maxDepth bounds the recursion between joust guards and attack checks:
// jousts are only generated at depth 0, attack sets are built at depth 1.
const maxDepth = 1

// Pattern is one family of geometric moves in a blueprint.
type Pattern struct {
	Dirs  [][2]int
	Slide bool // walk the ray cell by cell
	Quiet bool // may only land on empty cells
	Guard bool // two-cell leap whose midpoint must be safe (joust)
}

// Blueprint describes how a piece moves: a base pattern, an optional compound
// pattern and an optional pattern that only ever captures.
type Blueprint struct {
	Base       Pattern
	Compound   *Pattern
	AttackOnly *Pattern
}

// BlueprintFor returns the blueprint of pt for faction f in mode m.
// Pawn blueprints depend on the faction's forward direction.
func BlueprintFor(pt PieceType, m Mode, f Faction) Blueprint {
	switch pt {
	case PieceRook:
		return Blueprint{Base: Pattern{Dirs: rookDirs, Slide: true}}
	case PieceBishop:
		return Blueprint{Base: Pattern{Dirs: bishopDirs, Slide: true}}
	case PieceQueen:
		return Blueprint{
			Base:     Pattern{Dirs: kingDirs, Slide: true},
			Compound: &Pattern{Dirs: knightJumps},
		}
	case PieceKnight:
		return Blueprint{Base: Pattern{Dirs: knightJumps}}
	case PieceKing:
		return Blueprint{
			Base:     Pattern{Dirs: kingDirs},
			Compound: &Pattern{Dirs: rookDirs, Guard: true},
		}
	case PiecePawn:
		dr, dc := pawnForward(m, f)
		if dr == 0 && dc == 0 {
			return Blueprint{}
		}
		return Blueprint{
			Base:       Pattern{Dirs: [][2]int{{dr, dc}}, Quiet: true},
			Compound:   &Pattern{Dirs: [][2]int{{-2 * dr, -2 * dc}}},
			AttackOnly: &Pattern{Dirs: pawnFlanks(dr, dc)},
		}
	case PieceNone:
		return Blueprint{}
	}
	return Blueprint{}
}

// GenerateMoves returns the geometric moves of the piece on from, resolved
// against terrain and occupancy but not against check.
func (p *Position) GenerateMoves(from, depth int) []Move {
	var moves []Move
	p.genMoves(from, depth, &moves)
	return moves
}

func (p *Position) genMoves(from, depth int, moves *[]Move) {
	if !validSquare(from) {
		return
	}
	pc := p.Board[from]
	if pc == 0 {
		return
	}
	bp := BlueprintFor(pc.Type(), p.Mode, pc.Faction())
	p.genPattern(from, pc, bp.Base, depth, moves)
	if bp.Compound != nil {
		p.genPattern(from, pc, *bp.Compound, depth, moves)
	}
	if bp.AttackOnly != nil {
		for _, d := range bp.AttackOnly.Dirs {
			genCapture(p, from, pc, d, moves)
		}
	}
}

func (p *Position) genPattern(from int, pc Piece, pat Pattern, depth int, moves *[]Move) {
	switch {
	case pat.Guard:
		if depth == 0 {
			for _, d := range pat.Dirs {
				genJoust(p, from, pc, d, moves)
			}
		}
	case pat.Slide:
		for _, d := range pat.Dirs {
			genSlide(p, from, pc, d, moves)
		}
	case pat.Quiet:
		for _, d := range pat.Dirs {
			genQuietStep(p, from, pc, d, moves)
		}
	default:
		for _, d := range pat.Dirs {
			genStep(p, from, pc, d, moves)
		}
	}
}

// attacks reports whether the piece on from threatens target. Quiet steps
// never threaten; capture-only cells threaten whatever stands on them.
func (p *Position) attacks(from, target, depth int) bool {
	pc := p.Board[from]
	bp := BlueprintFor(pc.Type(), p.Mode, pc.Faction())
	if bp.AttackOnly != nil {
		r, c := rowOf(from), colOf(from)
		for _, d := range bp.AttackOnly.Dirs {
			if onBoard(r+d[0], c+d[1]) && indexOf(r+d[0], c+d[1]) == target &&
				!terrainBlocks(pc.Type(), p.Terrain[target]) {
				return true
			}
		}
	}
	var moves []Move
	if !bp.Base.Quiet {
		p.genPattern(from, pc, bp.Base, depth, &moves)
	}
	if bp.Compound != nil {
		p.genPattern(from, pc, *bp.Compound, depth, &moves)
	}
	for _, mv := range moves {
		if mv.To == target {
			return true
		}
	}
	return false
}

// IsAttacked reports whether any enemy of defender threatens sq. Attack sets
// are generated at depth+1 so a guarded joust never recurses further.
func (p *Position) IsAttacked(sq int, defender Faction, depth int) bool {
	if depth > maxDepth {
		depth = maxDepth
	}
	for s, pc := range p.Board {
		if pc == 0 || !p.isEnemy(defender, pc.Faction()) {
			continue
		}
		if p.attacks(s, sq, depth) {
			return true
		}
	}
	return false
}
