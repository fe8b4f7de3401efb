package terrainchess

// InCheck reports whether f's king is missing or attacked by any enemy.
func (p *Position) InCheck(f Faction) bool {
	k := p.kingSquare(f)
	if k < 0 {
		return true
	}
	return p.IsAttacked(k, f, maxDepth)
}

// LegalMoves returns the moves of the piece on from that do not leave its
// own king in check. Every candidate is advanced on a scratch copy with its
// promotion and any commander capture; desert elimination is not simulated.
func (p *Position) LegalMoves(from int) []Move {
	if !validSquare(from) || p.Board[from] == 0 {
		return nil
	}
	f := p.Board[from].Faction()
	raw := p.GenerateMoves(from, 0)
	out := make([]Move, 0, len(raw))
	for _, mv := range raw {
		if p.safeAfter(mv, f) {
			out = append(out, mv)
		}
	}
	return out
}

func (p *Position) safeAfter(mv Move, f Faction) bool {
	np := p.Clone()
	np.advance(mv)
	return !np.InCheck(f)
}

// AllLegalMoves returns every legal move of faction f.
func (p *Position) AllLegalMoves(f Faction) []Move {
	var out []Move
	for sq, pc := range p.Board {
		if pc != 0 && pc.Faction() == f {
			out = append(out, p.LegalMoves(sq)...)
		}
	}
	return out
}

func (p *Position) hasLegalMove(f Faction) bool {
	for sq, pc := range p.Board {
		if pc == 0 || pc.Faction() != f {
			continue
		}
		for _, mv := range p.GenerateMoves(sq, 0) {
			if p.safeAfter(mv, f) {
				return true
			}
		}
	}
	return false
}
