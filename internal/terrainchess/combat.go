package terrainchess

import "fmt"

func (g *Game) startCombat() {
	g.phase = PhaseCombat
	g.turn = g.pos.Active[0]
	g.passes = 0
	g.beginTurn()
}

// MovePiece plays a combat move for the faction to move.
func (g *Game) MovePiece(from, to int) error {
	if g.phase != PhaseCombat {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
	}
	if !validSquare(from) || !validSquare(to) {
		return fmt.Errorf("%w: %d->%d off board", ErrIllegalMove, from, to)
	}
	pc := g.pos.Board[from]
	if pc == 0 {
		return fmt.Errorf("%w: no unit on %d", ErrIllegalMove, from)
	}
	f := pc.Faction()
	if f != g.turn {
		return fmt.Errorf("%w: %s to move, not %s", ErrNotYourTurn, g.turn, f)
	}
	mv := Move{From: from, To: to}
	if !containsMove(g.pos.GenerateMoves(from, 0), mv) {
		return fmt.Errorf("%w: %s %d->%d", ErrIllegalMove, pc, from, to)
	}
	if !g.pos.safeAfter(mv, f) {
		return fmt.Errorf("%w: %s %d->%d", ErrLeavesCheck, pc, from, to)
	}

	out := g.pos.play(mv)
	if out.Captured != 0 {
		g.capturedBy[f] = append(g.capturedBy[f], out.Captured)
	}
	g.history = append(g.history, out)
	g.passes = 0
	if !g.checkFinished() {
		g.turn = g.nextAfter(f)
		g.beginTurn()
	}
	return nil
}

// MovePieceAs is MovePiece for a caller acting as f.
func (g *Game) MovePieceAs(f Faction, from, to int) error {
	if g.phase == PhaseCombat && f != g.turn {
		return fmt.Errorf("%w: %s to move, not %s", ErrNotYourTurn, g.turn, f)
	}
	return g.MovePiece(from, to)
}

// LegalMovesFrom lists the legal moves of the unit on sq when it belongs to
// the faction to move.
func (g *Game) LegalMovesFrom(sq int) []Move {
	if g.phase != PhaseCombat || g.PieceAt(sq).Faction() != g.turn {
		return nil
	}
	return g.pos.LegalMoves(sq)
}

// AllLegalMoves lists every legal move of the faction to move.
func (g *Game) AllLegalMoves() []Move {
	if g.phase != PhaseCombat {
		return nil
	}
	return g.pos.AllLegalMoves(g.turn)
}

// beginTurn settles the faction to move: a faction without its king has lost
// and is removed, a faction with no legal move passes. When nobody can move
// the match ends in a draw.
func (g *Game) beginTurn() {
	for guard := 0; guard <= 2*len(g.order); guard++ {
		if g.checkFinished() {
			return
		}
		f := g.turn
		if !g.pos.KingExists(f) {
			g.pos.eliminateFaction(f)
			g.turn = g.nextAfter(f)
			continue
		}
		if g.pos.hasLegalMove(f) {
			return
		}
		g.passes++
		if g.passes >= len(g.pos.Active) {
			g.finish(true)
			return
		}
		g.turn = g.nextAfter(f)
	}
}

// nextAfter returns the next active faction after f in turn order.
func (g *Game) nextAfter(f Faction) Faction {
	idx := -1
	for i, x := range g.order {
		if x == f {
			idx = i
			break
		}
	}
	for i := 1; i <= len(g.order); i++ {
		cand := g.order[(idx+i+len(g.order))%len(g.order)]
		if g.pos.isActive(cand) {
			return cand
		}
	}
	return NoFaction
}

func (g *Game) checkFinished() bool {
	act := g.pos.Active
	switch {
	case len(act) == 0:
		g.finish(true)
		return true
	case len(act) == 1:
		g.finish(false)
		return true
	case g.pos.Mode.IsAlliance():
		for _, f := range act[1:] {
			if !Allies(g.pos.Mode, act[0], f) {
				return false
			}
		}
		g.finish(false)
		return true
	}
	return false
}

func (g *Game) finish(draw bool) {
	g.phase = PhaseFinished
	g.turn = NoFaction
	g.draw = draw
}

func containsMove(moves []Move, mv Move) bool {
	for _, m := range moves {
		if m == mv {
			return true
		}
	}
	return false
}
