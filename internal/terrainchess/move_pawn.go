package terrainchess

// pawnForward is the pawn's forward step for f in mode m: north/south in
// ModeDuelNS, east/west in ModeDuelEW and diagonally towards the centre in the
// four-faction modes.
func pawnForward(m Mode, f Faction) (dr, dc int) {
	switch m {
	case ModeDuelNS:
		switch f {
		case White:
			return -1, 0
		case Black:
			return +1, 0
		}
	case ModeDuelEW:
		switch f {
		case Red:
			return 0, +1
		case Blue:
			return 0, -1
		}
	case ModeQuadrant, ModeAlliance:
		switch f {
		case White:
			return -1, +1
		case Red:
			return +1, +1
		case Black:
			return +1, -1
		case Blue:
			return -1, -1
		}
	}
	return 0, 0
}

// pawnFlanks are the two capture cells either side of the forward step.
// For an orthogonal step they are the forward diagonals; for a diagonal step
// they are the two orthogonal components.
func pawnFlanks(dr, dc int) [][2]int {
	switch {
	case dc == 0:
		return [][2]int{{dr, -1}, {dr, +1}}
	case dr == 0:
		return [][2]int{{-1, dc}, {+1, dc}}
	default:
		return [][2]int{{dr, 0}, {0, dc}}
	}
}

// promotes reports whether a pawn of f landing on sq becomes a queen. The
// promotion edge is the home edge of the paired faction; in the four-faction
// modes both outer edges of the opposite quadrant count.
func promotes(m Mode, f Faction, sq int) bool {
	lr, lc, ok := SquareToLocal(Paired(m, f), m, sq)
	if !ok {
		return false
	}
	return lr == 0 || (m.IsFourFaction() && lc == 0)
}
