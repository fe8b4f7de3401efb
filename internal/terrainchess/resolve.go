package terrainchess

// Outcome records what resolving one combat move did to the position.
type Outcome struct {
	Move       Move      `json:"move"`
	Mover      Faction   `json:"mover"`
	Captured   Piece     `json:"captured"`
	Promoted   bool      `json:"promoted"`
	Stranded   []int     `json:"stranded,omitempty"`
	Eliminated []Faction `json:"eliminated,omitempty"`
}

// play applies mv and resolves its consequences in order: promotion,
// commander capture, desert elimination. mv is assumed geometrically legal.
func (p *Position) play(mv Move) Outcome {
	out := p.advance(mv)
	f := out.Mover

	stranded, kingLost := p.strandedOnDesert(f, mv.To)
	if kingLost {
		p.eliminateFaction(f)
		out.Eliminated = append(out.Eliminated, f)
		return out
	}
	for _, sq := range stranded {
		p.Board[sq] = 0
	}
	out.Stranded = stranded
	return out
}

// advance moves the piece, promotes it and resolves a commander capture.
// Desert elimination is left to play.
func (p *Position) advance(mv Move) Outcome {
	pc := p.Board[mv.From]
	f := pc.Faction()
	out := Outcome{Move: mv, Mover: f, Captured: p.Board[mv.To]}

	p.Board[mv.To] = pc
	p.Board[mv.From] = 0

	if pc.Type() == PiecePawn && promotes(p.Mode, f, mv.To) {
		p.Board[mv.To] = MakePiece(f, PieceQueen)
		out.Promoted = true
	}

	if out.Captured.Type() == PieceKing {
		loser := out.Captured.Faction()
		p.transferArmy(loser, f)
		out.Eliminated = append(out.Eliminated, loser)
	}
	return out
}

// transferArmy hands every remaining piece of loser to winner and drops loser
// from play.
func (p *Position) transferArmy(loser, winner Faction) {
	for sq, pc := range p.Board {
		if pc != 0 && pc.Faction() == loser {
			p.Board[sq] = MakePiece(winner, pc.Type())
		}
	}
	p.removeFaction(loser)
}

// strandedOnDesert lists f's non-rook pieces standing on desert, except the
// piece that just landed on moved. kingLost is set when one of them is f's king.
func (p *Position) strandedOnDesert(f Faction, moved int) (stranded []int, kingLost bool) {
	for sq, pc := range p.Board {
		if sq == moved || pc == 0 || pc.Faction() != f || p.Terrain[sq] != Desert {
			continue
		}
		switch pc.Type() {
		case PieceRook:
			continue
		case PieceKing:
			kingLost = true
		}
		stranded = append(stranded, sq)
	}
	return stranded, kingLost
}
