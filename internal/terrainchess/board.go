package terrainchess

const (
	Rows       = 12
	Cols       = 12
	NumSquares = Rows * Cols
)

var (
	rookDirs   = [][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
	kingDirs   = append(append([][2]int{}, rookDirs...), bishopDirs...)

	knightJumps = [][2]int{
		{-2, -1}, {-2, +1}, {-1, -2}, {-1, +2},
		{+1, -2}, {+1, +2}, {+2, -1}, {+2, +1},
	}
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Square converts board coordinates to a square index. ok is false off the board.
func Square(row, col int) (sq int, ok bool) {
	if !onBoard(row, col) {
		return -1, false
	}
	return indexOf(row, col), true
}

// Coords is the inverse of Square.
func Coords(sq int) (row, col int) { return rowOf(sq), colOf(sq) }

func validSquare(sq int) bool { return sq >= 0 && sq < NumSquares }

// Rotate180 maps a square onto its point reflection through the board centre.
func Rotate180(sq int) int { return NumSquares - 1 - sq }

// Position is the board-level state the move generator works on: the grid,
// the terrain and the factions still in play.
type Position struct {
	Mode    Mode
	Board   Board
	Terrain TerrainGrid
	Active  []Faction
}

// Clone returns a scratch copy that shares nothing with p.
func (p *Position) Clone() *Position {
	np := *p
	np.Active = append([]Faction(nil), p.Active...)
	return &np
}

func (p *Position) isActive(f Faction) bool {
	for _, a := range p.Active {
		if a == f {
			return true
		}
	}
	return false
}

func (p *Position) isEnemy(a, b Faction) bool {
	return a != b && !Allies(p.Mode, a, b)
}

func (p *Position) kingSquare(f Faction) int {
	want := MakePiece(f, PieceKing)
	for sq, pc := range p.Board {
		if pc == want {
			return sq
		}
	}
	return -1
}

// KingExists reports whether f still has its king on the board.
func (p *Position) KingExists(f Faction) bool {
	return p.kingSquare(f) >= 0
}

func (p *Position) removeFaction(f Faction) {
	out := p.Active[:0]
	for _, a := range p.Active {
		if a != f {
			out = append(out, a)
		}
	}
	p.Active = out
}

// eliminateFaction clears every piece of f from the board and drops it from play.
func (p *Position) eliminateFaction(f Faction) {
	for sq, pc := range p.Board {
		if pc != 0 && pc.Faction() == f {
			p.Board[sq] = 0
		}
	}
	p.removeFaction(f)
}
