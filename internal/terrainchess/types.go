package terrainchess

import "strings"

// Faction identifies one army. Which factions take part depends on the Mode.
type Faction int8

const (
	NoFaction Faction = -1
	White     Faction = 0
	Black     Faction = 1
	Red       Faction = 2
	Blue      Faction = 3

	NumFactions = 4
)

var factionNames = [NumFactions]string{"white", "black", "red", "blue"}

func (f Faction) String() string {
	if f < 0 || f >= NumFactions {
		return "none"
	}
	return factionNames[f]
}

func (f Faction) valid() bool { return f >= 0 && f < NumFactions }

func ParseFaction(s string) (Faction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range factionNames {
		if n == s {
			return Faction(i), true
		}
	}
	return NoFaction, false
}

type PieceType int8

const (
	PieceNone PieceType = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing

	numPieceTypes = 7
)

var pieceTypeNames = [numPieceTypes]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (pt PieceType) String() string {
	if pt <= PieceNone || pt >= numPieceTypes {
		return "none"
	}
	return pieceTypeNames[pt]
}

// Value is the score credited for capturing a piece of this type.
// Kings are not scored: capturing one hands over the whole army instead.
func (pt PieceType) Value() int {
	switch pt {
	case PiecePawn:
		return 1
	case PieceKnight, PieceBishop:
		return 3
	case PieceRook:
		return 5
	case PieceQueen:
		return 9
	case PieceKing, PieceNone:
		return 0
	}
	return 0
}

func ParsePieceType(s string) (PieceType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return PieceNone, true
	}
	for i := 1; i < numPieceTypes; i++ {
		if pieceTypeNames[i] == s {
			return PieceType(i), true
		}
	}
	return PieceNone, false
}

// Piece packs a faction and a piece type into one byte: 0 is an empty cell,
// the high nibble holds faction+1 and the low nibble the type.
type Piece uint8

func MakePiece(f Faction, pt PieceType) Piece {
	if pt == PieceNone || !f.valid() {
		return 0
	}
	return Piece(uint8(f+1)<<4 | uint8(pt))
}

func (p Piece) Type() PieceType {
	if p == 0 {
		return PieceNone
	}
	return PieceType(p & 0x0f)
}

func (p Piece) Faction() Faction {
	if p == 0 {
		return NoFaction
	}
	return Faction(p>>4) - 1
}

func (p Piece) String() string {
	if p == 0 {
		return "empty"
	}
	return p.Faction().String() + " " + p.Type().String()
}

type Terrain int8

const (
	Flat Terrain = iota
	Forest
	Swamp
	Mountain
	Desert

	numTerrains = 5
)

var terrainNames = [numTerrains]string{"flat", "forest", "swamp", "mountain", "desert"}

// PlaceableTerrains lists the tile types a faction holds in its terrain inventory.
var PlaceableTerrains = [...]Terrain{Forest, Swamp, Mountain, Desert}

func (t Terrain) String() string {
	if t < 0 || t >= numTerrains {
		return "unknown"
	}
	return terrainNames[t]
}

func ParseTerrain(s string) (Terrain, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range terrainNames {
		if n == s {
			return Terrain(i), true
		}
	}
	return Flat, false
}

type Board [NumSquares]Piece

type TerrainGrid [NumSquares]Terrain

type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Army counts pieces by type.
type Army [numPieceTypes]int

// TerrainStock counts terrain tiles by type.
type TerrainStock [numTerrains]int

// DefaultArmy is the composition every faction deploys.
func DefaultArmy() Army {
	var a Army
	a[PieceKing] = 1
	a[PieceQueen] = 1
	a[PieceRook] = 2
	a[PieceBishop] = 2
	a[PieceKnight] = 2
	a[PiecePawn] = 8
	return a
}

func (a Army) Total() int {
	n := 0
	for _, c := range a {
		n += c
	}
	return n
}

func (s TerrainStock) Total() int {
	n := 0
	for t := Forest; t < numTerrains; t++ {
		n += s[t]
	}
	return n
}

// Phase is the lifecycle stage of a match.
type Phase int8

const (
	PhaseSetup Phase = iota
	PhaseCombat
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseCombat:
		return "combat"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}
