package terrainchess

// Slot is one unit of a formation in the faction-local frame.
type Slot struct {
	Row, Col int
	Piece    PieceType
}

// Formation is a named deployment template. Duel territories are six rows
// by twelve columns, quadrants six by six, so each template has both shapes.
type Formation struct {
	Name   string
	wide   []Slot
	square []Slot
}

// Slots returns the template for a territory of the given width.
func (fm Formation) Slots(width int) []Slot {
	if width > Cols/2 {
		return fm.wide
	}
	return fm.square
}

func backRank(row, from int, pieces ...PieceType) []Slot {
	out := make([]Slot, 0, len(pieces))
	for i, pt := range pieces {
		out = append(out, Slot{Row: row, Col: from + i, Piece: pt})
	}
	return out
}

func pawnsAt(cells ...[2]int) []Slot {
	out := make([]Slot, 0, len(cells))
	for _, c := range cells {
		out = append(out, Slot{Row: c[0], Col: c[1], Piece: PiecePawn})
	}
	return out
}

func slots(groups ...[]Slot) []Slot {
	var out []Slot
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

const (
	pawn   = PiecePawn
	knight = PieceKnight
	bishop = PieceBishop
	rook   = PieceRook
	queen  = PieceQueen
	king   = PieceKing
)

var (
	Classical = Formation{
		Name: "classical",
		wide: slots(
			backRank(0, 2, rook, knight, bishop, queen, king, bishop, knight, rook),
			backRank(1, 2, pawn, pawn, pawn, pawn, pawn, pawn, pawn, pawn),
		),
		square: slots(
			[]Slot{{0, 0, king}, {1, 1, queen}, {0, 1, rook}, {1, 0, rook}, {0, 2, bishop}, {2, 0, bishop}, {1, 2, knight}, {2, 1, knight}},
			pawnsAt([2]int{0, 3}, [2]int{1, 3}, [2]int{2, 2}, [2]int{3, 1}, [2]int{3, 0}, [2]int{0, 4}, [2]int{4, 0}, [2]int{2, 3}),
		),
	}

	Vanguard = Formation{
		Name: "vanguard",
		wide: slots(
			[]Slot{{0, 2, rook}, {0, 5, queen}, {0, 6, king}, {0, 9, rook}, {1, 3, bishop}, {1, 4, knight}, {1, 7, knight}, {1, 8, bishop}},
			backRank(2, 2, pawn, pawn, pawn, pawn, pawn, pawn, pawn, pawn),
		),
		square: slots(
			[]Slot{{0, 0, king}, {1, 1, queen}, {0, 2, rook}, {2, 0, rook}, {0, 1, bishop}, {1, 0, bishop}, {1, 2, knight}, {2, 1, knight}},
			pawnsAt([2]int{0, 4}, [2]int{1, 3}, [2]int{2, 2}, [2]int{3, 1}, [2]int{4, 0}, [2]int{2, 3}, [2]int{3, 2}, [2]int{1, 4}),
		),
	}

	Fortress = Formation{
		Name: "fortress",
		wide: slots(
			backRank(0, 3, rook, bishop, king, queen, bishop, rook),
			[]Slot{{1, 4, knight}, {1, 7, knight}},
			pawnsAt([2]int{1, 2}, [2]int{1, 3}, [2]int{1, 5}, [2]int{1, 6}, [2]int{1, 8}, [2]int{1, 9}, [2]int{2, 4}, [2]int{2, 7}),
		),
		square: slots(
			[]Slot{{0, 0, king}, {0, 1, bishop}, {1, 0, bishop}, {1, 1, queen}, {0, 2, rook}, {2, 0, rook}, {1, 2, knight}, {2, 1, knight}},
			pawnsAt([2]int{0, 3}, [2]int{1, 3}, [2]int{2, 2}, [2]int{3, 1}, [2]int{3, 0}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 3}),
		),
	}

	Skirmish = Formation{
		Name: "skirmish",
		wide: slots(
			[]Slot{{0, 6, king}, {0, 0, rook}, {0, 11, rook}, {1, 6, queen}, {1, 3, bishop}, {1, 8, bishop}, {2, 1, knight}, {2, 10, knight}},
			pawnsAt([2]int{2, 3}, [2]int{2, 5}, [2]int{2, 6}, [2]int{2, 8}, [2]int{3, 1}, [2]int{3, 4}, [2]int{3, 7}, [2]int{3, 10}),
		),
		square: slots(
			[]Slot{{0, 0, king}, {2, 2, queen}, {0, 5, rook}, {5, 0, rook}, {1, 3, bishop}, {3, 1, bishop}, {0, 3, knight}, {3, 0, knight}},
			pawnsAt([2]int{1, 4}, [2]int{4, 1}, [2]int{2, 4}, [2]int{4, 2}, [2]int{3, 3}, [2]int{1, 1}, [2]int{0, 2}, [2]int{2, 0}),
		),
	}

	// Formations are the templates RandomizeUnits picks from.
	Formations = []Formation{Classical, Vanguard, Fortress, Skirmish}
)

// FormationByName looks a template up by name.
func FormationByName(name string) (Formation, bool) {
	for _, fm := range Formations {
		if fm.Name == name {
			return fm, true
		}
	}
	return Formation{}, false
}
