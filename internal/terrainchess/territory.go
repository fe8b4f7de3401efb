package terrainchess

import "strings"

// Mode fixes the active factions and how the board is partitioned.
type Mode int8

const (
	ModeDuelNS    Mode = iota // two factions, north/south halves
	ModeDuelEW                // two factions, west/east halves
	ModeQuadrant              // up to four factions, one quadrant each, free for all
	ModeAlliance              // four factions in two alliances, see allianceTeam

	numModes = 4
)

var modeNames = [numModes]string{"duel-ns", "duel-ew", "quadrant", "alliance"}

func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeNames[m]
}

func (m Mode) Valid() bool { return m >= 0 && m < numModes }

func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), true
		}
	}
	return 0, false
}

func (m Mode) IsDuel() bool        { return m == ModeDuelNS || m == ModeDuelEW }
func (m Mode) IsFourFaction() bool { return m == ModeQuadrant || m == ModeAlliance }
func (m Mode) IsAlliance() bool    { return m == ModeAlliance }

// Factions returns the factions of the mode in turn order.
func (m Mode) Factions() []Faction {
	switch m {
	case ModeDuelNS:
		return []Faction{White, Black}
	case ModeDuelEW:
		return []Faction{Red, Blue}
	case ModeQuadrant, ModeAlliance:
		return []Faction{White, Red, Black, Blue}
	}
	return nil
}

func (m Mode) HasFaction(f Faction) bool {
	for _, x := range m.Factions() {
		if x == f {
			return true
		}
	}
	return false
}

// TerrainQuota is the number of non-flat tiles each faction may lay.
func (m Mode) TerrainQuota() int {
	if m.IsDuel() {
		return 16
	}
	return 8
}

// TerrainAllowance is the per-type split of the quota.
func (m Mode) TerrainAllowance() TerrainStock {
	var s TerrainStock
	per := m.TerrainQuota() / len(PlaceableTerrains)
	for _, t := range PlaceableTerrains {
		s[t] = per
	}
	return s
}

// territoryDims is the size of a faction's territory in its local frame:
// depth counts rows away from the home edge, width runs along it.
func territoryDims(m Mode) (depth, width int) {
	if m.IsDuel() {
		return Rows / 2, Cols
	}
	return Rows / 2, Cols / 2
}

// LocalToSquare maps a faction-local cell to a board square. Local row 0 is
// the faction's home edge and (0,0) its home corner. Paired factions share the
// same local frame under 180° rotation.
func LocalToSquare(f Faction, m Mode, lr, lc int) (int, bool) {
	depth, width := territoryDims(m)
	if lr < 0 || lr >= depth || lc < 0 || lc >= width || !m.HasFaction(f) {
		return -1, false
	}
	last := Rows - 1
	var r, c int
	switch m {
	case ModeDuelNS:
		switch f {
		case White:
			r, c = last-lr, lc
		case Black:
			r, c = lr, last-lc
		}
	case ModeDuelEW:
		switch f {
		case Red:
			r, c = lc, lr
		case Blue:
			r, c = last-lc, last-lr
		}
	case ModeQuadrant, ModeAlliance:
		switch f {
		case White:
			r, c = last-lr, lc
		case Red:
			r, c = lr, lc
		case Black:
			r, c = lr, last-lc
		case Blue:
			r, c = last-lr, last-lc
		}
	}
	return indexOf(r, c), true
}

// SquareToLocal is the inverse of LocalToSquare; ok is false when sq is not
// in f's territory.
func SquareToLocal(f Faction, m Mode, sq int) (lr, lc int, ok bool) {
	if !validSquare(sq) || !m.HasFaction(f) {
		return 0, 0, false
	}
	last := Rows - 1
	r, c := rowOf(sq), colOf(sq)
	switch m {
	case ModeDuelNS:
		switch f {
		case White:
			lr, lc = last-r, c
		case Black:
			lr, lc = r, last-c
		}
	case ModeDuelEW:
		switch f {
		case Red:
			lr, lc = c, r
		case Blue:
			lr, lc = last-c, last-r
		}
	case ModeQuadrant, ModeAlliance:
		switch f {
		case White:
			lr, lc = last-r, c
		case Red:
			lr, lc = r, c
		case Black:
			lr, lc = r, last-c
		case Blue:
			lr, lc = last-r, last-c
		}
	}
	depth, width := territoryDims(m)
	if lr < 0 || lr >= depth || lc < 0 || lc >= width {
		return 0, 0, false
	}
	return lr, lc, true
}

var (
	territoryTable [numModes][NumFactions][]int
	ownerTable     [numModes][NumSquares]Faction
)

func init() {
	for m := Mode(0); m < numModes; m++ {
		for sq := range ownerTable[m] {
			ownerTable[m][sq] = NoFaction
		}
		depth, width := territoryDims(m)
		for _, f := range m.Factions() {
			cells := make([]int, 0, depth*width)
			for lr := 0; lr < depth; lr++ {
				for lc := 0; lc < width; lc++ {
					sq, _ := LocalToSquare(f, m, lr, lc)
					cells = append(cells, sq)
					ownerTable[m][sq] = f
				}
			}
			territoryTable[m][f] = cells
		}
	}
}

// Territory returns the cells f may deploy into, in local row-major order.
// It is empty when f does not play in m.
func Territory(f Faction, m Mode) []int {
	if !m.Valid() || !f.valid() {
		return nil
	}
	return append([]int(nil), territoryTable[m][f]...)
}

func InTerritory(f Faction, m Mode, sq int) bool {
	return validSquare(sq) && m.Valid() && f.valid() && ownerTable[m][sq] == f
}

// OwnerOf returns the faction whose territory contains sq.
func OwnerOf(m Mode, sq int) Faction {
	if !validSquare(sq) || !m.Valid() {
		return NoFaction
	}
	return ownerTable[m][sq]
}

// Paired returns the faction whose territory is f's territory rotated by 180°.
func Paired(m Mode, f Faction) Faction {
	if !m.HasFaction(f) {
		return NoFaction
	}
	switch f {
	case White:
		return Black
	case Black:
		return White
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoFaction
}

// allianceTeam splits alliance mode into the south pair {White, Blue} and the
// north pair {Red, Black}.
func allianceTeam(f Faction) int {
	if f == White || f == Blue {
		return 0
	}
	return 1
}

// Allies reports whether a and b fight on the same side.
func Allies(m Mode, a, b Faction) bool {
	if a == b {
		return true
	}
	if !m.IsAlliance() || !a.valid() || !b.valid() {
		return false
	}
	return allianceTeam(a) == allianceTeam(b)
}

// TeamTerritory is the paired-quadrant set of f's alliance in alliance mode
// and f's own territory otherwise.
func TeamTerritory(f Faction, m Mode) []int {
	if !m.IsAlliance() {
		return Territory(f, m)
	}
	var out []int
	for _, x := range m.Factions() {
		if Allies(m, f, x) {
			out = append(out, territoryTable[m][x]...)
		}
	}
	return out
}
