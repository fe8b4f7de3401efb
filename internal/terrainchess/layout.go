package terrainchess

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Layout is a detached, serializable projection of a board and its terrain.
// Pieces and Terrain are sparse and ordered by square.
type Layout struct {
	Mode    Mode          `json:"mode"`
	Pieces  []PlacedPiece `json:"pieces"`
	Terrain []TerrainTile `json:"terrain"`
	Name    string        `json:"name,omitempty"`
}

type PlacedPiece struct {
	Square  int       `json:"square"`
	Faction Faction   `json:"faction"`
	Type    PieceType `json:"type"`
}

type TerrainTile struct {
	Square  int     `json:"square"`
	Terrain Terrain `json:"terrain"`
}

const (
	// MaxLayoutLen bounds an encoded layout so it fits in a share link.
	MaxLayoutLen = 2048

	maxLayoutName = 64
	layoutVersion = "v1"
)

var (
	modeCodes      = [numModes]string{"ns", "ew", "q4", "a4"}
	legacyModes    = map[string]Mode{"2a": ModeDuelNS, "2b": ModeDuelEW, "ffa": ModeQuadrant, "2v2": ModeAlliance}
	factionLetters = [NumFactions]byte{'w', 'b', 'r', 'u'}
	pieceLetters   = [numPieceTypes]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}
	terrainLetters = [numTerrains]byte{'.', 'f', 's', 'm', 'd'}

	// Identifiers written by older clients: horse, castle, general, soldier.
	legacyPieceLetters = map[byte]PieceType{'h': PieceKnight, 'c': PieceRook, 'g': PieceKing, 's': PiecePawn}
)

// LayoutOf projects the board and terrain of p.
func LayoutOf(p *Position, name string) Layout {
	l := Layout{Mode: p.Mode, Name: name}
	for sq := 0; sq < NumSquares; sq++ {
		if pc := p.Board[sq]; pc != 0 {
			l.Pieces = append(l.Pieces, PlacedPiece{Square: sq, Faction: pc.Faction(), Type: pc.Type()})
		}
		if t := p.Terrain[sq]; t != Flat {
			l.Terrain = append(l.Terrain, TerrainTile{Square: sq, Terrain: t})
		}
	}
	return l
}

// Grids expands the layout into full board and terrain grids.
func (l Layout) Grids() (Board, TerrainGrid) {
	var b Board
	var t TerrainGrid
	for _, pp := range l.Pieces {
		b[pp.Square] = MakePiece(pp.Faction, pp.Type)
	}
	for _, tt := range l.Terrain {
		t[tt.Square] = tt.Terrain
	}
	return b, t
}

func writeCell(sb *strings.Builder, sq int) {
	sb.WriteByte(byte('a' + rowOf(sq)))
	sb.WriteByte(byte('a' + colOf(sq)))
}

func readCell(s string) (int, bool) {
	r, c := int(s[0])-'a', int(s[1])-'a'
	if !onBoard(r, c) {
		return -1, false
	}
	return indexOf(r, c), true
}

func truncateName(s string) string {
	if len(s) <= maxLayoutName {
		return s
	}
	n := maxLayoutName
	for i := 0; i < utf8.UTFMax-1 && n > 0 && !utf8.RuneStart(s[n]); i++ {
		n--
	}
	return s[:n]
}

// EncodeLayout renders l as an opaque string of URL-safe base64 characters
// ([A-Za-z0-9_-], no padding) no longer than MaxLayoutLen. Names are cut to
// 64 bytes.
func EncodeLayout(l Layout) string {
	var sb strings.Builder
	sb.WriteString(layoutVersion)
	sb.WriteByte(';')
	if l.Mode.Valid() {
		sb.WriteString(modeCodes[l.Mode])
	}
	sb.WriteByte(';')
	for _, pp := range l.Pieces {
		if !validSquare(pp.Square) || !pp.Faction.valid() || pp.Type <= PieceNone || pp.Type >= numPieceTypes {
			continue
		}
		writeCell(&sb, pp.Square)
		sb.WriteByte(factionLetters[pp.Faction])
		sb.WriteByte(pieceLetters[pp.Type])
	}
	sb.WriteByte(';')
	for _, tt := range l.Terrain {
		if !validSquare(tt.Square) || tt.Terrain <= Flat || tt.Terrain >= numTerrains {
			continue
		}
		writeCell(&sb, tt.Square)
		sb.WriteByte(terrainLetters[tt.Terrain])
	}
	sb.WriteByte(';')
	sb.WriteString(truncateName(l.Name))
	return base64.RawURLEncoding.EncodeToString([]byte(sb.String()))
}

// DecodeLayout parses a string produced by EncodeLayout. Any malformed input,
// unknown mode or faction foreign to the mode yields ErrInvalidLayout.
func DecodeLayout(s string) (Layout, error) {
	if s == "" || len(s) > MaxLayoutLen {
		return Layout{}, ErrInvalidLayout
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Layout{}, ErrInvalidLayout
	}
	parts := strings.SplitN(string(raw), ";", 5)
	if len(parts) != 5 || parts[0] != layoutVersion {
		return Layout{}, ErrInvalidLayout
	}
	mode, ok := parseModeCode(parts[1])
	if !ok {
		return Layout{}, ErrInvalidLayout
	}
	l := Layout{Mode: mode, Name: parts[4]}

	var seen [NumSquares]bool
	pieces := parts[2]
	if len(pieces)%4 != 0 {
		return Layout{}, ErrInvalidLayout
	}
	for i := 0; i < len(pieces); i += 4 {
		sq, ok := readCell(pieces[i : i+2])
		if !ok || seen[sq] {
			return Layout{}, ErrInvalidLayout
		}
		seen[sq] = true
		f := factionFromLetter(pieces[i+2])
		pt := pieceFromLetter(pieces[i+3])
		if !mode.HasFaction(f) || pt == PieceNone {
			return Layout{}, ErrInvalidLayout
		}
		l.Pieces = append(l.Pieces, PlacedPiece{Square: sq, Faction: f, Type: pt})
	}

	seen = [NumSquares]bool{}
	tiles := parts[3]
	if len(tiles)%3 != 0 {
		return Layout{}, ErrInvalidLayout
	}
	for i := 0; i < len(tiles); i += 3 {
		sq, ok := readCell(tiles[i : i+2])
		if !ok || seen[sq] {
			return Layout{}, ErrInvalidLayout
		}
		seen[sq] = true
		t := terrainFromLetter(tiles[i+2])
		if t == Flat {
			return Layout{}, ErrInvalidLayout
		}
		l.Terrain = append(l.Terrain, TerrainTile{Square: sq, Terrain: t})
	}
	return l, nil
}

func parseModeCode(s string) (Mode, bool) {
	for i, c := range modeCodes {
		if c == s {
			return Mode(i), true
		}
	}
	m, ok := legacyModes[s]
	return m, ok
}

func factionFromLetter(b byte) Faction {
	for i, l := range factionLetters {
		if l == b {
			return Faction(i)
		}
	}
	return NoFaction
}

func pieceFromLetter(b byte) PieceType {
	for i := 1; i < numPieceTypes; i++ {
		if pieceLetters[i] == b {
			return PieceType(i)
		}
	}
	return legacyPieceLetters[b]
}

func terrainFromLetter(b byte) Terrain {
	for i := 1; i < numTerrains; i++ {
		if terrainLetters[i] == b {
			return Terrain(i)
		}
	}
	return Flat
}

// duelSwap maps factions across the transpose between the two duel modes.
var duelSwap = [NumFactions]Faction{White: Blue, Black: Red, Red: Black, Blue: White}

// AdaptLayout converts l to mode to. Between the two duel modes the board is
// transposed and factions are renamed; between the four-faction modes only
// the mode changes. Any other pair is returned unchanged with ok false.
func AdaptLayout(l Layout, to Mode) (Layout, bool) {
	switch {
	case l.Mode == to:
		return l, true
	case l.Mode.IsDuel() && to.IsDuel():
		out := Layout{Mode: to, Name: l.Name}
		b, t := l.Grids()
		var nb Board
		var nt TerrainGrid
		for sq := 0; sq < NumSquares; sq++ {
			dst := indexOf(colOf(sq), rowOf(sq))
			if pc := b[sq]; pc != 0 {
				nb[dst] = MakePiece(duelSwap[pc.Faction()], pc.Type())
			}
			nt[dst] = t[sq]
		}
		p := Position{Mode: to, Board: nb, Terrain: nt}
		adapted := LayoutOf(&p, l.Name)
		out.Pieces, out.Terrain = adapted.Pieces, adapted.Terrain
		return out, true
	case l.Mode.IsFourFaction() && to.IsFourFaction():
		out := l
		out.Mode = to
		return out, true
	}
	return l, false
}
