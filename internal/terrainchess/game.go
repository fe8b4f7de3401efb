package terrainchess

import (
	"fmt"
	"math/rand"
)

// Rand is the random source used by the deployment generators. A seeded
// *rand.Rand satisfies it and makes generation reproducible.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// SeedSource supplies encoded layouts for the Chi-garden overlay.
type SeedSource interface {
	Seeds() []string
}

// SeedList is a fixed SeedSource.
type SeedList []string

func (s SeedList) Seeds() []string { return s }

// Actor is the caller of an arrangement move. Without ArrangeAll it may only
// arrange its own territory.
type Actor struct {
	Faction    Faction
	ArrangeAll bool
}

// Game is the canonical state of one match. It is not safe for concurrent
// use: the embedding layer must serialize every call per match.
type Game struct {
	pos        Position
	order      []Faction
	phase      Phase
	turn       Faction
	inventory  [NumFactions]Army
	terrainInv [NumFactions]TerrainStock
	ready      [NumFactions]bool
	capturedBy [NumFactions][]Piece
	history    []Outcome
	passes     int
	draw       bool
	rng        Rand
	seeds      SeedSource
}

// NewGame starts a match in setup with every faction of mode m.
// A nil rng falls back to a fixed seed.
func NewGame(m Mode, rng Rand) *Game {
	g := &Game{rng: rng}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	g.reset(m, m.Factions())
	return g
}

// NewGameWithFactions starts a match with a subset of the mode's factions,
// e.g. a three-faction quadrant game. Order follows the mode.
func NewGameWithFactions(m Mode, factions []Faction, rng Rand) (*Game, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown mode %d", m)
	}
	var picked []Faction
	for _, f := range m.Factions() {
		for _, want := range factions {
			if want == f {
				picked = append(picked, f)
				break
			}
		}
	}
	if len(picked) != len(factions) || len(picked) < 2 {
		return nil, fmt.Errorf("factions %v do not fit mode %s", factions, m)
	}
	g := NewGame(m, rng)
	g.reset(m, picked)
	return g, nil
}

func (g *Game) reset(m Mode, factions []Faction) {
	g.pos = Position{Mode: m, Active: append([]Faction(nil), factions...)}
	g.order = append([]Faction(nil), factions...)
	g.phase = PhaseSetup
	g.turn = NoFaction
	g.history = nil
	g.passes = 0
	g.draw = false
	for f := Faction(0); f < NumFactions; f++ {
		g.inventory[f] = Army{}
		g.terrainInv[f] = TerrainStock{}
		g.ready[f] = false
		g.capturedBy[f] = nil
	}
	for _, f := range factions {
		g.inventory[f] = DefaultArmy()
		g.terrainInv[f] = m.TerrainAllowance()
	}
}

// SetSeedSource installs the layout library used by ApplyChiGarden.
func (g *Game) SetSeedSource(s SeedSource) { g.seeds = s }

func (g *Game) Mode() Mode   { return g.pos.Mode }
func (g *Game) Phase() Phase { return g.phase }

// Turn is the faction to move; NoFaction outside combat.
func (g *Game) Turn() Faction { return g.turn }

func (g *Game) Active() []Faction { return append([]Faction(nil), g.pos.Active...) }

func (g *Game) IsActive(f Faction) bool { return g.pos.isActive(f) }

func (g *Game) IsReady(f Faction) bool { return f.valid() && g.ready[f] }

func (g *Game) Inventory(f Faction) Army {
	if !f.valid() {
		return Army{}
	}
	return g.inventory[f]
}

func (g *Game) TerrainInventory(f Faction) TerrainStock {
	if !f.valid() {
		return TerrainStock{}
	}
	return g.terrainInv[f]
}

func (g *Game) CapturedBy(f Faction) []Piece {
	if !f.valid() {
		return nil
	}
	return append([]Piece(nil), g.capturedBy[f]...)
}

// Score sums the value of the pieces f has captured.
func (g *Game) Score(f Faction) int {
	n := 0
	for _, pc := range g.CapturedBy(f) {
		n += pc.Type().Value()
	}
	return n
}

func (g *Game) PieceAt(sq int) Piece {
	if !validSquare(sq) {
		return 0
	}
	return g.pos.Board[sq]
}

func (g *Game) TerrainAt(sq int) Terrain {
	if !validSquare(sq) {
		return Flat
	}
	return g.pos.Terrain[sq]
}

// Position returns a copy of the board-level state.
func (g *Game) Position() *Position { return g.pos.Clone() }

// History lists the outcome of every accepted combat move.
func (g *Game) History() []Outcome { return append([]Outcome(nil), g.history...) }

// Winners returns the factions left standing once the match is finished:
// a single faction, or the surviving alliance. Empty on a draw.
func (g *Game) Winners() []Faction {
	if g.phase != PhaseFinished || g.draw {
		return nil
	}
	return g.Active()
}

// Winner returns the winning faction when exactly one is left.
func (g *Game) Winner() (Faction, bool) {
	w := g.Winners()
	if len(w) == 0 {
		return NoFaction, false
	}
	return w[0], true
}

// IsDraw reports a finished match in which no faction could move.
func (g *Game) IsDraw() bool { return g.phase == PhaseFinished && g.draw }

// Layout projects the current board and terrain.
func (g *Game) Layout(name string) Layout { return LayoutOf(&g.pos, name) }

func (g *Game) requireSetup() error {
	if g.phase != PhaseSetup {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
	}
	return nil
}

func (g *Game) requireActive(f Faction) error {
	if !g.pos.isActive(f) {
		return fmt.Errorf("%w: %s", ErrUnknownFaction, f)
	}
	return nil
}

// authorize gates an arrangement move to setup and to the actor's own
// territory unless it arranges for all.
func (g *Game) authorize(a Actor, targets []Faction) error {
	if err := g.requireSetup(); err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("%w: no target", ErrUnknownFaction)
	}
	if !a.ArrangeAll {
		if err := g.requireActive(a.Faction); err != nil {
			return err
		}
	}
	for _, t := range targets {
		if err := g.requireActive(t); err != nil {
			return err
		}
		if !a.ArrangeAll && t != a.Faction {
			return fmt.Errorf("%w: %s arranging %s", ErrForbidden, a.Faction, t)
		}
	}
	return nil
}

// SetMode switches the match to mode m and restarts setup from scratch.
// Changing mode touches every faction, so only ArrangeAll may do it.
func (g *Game) SetMode(a Actor, m Mode) error {
	if err := g.requireSetup(); err != nil {
		return err
	}
	if !m.Valid() {
		return fmt.Errorf("%w: unknown mode %d", ErrIllegalMove, m)
	}
	if !a.ArrangeAll {
		return fmt.Errorf("%w: changing mode", ErrForbidden)
	}
	g.reset(m, m.Factions())
	return nil
}
