package httpserver

import (
	"terrainchess/internal/server/game"
	"terrainchess/internal/terrainchess"
)

// MoveDTO addresses squares as row*12+col.
type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ActorDTO is who is arranging: a faction, or arrange_all for a host.
type ActorDTO struct {
	Faction    string `json:"faction"`
	ArrangeAll bool   `json:"arrange_all"`
}

type NewGameRequest struct {
	Mode     string   `json:"mode"`
	Seed     int64    `json:"seed"`
	Factions []string `json:"factions"`
}

type StateRequest struct {
	MatchID string `json:"match_id"`
}

type PlacePieceRequest struct {
	MatchID string `json:"match_id"`
	Faction string `json:"faction"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Piece   string `json:"piece"` // "" or "none" lifts the unit
}

type PlaceTerrainRequest struct {
	MatchID string `json:"match_id"`
	Faction string `json:"faction"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Terrain string `json:"terrain"`
}

type ReadyRequest struct {
	MatchID string `json:"match_id"`
	Faction string `json:"faction"`
}

type MoveRequest struct {
	MatchID string  `json:"match_id"`
	Faction string  `json:"faction,omitempty"`
	Move    MoveDTO `json:"move"`
}

// ArrangeRequest drives the deployment generators. Override only applies to
// randomize_terrain, Formation only to classical.
type ArrangeRequest struct {
	MatchID   string   `json:"match_id"`
	Actor     ActorDTO `json:"actor"`
	Factions  []string `json:"factions"`
	Override  int      `json:"override,omitempty"`
	Formation string   `json:"formation,omitempty"`
}

type SetModeRequest struct {
	MatchID string   `json:"match_id"`
	Actor   ActorDTO `json:"actor"`
	Mode    string   `json:"mode"`
}

type MirrorRequest struct {
	MatchID string   `json:"match_id"`
	Actor   ActorDTO `json:"actor"`
	Faction string   `json:"faction"`
}

// SaveSeedRequest stores either an encoded layout or the current board of a
// match.
type SaveSeedRequest struct {
	Layout  string `json:"layout,omitempty"`
	MatchID string `json:"match_id,omitempty"`
	Name    string `json:"name,omitempty"`
}

type DecodeLayoutRequest struct {
	Layout string `json:"layout"`
}

type CellDTO struct {
	Square  int    `json:"square"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Faction string `json:"faction,omitempty"`
	Piece   string `json:"piece,omitempty"`
	Terrain string `json:"terrain,omitempty"`
}

type OutcomeDTO struct {
	Move       MoveDTO  `json:"move"`
	Mover      string   `json:"mover"`
	Captured   string   `json:"captured,omitempty"`
	Promoted   bool     `json:"promoted,omitempty"`
	Stranded   []int    `json:"stranded,omitempty"`
	Eliminated []string `json:"eliminated,omitempty"`
}

type StateResponse struct {
	MatchID          string                    `json:"match_id"`
	Seed             int64                     `json:"seed"`
	Mode             string                    `json:"mode"`
	Phase            string                    `json:"phase"`
	Turn             string                    `json:"turn,omitempty"`
	Active           []string                  `json:"active"`
	Ready            []string                  `json:"ready"`
	Winners          []string                  `json:"winners,omitempty"`
	Draw             bool                      `json:"draw,omitempty"`
	Cells            []CellDTO                 `json:"cells"`
	Layout           string                    `json:"layout"`
	Inventory        map[string]map[string]int `json:"inventory"`
	TerrainInventory map[string]map[string]int `json:"terrain_inventory"`
	Scores           map[string]int            `json:"scores"`
	LegalMoves       []MoveDTO                 `json:"legal_moves"`
	LastMove         *OutcomeDTO               `json:"last_move,omitempty"`
}

type LayoutResponse struct {
	Mode        string    `json:"mode"`
	Name        string    `json:"name,omitempty"`
	Cells       []CellDTO `json:"cells"`
	Fingerprint uint64    `json:"fingerprint,string"`
}

type SeedResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Mode      string `json:"mode"`
	Layout    string `json:"layout"`
	CreatedAt string `json:"created_at"`
	Created   bool   `json:"created,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func moveToDTO(m terrainchess.Move) MoveDTO {
	return MoveDTO{From: m.From, To: m.To}
}

func movesToDTO(ms []terrainchess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func factionNames(fs []terrainchess.Faction) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}

func cellsOf(board terrainchess.Board, terrain terrainchess.TerrainGrid) []CellDTO {
	var out []CellDTO
	for sq := 0; sq < terrainchess.NumSquares; sq++ {
		pc, t := board[sq], terrain[sq]
		if pc == 0 && t == terrainchess.Flat {
			continue
		}
		row, col := terrainchess.Coords(sq)
		c := CellDTO{Square: sq, Row: row, Col: col}
		if pc != 0 {
			c.Faction = pc.Faction().String()
			c.Piece = pc.Type().String()
		}
		if t != terrainchess.Flat {
			c.Terrain = t.String()
		}
		out = append(out, c)
	}
	return out
}

func outcomeToDTO(o terrainchess.Outcome) *OutcomeDTO {
	dto := &OutcomeDTO{
		Move:       moveToDTO(o.Move),
		Mover:      o.Mover.String(),
		Promoted:   o.Promoted,
		Stranded:   o.Stranded,
		Eliminated: factionNames(o.Eliminated),
	}
	if o.Captured != 0 {
		dto.Captured = o.Captured.String()
	}
	return dto
}

func stateOf(st *game.MatchState) StateResponse {
	g := st.Game
	pos := g.Position()
	resp := StateResponse{
		MatchID:          st.ID,
		Seed:             st.Seed,
		Mode:             g.Mode().String(),
		Phase:            g.Phase().String(),
		Active:           factionNames(g.Active()),
		Ready:            []string{},
		Winners:          factionNames(g.Winners()),
		Draw:             g.IsDraw(),
		Cells:            cellsOf(pos.Board, pos.Terrain),
		Layout:           terrainchess.EncodeLayout(g.Layout("")),
		Inventory:        make(map[string]map[string]int),
		TerrainInventory: make(map[string]map[string]int),
		Scores:           make(map[string]int),
		LegalMoves:       movesToDTO(g.AllLegalMoves()),
	}
	if t := g.Turn(); t != terrainchess.NoFaction {
		resp.Turn = t.String()
	}
	for _, f := range g.Active() {
		if g.IsReady(f) {
			resp.Ready = append(resp.Ready, f.String())
		}
		army := make(map[string]int)
		for pt, n := range g.Inventory(f) {
			if n > 0 {
				army[terrainchess.PieceType(pt).String()] = n
			}
		}
		resp.Inventory[f.String()] = army
		stock := make(map[string]int)
		for t, n := range g.TerrainInventory(f) {
			if n > 0 {
				stock[terrainchess.Terrain(t).String()] = n
			}
		}
		resp.TerrainInventory[f.String()] = stock
	}
	for _, f := range g.Mode().Factions() {
		if s := g.Score(f); s > 0 {
			resp.Scores[f.String()] = s
		}
	}
	if h := g.History(); len(h) > 0 {
		resp.LastMove = outcomeToDTO(h[len(h)-1])
	}
	return resp
}
