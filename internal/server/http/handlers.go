package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"terrainchess/internal/server/game"
	"terrainchess/internal/store"
	"terrainchess/internal/terrainchess"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// SeedStore is the seed library behind /api/seeds.
type SeedStore interface {
	Save(ctx context.Context, l terrainchess.Layout) (store.Seed, bool, error)
	List(ctx context.Context, limit int) ([]store.Seed, error)
	Encoded(ctx context.Context, limit int) ([]string, error)
}

type Options struct {
	Manager *game.Manager
	// Seeds and Cache are optional; without them /api/seeds answers 503.
	Seeds     SeedStore
	Cache     *game.SeedCache
	SeedLimit int
	Logger    *slog.Logger
}

// Handler serves the /api/* routes.
type Handler struct {
	matches   *game.Manager
	seeds     SeedStore
	cache     *game.SeedCache
	seedLimit int
	log       *slog.Logger
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		matches:   opts.Manager,
		seeds:     opts.Seeds,
		cache:     opts.Cache,
		seedLimit: opts.SeedLimit,
		log:       opts.Logger,
	}
	if h.matches == nil {
		h.matches = game.NewManager(opts.Cache)
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// RefreshSeeds reloads the Chi-garden cache from the seed library.
func (h *Handler) RefreshSeeds(ctx context.Context) error {
	if h.seeds == nil || h.cache == nil {
		return nil
	}
	enc, err := h.seeds.Encoded(ctx, h.seedLimit)
	if err != nil {
		return err
	}
	h.cache.Replace(enc)
	return nil
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"matches": h.matches.Len(),
	})
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	mode := terrainchess.ModeDuelNS
	if req.Mode != "" {
		m, ok := terrainchess.ParseMode(req.Mode)
		if !ok {
			h.fail(w, r, badRequest("unknown mode %q", req.Mode))
			return
		}
		mode = m
	}
	factions, err := parseFactions(req.Factions)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	st, err := h.matches.NewMatch(game.NewMatchOptions{Mode: mode, Seed: req.Seed, Factions: factions})
	if err != nil {
		h.fail(w, r, badRequest("%v", err))
		return
	}
	h.log.Info("match created", "match", st.ID, "mode", mode, "seed", st.Seed)
	h.respondState(w, r, st.ID, nil)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, nil)
}

func (h *Handler) handlePlacePiece(w http.ResponseWriter, r *http.Request) {
	var req PlacePieceRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
		f, err := parseFaction(req.Faction)
		if err != nil {
			return err
		}
		pt, ok := terrainchess.ParsePieceType(req.Piece)
		if !ok {
			return badRequest("unknown piece %q", req.Piece)
		}
		return g.PlacePiece(f, req.Row, req.Col, pt)
	})
}

func (h *Handler) handlePlaceTerrain(w http.ResponseWriter, r *http.Request) {
	var req PlaceTerrainRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
		f, err := parseFaction(req.Faction)
		if err != nil {
			return err
		}
		t, ok := terrainchess.ParseTerrain(req.Terrain)
		if !ok {
			return badRequest("unknown terrain %q", req.Terrain)
		}
		return g.PlaceTerrain(f, req.Row, req.Col, t)
	})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	var req ReadyRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
		f, err := parseFaction(req.Faction)
		if err != nil {
			return err
		}
		return g.Ready(f)
	})
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
		if req.Faction == "" {
			return g.MovePiece(req.Move.From, req.Move.To)
		}
		f, err := parseFaction(req.Faction)
		if err != nil {
			return err
		}
		return g.MovePieceAs(f, req.Move.From, req.Move.To)
	})
}

func (h *Handler) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req SetModeRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
		a, err := parseActor(req.Actor)
		if err != nil {
			return err
		}
		m, ok := terrainchess.ParseMode(req.Mode)
		if !ok {
			return badRequest("unknown mode %q", req.Mode)
		}
		return g.SetMode(a, m)
	})
}

func (h *Handler) handleMirror(w http.ResponseWriter, r *http.Request) {
	var req MirrorRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
		a, err := parseActor(req.Actor)
		if err != nil {
			return err
		}
		f, err := parseFaction(req.Faction)
		if err != nil {
			return err
		}
		return g.MirrorBoard(a, f)
	})
}

// arrange wraps the deployment generators that share ArrangeRequest. An
// empty faction list targets the actor's own faction, or every faction for
// arrange_all.
func (h *Handler) arrange(run func(g *terrainchess.Game, a terrainchess.Actor, fs []terrainchess.Faction, req ArrangeRequest) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ArrangeRequest
		if !h.decode(w, r, &req) {
			return
		}
		h.respondState(w, r, req.MatchID, func(g *terrainchess.Game) error {
			a, err := parseActor(req.Actor)
			if err != nil {
				return err
			}
			fs, err := parseFactions(req.Factions)
			if err != nil {
				return err
			}
			if len(fs) == 0 {
				if a.ArrangeAll {
					fs = g.Active()
				} else {
					fs = []terrainchess.Faction{a.Faction}
				}
			}
			return run(g, a, fs, req)
		})
	}
}

func randomizeTerrain(g *terrainchess.Game, a terrainchess.Actor, fs []terrainchess.Faction, req ArrangeRequest) error {
	return g.RandomizeTerrain(a, fs, req.Override)
}

func randomizeUnits(g *terrainchess.Game, a terrainchess.Actor, fs []terrainchess.Faction, _ ArrangeRequest) error {
	return g.RandomizeUnits(a, fs)
}

func setFormation(g *terrainchess.Game, a terrainchess.Actor, fs []terrainchess.Faction, req ArrangeRequest) error {
	if req.Formation == "" {
		return g.SetClassicalFormation(a, fs)
	}
	fm, ok := terrainchess.FormationByName(req.Formation)
	if !ok {
		return badRequest("unknown formation %q", req.Formation)
	}
	return g.SetFormation(a, fs, fm)
}

func applyChiGarden(g *terrainchess.Game, a terrainchess.Actor, fs []terrainchess.Faction, _ ArrangeRequest) error {
	return g.ApplyChiGarden(a, fs)
}

func (h *Handler) handleListSeeds(w http.ResponseWriter, r *http.Request) {
	if h.seeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "seed library disabled"})
		return
	}
	seeds, err := h.seeds.List(r.Context(), h.seedLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]SeedResponse, len(seeds))
	for i, s := range seeds {
		out[i] = seedToDTO(s, false)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleSaveSeed(w http.ResponseWriter, r *http.Request) {
	if h.seeds == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "seed library disabled"})
		return
	}
	var req SaveSeedRequest
	if !h.decode(w, r, &req) {
		return
	}

	var l terrainchess.Layout
	switch {
	case req.Layout != "":
		dec, err := terrainchess.DecodeLayout(req.Layout)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		l = dec
	case req.MatchID != "":
		err := h.matches.Do(req.MatchID, func(st *game.MatchState) error {
			l = st.Game.Layout("")
			return nil
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
	default:
		h.fail(w, r, badRequest("layout or match_id required"))
		return
	}
	if req.Name != "" {
		l.Name = req.Name
	}

	seed, created, err := h.seeds.Save(r.Context(), l)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if created {
		if err := h.RefreshSeeds(r.Context()); err != nil {
			h.log.Warn("refresh seed cache", "err", err)
		}
		h.log.Info("seed saved", "seed", seed.ID, "mode", seed.Mode)
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, seedToDTO(seed, created))
}

func (h *Handler) handleDecodeLayout(w http.ResponseWriter, r *http.Request) {
	var req DecodeLayoutRequest
	if !h.decode(w, r, &req) {
		return
	}
	l, err := terrainchess.DecodeLayout(req.Layout)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, t := l.Grids()
	writeJSON(w, http.StatusOK, LayoutResponse{
		Mode:        l.Mode.String(),
		Name:        l.Name,
		Cells:       cellsOf(b, t),
		Fingerprint: l.Fingerprint(),
	})
}

func seedToDTO(s store.Seed, created bool) SeedResponse {
	return SeedResponse{
		ID:        s.ID,
		Name:      s.Name,
		Mode:      s.Mode.String(),
		Layout:    s.Encoded,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		Created:   created,
	}
}

// respondState runs mutate (if any) under the match lock and answers with
// the resulting state.
func (h *Handler) respondState(w http.ResponseWriter, r *http.Request, id string, mutate func(g *terrainchess.Game) error) {
	var resp StateResponse
	err := h.matches.Do(id, func(st *game.MatchState) error {
		if mutate != nil {
			if err := mutate(st.Game); err != nil {
				return err
			}
		}
		resp = stateOf(st)
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.fail(w, r, badRequest("bad json: %v", err))
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		h.log.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, terrainchess.ErrInvalidLayout):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrMatchNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, terrainchess.ErrRejected):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writeJSON", "err", err)
	}
}

func parseFaction(s string) (terrainchess.Faction, error) {
	f, ok := terrainchess.ParseFaction(strings.TrimSpace(s))
	if !ok {
		return terrainchess.NoFaction, badRequest("unknown faction %q", s)
	}
	return f, nil
}

func parseFactions(ss []string) ([]terrainchess.Faction, error) {
	out := make([]terrainchess.Faction, 0, len(ss))
	for _, s := range ss {
		f, err := parseFaction(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func parseActor(a ActorDTO) (terrainchess.Actor, error) {
	if a.ArrangeAll {
		return terrainchess.Actor{Faction: terrainchess.NoFaction, ArrangeAll: true}, nil
	}
	f, err := parseFaction(a.Faction)
	if err != nil {
		return terrainchess.Actor{}, err
	}
	return terrainchess.Actor{Faction: f}, nil
}
