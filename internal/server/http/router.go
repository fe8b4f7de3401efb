package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// NewRouter mounts the API, the health check and, when webDir is set, the
// static client and share links.
func NewRouter(h *Handler, webDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealth)

	mux.HandleFunc("POST /api/new_game", h.handleNewGame)
	mux.HandleFunc("POST /api/state", h.handleState)
	mux.HandleFunc("POST /api/place_piece", h.handlePlacePiece)
	mux.HandleFunc("POST /api/place_terrain", h.handlePlaceTerrain)
	mux.HandleFunc("POST /api/ready", h.handleReady)
	mux.HandleFunc("POST /api/move", h.handleMove)
	mux.HandleFunc("POST /api/set_mode", h.handleSetMode)
	mux.HandleFunc("POST /api/mirror", h.handleMirror)
	mux.HandleFunc("POST /api/randomize_terrain", h.arrange(randomizeTerrain))
	mux.HandleFunc("POST /api/randomize_units", h.arrange(randomizeUnits))
	mux.HandleFunc("POST /api/classical", h.arrange(setFormation))
	mux.HandleFunc("POST /api/chi_garden", h.arrange(applyChiGarden))
	mux.HandleFunc("GET /api/seeds", h.handleListSeeds)
	mux.HandleFunc("POST /api/seeds", h.handleSaveSeed)
	mux.HandleFunc("POST /api/layout/decode", h.handleDecodeLayout)

	if webDir != "" {
		RegisterStaticRoutes(mux, webDir)
	}
	return logRequests(h.log, mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"dur", time.Since(start),
		)
	})
}
