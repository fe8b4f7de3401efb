package httpserver

import (
	"net/http"
	"net/url"

	"terrainchess/internal/terrainchess"
)

// RegisterStaticRoutes mounts:
// - /web/*           -> the browser client
// - /share/{layout}  -> opens the client on a shared layout
// - /                -> redirect to /web/
func RegisterStaticRoutes(mux *http.ServeMux, webDir string) {
	if mux == nil {
		return
	}
	if webDir == "" {
		webDir = "."
	}

	mux.Handle("GET /web/", http.StripPrefix("/web/", http.FileServer(http.Dir(webDir))))

	mux.HandleFunc("GET /share/{layout}", func(w http.ResponseWriter, r *http.Request) {
		code := r.PathValue("layout")
		if _, err := terrainchess.DecodeLayout(code); err != nil {
			http.Error(w, "invalid layout", http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/web/?layout="+url.QueryEscape(code), http.StatusFound)
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
	mux.HandleFunc("GET /web", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/web/", http.StatusFound)
	})
}
