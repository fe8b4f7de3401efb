package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"terrainchess/internal/server/game"
	httpserver "terrainchess/internal/server/http"
	"terrainchess/internal/store"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // headless hosts have no browser
}

type config struct {
	Addr      string
	DBPath    string
	WebDir    string
	SeedLimit int
	Idle      time.Duration
	Open      bool
}

func main() {
	// Flags (env fallbacks).
	var cfg config
	flag.StringVar(&cfg.Addr, "addr", getenv("TCHESS_ADDR", ":2888"), "listen address")
	flag.StringVar(&cfg.DBPath, "db", getenv("TCHESS_DB", "seeds.db"), "sqlite seed library; empty disables it")
	flag.StringVar(&cfg.WebDir, "web", getenv("TCHESS_WEB", ""), "directory with the browser client; empty serves the API only")
	logLevel := flag.String("log-level", getenv("TCHESS_LOG_LEVEL", "info"), "debug, info, warn or error")
	flag.IntVar(&cfg.SeedLimit, "seed-limit", getenvInt("TCHESS_SEED_LIMIT", 256), "newest seeds offered to the Chi-garden overlay (0 = all)")
	flag.DurationVar(&cfg.Idle, "idle", 6*time.Hour, "drop matches untouched for this long")
	flag.BoolVar(&cfg.Open, "open", false, "open the client in a browser once listening")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, cfg); err != nil {
		log.Error("terrainchess-local", "err", err)
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails. The seed library
// is closed on every return path.
func run(ctx context.Context, log *slog.Logger, cfg config) error {
	cache := game.NewSeedCache(nil)
	opts := httpserver.Options{
		Manager:   game.NewManager(cache),
		Cache:     cache,
		SeedLimit: cfg.SeedLimit,
		Logger:    log,
	}
	if cfg.DBPath != "" {
		seeds, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("seed library %s: %w", cfg.DBPath, err)
		}
		defer seeds.Close()
		opts.Seeds = seeds
	}

	h := httpserver.NewHandler(opts)
	if err := h.RefreshSeeds(ctx); err != nil {
		return fmt.Errorf("load seeds: %w", err)
	}
	log.Info("seed library ready", "path", cfg.DBPath, "seeds", cache.Len())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewRouter(h, cfg.WebDir),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go sweep(ctx, log, opts.Manager, cfg.Idle)

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "web", cfg.WebDir)
		errc <- srv.ListenAndServe()
	}()

	if cfg.Open && cfg.WebDir != "" {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Addr + "/web/")
		}()
	}

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func sweep(ctx context.Context, log *slog.Logger, m *game.Manager, idle time.Duration) {
	if idle <= 0 {
		return
	}
	t := time.NewTicker(idle / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(idle); n > 0 {
				log.Info("dropped idle matches", "count", n, "left", m.Len())
			}
		}
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
