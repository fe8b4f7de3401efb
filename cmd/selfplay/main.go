package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"terrainchess/internal/terrainchess"
)

func main() {
	games := flag.Int("games", 16, "number of matches to play")
	modeName := flag.String("mode", "duel-ns", "duel-ns, duel-ew, quadrant or alliance")
	workers := flag.Int("workers", runtime.NumCPU(), "matches played concurrently")
	maxPlies := flag.Int("max-plies", 400, "stop a match after this many moves")
	seed := flag.Int64("seed", 1, "seed of the first match; match i uses seed+i")
	outDir := flag.String("out", "selfplay_out", "directory for the parquet file; empty skips writing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mode, ok := terrainchess.ParseMode(*modeName)
	if !ok {
		log.Error("unknown mode", "mode", *modeName)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results := make([]playout, *games)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(1, *workers))
	for i := range results {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := play(mode, *seed+int64(i), *maxPlies)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error("selfplay aborted", "err", err)
		os.Exit(1)
	}

	sum := summarize(results)
	log.Info("selfplay finished",
		"mode", mode,
		"games", len(results),
		"plies", sum.Plies,
		"draws", sum.Draws,
		"unfinished", sum.Unfinished,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	for _, f := range mode.Factions() {
		fmt.Printf("%-6s wins: %d\n", f, sum.Wins[f])
	}

	if *outDir == "" {
		return
	}
	path, err := writeRows(*outDir, mode, results)
	if err != nil {
		log.Error("write parquet", "err", err)
		os.Exit(1)
	}
	log.Info("rows written", "path", path)
}
