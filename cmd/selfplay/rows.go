package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"terrainchess/internal/terrainchess"
)

// MoveRow is one accepted combat move of a selfplay match.
type MoveRow struct {
	GameID      string   `parquet:"game_id,dict"`
	Mode        string   `parquet:"mode,dict"`
	Seed        int64    `parquet:"seed"`
	Ply         int32    `parquet:"ply"`
	Faction     string   `parquet:"faction,dict"`
	Piece       string   `parquet:"piece,dict"`
	From        int32    `parquet:"from"`
	To          int32    `parquet:"to"`
	LegalMoves  int32    `parquet:"legal_moves"`
	Captured    string   `parquet:"captured,dict"`
	Promoted    bool     `parquet:"promoted"`
	Stranded    int32    `parquet:"stranded"`
	Eliminated  []string `parquet:"eliminated"`
	Fingerprint int64    `parquet:"fingerprint"`
}

func writeRows(outDir string, mode terrainchess.Mode, results []playout) (string, error) {
	var rows []MoveRow
	for _, r := range results {
		rows = append(rows, r.Rows...)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("selfplay_%s_%d.parquet", mode, time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := finalPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "selfplay_move_v1"),
		parquet.KeyValueMetadata("mode", mode.String()),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return finalPath, nil
}
