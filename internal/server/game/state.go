package game

import (
	"sync"
	"time"

	"terrainchess/internal/terrainchess"
)

// MatchState is one hosted match. The engine is single-writer, so every
// access to Game goes through Manager.Do, which holds mu.
type MatchState struct {
	mu sync.Mutex

	ID        string
	Seed      int64
	Game      *terrainchess.Game
	CreatedAt time.Time
	UpdatedAt time.Time
}
