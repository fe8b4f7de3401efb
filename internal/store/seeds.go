// Package store keeps the seed library: named layouts that the Chi-garden
// overlay draws from.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"terrainchess/internal/terrainchess"
)

var ErrNotFound = errors.New("seed not found")

// Seed is one stored layout. Encoded is the EncodeLayout form.
type Seed struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Mode        terrainchess.Mode `json:"mode"`
	Encoded     string            `json:"encoded"`
	Fingerprint uint64            `json:"fingerprint,string"`
	CreatedAt   time.Time         `json:"created_at"`
}

type Seeds struct {
	db *sql.DB
}

// Open opens (and creates if needed) the seed library at path.
func Open(path string) (*Seeds, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; the pragmas below are per connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS seeds (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			mode INTEGER NOT NULL,
			encoded TEXT NOT NULL,
			fingerprint INTEGER NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS seeds_mode ON seeds(mode, created_at)`,
	} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create table: %w", err)
		}
	}

	return &Seeds{db: db}, nil
}

func (s *Seeds) Close() error { return s.db.Close() }

// Save stores l under a fresh id. A layout whose fingerprint is already in
// the library is not stored twice: the existing seed is returned with
// created false.
func (s *Seeds) Save(ctx context.Context, l terrainchess.Layout) (seed Seed, created bool, err error) {
	fp := l.Fingerprint()
	seed = Seed{
		ID:          uuid.NewString(),
		Name:        l.Name,
		Mode:        l.Mode,
		Encoded:     terrainchess.EncodeLayout(l),
		Fingerprint: fp,
		CreatedAt:   time.Now().UTC(),
	}
	// Names longer than the codec allows are cut on encode; keep them in sync.
	if dec, err := terrainchess.DecodeLayout(seed.Encoded); err == nil {
		seed.Name = dec.Name
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO seeds (id, name, mode, encoded, fingerprint, created_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING`,
		seed.ID, seed.Name, int(seed.Mode), seed.Encoded, int64(fp), seed.CreatedAt.UnixNano(),
	)
	if err != nil {
		return Seed{}, false, fmt.Errorf("insert seed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Seed{}, false, fmt.Errorf("insert seed: %w", err)
	}
	if n == 1 {
		return seed, true, nil
	}
	existing, err := s.byFingerprint(ctx, fp)
	if err != nil {
		return Seed{}, false, err
	}
	return existing, false, nil
}

// SaveEncoded validates an encoded layout before storing it.
func (s *Seeds) SaveEncoded(ctx context.Context, encoded string) (Seed, bool, error) {
	l, err := terrainchess.DecodeLayout(encoded)
	if err != nil {
		return Seed{}, false, err
	}
	return s.Save(ctx, l)
}

const seedColumns = `id, name, mode, encoded, fingerprint, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSeed(sc scanner) (Seed, error) {
	var (
		seed    Seed
		mode    int
		fp      int64
		created int64
	)
	if err := sc.Scan(&seed.ID, &seed.Name, &mode, &seed.Encoded, &fp, &created); err != nil {
		return Seed{}, err
	}
	seed.Mode = terrainchess.Mode(mode)
	seed.Fingerprint = uint64(fp)
	seed.CreatedAt = time.Unix(0, created).UTC()
	return seed, nil
}

func (s *Seeds) byFingerprint(ctx context.Context, fp uint64) (Seed, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seedColumns+` FROM seeds WHERE fingerprint = ?`, int64(fp))
	seed, err := scanSeed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Seed{}, ErrNotFound
	}
	if err != nil {
		return Seed{}, fmt.Errorf("query seed: %w", err)
	}
	return seed, nil
}

func (s *Seeds) Get(ctx context.Context, id string) (Seed, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seedColumns+` FROM seeds WHERE id = ?`, id)
	seed, err := scanSeed(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Seed{}, ErrNotFound
	}
	if err != nil {
		return Seed{}, fmt.Errorf("query seed: %w", err)
	}
	return seed, nil
}

func (s *Seeds) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM seeds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete seed: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the newest seeds first, at most limit of them (all when
// limit <= 0).
func (s *Seeds) List(ctx context.Context, limit int) ([]Seed, error) {
	q := `SELECT ` + seedColumns + ` FROM seeds ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	defer rows.Close()

	var out []Seed
	for rows.Next() {
		seed, err := scanSeed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seed: %w", err)
		}
		out = append(out, seed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list seeds: %w", err)
	}
	return out, nil
}

// Encoded returns the encoded form of the newest limit seeds.
func (s *Seeds) Encoded(ctx context.Context, limit int) ([]string, error) {
	seeds, err := s.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(seeds))
	for i, seed := range seeds {
		out[i] = seed.Encoded
	}
	return out, nil
}
