// Package history persists dealt hands to SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/handrank/internal/dealer"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS deals (
	id           TEXT PRIMARY KEY,
	dealt_at     INTEGER NOT NULL,
	players      INTEGER NOT NULL,
	best_rank    INTEGER NOT NULL,
	best_hand    TEXT NOT NULL,
	payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS deals_dealt_at ON deals (dealt_at);
`

// Record is a stored deal with its indexed summary columns.
type Record struct {
	ID       string       `json:"id"`
	DealtAt  time.Time    `json:"dealt_at"`
	Players  int          `json:"players"`
	BestRank int          `json:"best_rank"`
	BestHand string       `json:"best_hand"`
	Deal     *dealer.Deal `json:"deal"`
}

// Store is a deal history backed by a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	// SQLite allows one writer; a single connection avoids "database is locked".
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores a deal. Recording the same deal twice is an error.
func (s *Store) Record(ctx context.Context, deal *dealer.Deal) error {
	if len(deal.Hands) == 0 || len(deal.Winners) == 0 {
		return fmt.Errorf("deal %s has no hands", deal.ID)
	}
	payload, err := json.Marshal(deal)
	if err != nil {
		return fmt.Errorf("failed to encode deal: %w", err)
	}

	best := deal.Hands[deal.Winners[0]]
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deals (id, dealt_at, players, best_rank, best_hand, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.DealtAt.UnixNano(), len(deal.Hands), int(best.Rank), best.Description, string(payload))
	if err != nil {
		return fmt.Errorf("failed to record deal %s: %w", deal.ID, err)
	}
	return nil
}

// Recent returns up to limit deals, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dealt_at, players, best_rank, best_hand, payload FROM deals ORDER BY dealt_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			dealtAt int64
			payload string
		)
		if err := rows.Scan(&rec.ID, &dealtAt, &rec.Players, &rec.BestRank, &rec.BestHand, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		rec.DealtAt = time.Unix(0, dealtAt).UTC()

		rec.Deal = &dealer.Deal{}
		if err := json.Unmarshal([]byte(payload), rec.Deal); err != nil {
			return nil, fmt.Errorf("failed to decode deal %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored deals.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deals`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count deals: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
