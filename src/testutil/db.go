// Package testutil provides shared test fixtures.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// Mirrors db/migrations/000001_create_trade_entries.up.sql. Tests apply
// the schema directly instead of running file-based migrations.
const schema = `
CREATE TABLE trade_entries (
    id              TEXT PRIMARY KEY,
    symbol          TEXT NOT NULL,
    entry_type      TEXT NOT NULL CHECK (entry_type IN ('BUY', 'SELL')),
    capital         REAL NOT NULL,
    buy_price       REAL NOT NULL,
    sell_price      REAL,
    entry_date      TEXT NOT NULL,
    exit_date       TEXT,
    buy_reason_logs TEXT,
    exit_plan_logs  TEXT,
    mistake_logs    TEXT,
    take_away_logs  TEXT,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    updated_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`

// NewTestDB opens an in-memory sqlite database with the trade-journal
// schema applied and closes it when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}
	return db
}
