package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	// Cards table: scheduling state plus opaque content passthrough. The
	// version column is the optimistic concurrency token for reviews.
	cardsTable := `
	CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		deck_id TEXT NOT NULL,
		front TEXT NOT NULL,
		back TEXT NOT NULL,
		hint TEXT NOT NULL DEFAULT '',
		repetitions INTEGER NOT NULL DEFAULT 0,
		ease_factor REAL NOT NULL DEFAULT 2.5,
		interval_minutes INTEGER NOT NULL DEFAULT 0,
		due_at DATETIME NOT NULL,
		last_reviewed_at DATETIME,
		total_reviews INTEGER NOT NULL DEFAULT 0,
		correct_reviews INTEGER NOT NULL DEFAULT 0,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);`

	_, err := db.Exec(cardsTable)
	if err != nil {
		return fmt.Errorf("failed to create cards table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_cards_deck_due ON cards(deck_id, due_at)`)
	if err != nil {
		return fmt.Errorf("failed to create cards index: %w", err)
	}

	// Review records: append-only, never updated or deleted by the
	// engine. Records for deleted cards stay behind as garbage-collection
	// work for the storage layer.
	reviewRecordsTable := `
	CREATE TABLE IF NOT EXISTS review_records (
		id TEXT PRIMARY KEY,
		card_id TEXT NOT NULL,
		quality INTEGER NOT NULL,
		time_taken_seconds INTEGER NOT NULL,
		reviewed_at DATETIME NOT NULL,
		repetitions_before INTEGER NOT NULL,
		ease_factor_before REAL NOT NULL,
		interval_before INTEGER NOT NULL,
		due_at_before DATETIME NOT NULL,
		repetitions_after INTEGER NOT NULL,
		ease_factor_after REAL NOT NULL,
		interval_after INTEGER NOT NULL,
		due_at_after DATETIME NOT NULL
	);`

	_, err = db.Exec(reviewRecordsTable)
	if err != nil {
		return fmt.Errorf("failed to create review_records table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_review_records_card ON review_records(card_id)`)
	if err != nil {
		return fmt.Errorf("failed to create review_records card index: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_review_records_time ON review_records(reviewed_at)`)
	if err != nil {
		return fmt.Errorf("failed to create review_records time index: %w", err)
	}

	return nil
}
