package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a card repository backed by SQLite.
func NewCardRepository(db *sql.DB) card.Repository {
	return &cardRepository{db: db}
}

const cardColumns = `id, deck_id, front, back, hint, repetitions, ease_factor,
	interval_minutes, due_at, last_reviewed_at, total_reviews, correct_reviews,
	version, created_at`

// SaveCard persists a newly registered card
func (r *cardRepository) SaveCard(ctx context.Context, c *card.Card) error {
	query := `
		INSERT INTO cards
		(id, deck_id, front, back, hint, repetitions, ease_factor, interval_minutes,
		 due_at, last_reviewed_at, total_reviews, correct_reviews, version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID().String(), c.DeckID().String(), c.Front(), c.Back(), c.Hint(),
		c.Repetitions(), c.EaseFactor(), c.IntervalMinutes(),
		c.DueAt(), nullableTime(c.LastReviewedAt()),
		c.TotalReviews(), c.CorrectReviews(), c.Version(), c.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	return nil
}

// DeleteCard removes a card's scheduling state. Its review records are left
// orphaned on purpose.
func (r *cardRepository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}

// FindCard retrieves a card by ID, or (nil, nil) when absent
func (r *cardRepository) FindCard(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id.String())

	c, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card %s: %w", id, err)
	}
	return c, nil
}

// FindDueCards retrieves previously-reviewed due cards, most overdue first
func (r *cardRepository) FindDueCards(ctx context.Context, deckID uuid.UUID, now time.Time, limit int) ([]*card.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = ? AND total_reviews > 0 AND due_at <= ?
		ORDER BY due_at ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, deckID.String(), now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// FindNewCards retrieves never-reviewed cards in creation order
func (r *cardRepository) FindNewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*card.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = ? AND total_reviews = 0
		ORDER BY created_at ASC, rowid ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, deckID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query new cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// FindCardsByDeck retrieves all cards in the deck
func (r *cardRepository) FindCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]*card.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, deckID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query deck cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// SaveReview writes the updated scheduling state and appends the review
// record in one transaction. The update only matches if the persisted
// version still equals expectedVersion; a stale version yields
// ErrConcurrencyConflict so the caller can re-read and retry.
func (r *cardRepository) SaveReview(ctx context.Context, updated *card.Card, expectedVersion int64, record *card.ReviewRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE cards
		SET repetitions = ?, ease_factor = ?, interval_minutes = ?, due_at = ?,
		    last_reviewed_at = ?, total_reviews = ?, correct_reviews = ?,
		    version = version + 1
		WHERE id = ? AND version = ?
	`,
		updated.Repetitions(), updated.EaseFactor(), updated.IntervalMinutes(), updated.DueAt(),
		nullableTime(updated.LastReviewedAt()), updated.TotalReviews(), updated.CorrectReviews(),
		updated.ID().String(), expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update card state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		// Either the card is gone or another review committed first.
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE id = ?`, updated.ID().String()).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check card existence: %w", err)
		}
		if exists == 0 {
			return card.ErrNotFound
		}
		return card.ErrConcurrencyConflict
	}

	before, after := record.Before(), record.After()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO review_records
		(id, card_id, quality, time_taken_seconds, reviewed_at,
		 repetitions_before, ease_factor_before, interval_before, due_at_before,
		 repetitions_after, ease_factor_after, interval_after, due_at_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID().String(), record.CardID().String(), int(record.Quality()),
		record.TimeTakenSeconds(), record.ReviewedAt(),
		before.Repetitions, before.EaseFactor, before.IntervalMinutes, before.DueAt,
		after.Repetitions, after.EaseFactor, after.IntervalMinutes, after.DueAt)
	if err != nil {
		return fmt.Errorf("failed to append review record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review: %w", err)
	}

	updated.SetVersion(expectedVersion + 1)
	return nil
}

// FindReviewsBetween retrieves the deck's review records with reviewedAt in
// [from, to)
func (r *cardRepository) FindReviewsBetween(ctx context.Context, deckID uuid.UUID, from, to time.Time) ([]*card.ReviewRecord, error) {
	query := `
		SELECT rr.id, rr.card_id, rr.quality, rr.time_taken_seconds, rr.reviewed_at,
		       rr.repetitions_before, rr.ease_factor_before, rr.interval_before, rr.due_at_before,
		       rr.repetitions_after, rr.ease_factor_after, rr.interval_after, rr.due_at_after
		FROM review_records rr
		JOIN cards c ON c.id = rr.card_id
		WHERE c.deck_id = ? AND rr.reviewed_at >= ? AND rr.reviewed_at < ?
		ORDER BY rr.reviewed_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, deckID.String(), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query review records: %w", err)
	}
	defer rows.Close()

	var records []*card.ReviewRecord
	for rows.Next() {
		rec, err := scanReviewRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*card.Card, error) {
	var (
		idStr, deckStr, front, back, hint string
		repetitions, intervalMins         int
		easeFactor                        float64
		dueAt, createdAt                  time.Time
		lastReviewedAt                    sql.NullTime
		totalReviews, correctReviews      int
		version                           int64
	)

	err := row.Scan(&idStr, &deckStr, &front, &back, &hint,
		&repetitions, &easeFactor, &intervalMins,
		&dueAt, &lastReviewedAt, &totalReviews, &correctReviews,
		&version, &createdAt)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid card id %q: %w", idStr, err)
	}
	deckID, err := uuid.Parse(deckStr)
	if err != nil {
		return nil, fmt.Errorf("invalid deck id %q: %w", deckStr, err)
	}

	c := &card.Card{}
	c.SetID(id)
	c.SetDeckID(deckID)
	c.SetContent(front, back, hint)
	c.SetRepetitions(repetitions)
	c.SetEaseFactor(easeFactor)
	c.SetIntervalMinutes(intervalMins)
	c.SetDueAt(dueAt)
	if lastReviewedAt.Valid {
		c.SetLastReviewedAt(lastReviewedAt.Time)
	}
	c.SetTotalReviews(totalReviews)
	c.SetCorrectReviews(correctReviews)
	c.SetVersion(version)
	c.SetCreatedAt(createdAt)
	return c, nil
}

func collectCards(rows *sql.Rows) ([]*card.Card, error) {
	var cards []*card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return cards, nil
}

func scanReviewRecord(rows *sql.Rows) (*card.ReviewRecord, error) {
	var (
		idStr, cardStr   string
		quality          int
		timeTaken        int
		reviewedAt       time.Time
		before, after    card.Snapshot
	)

	err := rows.Scan(&idStr, &cardStr, &quality, &timeTaken, &reviewedAt,
		&before.Repetitions, &before.EaseFactor, &before.IntervalMinutes, &before.DueAt,
		&after.Repetitions, &after.EaseFactor, &after.IntervalMinutes, &after.DueAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan review record: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid review record id %q: %w", idStr, err)
	}
	cardID, err := uuid.Parse(cardStr)
	if err != nil {
		return nil, fmt.Errorf("invalid card id %q: %w", cardStr, err)
	}

	rec := card.NewReviewRecord(cardID, card.Quality(quality), timeTaken, reviewedAt, before, after)
	rec.SetID(id)
	return rec, nil
}

// nullableTime maps the zero time to NULL for never-reviewed cards.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
