package card

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the contract for card scheduling persistence. The
// engine requires atomic read-modify-write on a card's scheduling state and
// an append-only review record store; everything else is ordinary reads.
type Repository interface {
	// SaveCard persists a newly registered card.
	SaveCard(ctx context.Context, c *Card) error

	// DeleteCard removes a card. Review records for the card are left in
	// place for the persistence layer's garbage collection.
	DeleteCard(ctx context.Context, id uuid.UUID) error

	// FindCard retrieves a card by ID. Returns (nil, nil) when absent.
	FindCard(ctx context.Context, id uuid.UUID) (*Card, error)

	// FindDueCards retrieves previously-reviewed cards in the deck with
	// dueAt <= now, most overdue first, up to limit.
	FindDueCards(ctx context.Context, deckID uuid.UUID, now time.Time, limit int) ([]*Card, error)

	// FindNewCards retrieves never-reviewed cards in the deck in creation
	// order, up to limit.
	FindNewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*Card, error)

	// FindCardsByDeck retrieves all cards in the deck.
	FindCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]*Card, error)

	// SaveReview writes the updated scheduling state and appends the
	// review record in one atomic unit. The write succeeds only if the
	// card's persisted version still equals expectedVersion; otherwise it
	// fails with ErrConcurrencyConflict (or ErrNotFound if the card was
	// deleted meanwhile).
	SaveReview(ctx context.Context, updated *Card, expectedVersion int64, record *ReviewRecord) error

	// FindReviewsBetween retrieves review records for cards in the deck
	// with reviewedAt in [from, to).
	FindReviewsBetween(ctx context.Context, deckID uuid.UUID, from, to time.Time) ([]*ReviewRecord, error)
}
