package usecases

import (
	"context"
	"fmt"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
)

// StatsUseCase recomputes deck statistics on demand from durable per-card
// state and review history. Nothing here is a source of truth.
type StatsUseCase struct {
	repo card.Repository
	cfg  card.SchedulerConfig
}

// NewStatsUseCase creates a new stats use case.
func NewStatsUseCase(repo card.Repository, cfg card.SchedulerConfig) *StatsUseCase {
	return &StatsUseCase{repo: repo, cfg: cfg}
}

// ComputeStats aggregates the deck's maturity buckets, due/new counts,
// accuracy, and today's review activity. "Today" starts at local midnight
// of the given time.
func (uc *StatsUseCase) ComputeStats(ctx context.Context, deckID uuid.UUID, now time.Time) (*card.DeckStats, error) {
	cards, err := uc.repo.FindCardsByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck cards: %w", err)
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := uc.repo.FindReviewsBetween(ctx, deckID, midnight, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's reviews: %w", err)
	}

	return card.ComputeDeckStats(cards, today, uc.cfg, now), nil
}
