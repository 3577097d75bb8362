package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
)

// ReviewUseCase records review outcomes: it applies the scheduler transition
// to a card's persisted state and appends the immutable review record in the
// same atomic unit.
type ReviewUseCase struct {
	repo      card.Repository
	scheduler *card.Scheduler
}

// NewReviewUseCase creates a new review use case.
func NewReviewUseCase(repo card.Repository, scheduler *card.Scheduler) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, scheduler: scheduler}
}

// SubmitReview applies one graded review to the card. Concurrent submissions
// for the same card are serialized through the repository's version check:
// on a conflict the state is re-read once and the transition recomputed from
// the committed state, so the second review always builds on the first
// review's result.
func (uc *ReviewUseCase) SubmitReview(ctx context.Context, cardID uuid.UUID, q card.Quality, timeTakenSeconds int, now time.Time) (*card.Card, error) {
	const attempts = 2

	var lastErr error
	for i := 0; i < attempts; i++ {
		current, err := uc.repo.FindCard(ctx, cardID)
		if err != nil {
			return nil, fmt.Errorf("failed to load card: %w", err)
		}
		if current == nil {
			return nil, card.ErrNotFound
		}

		// Validate before computing or applying any transition.
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if timeTakenSeconds < 0 {
			return nil, card.ErrInvalidTiming
		}

		next, err := uc.scheduler.Review(current, q, now)
		if err != nil {
			return nil, err
		}

		record := card.NewReviewRecord(current.ID(), q, timeTakenSeconds, now, current.Snapshot(), next.Snapshot())

		err = uc.repo.SaveReview(ctx, next, current.Version(), record)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, card.ErrConcurrencyConflict) {
			lastErr = err
			continue
		}
		if errors.Is(err, card.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	return nil, lastErr
}
