package usecases

import (
	"context"
	"fmt"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
)

// CardUseCase handles the card lifecycle events the engine receives from
// the content-management collaborator: registration and deletion. The
// engine only initializes and releases scheduling state; card content is
// carried through opaquely.
type CardUseCase struct {
	repo card.Repository
}

// NewCardUseCase creates a new card use case.
func NewCardUseCase(repo card.Repository) *CardUseCase {
	return &CardUseCase{repo: repo}
}

// RegisterCard creates scheduling state for a newly created card. The card
// starts new and immediately due.
func (uc *CardUseCase) RegisterCard(ctx context.Context, deckID uuid.UUID, front, back, hint string, now time.Time) (*card.Card, error) {
	c := card.NewCard(deckID, front, back, hint, now)
	if err := uc.repo.SaveCard(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return c, nil
}

// RemoveCard releases a card's scheduling state. Review records become
// orphaned; cleaning them up is the persistence layer's concern, not the
// engine's.
func (uc *CardUseCase) RemoveCard(ctx context.Context, id uuid.UUID) error {
	existing, err := uc.repo.FindCard(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load card: %w", err)
	}
	if existing == nil {
		return card.ErrNotFound
	}
	if err := uc.repo.DeleteCard(ctx, id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// GetCard retrieves a card's scheduling state.
func (uc *CardUseCase) GetCard(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	c, err := uc.repo.FindCard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load card: %w", err)
	}
	if c == nil {
		return nil, card.ErrNotFound
	}
	return c, nil
}
