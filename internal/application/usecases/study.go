package usecases

import (
	"context"
	"fmt"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
)

// SessionConfig bounds the size and mix of a study session queue.
type SessionConfig struct {
	DueCap     int // most due cards considered per session
	NewCap     int // most new cards considered per session
	SessionCap int // hard cap on total session size
}

// DefaultSessionConfig returns the standard session caps.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		DueCap:     50,
		NewCap:     20,
		SessionCap: 20,
	}
}

// StudyUseCase builds bounded study queues from a deck's card states.
type StudyUseCase struct {
	repo card.Repository
	cfg  SessionConfig
}

// NewStudyUseCase creates a new study use case.
func NewStudyUseCase(repo card.Repository, cfg SessionConfig) *StudyUseCase {
	return &StudyUseCase{repo: repo, cfg: cfg}
}

// BuildSession selects and orders the cards for one study session: due
// cards first, most overdue leading, then new cards in creation order
// filling whatever room remains under the session cap. The returned queue
// is a snapshot; cards reviewed mid-session are not reinserted. An empty
// queue means there is nothing to study and is not an error.
func (uc *StudyUseCase) BuildSession(ctx context.Context, deckID uuid.UUID, now time.Time) ([]*card.Card, error) {
	due, err := uc.repo.FindDueCards(ctx, deckID, now, min(uc.cfg.DueCap, uc.cfg.SessionCap))
	if err != nil {
		return nil, fmt.Errorf("failed to get due cards: %w", err)
	}

	newLimit := min(uc.cfg.NewCap, uc.cfg.SessionCap-len(due))
	if newLimit <= 0 {
		return due, nil
	}

	fresh, err := uc.repo.FindNewCards(ctx, deckID, newLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get new cards: %w", err)
	}

	return append(due, fresh...), nil
}

// DueCards returns the deck's due cards, most overdue first, up to limit.
func (uc *StudyUseCase) DueCards(ctx context.Context, deckID uuid.UUID, now time.Time, limit int) ([]*card.Card, error) {
	cards, err := uc.repo.FindDueCards(ctx, deckID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get due cards: %w", err)
	}
	return cards, nil
}

// NewCards returns the deck's never-reviewed cards in creation order, up to
// limit.
func (uc *StudyUseCase) NewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*card.Card, error) {
	cards, err := uc.repo.FindNewCards(ctx, deckID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get new cards: %w", err)
	}
	return cards, nil
}
