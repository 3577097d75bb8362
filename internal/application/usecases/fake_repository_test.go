package usecases

import (
	"context"
	"sort"
	"sync"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
)

// fakeRepository is an in-memory card.Repository for use-case tests. It
// mimics the persistence collaborator's version check so the concurrency
// path can be exercised without a database.
type fakeRepository struct {
	mu      sync.Mutex
	cards   map[uuid.UUID]*card.Card
	order   []uuid.UUID // creation order
	reviews []*card.ReviewRecord

	// beforeSaveReview, when set, runs before each SaveReview attempt.
	beforeSaveReview func()
	failWith         error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{cards: make(map[uuid.UUID]*card.Card)}
}

func (r *fakeRepository) SaveCard(ctx context.Context, c *card.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.cards[c.ID()] = c
	r.order = append(r.order, c.ID())
	return nil
}

func (r *fakeRepository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cards, id)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepository) FindCard(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.cards[id], nil
}

func (r *fakeRepository) FindDueCards(ctx context.Context, deckID uuid.UUID, now time.Time, limit int) ([]*card.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var due []*card.Card
	for _, id := range r.order {
		c := r.cards[id]
		if c.DeckID() == deckID && c.TotalReviews() > 0 && c.IsDue(now) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueAt().Before(due[j].DueAt())
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *fakeRepository) FindNewCards(ctx context.Context, deckID uuid.UUID, limit int) ([]*card.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	var fresh []*card.Card
	for _, id := range r.order {
		c := r.cards[id]
		if c.DeckID() == deckID && c.TotalReviews() == 0 {
			fresh = append(fresh, c)
			if len(fresh) == limit {
				break
			}
		}
	}
	return fresh, nil
}

func (r *fakeRepository) FindCardsByDeck(ctx context.Context, deckID uuid.UUID) ([]*card.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cards []*card.Card
	for _, id := range r.order {
		if c := r.cards[id]; c.DeckID() == deckID {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func (r *fakeRepository) SaveReview(ctx context.Context, updated *card.Card, expectedVersion int64, record *card.ReviewRecord) error {
	if r.beforeSaveReview != nil {
		r.beforeSaveReview()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	stored, ok := r.cards[updated.ID()]
	if !ok {
		return card.ErrNotFound
	}
	if stored.Version() != expectedVersion {
		return card.ErrConcurrencyConflict
	}
	updated.SetVersion(expectedVersion + 1)
	r.cards[updated.ID()] = updated
	r.reviews = append(r.reviews, record)
	return nil
}

func (r *fakeRepository) FindReviewsBetween(ctx context.Context, deckID uuid.UUID, from, to time.Time) ([]*card.ReviewRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*card.ReviewRecord
	for _, rec := range r.reviews {
		c, ok := r.cards[rec.CardID()]
		if !ok || c.DeckID() != deckID {
			continue
		}
		if !rec.ReviewedAt().Before(from) && rec.ReviewedAt().Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}
