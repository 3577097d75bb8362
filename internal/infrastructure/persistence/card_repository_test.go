package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flashcard-srs/internal/domain/card"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestRepository(t *testing.T) card.Repository {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCardRepository(db)
}

func TestSaveAndFindCard(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	deckID := uuid.New()

	c := card.NewCard(deckID, "front", "back", "hint", testNow)
	require.NoError(t, repo.SaveCard(ctx, c))

	got, err := repo.FindCard(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, c.ID(), got.ID())
	assert.Equal(t, deckID, got.DeckID())
	assert.Equal(t, "front", got.Front())
	assert.Equal(t, "hint", got.Hint())
	assert.Equal(t, 0, got.Repetitions())
	assert.Equal(t, 2.5, got.EaseFactor())
	assert.True(t, got.DueAt().Equal(testNow))
	assert.True(t, got.LastReviewedAt().IsZero(), "never-reviewed cards round-trip a NULL last_reviewed_at")
	assert.Equal(t, int64(0), got.Version())
}

func TestFindCardAbsent(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.FindCard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteCard(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	c := card.NewCard(uuid.New(), "f", "b", "", testNow)
	require.NoError(t, repo.SaveCard(ctx, c))
	require.NoError(t, repo.DeleteCard(ctx, c.ID()))

	got, err := repo.FindCard(ctx, c.ID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindDueCardsOrderingAndLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	deckID := uuid.New()
	scheduler := card.NewScheduler(card.DefaultSchedulerConfig())

	// Three reviewed cards due at different times, one unreviewed, one in
	// another deck.
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		c := card.NewCard(deckID, "f", "b", "", testNow.Add(-72*time.Hour))
		reviewed, err := scheduler.Review(c, card.QualityGood, testNow.Add(-time.Duration(48-i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, repo.SaveCard(ctx, reviewed))
		ids = append(ids, reviewed.ID())
	}
	require.NoError(t, repo.SaveCard(ctx, card.NewCard(deckID, "f", "b", "", testNow)))
	require.NoError(t, repo.SaveCard(ctx, card.NewCard(uuid.New(), "f", "b", "", testNow)))

	due, err := repo.FindDueCards(ctx, deckID, testNow, 10)
	require.NoError(t, err)
	require.Len(t, due, 3, "unreviewed cards are not in the due list")
	assert.Equal(t, ids[0], due[0].ID(), "most overdue first")
	assert.Equal(t, ids[1], due[1].ID())
	assert.Equal(t, ids[2], due[2].ID())

	limited, err := repo.FindDueCards(ctx, deckID, testNow, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFindNewCardsCreationOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	deckID := uuid.New()

	first := card.NewCard(deckID, "1", "b", "", testNow)
	second := card.NewCard(deckID, "2", "b", "", testNow.Add(time.Minute))
	require.NoError(t, repo.SaveCard(ctx, first))
	require.NoError(t, repo.SaveCard(ctx, second))

	fresh, err := repo.FindNewCards(ctx, deckID, 10)
	require.NoError(t, err)
	require.Len(t, fresh, 2)
	assert.Equal(t, first.ID(), fresh[0].ID())
	assert.Equal(t, second.ID(), fresh[1].ID())
}

func TestSaveReviewPersistsStateAndRecord(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	deckID := uuid.New()
	scheduler := card.NewScheduler(card.DefaultSchedulerConfig())

	c := card.NewCard(deckID, "f", "b", "", testNow)
	require.NoError(t, repo.SaveCard(ctx, c))

	next, err := scheduler.Review(c, card.QualityGood, testNow)
	require.NoError(t, err)
	rec := card.NewReviewRecord(c.ID(), card.QualityGood, 6, testNow, c.Snapshot(), next.Snapshot())

	require.NoError(t, repo.SaveReview(ctx, next, c.Version(), rec))
	assert.Equal(t, int64(1), next.Version())

	got, err := repo.FindCard(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Repetitions())
	assert.Equal(t, 10, got.IntervalMinutes())
	assert.Equal(t, 1, got.TotalReviews())
	assert.Equal(t, int64(1), got.Version())
	assert.True(t, got.LastReviewedAt().Equal(testNow))

	records, err := repo.FindReviewsBetween(ctx, deckID, testNow.Add(-time.Hour), testNow.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, card.QualityGood, records[0].Quality())
	assert.Equal(t, 6, records[0].TimeTakenSeconds())
	assert.Equal(t, 0, records[0].Before().Repetitions)
	assert.Equal(t, 1, records[0].After().Repetitions)
}

func TestSaveReviewStaleVersionConflicts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	scheduler := card.NewScheduler(card.DefaultSchedulerConfig())

	c := card.NewCard(uuid.New(), "f", "b", "", testNow)
	require.NoError(t, repo.SaveCard(ctx, c))

	next, err := scheduler.Review(c, card.QualityGood, testNow)
	require.NoError(t, err)

	rec := card.NewReviewRecord(c.ID(), card.QualityGood, 6, testNow, c.Snapshot(), next.Snapshot())
	require.NoError(t, repo.SaveReview(ctx, next, 0, rec))

	// A second write still claiming version 0 must conflict and leave no
	// extra record behind.
	stale := card.NewReviewRecord(c.ID(), card.QualityEasy, 2, testNow, c.Snapshot(), next.Snapshot())
	err = repo.SaveReview(ctx, next, 0, stale)
	assert.ErrorIs(t, err, card.ErrConcurrencyConflict)

	records, err := repo.FindReviewsBetween(ctx, c.DeckID(), testNow.Add(-time.Hour), testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSaveReviewDeletedCard(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	scheduler := card.NewScheduler(card.DefaultSchedulerConfig())

	c := card.NewCard(uuid.New(), "f", "b", "", testNow)
	require.NoError(t, repo.SaveCard(ctx, c))
	next, err := scheduler.Review(c, card.QualityGood, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteCard(ctx, c.ID()))

	rec := card.NewReviewRecord(c.ID(), card.QualityGood, 6, testNow, c.Snapshot(), next.Snapshot())
	err = repo.SaveReview(ctx, next, 0, rec)
	assert.ErrorIs(t, err, card.ErrNotFound)
}

func TestFindReviewsBetweenWindow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	deckID := uuid.New()
	scheduler := card.NewScheduler(card.DefaultSchedulerConfig())

	c := card.NewCard(deckID, "f", "b", "", testNow.Add(-48*time.Hour))
	require.NoError(t, repo.SaveCard(ctx, c))

	// One review yesterday, one today.
	yesterday := testNow.Add(-24 * time.Hour)
	r1, err := scheduler.Review(c, card.QualityGood, yesterday)
	require.NoError(t, err)
	require.NoError(t, repo.SaveReview(ctx, r1, 0,
		card.NewReviewRecord(c.ID(), card.QualityGood, 5, yesterday, c.Snapshot(), r1.Snapshot())))

	r2, err := scheduler.Review(r1, card.QualityGood, testNow)
	require.NoError(t, err)
	require.NoError(t, repo.SaveReview(ctx, r2, 1,
		card.NewReviewRecord(c.ID(), card.QualityGood, 5, testNow, r1.Snapshot(), r2.Snapshot())))

	midnight := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	records, err := repo.FindReviewsBetween(ctx, deckID, midnight, testNow.Add(time.Second))
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.True(t, records[0].ReviewedAt().Equal(testNow))
}
