package card

import (
	"time"

	"github.com/google/uuid"
)

// Maturity classifies a card's learning progress. It is derived from the
// scheduling numbers on read and never stored authoritatively.
type Maturity string

const (
	MaturityNew      Maturity = "new"
	MaturityLearning Maturity = "learning"
	MaturityYoung    Maturity = "young"
	MaturityMature   Maturity = "mature"
)

// Card is the scheduling state of a single flashcard. The front/back/hint
// content is owned by the content collaborator and carried through opaquely.
type Card struct {
	id             uuid.UUID
	deckID         uuid.UUID
	front          string
	back           string
	hint           string
	repetitions    int
	easeFactor     float64
	intervalMins   int
	dueAt          time.Time
	lastReviewedAt time.Time // zero value means never reviewed
	totalReviews   int
	correctReviews int
	version        int64
	createdAt      time.Time
}

// NewCard creates scheduling state for a freshly registered card. New cards
// are due immediately.
func NewCard(deckID uuid.UUID, front, back, hint string, now time.Time) *Card {
	return &Card{
		id:         uuid.New(),
		deckID:     deckID,
		front:      front,
		back:       back,
		hint:       hint,
		easeFactor: 2.5,
		dueAt:      now,
		createdAt:  now,
	}
}

// Getters
func (c *Card) ID() uuid.UUID             { return c.id }
func (c *Card) DeckID() uuid.UUID         { return c.deckID }
func (c *Card) Front() string             { return c.front }
func (c *Card) Back() string              { return c.back }
func (c *Card) Hint() string              { return c.hint }
func (c *Card) Repetitions() int          { return c.repetitions }
func (c *Card) EaseFactor() float64       { return c.easeFactor }
func (c *Card) IntervalMinutes() int      { return c.intervalMins }
func (c *Card) DueAt() time.Time          { return c.dueAt }
func (c *Card) LastReviewedAt() time.Time { return c.lastReviewedAt }
func (c *Card) TotalReviews() int         { return c.totalReviews }
func (c *Card) CorrectReviews() int       { return c.correctReviews }
func (c *Card) Version() int64            { return c.version }
func (c *Card) CreatedAt() time.Time      { return c.createdAt }

// IsDue reports whether the card is eligible for review at the given time.
func (c *Card) IsDue(now time.Time) bool {
	return !c.dueAt.After(now)
}

// Accuracy returns correct reviews over total reviews, or 0 for a card that
// has never been reviewed.
func (c *Card) Accuracy() float64 {
	if c.totalReviews == 0 {
		return 0
	}
	return float64(c.correctReviews) / float64(c.totalReviews)
}

// Maturity derives the maturity bucket from the scheduling numbers.
func (c *Card) Maturity(cfg SchedulerConfig) Maturity {
	switch {
	case c.totalReviews == 0:
		return MaturityNew
	case c.repetitions < len(cfg.LearningSteps):
		return MaturityLearning
	case c.intervalMins < cfg.MatureThresholdMinutes:
		return MaturityYoung
	default:
		return MaturityMature
	}
}

// Snapshot captures the scheduling core of the card at a point in time. It
// is embedded in review records for auditability.
type Snapshot struct {
	Repetitions     int
	EaseFactor      float64
	IntervalMinutes int
	DueAt           time.Time
}

// Snapshot returns the card's current scheduling snapshot.
func (c *Card) Snapshot() Snapshot {
	return Snapshot{
		Repetitions:     c.repetitions,
		EaseFactor:      c.easeFactor,
		IntervalMinutes: c.intervalMins,
		DueAt:           c.dueAt,
	}
}

func (c *Card) clone() *Card {
	dup := *c
	return &dup
}

// Setters for restoring from the database
func (c *Card) SetID(id uuid.UUID) { c.id = id }
func (c *Card) SetDeckID(id uuid.UUID) { c.deckID = id }
func (c *Card) SetContent(front, back, hint string) {
	c.front, c.back, c.hint = front, back, hint
}
func (c *Card) SetRepetitions(n int) { c.repetitions = n }
func (c *Card) SetEaseFactor(ef float64) { c.easeFactor = ef }
func (c *Card) SetIntervalMinutes(m int) { c.intervalMins = m }
func (c *Card) SetDueAt(t time.Time) { c.dueAt = t }
func (c *Card) SetLastReviewedAt(t time.Time) { c.lastReviewedAt = t }
func (c *Card) SetTotalReviews(n int) { c.totalReviews = n }
func (c *Card) SetCorrectReviews(n int) { c.correctReviews = n }
func (c *Card) SetVersion(v int64) { c.version = v }
func (c *Card) SetCreatedAt(t time.Time) { c.createdAt = t }
