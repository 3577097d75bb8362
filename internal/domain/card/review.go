package card

import (
	"time"

	"github.com/google/uuid"
)

// ReviewRecord is the append-only log entry for a single review. It carries
// the scheduling state before and after the transition and is never mutated
// or deleted once written.
type ReviewRecord struct {
	id               uuid.UUID
	cardID           uuid.UUID
	quality          Quality
	timeTakenSeconds int
	reviewedAt       time.Time
	before           Snapshot
	after            Snapshot
}

// NewReviewRecord creates a review record for a completed transition.
func NewReviewRecord(cardID uuid.UUID, q Quality, timeTakenSeconds int, reviewedAt time.Time, before, after Snapshot) *ReviewRecord {
	return &ReviewRecord{
		id:               uuid.New(),
		cardID:           cardID,
		quality:          q,
		timeTakenSeconds: timeTakenSeconds,
		reviewedAt:       reviewedAt,
		before:           before,
		after:            after,
	}
}

// Getters
func (r *ReviewRecord) ID() uuid.UUID         { return r.id }
func (r *ReviewRecord) CardID() uuid.UUID     { return r.cardID }
func (r *ReviewRecord) Quality() Quality      { return r.quality }
func (r *ReviewRecord) TimeTakenSeconds() int { return r.timeTakenSeconds }
func (r *ReviewRecord) ReviewedAt() time.Time { return r.reviewedAt }
func (r *ReviewRecord) Before() Snapshot      { return r.before }
func (r *ReviewRecord) After() Snapshot       { return r.after }

// SetID sets the record ID (used by the repository when loading).
func (r *ReviewRecord) SetID(id uuid.UUID) {
	r.id = id
}
