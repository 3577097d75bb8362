package rest

import (
	"time"

	"flashcard-srs/internal/domain/card"
)

// CreateCardRequest registers a card with the engine. Front/back/hint are
// opaque content owned by the content collaborator.
type CreateCardRequest struct {
	DeckID string `json:"deck_id" binding:"required,uuid"`
	Front  string `json:"front" binding:"required"`
	Back   string `json:"back" binding:"required"`
	Hint   string `json:"hint"`
}

// SubmitReviewRequest carries one graded review outcome. Quality and timing
// are validated by the engine, not by binding tags, so the engine's error
// taxonomy applies uniformly.
type SubmitReviewRequest struct {
	FlashcardID      string `json:"flashcard_id" binding:"required,uuid"`
	Quality          int    `json:"quality"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// CardResponse is the scheduling view of a card returned to clients.
type CardResponse struct {
	ID              string     `json:"id"`
	DeckID          string     `json:"deck_id"`
	Front           string     `json:"front"`
	Back            string     `json:"back"`
	Hint            string     `json:"hint,omitempty"`
	Repetitions     int        `json:"repetitions"`
	EaseFactor      float64    `json:"ease_factor"`
	IntervalMinutes int        `json:"interval_minutes"`
	DueAt           time.Time  `json:"due_at"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	Maturity        string     `json:"maturity"`
	TotalReviews    int        `json:"total_reviews"`
	CorrectReviews  int        `json:"correct_reviews"`
	Accuracy        float64    `json:"accuracy"`
}

// DeckStatsResponse is the per-deck statistics payload.
type DeckStatsResponse struct {
	TotalCards         int     `json:"total_cards"`
	NewCards           int     `json:"new_cards"`
	LearningCards      int     `json:"learning_cards"`
	YoungCards         int     `json:"young_cards"`
	MatureCards        int     `json:"mature_cards"`
	DueCards           int     `json:"due_cards"`
	OverallAccuracy    float64 `json:"overall_accuracy"`
	TotalReviews       int     `json:"total_reviews"`
	ReviewsToday       int     `json:"reviews_today"`
	AverageTimeSeconds float64 `json:"average_time_seconds"`
}

func toCardResponse(c *card.Card, cfg card.SchedulerConfig) CardResponse {
	resp := CardResponse{
		ID:              c.ID().String(),
		DeckID:          c.DeckID().String(),
		Front:           c.Front(),
		Back:            c.Back(),
		Hint:            c.Hint(),
		Repetitions:     c.Repetitions(),
		EaseFactor:      c.EaseFactor(),
		IntervalMinutes: c.IntervalMinutes(),
		DueAt:           c.DueAt(),
		Maturity:        string(c.Maturity(cfg)),
		TotalReviews:    c.TotalReviews(),
		CorrectReviews:  c.CorrectReviews(),
		Accuracy:        c.Accuracy(),
	}
	if !c.LastReviewedAt().IsZero() {
		t := c.LastReviewedAt()
		resp.LastReviewedAt = &t
	}
	return resp
}

func toCardResponses(cards []*card.Card, cfg card.SchedulerConfig) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c, cfg))
	}
	return out
}

func toDeckStatsResponse(s *card.DeckStats) DeckStatsResponse {
	return DeckStatsResponse{
		TotalCards:         s.TotalCards,
		NewCards:           s.NewCards,
		LearningCards:      s.LearningCards,
		YoungCards:         s.YoungCards,
		MatureCards:        s.MatureCards,
		DueCards:           s.DueCards,
		OverallAccuracy:    s.OverallAccuracy,
		TotalReviews:       s.TotalReviews,
		ReviewsToday:       s.ReviewsToday,
		AverageTimeSeconds: s.AverageTimeSeconds,
	}
}
