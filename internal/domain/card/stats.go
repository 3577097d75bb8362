package card

import "time"

// DeckStats summarizes a deck's scheduling state at a point in time. It is
// derived, recomputable at any time from card state and review history, and
// never the source of truth.
type DeckStats struct {
	TotalCards         int
	NewCards           int
	LearningCards      int
	YoungCards         int
	MatureCards        int
	DueCards           int
	OverallAccuracy    float64
	TotalReviews       int
	ReviewsToday       int
	AverageTimeSeconds float64
}

// ComputeDeckStats aggregates deck statistics from the deck's cards and the
// review records that fall in today's window.
func ComputeDeckStats(cards []*Card, today []*ReviewRecord, cfg SchedulerConfig, now time.Time) *DeckStats {
	stats := &DeckStats{TotalCards: len(cards)}

	var correct int
	for _, c := range cards {
		switch c.Maturity(cfg) {
		case MaturityNew:
			stats.NewCards++
		case MaturityLearning:
			stats.LearningCards++
		case MaturityYoung:
			stats.YoungCards++
		case MaturityMature:
			stats.MatureCards++
		}
		if c.IsDue(now) {
			stats.DueCards++
		}
		stats.TotalReviews += c.TotalReviews()
		correct += c.CorrectReviews()
	}

	if stats.TotalReviews > 0 {
		stats.OverallAccuracy = float64(correct) / float64(stats.TotalReviews)
	}

	stats.ReviewsToday = len(today)
	if len(today) > 0 {
		var totalSeconds int
		for _, r := range today {
			totalSeconds += r.TimeTakenSeconds()
		}
		stats.AverageTimeSeconds = float64(totalSeconds) / float64(len(today))
	}

	return stats
}
