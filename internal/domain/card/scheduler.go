package card

import (
	"math"
	"time"
)

// SchedulerConfig holds the tunable constants of the scheduling algorithm.
// All intervals are minutes.
type SchedulerConfig struct {
	// LearningSteps is the ladder of short intervals a card climbs before
	// graduating. A card is in the learning phase while its repetition
	// count is below the ladder length.
	LearningSteps []int
	// GraduationIntervalMinutes is the interval assigned when a card
	// clears the last learning step with a Good review.
	GraduationIntervalMinutes int
	// EasyGraduationIntervalMinutes is the graduation interval for an
	// Easy review.
	EasyGraduationIntervalMinutes int
	// MatureThresholdMinutes separates young from mature cards.
	MatureThresholdMinutes int
	// MaxIntervalMinutes caps interval growth.
	MaxIntervalMinutes int
	// MinEaseFactor is the floor the ease factor can never drop below.
	MinEaseFactor float64
	// LapsePenalty is subtracted from the ease factor on a lapse.
	LapsePenalty float64
	// HardDamping multiplies the growth factor on a Hard review of a
	// graduated card.
	HardDamping float64
}

// DefaultSchedulerConfig returns the standard configuration: a two-step
// learning ladder of 1 and 10 minutes, graduation at 1 day (4 days on
// Easy), maturity at 21 days, and a 5 year interval cap.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		LearningSteps:                 []int{1, 10},
		GraduationIntervalMinutes:     1440,
		EasyGraduationIntervalMinutes: 4 * 1440,
		MatureThresholdMinutes:        21 * 24 * 60,
		MaxIntervalMinutes:            5 * 365 * 24 * 60,
		MinEaseFactor:                 1.3,
		LapsePenalty:                  0.2,
		HardDamping:                   0.8,
	}
}

// Scheduler computes review transitions. It is a pure function of
// (state, quality, now): no I/O, no randomness, no side effects on the
// input card.
type Scheduler struct {
	cfg SchedulerConfig
}

// NewScheduler creates a scheduler with the given configuration.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	return &Scheduler{cfg: cfg}
}

// Config returns the scheduler's configuration.
func (s *Scheduler) Config() SchedulerConfig {
	return s.cfg
}

// Review applies one graded review at the given time and returns the next
// scheduling state. The input card is not modified.
func (s *Scheduler) Review(c *Card, q Quality, now time.Time) (*Card, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	next := c.clone()

	switch {
	case q == QualityForgot:
		s.lapse(next)
	case next.repetitions < len(s.cfg.LearningSteps):
		s.learningStep(next, q)
	default:
		s.grow(next, q)
	}

	if next.intervalMins > s.cfg.MaxIntervalMinutes {
		next.intervalMins = s.cfg.MaxIntervalMinutes
	}
	if next.intervalMins < 1 {
		next.intervalMins = 1
	}

	next.dueAt = now.Add(time.Duration(next.intervalMins) * time.Minute)
	next.lastReviewedAt = now
	next.totalReviews++
	if q.Correct() {
		next.correctReviews++
	}

	return next, nil
}

// lapse models full forgetting: progress resets and the card re-enters the
// learning ladder at its first step. The ease factor is penalized but
// floored.
func (s *Scheduler) lapse(c *Card) {
	c.repetitions = 0
	c.easeFactor = math.Max(s.cfg.MinEaseFactor, c.easeFactor-s.cfg.LapsePenalty)
	c.intervalMins = s.cfg.LearningSteps[0]
}

// learningStep advances a card through the short-interval ladder. Hard
// repeats the current step without advancing; Good and Easy advance, and a
// card that clears the last step graduates.
func (s *Scheduler) learningStep(c *Card, q Quality) {
	steps := s.cfg.LearningSteps

	if q == QualityHard {
		idx := c.repetitions
		if idx >= len(steps) {
			idx = len(steps) - 1
		}
		c.intervalMins = steps[idx]
		return
	}

	c.repetitions++
	if c.repetitions < len(steps) {
		c.intervalMins = steps[c.repetitions]
		return
	}

	// Past the last ladder step: graduate.
	c.repetitions = len(steps)
	if q == QualityEasy {
		c.intervalMins = s.cfg.EasyGraduationIntervalMinutes
	} else {
		c.intervalMins = s.cfg.GraduationIntervalMinutes
	}
}

// grow applies SM-2 ease-factor growth to a graduated card. The interval
// never shrinks on a non-lapse review; Hard dampens growth without lapsing.
func (s *Scheduler) grow(c *Card, q Quality) {
	ef := c.easeFactor + (0.1 - float64(5-q)*(0.08+float64(5-q)*0.02))
	if ef < s.cfg.MinEaseFactor {
		ef = s.cfg.MinEaseFactor
	}

	growth := ef
	if q == QualityHard {
		growth *= s.cfg.HardDamping
	}
	if growth < 1.0 {
		growth = 1.0
	}

	c.easeFactor = ef
	c.intervalMins = int(math.Round(float64(c.intervalMins) * growth))
	c.repetitions++
}
