package card

// Quality is the graded recall outcome of a single review. The study UI
// exposes exactly four buttons; any other value is rejected before the
// scheduler runs.
type Quality int

const (
	QualityForgot Quality = 0 // lapse, card was not recalled
	QualityHard   Quality = 1 // recalled with significant difficulty
	QualityGood   Quality = 3 // recalled with normal effort
	QualityEasy   Quality = 5 // recalled effortlessly
)

// Validate checks that the quality is one of the four accepted values.
func (q Quality) Validate() error {
	switch q {
	case QualityForgot, QualityHard, QualityGood, QualityEasy:
		return nil
	}
	return ErrInvalidQuality
}

// Correct reports whether this review counts as a correct recall.
func (q Quality) Correct() bool {
	return q >= QualityGood
}

// String returns the button label for the quality.
func (q Quality) String() string {
	switch q {
	case QualityForgot:
		return "Forgot"
	case QualityHard:
		return "Hard"
	case QualityGood:
		return "Good"
	case QualityEasy:
		return "Easy"
	}
	return "Unknown"
}
