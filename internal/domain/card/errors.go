package card

import "errors"

// Sentinel errors for review scheduling. Callers use errors.Is; the REST
// layer maps them to status codes.
var (
	ErrInvalidQuality      = errors.New("quality must be one of 0, 1, 3, 5")
	ErrInvalidTiming       = errors.New("time taken must not be negative")
	ErrNotFound            = errors.New("flashcard not found")
	ErrConcurrencyConflict = errors.New("card state changed concurrently")
)
