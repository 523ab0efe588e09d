// internal/deck/config.go
package deck

// Config holds the composer tunables.
type Config struct {
	// RerankSwipeThreshold is the minimum number of prior swipes before the
	// exploration re-rank applies.
	RerankSwipeThreshold int

	// HeadFraction is the top slice of the score-sorted deck that gets
	// shuffled, rounded up.
	HeadFraction float64

	// TutorialFirst and TutorialSecond are the reserved restaurant names
	// pinned to the front of the deck during onboarding, in this order.
	TutorialFirst  string
	TutorialSecond string
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		RerankSwipeThreshold: 10,
		HeadFraction:         0.2,
		TutorialFirst:        "美味蟹堡",
		TutorialSecond:       "軟飯",
	}
}
