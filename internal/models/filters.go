// internal/models/filters.go
package models

const (
	// DistanceUnlimited is the sentinel meaning "no distance ceiling".
	DistanceUnlimited = 999

	// Default price bounds. The price sub-filter is always evaluated, but it
	// only counts as an active immediate filter when the bounds differ from
	// these defaults.
	DefaultPriceMin = 0
	DefaultPriceMax = 10
)

// FilterConfiguration holds the session-scoped explicit filter choices. When
// any sub-filter is active the configuration is a hard gate on deck
// membership; it is never persisted.
type FilterConfiguration struct {
	SearchTerm     string   `json:"searchTerm"`
	PriceRange     [2]int   `json:"priceRange"` // inclusive ordinal pair
	DistanceRange  float64  `json:"distanceRange"`
	MinRating      float64  `json:"minRating"`
	HasMichelin    bool     `json:"hasMichelinStars"`
	Has500Dishes   bool     `json:"has500Dishes"`
	HasBibGourmand bool     `json:"hasBibGourmand"`
	CuisineTypes   []string `json:"cuisineTypes"`
	DietaryOptions []string `json:"dietaryOptions"`
	Cities         []string `json:"cities"`
	Districts      []string `json:"districts"`
}

// NewFilterConfiguration returns the neutral configuration: full price range,
// unlimited distance, nothing else set.
func NewFilterConfiguration() FilterConfiguration {
	return FilterConfiguration{
		PriceRange:    [2]int{DefaultPriceMin, DefaultPriceMax},
		DistanceRange: DistanceUnlimited,
	}
}
