// internal/deck/filter.go
package deck

import (
	"strings"

	"foodswipe/internal/models"
)

// PassesFilters reports whether the restaurant passes every active sub-filter
// in the configuration. The whole predicate is a single hard gate: one
// failing sub-filter excludes the restaurant. A nil location disables the
// distance sub-filter.
func PassesFilters(r models.Restaurant, f models.FilterConfiguration, location *models.Coordinate) bool {
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		needle := strings.ToLower(term)
		if !strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Address), needle) &&
			!strings.Contains(strings.ToLower(r.CuisineType), needle) {
			return false
		}
	}

	if len(f.Cities) > 0 && !containsString(f.Cities, r.City) {
		return false
	}

	if len(f.Districts) > 0 && !containsString(f.Districts, r.District) {
		return false
	}

	// Price is always evaluated, even at the default full range.
	if r.PriceTier < f.PriceRange[0] || r.PriceTier > f.PriceRange[1] {
		return false
	}

	if f.DistanceRange < models.DistanceUnlimited && location != nil {
		if DistanceKm(location.Lat, location.Lng, r.Lat, r.Lng) > f.DistanceRange {
			return false
		}
	}

	if f.MinRating > 0 && r.Rating < f.MinRating {
		return false
	}

	if f.HasMichelin && r.MichelinStars == 0 {
		return false
	}

	if f.Has500Dishes && !r.Has500Dishes {
		return false
	}

	if f.HasBibGourmand && !r.BibGourmand {
		return false
	}

	if len(f.CuisineTypes) > 0 && !containsString(f.CuisineTypes, r.CuisineType) {
		return false
	}

	if len(f.DietaryOptions) > 0 && !hasAnyDietaryOption(r.DietaryOptions, f.DietaryOptions) {
		return false
	}

	return true
}

// HasAnyImmediateFilter reports whether any sub-filter is in its active
// state. Price counts as active only when its bounds differ from the default
// full range; distance only below the unlimited sentinel.
func HasAnyImmediateFilter(f models.FilterConfiguration) bool {
	if strings.TrimSpace(f.SearchTerm) != "" {
		return true
	}
	if len(f.Cities) > 0 || len(f.Districts) > 0 {
		return true
	}
	if f.PriceRange[0] != models.DefaultPriceMin || f.PriceRange[1] != models.DefaultPriceMax {
		return true
	}
	if f.DistanceRange < models.DistanceUnlimited {
		return true
	}
	if f.MinRating > 0 {
		return true
	}
	if f.HasMichelin || f.Has500Dishes || f.HasBibGourmand {
		return true
	}
	if len(f.CuisineTypes) > 0 || len(f.DietaryOptions) > 0 {
		return true
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func hasAnyDietaryOption(available map[string]bool, requested []string) bool {
	for _, tag := range requested {
		if available[tag] {
			return true
		}
	}
	return false
}
