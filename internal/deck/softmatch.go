// internal/deck/softmatch.go
package deck

import "foodswipe/internal/models"

// MatchesProfile reports whether the restaurant matches the user's standing
// taste profile. It is consulted only when no immediate filter is active.
//
// Unlike the hard filter's AND semantics, a single matching signal is enough:
// the profile is a broad "things I might like" hint and must not starve the
// deck. A profile with no active signal matches everything, as does a missing
// profile.
func MatchesProfile(r models.Restaurant, p *models.ProfilePreferences) bool {
	if p.Empty() {
		return true
	}

	if p.MinRating > 0 && r.Rating >= p.MinRating {
		return true
	}
	if p.LikesMichelin && r.MichelinStars > 0 {
		return true
	}
	if p.LikesBibGourmand && r.BibGourmand {
		return true
	}
	if p.Likes500Dishes && r.Has500Dishes {
		return true
	}
	if len(p.FavoriteCuisines) > 0 && containsString(p.FavoriteCuisines, r.CuisineType) {
		return true
	}
	if len(p.DietaryPreferences) > 0 && hasAnyDietaryOption(r.DietaryOptions, p.DietaryPreferences) {
		return true
	}

	return false
}
