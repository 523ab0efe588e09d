// internal/models/preferences.go
package models

// ProfilePreferences is a user's standing taste record. Unlike
// FilterConfiguration it is a soft signal: it only biases deck membership
// when no immediate filter is active, and a restaurant matching any single
// active signal passes.
type ProfilePreferences struct {
	MinRating          float64  `json:"minRating"`
	LikesMichelin      bool     `json:"likesMichelin"`
	LikesBibGourmand   bool     `json:"likesBibGourmand"`
	Likes500Dishes     bool     `json:"likes500Dishes"`
	FavoriteCuisines   []string `json:"favoriteCuisines"`
	DietaryPreferences []string `json:"dietaryPreferences"`
}

// Empty reports whether the profile carries no active preference signal.
func (p *ProfilePreferences) Empty() bool {
	if p == nil {
		return true
	}
	return p.MinRating <= 0 &&
		!p.LikesMichelin && !p.LikesBibGourmand && !p.Likes500Dishes &&
		len(p.FavoriteCuisines) == 0 && len(p.DietaryPreferences) == 0
}
