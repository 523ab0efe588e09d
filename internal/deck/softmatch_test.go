// internal/deck/softmatch_test.go
package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"foodswipe/internal/models"
)

func TestMatchesProfile(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*models.Restaurant)
		profile  *models.ProfilePreferences
		expected bool
	}{
		{
			name:     "nil profile matches everything",
			profile:  nil,
			expected: true,
		},
		{
			name:     "empty profile matches everything",
			profile:  &models.ProfilePreferences{},
			expected: true,
		},
		{
			name: "rating signal alone matches",
			profile: &models.ProfilePreferences{
				MinRating: 4.0,
			},
			expected: true,
		},
		{
			name: "rating signal below threshold does not match",
			modify: func(r *models.Restaurant) {
				r.Rating = 3.2
			},
			profile: &models.ProfilePreferences{
				MinRating: 4.0,
			},
			expected: false,
		},
		{
			name: "michelin signal matches starred restaurant",
			profile: &models.ProfilePreferences{
				LikesMichelin: true,
			},
			expected: true,
		},
		{
			name: "bib gourmand signal matches",
			modify: func(r *models.Restaurant) {
				r.BibGourmand = true
			},
			profile: &models.ProfilePreferences{
				LikesBibGourmand: true,
			},
			expected: true,
		},
		{
			name: "500 dishes signal matches",
			profile: &models.ProfilePreferences{
				Likes500Dishes: true,
			},
			expected: true,
		},
		{
			name: "favorite cuisine matches",
			profile: &models.ProfilePreferences{
				FavoriteCuisines: []string{"日式", "中式"},
			},
			expected: true,
		},
		{
			name: "dietary preference matches",
			profile: &models.ProfilePreferences{
				DietaryPreferences: []string{"vegetarian"},
			},
			expected: true,
		},
		{
			name: "one of several signals is enough",
			modify: func(r *models.Restaurant) {
				r.Rating = 2.0
				r.MichelinStars = 0
			},
			profile: &models.ProfilePreferences{
				MinRating:        4.5,
				LikesMichelin:    true,
				FavoriteCuisines: []string{"中式"},
			},
			expected: true,
		},
		{
			name: "no signal matching excludes",
			modify: func(r *models.Restaurant) {
				r.Rating = 2.0
				r.MichelinStars = 0
				r.Has500Dishes = false
				r.CuisineType = "美式"
				r.DietaryOptions = nil
			},
			profile: &models.ProfilePreferences{
				MinRating:          4.5,
				LikesMichelin:      true,
				Likes500Dishes:     true,
				FavoriteCuisines:   []string{"中式"},
				DietaryPreferences: []string{"vegan"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := createTestRestaurant()
			if tt.modify != nil {
				tt.modify(&r)
			}
			assert.Equal(t, tt.expected, MatchesProfile(r, tt.profile))
		})
	}
}
