// internal/common/validation/filters_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "foodswipe/internal/common/errors"
	"foodswipe/internal/models"
)

func TestParseFilterConfiguration(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		expectError    bool
		validateOutput func(*testing.T, models.FilterConfiguration)
	}{
		{
			name: "empty object keeps neutral defaults",
			raw:  `{}`,
			validateOutput: func(t *testing.T, cfg models.FilterConfiguration) {
				assert.Equal(t, [2]int{models.DefaultPriceMin, models.DefaultPriceMax}, cfg.PriceRange)
				assert.Equal(t, float64(models.DistanceUnlimited), cfg.DistanceRange)
				assert.Empty(t, cfg.SearchTerm)
				assert.Empty(t, cfg.CuisineTypes)
			},
		},
		{
			name: "full configuration round-trips",
			raw: `{
				"searchTerm": "ramen",
				"priceRange": [2, 4],
				"distanceRange": 5,
				"minRating": 4.0,
				"hasMichelinStars": true,
				"cuisineTypes": ["日式"],
				"dietaryOptions": ["vegan"],
				"cities": ["台北市"],
				"districts": ["大安區"]
			}`,
			validateOutput: func(t *testing.T, cfg models.FilterConfiguration) {
				assert.Equal(t, "ramen", cfg.SearchTerm)
				assert.Equal(t, [2]int{2, 4}, cfg.PriceRange)
				assert.Equal(t, 5.0, cfg.DistanceRange)
				assert.Equal(t, 4.0, cfg.MinRating)
				assert.True(t, cfg.HasMichelin)
				assert.Equal(t, []string{"日式"}, cfg.CuisineTypes)
				assert.Equal(t, []string{"vegan"}, cfg.DietaryOptions)
			},
		},
		{
			name: "omitted fields keep defaults alongside set ones",
			raw:  `{"minRating": 4.5}`,
			validateOutput: func(t *testing.T, cfg models.FilterConfiguration) {
				assert.Equal(t, 4.5, cfg.MinRating)
				assert.Equal(t, [2]int{models.DefaultPriceMin, models.DefaultPriceMax}, cfg.PriceRange)
				assert.Equal(t, float64(models.DistanceUnlimited), cfg.DistanceRange)
			},
		},
		{
			name:        "malformed JSON is rejected",
			raw:         `{"searchTerm": `,
			expectError: true,
		},
		{
			name:        "unknown property is rejected",
			raw:         `{"sortBy": "rating"}`,
			expectError: true,
		},
		{
			name:        "wrong type is rejected",
			raw:         `{"minRating": "high"}`,
			expectError: true,
		},
		{
			name:        "unknown dietary tag is rejected",
			raw:         `{"dietaryOptions": ["keto"]}`,
			expectError: true,
		},
		{
			name:        "price range with one element is rejected",
			raw:         `{"priceRange": [2]}`,
			expectError: true,
		},
		{
			name:        "inverted price bounds are rejected",
			raw:         `{"priceRange": [4, 2]}`,
			expectError: true,
		},
		{
			name:        "negative distance is rejected",
			raw:         `{"distanceRange": -1}`,
			expectError: true,
		},
		{
			name:        "rating above five is rejected",
			raw:         `{"minRating": 5.5}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFilterConfiguration([]byte(tt.raw))

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeInvalidFilterFormat, apperrors.CodeOf(err))
				assert.False(t, apperrors.IsRetryable(err))
				return
			}

			assert.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, cfg)
			}
		})
	}
}
