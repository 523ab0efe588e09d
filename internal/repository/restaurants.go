// internal/repository/restaurants.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	apperrors "foodswipe/internal/common/errors"
	"foodswipe/internal/common/logger"
	"foodswipe/internal/common/metrics"
	"foodswipe/internal/models"
)

const fetchRestaurantsQuery = `
	SELECT id, name, address, city, district, lat, lng,
	       rating, review_count, price_tier, cuisine_type,
	       dietary_options, michelin_stars, bib_gourmand, has_500_dishes
	FROM restaurants
	ORDER BY name`

// RestaurantRepository loads the full restaurant set the deck is composed
// from. Records are read-only to the rest of the system.
type RestaurantRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewRestaurantRepository(db *sql.DB, log logger.Logger) *RestaurantRepository {
	return &RestaurantRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"repository": "restaurants"}),
	}
}

// FetchAll returns every restaurant, ordered by name.
func (r *RestaurantRepository) FetchAll(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, fetchRestaurantsQuery)
	if err != nil {
		metrics.RepositoryErrors.WithLabelValues("restaurants", string(apperrors.ErrCodeRestaurantFetchFailed)).Inc()
		return nil, apperrors.NewRestaurantFetchFailedError(err)
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var rest models.Restaurant
		var dietary []byte
		err := rows.Scan(
			&rest.ID, &rest.Name, &rest.Address, &rest.City, &rest.District,
			&rest.Lat, &rest.Lng, &rest.Rating, &rest.ReviewCount,
			&rest.PriceTier, &rest.CuisineType, &dietary,
			&rest.MichelinStars, &rest.BibGourmand, &rest.Has500Dishes,
		)
		if err != nil {
			metrics.RepositoryErrors.WithLabelValues("restaurants", string(apperrors.ErrCodeRestaurantFetchFailed)).Inc()
			return nil, apperrors.NewRestaurantFetchFailedError(err)
		}

		rest.DietaryOptions = map[string]bool{}
		if len(dietary) > 0 {
			if err := json.Unmarshal(dietary, &rest.DietaryOptions); err != nil {
				r.logger.Warn("malformed dietary options, treating as none", map[string]interface{}{
					"restaurantId": rest.ID,
					"error":        err,
				})
				rest.DietaryOptions = map[string]bool{}
			}
		}

		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		metrics.RepositoryErrors.WithLabelValues("restaurants", string(apperrors.ErrCodeRestaurantFetchFailed)).Inc()
		return nil, apperrors.NewRestaurantFetchFailedError(err)
	}

	return restaurants, nil
}
