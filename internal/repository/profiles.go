// internal/repository/profiles.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "foodswipe/internal/common/errors"
	"foodswipe/internal/common/logger"
	"foodswipe/internal/common/metrics"
	"foodswipe/internal/models"
)

const fetchPreferencesQuery = `
	SELECT min_rating, likes_michelin, likes_bib_gourmand, likes_500_dishes,
	       favorite_cuisines, dietary_preferences
	FROM profile_preferences
	WHERE user_id = $1`

// ProfileRepository fetches standing profile preferences with a Redis
// read-through cache in front of Postgres. A user without a preference row
// is a valid state and yields a nil profile.
type ProfileRepository struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewProfileRepository(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"repository": "profiles"}),
	}
}

func profileCacheKey(userID string) string {
	return "user:prefs:" + userID
}

// FetchPreferences returns the user's profile preferences, or nil when the
// user never expressed any.
func (r *ProfileRepository) FetchPreferences(ctx context.Context, userID string) (*models.ProfilePreferences, error) {
	if r.redis != nil {
		if val, err := r.redis.Get(ctx, profileCacheKey(userID)).Result(); err == nil {
			var prefs models.ProfilePreferences
			if err := json.Unmarshal([]byte(val), &prefs); err == nil {
				return &prefs, nil
			}
		}
	}

	row := r.db.QueryRowContext(ctx, fetchPreferencesQuery, userID)

	var prefs models.ProfilePreferences
	var cuisines, dietary []byte
	err := row.Scan(&prefs.MinRating, &prefs.LikesMichelin, &prefs.LikesBibGourmand,
		&prefs.Likes500Dishes, &cuisines, &dietary)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		metrics.RepositoryErrors.WithLabelValues("profiles", string(apperrors.ErrCodeProfileFetchFailed)).Inc()
		return nil, apperrors.NewProfileFetchFailedError(userID, err)
	}

	if err := json.Unmarshal(cuisines, &prefs.FavoriteCuisines); err != nil {
		prefs.FavoriteCuisines = []string{}
	}
	if err := json.Unmarshal(dietary, &prefs.DietaryPreferences); err != nil {
		prefs.DietaryPreferences = []string{}
	}

	if r.redis != nil {
		data, _ := json.Marshal(prefs)
		if err := r.redis.Set(ctx, profileCacheKey(userID), data, r.cacheTTL).Err(); err != nil {
			r.logger.Warn("failed to cache profile preferences", map[string]interface{}{
				"userId": userID,
				"error":  err,
			})
		}
	}

	return &prefs, nil
}

// InvalidateCache drops the cached preferences for a user, e.g. after a
// profile update elsewhere in the product.
func (r *ProfileRepository) InvalidateCache(ctx context.Context, userID string) error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Del(ctx, profileCacheKey(userID)).Err()
}
