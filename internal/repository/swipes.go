// internal/repository/swipes.go
package repository

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/google/uuid"

	apperrors "foodswipe/internal/common/errors"
	"foodswipe/internal/common/logger"
	"foodswipe/internal/common/metrics"
	"foodswipe/internal/models"
)

const (
	fetchPersonalSwipesQuery = `
		SELECT id, restaurant_id, liked
		FROM swipes
		WHERE user_id = $1 AND group_id IS NULL`

	fetchGroupSwipesQuery = `
		SELECT id, restaurant_id, liked
		FROM swipes
		WHERE user_id = $1 AND group_id = $2`

	insertSwipeQuery = `
		INSERT INTO swipes (id, user_id, restaurant_id, liked, group_id)
		VALUES ($1, $2, $3, $4, $5)`

	countSwipesQuery = `
		SELECT COUNT(*) FROM swipes WHERE user_id = $1`

	resetPersonalSwipesQuery = `
		DELETE FROM swipes WHERE user_id = $1 AND group_id IS NULL`

	resetGroupSwipesQuery = `
		DELETE FROM swipes WHERE user_id = $1 AND group_id = $2`
)

// SwipeRepository stores and fetches swipe records. Context scoping happens
// server-side: the personal queries only ever see NULL group ids and the
// group queries only the given group. The deck composer trusts the scoping
// and performs no disambiguation of its own.
type SwipeRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSwipeRepository(db *sql.DB, log logger.Logger) *SwipeRepository {
	return &SwipeRepository{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"repository": "swipes"}),
	}
}

// FetchUserSwipes returns the user's swipe records for one context.
func (r *SwipeRepository) FetchUserSwipes(ctx context.Context, userID string, swipeCtx models.SwipeContext) ([]models.SwipeRecord, error) {
	var rows *sql.Rows
	var err error
	if swipeCtx.Personal() {
		rows, err = r.db.QueryContext(ctx, fetchPersonalSwipesQuery, userID)
	} else {
		rows, err = r.db.QueryContext(ctx, fetchGroupSwipesQuery, userID, swipeCtx.GroupID)
	}
	if err != nil {
		metrics.RepositoryErrors.WithLabelValues("swipes", string(apperrors.ErrCodeSwipeFetchFailed)).Inc()
		return nil, apperrors.NewSwipeFetchFailedError(userID, err)
	}
	defer rows.Close()

	var records []models.SwipeRecord
	for rows.Next() {
		rec := models.SwipeRecord{UserID: userID, Context: swipeCtx}
		if err := rows.Scan(&rec.ID, &rec.RestaurantID, &rec.Liked); err != nil {
			metrics.RepositoryErrors.WithLabelValues("swipes", string(apperrors.ErrCodeSwipeFetchFailed)).Inc()
			return nil, apperrors.NewSwipeFetchFailedError(userID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		metrics.RepositoryErrors.WithLabelValues("swipes", string(apperrors.ErrCodeSwipeFetchFailed)).Inc()
		return nil, apperrors.NewSwipeFetchFailedError(userID, err)
	}

	return records, nil
}

// SwipedSet returns the context-scoped swiped restaurant ids as a set, the
// shape the deck composer consumes.
func (r *SwipeRepository) SwipedSet(ctx context.Context, userID string, swipeCtx models.SwipeContext) (map[string]bool, error) {
	records, err := r.FetchUserSwipes(ctx, userID, swipeCtx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(records))
	for _, rec := range records {
		set[rec.RestaurantID] = true
	}
	return set, nil
}

// Record inserts one swipe decision. Records are never updated.
func (r *SwipeRepository) Record(ctx context.Context, userID, restaurantID string, liked bool, swipeCtx models.SwipeContext) (models.SwipeRecord, error) {
	rec := models.SwipeRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		RestaurantID: restaurantID,
		Liked:        liked,
		Context:      swipeCtx,
	}

	groupID := sql.NullString{String: swipeCtx.GroupID, Valid: !swipeCtx.Personal()}
	if _, err := r.db.ExecContext(ctx, insertSwipeQuery, rec.ID, userID, restaurantID, liked, groupID); err != nil {
		metrics.RepositoryErrors.WithLabelValues("swipes", string(apperrors.ErrCodeSwipeInsertFailed)).Inc()
		return models.SwipeRecord{}, apperrors.NewSwipeInsertFailedError(restaurantID, err)
	}

	metrics.SwipesRecorded.WithLabelValues(swipeCtx.String(), strconv.FormatBool(liked)).Inc()
	return rec, nil
}

// CountUserSwipes returns the user's total swipe count across all contexts.
// It feeds the exploration re-rank threshold.
func (r *SwipeRepository) CountUserSwipes(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, countSwipesQuery, userID).Scan(&count); err != nil {
		metrics.RepositoryErrors.WithLabelValues("swipes", string(apperrors.ErrCodeSwipeFetchFailed)).Inc()
		return 0, apperrors.NewSwipeFetchFailedError(userID, err)
	}
	return count, nil
}

// Reset deletes the user's swipe records for exactly one context. The
// predicate mirrors the fetch queries so a personal reset can never touch
// group records and vice versa.
func (r *SwipeRepository) Reset(ctx context.Context, userID string, swipeCtx models.SwipeContext) error {
	var result sql.Result
	var err error
	if swipeCtx.Personal() {
		result, err = r.db.ExecContext(ctx, resetPersonalSwipesQuery, userID)
	} else {
		result, err = r.db.ExecContext(ctx, resetGroupSwipesQuery, userID, swipeCtx.GroupID)
	}
	if err != nil {
		metrics.RepositoryErrors.WithLabelValues("swipes", string(apperrors.ErrCodeSwipeResetFailed)).Inc()
		return apperrors.NewSwipeResetFailedError(userID, err)
	}

	if deleted, err := result.RowsAffected(); err == nil {
		r.logger.Info("swipe history reset", map[string]interface{}{
			"userId":  userID,
			"context": swipeCtx.String(),
			"deleted": deleted,
		})
	}
	return nil
}
