package repositories

import (
	"errors"
	"fmt"

	"rately/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Create inserts a new rating. The unique (user, store) index makes this
// fail if the pair already has a rating.
func (r *GORMRatingRepository) Create(rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	if err := r.db.Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// Update saves all fields of an existing rating.
func (r *GORMRatingRepository) Update(rating *models.Rating) error {
	res := r.db.Save(rating)
	if res.Error != nil {
		return fmt.Errorf("failed to update rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rating with ID %s: %w", rating.ID, ErrNotFound)
	}
	return nil
}

// GetByUserAndStore retrieves the single rating for a (user, store) pair.
func (r *GORMRatingRepository) GetByUserAndStore(userID, storeID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.First(&rating, "user_id = ? AND store_id = ?", userID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating by user %s for store %s: %w", userID, storeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating by user %s for store %s: %w", userID, storeID, err)
	}
	return &rating, nil
}

// ValuesByUserForStores returns the user's rating value keyed by store ID.
func (r *GORMRatingRepository) ValuesByUserForStores(userID string, storeIDs []string) (map[string]int, error) {
	values := make(map[string]int, len(storeIDs))
	if len(storeIDs) == 0 {
		return values, nil
	}
	var ratings []models.Rating
	err := r.db.Where("user_id = ? AND store_id IN ?", userID, storeIDs).Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings by user %s: %w", userID, err)
	}
	for _, rating := range ratings {
		values[rating.StoreID] = rating.Value
	}
	return values, nil
}

// ListByUser returns all of a user's ratings with the rated store joined in,
// newest update first.
func (r *GORMRatingRepository) ListByUser(userID string) ([]RatingWithStore, error) {
	var rows []RatingWithStore
	err := r.db.Model(&models.Rating{}).
		Select("ratings.id, ratings.value, ratings.store_id, stores.name AS store_name, stores.address AS store_address, ratings.created_at, ratings.updated_at").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("ratings.user_id = ?", userID).
		Order("ratings.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for user %s: %w", userID, err)
	}
	return rows, nil
}

// ListForStore returns one page of a store's ratings with the author joined
// in, plus the total match count.
func (r *GORMRatingRepository) ListForStore(storeID, search string, page, limit int) ([]RatingWithUser, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.Model(&models.Rating{}).
			Joins("JOIN users ON users.id = ratings.user_id").
			Where("ratings.store_id = ?", storeID)
		if search != "" {
			term := likePattern(search)
			tx = tx.Where("lower(users.name) LIKE ? OR lower(users.email) LIKE ?", term, term)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings for store %s: %w", storeID, err)
	}

	page, limit = normalizePage(page, limit)
	var rows []RatingWithUser
	err := filtered().
		Select("ratings.id, ratings.value, users.name AS user_name, users.email AS user_email, ratings.created_at, ratings.updated_at").
		Order("ratings.updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings for store %s: %w", storeID, err)
	}
	return rows, total, nil
}

// AggregateForStore computes the rating count and unrounded mean for a store
// by scanning its ledger records.
func (r *GORMRatingRepository) AggregateForStore(storeID string) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings for store %s: %w", storeID, err)
	}
	return row.Average, row.Total, nil
}

// DistributionForStore counts a store's ratings per value, with every value
// 1..5 present in the result.
func (r *GORMRatingRepository) DistributionForStore(storeID string) (map[int]int64, error) {
	var rows []struct {
		Value int
		Total int64
	}
	err := r.db.Model(&models.Rating{}).
		Select("value, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Group("value").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating distribution for store %s: %w", storeID, err)
	}
	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, row := range rows {
		distribution[row.Value] = row.Total
	}
	return distribution, nil
}

// DeleteByUser removes all ratings authored by the given user.
func (r *GORMRatingRepository) DeleteByUser(userID string) error {
	if err := r.db.Delete(&models.Rating{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete ratings for user %s: %w", userID, err)
	}
	return nil
}

// Count returns the total number of ratings.
func (r *GORMRatingRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Rating{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return total, nil
}
