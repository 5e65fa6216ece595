package repositories

import (
	"errors"
	"fmt"

	"rately/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sort allow-lists for store listings. The user-facing listing does not
// expose totalRatings as a sort key; the admin listing does.
var (
	storeSortColumns = map[string]string{
		"name":          "name",
		"address":       "address",
		"averageRating": "average_rating",
	}
	adminStoreSortColumns = map[string]string{
		"name":          "name",
		"address":       "address",
		"averageRating": "average_rating",
		"totalRatings":  "total_ratings",
	}
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create creates a new store in the database.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// GetByID retrieves a store by its ID.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// GetByEmail retrieves a store by its email.
func (r *GORMStoreRepository) GetByEmail(email string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by email %s: %w", email, err)
	}
	return &store, nil
}

// GetByOwner retrieves the store owned by the given user.
func (r *GORMStoreRepository) GetByOwner(ownerID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store owned by user %s: %w", ownerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by owner %s: %w", ownerID, err)
	}
	return &store, nil
}

// Update saves all fields of an existing store.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Save(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s: %w", store.ID, ErrNotFound)
	}
	return nil
}

// UpdateRatingStats overwrites the store's cached average and count. A map
// update is used so zero values (an emptied ledger) are written too.
func (r *GORMStoreRepository) UpdateRatingStats(storeID string, average float64, total int64) error {
	res := r.db.Model(&models.Store{}).Where("id = ?", storeID).Updates(map[string]interface{}{
		"average_rating": average,
		"total_ratings":  total,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update rating stats for store %s: %w", storeID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s: %w", storeID, ErrNotFound)
	}
	return nil
}

// DeleteByOwner removes the store owned by the given user, if any.
func (r *GORMStoreRepository) DeleteByOwner(ownerID string) error {
	if err := r.db.Delete(&models.Store{}, "owner_id = ?", ownerID).Error; err != nil {
		return fmt.Errorf("failed to delete store for owner %s: %w", ownerID, err)
	}
	return nil
}

// List returns one page of stores matching the query plus the total match
// count.
func (r *GORMStoreRepository) List(q StoreListQuery) ([]models.Store, int64, error) {
	var total int64
	if err := r.filtered(q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	page, limit := normalizePage(q.Page, q.Limit)
	var stores []models.Store
	err := r.filtered(q).
		Order(sortClause(storeSortColumns, q.SortBy, q.SortOrder)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, total, nil
}

// ListWithOwner returns one page of stores joined with their owner's name
// and email, for the admin listing.
func (r *GORMStoreRepository) ListWithOwner(q StoreListQuery) ([]StoreWithOwner, int64, error) {
	var total int64
	if err := r.filtered(q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	page, limit := normalizePage(q.Page, q.Limit)
	var rows []StoreWithOwner
	err := r.filtered(q).
		Select("stores.id, stores.name, stores.email, stores.address, stores.owner_id, stores.average_rating, stores.total_ratings, stores.created_at, stores.updated_at, owners.name AS owner_name, owners.email AS owner_email").
		Joins("LEFT JOIN users AS owners ON owners.id = stores.owner_id").
		Order("stores." + sortClause(adminStoreSortColumns, q.SortBy, q.SortOrder)).
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stores with owners: %w", err)
	}
	return rows, total, nil
}

// CountHigherRated counts stores whose cached average rating is strictly
// greater than the given value.
func (r *GORMStoreRepository) CountHigherRated(average float64) (int64, error) {
	var total int64
	err := r.db.Model(&models.Store{}).Where("average_rating > ?", average).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count higher-rated stores: %w", err)
	}
	return total, nil
}

// Count returns the total number of stores.
func (r *GORMStoreRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Store{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return total, nil
}

// filtered builds the WHERE clause shared by List, ListWithOwner and their
// counts. Rebuilt per use so counting does not disturb the select statement.
func (r *GORMStoreRepository) filtered(q StoreListQuery) *gorm.DB {
	tx := r.db.Model(&models.Store{})
	if q.Search != "" {
		term := likePattern(q.Search)
		tx = tx.Where("lower(stores.name) LIKE ? OR lower(stores.address) LIKE ? OR lower(stores.email) LIKE ?", term, term, term)
	} else {
		if q.Name != "" {
			tx = tx.Where("lower(stores.name) LIKE ?", likePattern(q.Name))
		}
		if q.Address != "" {
			tx = tx.Where("lower(stores.address) LIKE ?", likePattern(q.Address))
		}
	}
	return tx
}
