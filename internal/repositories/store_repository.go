package repositories

import (
	"time"

	"rately/internal/models"
)

// StoreListQuery captures the search, sort and pagination parameters for
// store listings. Search, when set, takes precedence over the per-field
// filters.
type StoreListQuery struct {
	Search    string
	Name      string
	Address   string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// StoreWithOwner is an admin-listing row: a store joined with its owner's
// name and email when an owner is assigned.
type StoreWithOwner struct {
	ID            string
	Name          string
	Email         string
	Address       string
	OwnerID       *string
	AverageRating float64
	TotalRatings  int64
	OwnerName     *string
	OwnerEmail    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	Create(store *models.Store) error
	GetByID(id string) (*models.Store, error)
	GetByEmail(email string) (*models.Store, error)
	GetByOwner(ownerID string) (*models.Store, error)
	Update(store *models.Store) error
	// UpdateRatingStats overwrites the store's cached aggregate fields.
	UpdateRatingStats(storeID string, average float64, total int64) error
	DeleteByOwner(ownerID string) error
	List(q StoreListQuery) ([]models.Store, int64, error)
	ListWithOwner(q StoreListQuery) ([]StoreWithOwner, int64, error)
	// CountHigherRated counts stores with a strictly greater average rating;
	// rank is that count plus one, so ties share rank.
	CountHigherRated(average float64) (int64, error)
	Count() (int64, error)
}
