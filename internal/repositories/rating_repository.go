package repositories

import (
	"time"

	"rately/internal/models"
)

// RatingWithStore is a rating joined with the rated store's identity, for a
// user's "my ratings" listing.
type RatingWithStore struct {
	ID           string
	Value        int
	StoreID      string
	StoreName    string
	StoreAddress string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RatingWithUser is a rating joined with its author's name and email, for
// the store owner dashboard.
type RatingWithUser struct {
	ID        string
	Value     int
	UserName  string
	UserEmail string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingRepository defines the interface for rating-ledger data access.
type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	GetByUserAndStore(userID, storeID string) (*models.Rating, error)
	// ValuesByUserForStores returns the user's rating value per store ID,
	// for the stores the user has rated.
	ValuesByUserForStores(userID string, storeIDs []string) (map[string]int, error)
	ListByUser(userID string) ([]RatingWithStore, error)
	// ListForStore returns one page of a store's ratings with the author
	// joined in, newest update first, optionally filtered by a search term
	// against the author's name or email.
	ListForStore(storeID, search string, page, limit int) ([]RatingWithUser, int64, error)
	// AggregateForStore scans the ledger for the store and returns the
	// arithmetic mean (unrounded, 0 when empty) and the record count.
	AggregateForStore(storeID string) (average float64, total int64, err error)
	// DistributionForStore counts ratings per value 1..5, absent values
	// reported as zero.
	DistributionForStore(storeID string) (map[int]int64, error)
	DeleteByUser(userID string) error
	Count() (int64, error)
}
