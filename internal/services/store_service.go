package services

import (
	"errors"
	"time"

	"rately/internal/repositories"
)

// StoreService serves the user-facing store queries and the store owner
// dashboard.
type StoreService struct {
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

// StoreWithUserRating is a store as seen by a normal user: public fields,
// the cached aggregate, and that user's own rating when they have one. The
// own-rating field is a per-request projection, not stored state.
type StoreWithUserRating struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int64     `json:"totalRatings"`
	UserRating    *int      `json:"userRating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserRatingEntry is one row of a user's own-ratings listing.
type UserRatingEntry struct {
	ID           string    `json:"id"`
	Rating       int       `json:"rating"`
	StoreID      string    `json:"storeId"`
	StoreName    string    `json:"storeName"`
	StoreAddress string    `json:"storeAddress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DashboardStore is the owner-dashboard view of a store: identity, cached
// aggregate, rank among all stores, and the 1..5 rating histogram.
type DashboardStore struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	AverageRating float64       `json:"averageRating"`
	TotalRatings  int64         `json:"totalRatings"`
	Rank          int64         `json:"rank"`
	Distribution  map[int]int64 `json:"distribution"`
}

// DashboardRating is one row of the owner dashboard's rating listing, with
// the author joined in.
type DashboardRating struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListForUser returns one page of stores with the calling user's own rating
// joined into each row.
func (s *StoreService) ListForUser(userID string, q repositories.StoreListQuery) ([]StoreWithUserRating, int64, error) {
	stores, total, err := s.storeRepo.List(q)
	if err != nil {
		return nil, 0, err
	}

	storeIDs := make([]string, len(stores))
	for i, store := range stores {
		storeIDs[i] = store.ID
	}
	values, err := s.ratingRepo.ValuesByUserForStores(userID, storeIDs)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]StoreWithUserRating, len(stores))
	for i, store := range stores {
		rows[i] = StoreWithUserRating{
			ID:            store.ID,
			Name:          store.Name,
			Address:       store.Address,
			AverageRating: store.AverageRating,
			TotalRatings:  store.TotalRatings,
			CreatedAt:     store.CreatedAt,
		}
		if value, ok := values[store.ID]; ok {
			v := value
			rows[i].UserRating = &v
		}
	}
	return rows, total, nil
}

// GetForUser returns one store with the calling user's own rating joined in.
func (s *StoreService) GetForUser(userID, storeID string) (*StoreWithUserRating, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}

	row := &StoreWithUserRating{
		ID:            store.ID,
		Name:          store.Name,
		Address:       store.Address,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		CreatedAt:     store.CreatedAt,
	}

	rating, err := s.ratingRepo.GetByUserAndStore(userID, storeID)
	switch {
	case err == nil:
		v := rating.Value
		row.UserRating = &v
	case errors.Is(err, repositories.ErrNotFound):
		// No own rating yet; the field stays null.
	default:
		return nil, err
	}
	return row, nil
}

// RatingsByUser returns all ratings the user has submitted, newest update
// first.
func (s *StoreService) RatingsByUser(userID string) ([]UserRatingEntry, error) {
	rows, err := s.ratingRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]UserRatingEntry, len(rows))
	for i, row := range rows {
		entries[i] = UserRatingEntry{
			ID:           row.ID,
			Rating:       row.Value,
			StoreID:      row.StoreID,
			StoreName:    row.StoreName,
			StoreAddress: row.StoreAddress,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		}
	}
	return entries, nil
}

// OwnerDashboard assembles the dashboard for the authenticated store owner.
// An owner without a store is an explicit empty state, not an error: the
// returned store is nil and so is the error.
func (s *StoreService) OwnerDashboard(ownerID, search string, page, limit int) (*DashboardStore, []DashboardRating, int64, error) {
	store, err := s.storeRepo.GetByOwner(ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, 0, nil
		}
		return nil, nil, 0, err
	}

	rows, total, err := s.ratingRepo.ListForStore(store.ID, search, page, limit)
	if err != nil {
		return nil, nil, 0, err
	}

	higher, err := s.storeRepo.CountHigherRated(store.AverageRating)
	if err != nil {
		return nil, nil, 0, err
	}

	distribution, err := s.ratingRepo.DistributionForStore(store.ID)
	if err != nil {
		return nil, nil, 0, err
	}

	dashboard := &DashboardStore{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		Rank:          higher + 1, // stores with equal averages share rank
		Distribution:  distribution,
	}

	ratings := make([]DashboardRating, len(rows))
	for i, row := range rows {
		ratings[i] = DashboardRating{
			ID:        row.ID,
			Rating:    row.Value,
			UserName:  row.UserName,
			UserEmail: row.UserEmail,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return dashboard, ratings, total, nil
}
