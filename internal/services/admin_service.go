package services

import (
	"errors"
	"fmt"
	"strings"

	"rately/internal/models"
	"rately/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AdminService handles the system-administrator operations: dashboard
// statistics, user management with cascade deletion, and store creation and
// listing.
type AdminService struct {
	userRepo   repositories.UserRepository
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository, storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository) *AdminService {
	return &AdminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

// DashboardStats holds the admin dashboard counters.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// OwnedStoreSummary is the store block embedded in a store owner's user
// detail.
type OwnedStoreSummary struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// UserDetail is a user plus, for store owners, a summary of their store.
type UserDetail struct {
	models.User
	Store *OwnedStoreSummary `json:"store"`
}

// UserUpdate is a partial admin update of a user; empty fields are left
// unchanged. A non-empty password is re-hashed before storage.
type UserUpdate struct {
	Name     string
	Email    string
	Address  string
	Role     string
	Password string
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats() (*DashboardStats, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	stores, err := s.storeRepo.Count()
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepo.Count()
	if err != nil {
		return nil, err
	}
	return &DashboardStats{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
}

// CreateUser creates an account with the given role and a hashed password.
func (s *AdminService) CreateUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %s: %w", user.Email, ErrEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	return s.userRepo.Create(user)
}

// ListUsers returns one page of users matching the query plus the total
// match count.
func (s *AdminService) ListUsers(q repositories.UserListQuery) ([]models.User, int64, error) {
	return s.userRepo.List(q)
}

// GetUser returns a user's detail; for store owners the owned store's
// summary is embedded.
func (s *AdminService) GetUser(id string) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	detail := &UserDetail{User: *user}
	if user.Role == models.RoleStoreOwner {
		store, err := s.storeRepo.GetByOwner(user.ID)
		switch {
		case err == nil:
			detail.Store = &OwnedStoreSummary{
				Name:          store.Name,
				Email:         store.Email,
				Address:       store.Address,
				AverageRating: store.AverageRating,
				TotalRatings:  store.TotalRatings,
			}
		case errors.Is(err, repositories.ErrNotFound):
			// Owner without an assigned store; the block stays null.
		default:
			return nil, err
		}
	}
	return detail, nil
}

// UpdateUser applies a partial update to a user.
func (s *AdminService) UpdateUser(id string, upd UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Email != "" {
		email := strings.ToLower(strings.TrimSpace(upd.Email))
		if email != user.Email {
			if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
				return nil, fmt.Errorf("email %s: %w", email, ErrEmailTaken)
			}
			user.Email = email
		}
	}
	if upd.Name != "" {
		user.Name = upd.Name
	}
	if upd.Address != "" {
		user.Address = upd.Address
	}
	if upd.Role != "" {
		user.Role = upd.Role
	}
	if upd.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user and cascades: a store owner's store is deleted,
// and all ratings the user authored are deleted.
func (s *AdminService) DeleteUser(id string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	if user.Role == models.RoleStoreOwner {
		if err := s.storeRepo.DeleteByOwner(id); err != nil {
			return err
		}
	}
	return s.ratingRepo.DeleteByUser(id)
}

// CreateStore creates a store, optionally bound to an existing store-owner
// account.
func (s *AdminService) CreateStore(store *models.Store) error {
	store.Email = strings.ToLower(strings.TrimSpace(store.Email))

	if existing, err := s.storeRepo.GetByEmail(store.Email); err == nil && existing != nil {
		return fmt.Errorf("store email %s: %w", store.Email, ErrEmailTaken)
	}

	if store.OwnerID != nil && *store.OwnerID != "" {
		owner, err := s.userRepo.GetByID(*store.OwnerID)
		if err != nil || owner.Role != models.RoleStoreOwner {
			return fmt.Errorf("owner %s: %w", *store.OwnerID, ErrInvalidOwner)
		}
	} else {
		store.OwnerID = nil
	}

	return s.storeRepo.Create(store)
}

// ListStores returns one page of stores with owner identity joined in, plus
// the total match count.
func (s *AdminService) ListStores(q repositories.StoreListQuery) ([]repositories.StoreWithOwner, int64, error) {
	return s.storeRepo.ListWithOwner(q)
}
