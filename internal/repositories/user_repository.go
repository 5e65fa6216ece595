package repositories

import "rately/internal/models"

// UserListQuery captures the search, filter, sort and pagination parameters
// of the admin user listing. Search, when set, takes precedence over the
// per-field filters.
type UserListQuery struct {
	Search    string
	Name      string
	Email     string
	Address   string
	Role      string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	List(q UserListQuery) ([]models.User, int64, error)
	Count() (int64, error)
}
