package repositories

import (
	"errors"
	"fmt"

	"rately/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userSortColumns is the allow-list of sortable fields for user listings.
var userSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"address":   "address",
	"role":      "role",
	"createdAt": "created_at",
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// Update saves all fields of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", user.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a user by their ID.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// List returns one page of users matching the query plus the total match
// count. Password hashes travel in the model but are never serialized.
func (r *GORMUserRepository) List(q UserListQuery) ([]models.User, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.Model(&models.User{})
		if q.Search != "" {
			term := likePattern(q.Search)
			tx = tx.Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(address) LIKE ?", term, term, term)
		} else {
			if q.Name != "" {
				tx = tx.Where("lower(name) LIKE ?", likePattern(q.Name))
			}
			if q.Email != "" {
				tx = tx.Where("lower(email) LIKE ?", likePattern(q.Email))
			}
			if q.Address != "" {
				tx = tx.Where("lower(address) LIKE ?", likePattern(q.Address))
			}
		}
		if q.Role != "" {
			tx = tx.Where("role = ?", q.Role)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	page, limit := normalizePage(q.Page, q.Limit)
	var users []models.User
	err := filtered().
		Order(sortClause(userSortColumns, q.SortBy, q.SortOrder)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Count returns the total number of users.
func (r *GORMUserRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}
