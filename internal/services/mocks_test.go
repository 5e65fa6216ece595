package services_test

import (
	"fmt"

	"rately/internal/models"
	"rately/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// notFound builds the wrapped not-found error the GORM repositories return.
func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) List(q repositories.UserListQuery) ([]models.User, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of repositories.StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(store *models.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreRepository) GetByID(id string) (*models.Store, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByEmail(email string) (*models.Store, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByOwner(ownerID string) (*models.Store, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Store), args.Error(1)
}

func (m *MockStoreRepository) Update(store *models.Store) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreRepository) UpdateRatingStats(storeID string, average float64, total int64) error {
	args := m.Called(storeID, average, total)
	return args.Error(0)
}

func (m *MockStoreRepository) DeleteByOwner(ownerID string) error {
	args := m.Called(ownerID)
	return args.Error(0)
}

func (m *MockStoreRepository) List(q repositories.StoreListQuery) ([]models.Store, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) ListWithOwner(q repositories.StoreListQuery) ([]repositories.StoreWithOwner, int64, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repositories.StoreWithOwner), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) CountHigherRated(average float64) (int64, error) {
	args := m.Called(average)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockRatingRepository is a mock implementation of repositories.RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(rating *models.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByUserAndStore(userID, storeID string) (*models.Rating, error) {
	args := m.Called(userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ValuesByUserForStores(userID string, storeIDs []string) (map[string]int, error) {
	args := m.Called(userID, storeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockRatingRepository) ListByUser(userID string) ([]repositories.RatingWithStore, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.RatingWithStore), args.Error(1)
}

func (m *MockRatingRepository) ListForStore(storeID, search string, page, limit int) ([]repositories.RatingWithUser, int64, error) {
	args := m.Called(storeID, search, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]repositories.RatingWithUser), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) AggregateForStore(storeID string) (float64, int64, error) {
	args := m.Called(storeID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) DistributionForStore(storeID string) (map[int]int64, error) {
	args := m.Called(storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int64), args.Error(1)
}

func (m *MockRatingRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockRatingRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}
