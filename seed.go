package main

import (
	"errors"
	"fmt"
	"log"

	"rately/internal/models"
	"rately/internal/repositories"
	"rately/internal/services"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedDatabase ensures the default accounts, one store and five sample
// ratings exist, then re-syncs the store's cached stats with the ledger.
// Every step checks before creating, so repeated boots are no-ops.
func seedDatabase(db *gorm.DB) error {
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	if _, err := ensureUser(userRepo, "System Administrator Account", "admin@rately.com", "Admin@123", "123 Admin Street, Admin City, Admin State 12345", models.RoleSystemAdmin); err != nil {
		return err
	}

	normalUser, err := ensureUser(userRepo, "Normal User Account for Testing", "user@rately.com", "User@123", "456 User Avenue, User City, User State 67890", models.RoleNormalUser)
	if err != nil {
		return err
	}

	storeOwner, err := ensureUser(userRepo, "Store Owner Account for Testing", "store@rately.com", "Store@123", "789 Store Blvd, Store City, Store State 13579", models.RoleStoreOwner)
	if err != nil {
		return err
	}

	raters := []*models.User{normalUser}
	for i := 1; i <= 4; i++ {
		rater, err := ensureUser(userRepo,
			fmt.Sprintf("Test User %d", i),
			fmt.Sprintf("user%d@rately.com", i),
			"User@123",
			fmt.Sprintf("Test Address %d", i),
			models.RoleNormalUser)
		if err != nil {
			return err
		}
		raters = append(raters, rater)
	}

	store, err := ensureStore(storeRepo, storeOwner.ID)
	if err != nil {
		return err
	}

	values := []int{5, 4, 5, 5, 4}
	for i, rater := range raters {
		if err := ensureRating(ratingRepo, rater.ID, store.ID, values[i]); err != nil {
			return err
		}
	}

	// Sync the cached aggregate with whatever the ledger now holds.
	ratingService := services.NewRatingService(ratingRepo, storeRepo, nil)
	ratingService.RefreshStoreStats(store.ID)

	log.Println("Database seed complete. Default admin: admin@rately.com / Admin@123")
	return nil
}

// ensureUser returns the user with the given email, creating it with a
// hashed password when absent.
func ensureUser(userRepo repositories.UserRepository, name, email, password, address, role string) (*models.User, error) {
	user, err := userRepo.GetByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	user = &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Address:  address,
		Role:     role,
	}
	if err := userRepo.Create(user); err != nil {
		return nil, err
	}
	log.Printf("Seeded user %s (%s)", email, role)
	return user, nil
}

// ensureStore returns the store owned by ownerID. A pre-existing unowned
// store with the seed email is adopted; otherwise the store is created.
func ensureStore(storeRepo repositories.StoreRepository, ownerID string) (*models.Store, error) {
	store, err := storeRepo.GetByOwner(ownerID)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	store, err = storeRepo.GetByEmail("info@techgadgets.com")
	if err == nil {
		store.OwnerID = &ownerID
		if err := storeRepo.Update(store); err != nil {
			return nil, err
		}
		log.Printf("Adopted existing seed store %s for owner %s", store.ID, ownerID)
		return store, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	store = &models.Store{
		Name:    "Tech Gadgets and Electronics Superstore",
		Email:   "info@techgadgets.com",
		Address: "789 Store Blvd, Store City, Store State 13579",
		OwnerID: &ownerID,
	}
	if err := storeRepo.Create(store); err != nil {
		return nil, err
	}
	log.Printf("Seeded store %s", store.Name)
	return store, nil
}

// ensureRating creates the (user, store) rating when absent.
func ensureRating(ratingRepo repositories.RatingRepository, userID, storeID string, value int) error {
	_, err := ratingRepo.GetByUserAndStore(userID, storeID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return ratingRepo.Create(&models.Rating{UserID: userID, StoreID: storeID, Value: value})
}
