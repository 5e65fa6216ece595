package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rately/internal/handlers"
	"rately/internal/middleware"
	"rately/internal/models"
	"rately/internal/repositories"
	"rately/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "integration-test-secret"

// setupApp builds a full HTTP stack on a per-test in-memory database. The
// database name is derived from the test name so parallel tests never share
// state, while cache=shared keeps it alive across pooled connections.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	adminService := services.NewAdminService(userRepo, storeRepo, ratingRepo)
	ratingService := services.NewRatingService(ratingRepo, storeRepo, nil)
	storeService := services.NewStoreService(storeRepo, ratingRepo)

	app := fiber.New()
	api := app.Group("/api")
	authGuard := middleware.AuthRequired(authService, userRepo)
	handlers.NewAuthHandler(authService).RegisterRoutes(api, authGuard)
	handlers.NewAdminHandler(adminService).RegisterRoutes(api, authGuard)
	handlers.NewStoreHandler(storeService, ratingService).RegisterRoutes(api, authGuard)

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, name, email, password, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Address:  "123 Integration Test Street",
		Role:     role,
	}
	if err := repositories.NewGORMUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createStore(t *testing.T, db *gorm.DB, name, email string, ownerID *string) *models.Store {
	t.Helper()

	store := &models.Store{
		Name:    name,
		Email:   email,
		Address: "456 Integration Test Avenue",
		OwnerID: ownerID,
	}
	if err := repositories.NewGORMStoreRepository(db).Create(store); err != nil {
		t.Fatalf("failed to create store %s: %v", email, err)
	}
	return store
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response of %s %s: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	status, body := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login as %s failed with status %d: %v", email, status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login as %s returned no token", email)
	}
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Alice Registration Tester",
		"email":    "alice@example.com",
		"password": "Secret@123",
		"address":  "1 Alice Lane",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	if assert.True(t, ok, "register response carries the created user") {
		assert.Equal(t, "normal_user", user["role"], "self-registration always yields a normal user")
		assert.Equal(t, "alice@example.com", user["email"])
		_, exposed := user["password"]
		assert.False(t, exposed, "password hash must never be serialized")
	}

	// Same email again, regardless of letter case.
	status, body = doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Alice Registration Tester",
		"email":    "ALICE@example.com",
		"password": "Secret@123",
		"address":  "1 Alice Lane",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User with this email already exists", body["error"])

	// Short name fails validation before reaching the service.
	status, body = doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Al",
		"email":    "al@example.com",
		"password": "Secret@123",
		"address":  "1 Al Lane",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "Name")

	token := login(t, app, "alice@example.com", "Secret@123")

	status, body = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", body["error"])

	status, body = doRequest(t, app, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
	profile := body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", profile["email"])
}

func TestProfileAndPasswordUpdates(t *testing.T) {
	app, db := setupApp(t)
	createUser(t, db, "Bob Profile Tester", "bob@example.com", "Secret@123", models.RoleNormalUser)
	token := login(t, app, "bob@example.com", "Secret@123")

	status, body := doRequest(t, app, http.MethodPut, "/api/auth/profile", token, fiber.Map{
		"name":    "Bob Renamed Profile Tester",
		"address": "42 Updated Street",
	})
	assert.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "Bob Renamed Profile Tester", user["name"])
	assert.Equal(t, "42 Updated Street", user["address"])
	assert.Equal(t, "bob@example.com", user["email"], "email is not self-service editable")

	// Wrong current password is rejected.
	status, body = doRequest(t, app, http.MethodPut, "/api/auth/password", token, fiber.Map{
		"currentPassword": "not-the-password",
		"newPassword":     "Changed@456",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Current password is incorrect", body["error"])

	status, _ = doRequest(t, app, http.MethodPut, "/api/auth/password", token, fiber.Map{
		"currentPassword": "Secret@123",
		"newPassword":     "Changed@456",
	})
	assert.Equal(t, http.StatusOK, status)

	// Old password no longer works, the new one does.
	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "bob@example.com",
		"password": "Secret@123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	login(t, app, "bob@example.com", "Changed@456")

	status, body = doRequest(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully", body["message"])
}

func TestAuthGating(t *testing.T) {
	app, db := setupApp(t)
	createUser(t, db, "Normal Gating Tester", "normal@example.com", "Secret@123", models.RoleNormalUser)
	admin := createUser(t, db, "Admin Gating Tester", "admin@example.com", "Secret@123", models.RoleSystemAdmin)

	status, body := doRequest(t, app, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access token required", body["error"])

	status, body = doRequest(t, app, http.MethodGet, "/api/auth/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Invalid token", body["error"])

	// A token that was valid once but has since expired.
	expiredIssuer := services.NewAuthService(repositories.NewGORMUserRepository(db), testJWTSecret, -time.Hour)
	expired, err := expiredIssuer.IssueToken(admin.ID)
	assert.NoError(t, err)
	status, body = doRequest(t, app, http.MethodGet, "/api/auth/profile", expired, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Token expired", body["error"])

	// A valid token whose account has since been deleted.
	ghost := createUser(t, db, "Ghost Gating Tester", "ghost@example.com", "Secret@123", models.RoleNormalUser)
	ghostToken := login(t, app, "ghost@example.com", "Secret@123")
	assert.NoError(t, repositories.NewGORMUserRepository(db).Delete(ghost.ID))
	status, body = doRequest(t, app, http.MethodGet, "/api/auth/profile", ghostToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "User not found", body["error"])

	// Authenticated but wrong role, in both directions.
	normalToken := login(t, app, "normal@example.com", "Secret@123")
	status, body = doRequest(t, app, http.MethodGet, "/api/admin/dashboard/stats", normalToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Insufficient permissions", body["error"])

	adminToken := login(t, app, "admin@example.com", "Secret@123")
	status, body = doRequest(t, app, http.MethodGet, "/api/stores", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Insufficient permissions", body["error"])
}

func TestRatingLifecycle(t *testing.T) {
	app, db := setupApp(t)
	createUser(t, db, "Alice Rating Tester", "alice@example.com", "Secret@123", models.RoleNormalUser)
	createUser(t, db, "Bob Rating Tester", "bob@example.com", "Secret@123", models.RoleNormalUser)
	store := createStore(t, db, "Freshly Opened Store", "fresh@example.com", nil)

	alice := login(t, app, "alice@example.com", "Secret@123")
	bob := login(t, app, "bob@example.com", "Secret@123")

	storeAggregate := func(token string) (float64, float64, any) {
		status, body := doRequest(t, app, http.MethodGet, "/api/stores/"+store.ID, token, nil)
		assert.Equal(t, http.StatusOK, status)
		row := body["store"].(map[string]any)
		return row["averageRating"].(float64), row["totalRatings"].(float64), row["userRating"]
	}

	// First rating.
	status, body := doRequest(t, app, http.MethodPost, "/api/stores/ratings", alice, fiber.Map{
		"storeId": store.ID,
		"rating":  4,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rating submitted successfully", body["message"])

	avg, total, own := storeAggregate(alice)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1.0, total)
	assert.Equal(t, 4.0, own)

	// Re-rating overwrites instead of stacking.
	status, _ = doRequest(t, app, http.MethodPost, "/api/stores/ratings", alice, fiber.Map{
		"storeId": store.ID,
		"rating":  2,
	})
	assert.Equal(t, http.StatusOK, status)

	avg, total, own = storeAggregate(alice)
	assert.Equal(t, 2.0, avg)
	assert.Equal(t, 1.0, total, "overwriting a rating must not grow the count")
	assert.Equal(t, 2.0, own)

	// A second rater moves the average.
	status, _ = doRequest(t, app, http.MethodPost, "/api/stores/ratings", bob, fiber.Map{
		"storeId": store.ID,
		"rating":  4,
	})
	assert.Equal(t, http.StatusOK, status)

	avg, total, own = storeAggregate(alice)
	assert.Equal(t, 3.0, avg)
	assert.Equal(t, 2.0, total)
	assert.Equal(t, 2.0, own, "each user sees their own rating, not the other's")

	// Out-of-range value is rejected without touching the aggregate.
	status, body = doRequest(t, app, http.MethodPost, "/api/stores/ratings", alice, fiber.Map{
		"storeId": store.ID,
		"rating":  6,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Rating must be between 1 and 5", body["error"])
	avg, total, _ = storeAggregate(alice)
	assert.Equal(t, 3.0, avg)
	assert.Equal(t, 2.0, total)

	status, body = doRequest(t, app, http.MethodPost, "/api/stores/ratings", alice, fiber.Map{
		"rating": 3,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Store ID and rating are required", body["error"])

	status, body = doRequest(t, app, http.MethodPost, "/api/stores/ratings", alice, fiber.Map{
		"storeId": "00000000-0000-0000-0000-000000000000",
		"rating":  3,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Store not found", body["error"])

	// The store listing carries the caller's own rating per row.
	status, body = doRequest(t, app, http.MethodGet, "/api/stores", bob, nil)
	assert.Equal(t, http.StatusOK, status)
	stores := body["stores"].([]any)
	assert.Len(t, stores, 1)
	assert.Equal(t, 4.0, stores[0].(map[string]any)["userRating"])
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, 1.0, pagination["totalStores"])

	// The "my ratings" listing reflects the final value.
	status, body = doRequest(t, app, http.MethodGet, "/api/stores/user/ratings", alice, nil)
	assert.Equal(t, http.StatusOK, status)
	ratings := body["ratings"].([]any)
	assert.Len(t, ratings, 1)
	entry := ratings[0].(map[string]any)
	assert.Equal(t, 2.0, entry["rating"])
	assert.Equal(t, "Freshly Opened Store", entry["storeName"])
}

func TestOwnerDashboard(t *testing.T) {
	app, db := setupApp(t)
	owner := createUser(t, db, "Dashboard Store Owner", "owner@example.com", "Secret@123", models.RoleStoreOwner)
	createUser(t, db, "Carol Dashboard Rater", "carol@example.com", "Secret@123", models.RoleNormalUser)
	createUser(t, db, "Dave Dashboard Rater", "dave@example.com", "Secret@123", models.RoleNormalUser)

	owned := createStore(t, db, "Owned Mid Tier Store", "owned@example.com", &owner.ID)
	rival := createStore(t, db, "Rival Top Tier Store", "rival@example.com", nil)

	carol := login(t, app, "carol@example.com", "Secret@123")
	dave := login(t, app, "dave@example.com", "Secret@123")

	rate := func(token, storeID string, value int) {
		status, _ := doRequest(t, app, http.MethodPost, "/api/stores/ratings", token, fiber.Map{
			"storeId": storeID,
			"rating":  value,
		})
		assert.Equal(t, http.StatusOK, status)
	}
	rate(carol, owned.ID, 5)
	rate(dave, owned.ID, 3)
	rate(carol, rival.ID, 5)

	ownerToken := login(t, app, "owner@example.com", "Secret@123")
	status, body := doRequest(t, app, http.MethodGet, "/api/stores/owner/dashboard", ownerToken, nil)
	assert.Equal(t, http.StatusOK, status)

	dashboard := body["store"].(map[string]any)
	assert.Equal(t, 4.0, dashboard["averageRating"])
	assert.Equal(t, 2.0, dashboard["totalRatings"])
	assert.Equal(t, 2.0, dashboard["rank"], "one store rates strictly higher")

	distribution := dashboard["distribution"].(map[string]any)
	assert.Equal(t, 1.0, distribution["3"])
	assert.Equal(t, 1.0, distribution["5"])
	assert.Equal(t, 0.0, distribution["1"])

	ratings := body["ratings"].([]any)
	assert.Len(t, ratings, 2)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, 2.0, pagination["totalRatings"])

	// Filter the listing by author.
	status, body = doRequest(t, app, http.MethodGet, "/api/stores/owner/dashboard?search=carol", ownerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	ratings = body["ratings"].([]any)
	assert.Len(t, ratings, 1)
	assert.Equal(t, "Carol Dashboard Rater", ratings[0].(map[string]any)["userName"])

	// An owner with no assigned store gets the explicit empty state.
	createUser(t, db, "Storeless Store Owner", "storeless@example.com", "Secret@123", models.RoleStoreOwner)
	storeless := login(t, app, "storeless@example.com", "Secret@123")
	status, body = doRequest(t, app, http.MethodGet, "/api/stores/owner/dashboard", storeless, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["store"])
	assert.Empty(t, body["ratings"])
	pagination = body["pagination"].(map[string]any)
	assert.Equal(t, 0.0, pagination["totalPages"])
}

func TestAdminUserManagement(t *testing.T) {
	app, db := setupApp(t)
	createUser(t, db, "Root Admin Account", "admin@example.com", "Secret@123", models.RoleSystemAdmin)
	adminToken := login(t, app, "admin@example.com", "Secret@123")

	status, body := doRequest(t, app, http.MethodPost, "/api/admin/users", adminToken, fiber.Map{
		"name":     "Provisioned Store Owner",
		"email":    "provisioned@example.com",
		"password": "Secret@123",
		"address":  "7 Provisioned Road",
		"role":     "store_owner",
	})
	assert.Equal(t, http.StatusCreated, status)
	created := body["user"].(map[string]any)
	assert.Equal(t, "store_owner", created["role"])
	ownerID := created["id"].(string)

	// Rejected role values never reach the database.
	status, _ = doRequest(t, app, http.MethodPost, "/api/admin/users", adminToken, fiber.Map{
		"name":     "Invalid Role Candidate",
		"email":    "invalid-role@example.com",
		"password": "Secret@123",
		"address":  "8 Invalid Road",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Listing with a search term that matches one account.
	status, body = doRequest(t, app, http.MethodGet, "/api/admin/users?search=provisioned", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	assert.Len(t, users, 1)
	assert.Equal(t, "provisioned@example.com", users[0].(map[string]any)["email"])

	// Role filter plus descending email sort.
	createUser(t, db, "Second Admin Account", "second-admin@example.com", "Secret@123", models.RoleSystemAdmin)
	status, body = doRequest(t, app, http.MethodGet, "/api/admin/users?role=system_admin&sortBy=email&sortOrder=desc", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	users = body["users"].([]any)
	assert.Len(t, users, 2)
	assert.Equal(t, "second-admin@example.com", users[0].(map[string]any)["email"])

	// Pagination.
	status, body = doRequest(t, app, http.MethodGet, "/api/admin/users?limit=2&page=2", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, 2.0, pagination["currentPage"])
	assert.Equal(t, 3.0, pagination["totalUsers"])
	assert.Equal(t, 2.0, pagination["totalPages"])

	// Partial update; untouched fields keep their values.
	status, body = doRequest(t, app, http.MethodPut, "/api/admin/users/"+ownerID, adminToken, fiber.Map{
		"address": "9 Relocated Road",
	})
	assert.Equal(t, http.StatusOK, status)
	updated := body["user"].(map[string]any)
	assert.Equal(t, "9 Relocated Road", updated["address"])
	assert.Equal(t, "Provisioned Store Owner", updated["name"])

	status, body = doRequest(t, app, http.MethodPut, "/api/admin/users/"+ownerID, adminToken, fiber.Map{
		"email": "admin@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is already in use", body["error"])

	status, body = doRequest(t, app, http.MethodGet, "/api/admin/users/does-not-exist", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["error"])
}

func TestAdminStoresAndCascadeDelete(t *testing.T) {
	app, db := setupApp(t)
	createUser(t, db, "Root Admin Account", "admin@example.com", "Secret@123", models.RoleSystemAdmin)
	owner := createUser(t, db, "Cascade Store Owner", "owner@example.com", "Secret@123", models.RoleStoreOwner)
	normal := createUser(t, db, "Cascade Normal User", "normal@example.com", "Secret@123", models.RoleNormalUser)
	adminToken := login(t, app, "admin@example.com", "Secret@123")

	status, body := doRequest(t, app, http.MethodPost, "/api/admin/stores", adminToken, fiber.Map{
		"name":    "Cascade Target Store",
		"email":   "cascade@example.com",
		"address": "10 Cascade Court",
		"ownerId": owner.ID,
	})
	assert.Equal(t, http.StatusCreated, status)
	storeID := body["store"].(map[string]any)["id"].(string)

	// A normal user cannot be a store owner.
	status, body = doRequest(t, app, http.MethodPost, "/api/admin/stores", adminToken, fiber.Map{
		"name":    "Misassigned Store",
		"email":   "misassigned@example.com",
		"address": "11 Cascade Court",
		"ownerId": normal.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid store owner ID", body["error"])

	status, body = doRequest(t, app, http.MethodPost, "/api/admin/stores", adminToken, fiber.Map{
		"name":    "Duplicate Email Store",
		"email":   "cascade@example.com",
		"address": "12 Cascade Court",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Store with this email already exists", body["error"])

	// Ownerless stores list with the N/A placeholder.
	createStore(t, db, "Ownerless Listed Store", "ownerless@example.com", nil)
	status, body = doRequest(t, app, http.MethodGet, "/api/admin/stores?sortBy=name&sortOrder=asc", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	stores := body["stores"].([]any)
	assert.Len(t, stores, 2)
	assert.Equal(t, "Cascade Store Owner", stores[0].(map[string]any)["ownerName"])
	assert.Equal(t, "N/A", stores[1].(map[string]any)["ownerName"])

	// The owner's user detail embeds the store summary.
	status, body = doRequest(t, app, http.MethodGet, "/api/admin/users/"+owner.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	detail := body["user"].(map[string]any)
	if assert.NotNil(t, detail["store"]) {
		assert.Equal(t, "Cascade Target Store", detail["store"].(map[string]any)["name"])
	}

	// Rate the store so the cascade has a rating to remove.
	normalToken := login(t, app, "normal@example.com", "Secret@123")
	status, _ = doRequest(t, app, http.MethodPost, "/api/stores/ratings", normalToken, fiber.Map{
		"storeId": storeID,
		"rating":  5,
	})
	assert.Equal(t, http.StatusOK, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/admin/dashboard/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3.0, body["totalUsers"])
	assert.Equal(t, 2.0, body["totalStores"])
	assert.Equal(t, 1.0, body["totalRatings"])

	// Deleting the owner removes their store.
	status, body = doRequest(t, app, http.MethodDelete, "/api/admin/users/"+owner.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted successfully", body["message"])

	// Deleting the rater removes their ratings.
	status, _ = doRequest(t, app, http.MethodDelete, "/api/admin/users/"+normal.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = doRequest(t, app, http.MethodGet, "/api/admin/dashboard/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1.0, body["totalUsers"])
	assert.Equal(t, 1.0, body["totalStores"])
	assert.Equal(t, 0.0, body["totalRatings"])
}
