package handlers

import (
	"errors"
	"log"

	"rately/internal/middleware"
	"rately/internal/models"
	"rately/internal/repositories"
	"rately/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the system-administrator HTTP surface.
type AdminHandler struct {
	adminService *services.AdminService
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the admin routes. Every route requires an
// authenticated system_admin.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	routes := router.Group("/admin", authGuard, middleware.RequireRoles(models.RoleSystemAdmin))
	routes.Get("/dashboard/stats", h.HandleDashboardStats)
	routes.Post("/users", h.HandleCreateUser)
	routes.Get("/users", h.HandleListUsers)
	routes.Get("/users/:id", h.HandleGetUser)
	routes.Put("/users/:id", h.HandleUpdateUser)
	routes.Delete("/users/:id", h.HandleDeleteUser)
	routes.Post("/stores", h.HandleCreateStore)
	routes.Get("/stores", h.HandleListStores)
}

// HandleDashboardStats returns the user/store/rating counters.
func (h *AdminHandler) HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		log.Printf("Error getting dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(stats)
}

// CreateUserRequest is the request body for admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required,max=400"`
	Role     string `json:"role" validate:"required,oneof=system_admin normal_user store_owner"`
}

// HandleCreateUser creates an account with an admin-chosen role.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	}
	if err := h.adminService.CreateUser(&user); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User with this email already exists",
			})
		}
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleListUsers returns one page of users with search, filter and sort.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	q := repositories.UserListQuery{
		Search:    c.Query("search"),
		Name:      c.Query("name"),
		Email:     c.Query("email"),
		Address:   c.Query("address"),
		Role:      c.Query("role"),
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	users, total, err := h.adminService.ListUsers(q)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": pagination(q.Page, q.Limit, total, "totalUsers"),
	})
}

// HandleGetUser returns one user; store owners include their store summary.
func (h *AdminHandler) HandleGetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	detail, err := h.adminService.GetUser(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Error getting user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"user": detail})
}

// UpdateUserRequest is the request body for an admin user update. All
// fields are optional; empty fields are left unchanged.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=3,max=60"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address" validate:"omitempty,max=400"`
	Role     string `json:"role" validate:"omitempty,oneof=system_admin normal_user store_owner"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdateUser applies a partial update to a user.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	user, err := h.adminService.UpdateUser(id, services.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Email is already in use",
			})
		}
		log.Printf("Error updating user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser deletes a user, cascading to their store (for owners)
// and to every rating they authored.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.adminService.DeleteUser(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Error deleting user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// CreateStoreRequest is the request body for store creation. OwnerID is
// optional; when present it must reference an existing store_owner account.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=3,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
	OwnerID string `json:"ownerId" validate:"omitempty,uuid"`
}

// HandleCreateStore creates a store.
func (h *AdminHandler) HandleCreateStore(c *fiber.Ctx) error {
	var req CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err),
		})
	}

	store := models.Store{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}
	if req.OwnerID != "" {
		store.OwnerID = &req.OwnerID
	}

	if err := h.adminService.CreateStore(&store); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Store with this email already exists",
			})
		case errors.Is(err, services.ErrInvalidOwner):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid store owner ID",
			})
		}
		log.Printf("Error creating store: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store created successfully",
		"store":   store,
	})
}

// adminStoreResponse is one row of the admin store listing.
type adminStoreResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	OwnerName     string  `json:"ownerName"`
	OwnerEmail    string  `json:"ownerEmail"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// HandleListStores returns one page of stores with owner identity.
func (h *AdminHandler) HandleListStores(c *fiber.Ctx) error {
	q := repositories.StoreListQuery{
		Search:    c.Query("search"),
		Name:      c.Query("name"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	rows, total, err := h.adminService.ListStores(q)
	if err != nil {
		log.Printf("Error listing stores: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	stores := make([]adminStoreResponse, len(rows))
	for i, row := range rows {
		stores[i] = adminStoreResponse{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Address:       row.Address,
			OwnerName:     "N/A",
			OwnerEmail:    "N/A",
			AverageRating: row.AverageRating,
			TotalRatings:  row.TotalRatings,
		}
		if row.OwnerName != nil {
			stores[i].OwnerName = *row.OwnerName
		}
		if row.OwnerEmail != nil {
			stores[i].OwnerEmail = *row.OwnerEmail
		}
	}

	return c.JSON(fiber.Map{
		"stores":     stores,
		"pagination": pagination(q.Page, q.Limit, total, "totalStores"),
	})
}
