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

// StoreHandler handles the store browsing, rating submission and store
// owner dashboard routes.
type StoreHandler struct {
	storeService  *services.StoreService
	ratingService *services.RatingService
	validate      *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService, ratingService *services.RatingService) *StoreHandler {
	return &StoreHandler{
		storeService:  storeService,
		ratingService: ratingService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the store routes. The wildcard ":id" route goes
// last so it cannot shadow the fixed paths.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	routes := router.Group("/stores", authGuard)
	normalUser := middleware.RequireRoles(models.RoleNormalUser)

	routes.Get("/", normalUser, h.HandleListStores)
	routes.Post("/ratings", normalUser, h.HandleSubmitRating)
	routes.Get("/user/ratings", normalUser, h.HandleUserRatings)
	routes.Get("/owner/dashboard", middleware.RequireRoles(models.RoleStoreOwner), h.HandleOwnerDashboard)
	routes.Get("/:id", normalUser, h.HandleGetStore)
}

// HandleListStores returns one page of stores with the caller's own rating
// joined into each row.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	q := repositories.StoreListQuery{
		Name:      c.Query("name"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy", "name"),
		SortOrder: c.Query("sortOrder", "asc"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	stores, total, err := h.storeService.ListForUser(userID, q)
	if err != nil {
		log.Printf("Error listing stores for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"stores":     stores,
		"pagination": pagination(q.Page, q.Limit, total, "totalStores"),
	})
}

// HandleGetStore returns one store with the caller's own rating joined in.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	storeID := c.Params("id")

	store, err := h.storeService.GetForUser(userID, storeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Store not found",
			})
		}
		log.Printf("Error getting store %s: %v", storeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"store": store})
}

// SubmitRatingRequest is the request body for a rating submission. Rating
// must be an integer; fractional JSON values fail body parsing with a 400.
type SubmitRatingRequest struct {
	StoreID string `json:"storeId"`
	Rating  int    `json:"rating"`
}

// HandleSubmitRating records or overwrites the caller's rating of a store.
func (h *StoreHandler) HandleSubmitRating(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	var req SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.StoreID == "" || req.Rating == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Store ID and rating are required",
		})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	if err := h.ratingService.Submit(userID, req.StoreID, req.Rating); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Store not found",
			})
		}
		log.Printf("Error submitting rating for store %s: %v", req.StoreID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Rating submitted successfully"})
}

// HandleUserRatings returns all ratings the caller has submitted.
func (h *StoreHandler) HandleUserRatings(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	ratings, err := h.storeService.RatingsByUser(userID)
	if err != nil {
		log.Printf("Error listing ratings for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"ratings": ratings})
}

// HandleOwnerDashboard returns the caller's store with rank, histogram and
// a paginated, optionally filtered rating listing. An owner without a store
// gets an explicit empty-state response.
func (h *StoreHandler) HandleOwnerDashboard(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	search := c.Query("search")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	store, ratings, total, err := h.storeService.OwnerDashboard(userID, search, page, limit)
	if err != nil {
		log.Printf("Error building owner dashboard for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	if store == nil {
		return c.JSON(fiber.Map{
			"store":   nil,
			"ratings": []services.DashboardRating{},
			"pagination": fiber.Map{
				"currentPage":  1,
				"totalPages":   0,
				"totalRatings": 0,
				"limit":        limit,
			},
		})
	}

	return c.JSON(fiber.Map{
		"store":      store,
		"ratings":    ratings,
		"pagination": pagination(page, limit, total, "totalRatings"),
	})
}
