package handlers

import (
	"errors"
	"log"

	"rately/internal/middleware"
	"rately/internal/models"
	"rately/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and self-service
// profile maintenance.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the auth routes. Register and login are public;
// the rest sit behind the authentication gate.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authGuard fiber.Handler) {
	routes := router.Group("/auth")
	routes.Post("/register", h.HandleRegister)
	routes.Post("/login", h.HandleLogin)
	routes.Get("/profile", authGuard, h.HandleGetProfile)
	routes.Put("/profile", authGuard, h.HandleUpdateProfile)
	routes.Put("/password", authGuard, h.HandleUpdatePassword)
	routes.Post("/logout", authGuard, h.HandleLogout)
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required,max=400"`
}

// HandleRegister creates a normal-user account and issues a token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
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
	}
	if err := h.authService.Register(&user); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User with this email already exists",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		log.Printf("Error issuing token after registration: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
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

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleGetProfile returns the authenticated user's account.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfileRequest is the request body for a self-service profile
// update. Both fields are optional; empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,min=3,max=60"`
	Address string `json:"address" validate:"omitempty,max=400"`
}

// HandleUpdateProfile updates the authenticated user's name and address.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	var req UpdateProfileRequest
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

	user, err := h.authService.UpdateProfile(userID, req.Name, req.Address)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// UpdatePasswordRequest is the request body for a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// HandleUpdatePassword verifies the current password and stores the new one.
func (h *AuthHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	var req UpdatePasswordRequest
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

	if err := h.authService.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Current password is incorrect",
			})
		}
		log.Printf("Error updating password for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// HandleLogout acknowledges logout. Tokens are stateless; the client simply
// discards its copy.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
