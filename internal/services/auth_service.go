package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rately/internal/models"
	"rately/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, token issuance/validation and
// self-service profile maintenance.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a new normal-user account with a hashed password. Emails
// are trimmed and lowercased before the uniqueness check so that case
// variants of the same address collide.
func (s *AuthService) Register(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email %s: %w", user.Email, ErrEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	// Self-service registration never grants elevated roles.
	user.Role = models.RoleNormalUser

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates by email and password and returns a signed token plus
// the account. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a token carrying the user's ID with the configured
// expiry.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token's signature and expiry and returns the
// subject user ID. Expired tokens are reported distinctly from otherwise
// invalid ones.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// GetProfile returns the account for the given user ID.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile applies a partial self-service update. Only name and address
// are self-editable; email and role changes go through the admin API.
func (s *AuthService) UpdateProfile(userID, name, address string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if address != "" {
		user.Address = address
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password and stores a hash of the new
// one.
func (s *AuthService) UpdatePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}
