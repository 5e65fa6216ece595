package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationMessage turns a validator error into the single human-readable
// message the error envelope carries.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
	return "Validation failed"
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or not a positive integer.
func queryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// pagination builds the response pagination block. totalKey names the count
// field per resource (totalUsers, totalStores or totalRatings).
func pagination(page, limit int, total int64, totalKey string) fiber.Map {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return fiber.Map{
		"currentPage": page,
		"totalPages":  totalPages,
		totalKey:      total,
		"limit":       limit,
	}
}
