package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Arionyxx/PupClips/internal/model"
)

// Pagination bounds for feed and comment queries.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// validOrderBy lists the accepted orderBy values for feed queries.
var validOrderBy = map[string]bool{
	"created_at":  true,
	"views_count": true,
	"likes_count": true,
}

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that an id is a well-formed UUID. The normalized id and
// an error message (empty on success) are returned.
func ValidateID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "id is required"
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", "id must be a valid UUID"
	}
	return parsed.String(), ""
}

// ValidateFeedQuery parses and bounds the feed pagination parameters.
func ValidateFeedQuery(limitStr, offsetStr, orderBy, order string) (model.FeedQuery, string) {
	q := model.FeedQuery{
		Limit:   DefaultPageLimit,
		Offset:  0,
		OrderBy: "created_at",
		Order:   "desc",
	}

	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			return q, "limit must be a positive integer"
		}
		if n > MaxPageLimit {
			n = MaxPageLimit
		}
		q.Limit = n
	}

	if offsetStr != "" {
		n, err := strconv.Atoi(offsetStr)
		if err != nil || n < 0 {
			return q, "offset must be a non-negative integer"
		}
		q.Offset = n
	}

	if orderBy != "" {
		if !validOrderBy[orderBy] {
			return q, "orderBy must be one of: created_at, views_count, likes_count"
		}
		q.OrderBy = orderBy
	}

	if order != "" {
		if order != "asc" && order != "desc" {
			return q, "order must be asc or desc"
		}
		q.Order = order
	}

	return q, ""
}
