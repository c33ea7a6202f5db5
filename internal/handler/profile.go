package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Arionyxx/PupClips/internal/middleware"
	"github.com/Arionyxx/PupClips/internal/repository"
)

type ProfileHandler struct {
	repo *repository.ProfileRepo
}

func NewProfileHandler(repo *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// Get handles GET /api/profiles/:userId.
func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	profile, err := h.repo.FindByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Profile not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch profile")
	}
	return c.JSON(profile)
}

// GetByUsername handles GET /api/profiles/by-username/:username.
func (h *ProfileHandler) GetByUsername(c fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "A username is required")
	}

	profile, err := h.repo.FindByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Profile not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch profile")
	}
	return c.JSON(profile)
}
