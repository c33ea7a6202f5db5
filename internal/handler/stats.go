package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Arionyxx/PupClips/internal/middleware"
	"github.com/Arionyxx/PupClips/internal/repository"
)

type StatsHandler struct {
	repo *repository.ProfileRepo
}

func NewStatsHandler(repo *repository.ProfileRepo) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get handles GET /api/stats with platform-wide totals.
func (h *StatsHandler) Get(c fiber.Ctx) error {
	stats, err := h.repo.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
	}
	return c.JSON(stats)
}
