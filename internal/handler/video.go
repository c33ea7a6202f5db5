package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Arionyxx/PupClips/internal/middleware"
	"github.com/Arionyxx/PupClips/internal/service"
)

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// ListFeed handles GET /api/videos?limit&offset&orderBy&order
func (h *VideoHandler) ListFeed(c fiber.Ctx) error {
	q, errMsg := middleware.ValidateFeedQuery(
		fiber.Query[string](c, "limit"),
		fiber.Query[string](c, "offset"),
		fiber.Query[string](c, "orderBy"),
		fiber.Query[string](c, "order"),
	)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	if userID := fiber.Query[string](c, "userId"); userID != "" {
		id, errMsg := middleware.ValidateID(userID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
		}
		q.UserID = id
	}

	page, err := h.svc.ListFeed(c.Context(), q)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch videos")
	}

	Metrics.FeedPagesServed.Inc()
	return c.JSON(page)
}

// Get handles GET /api/videos/:videoId
func (h *VideoHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entry, err := h.svc.Lookup(c.Context(), videoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup video")
	}
	return c.JSON(entry)
}

// RecordView handles POST /api/videos/:videoId/view. Views are anonymous;
// the response carries no body beyond an ack.
func (h *VideoHandler) RecordView(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.RecordView(c.Context(), videoID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record view")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete handles DELETE /api/videos/:videoId (owner only).
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	authUserID := middleware.UserIDFromCtx(c)
	if err := h.svc.Delete(c.Context(), videoID, authUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Video not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete video")
	}
	return c.JSON(fiber.Map{"success": true})
}
