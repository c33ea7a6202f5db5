package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/Arionyxx/PupClips/internal/middleware"
	"github.com/Arionyxx/PupClips/internal/model"
	"github.com/Arionyxx/PupClips/internal/service"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

// ToggleLike handles POST /api/videos/:videoId/like. The response carries the
// authoritative like count so clients can reconcile optimistic state.
func (h *InteractionHandler) ToggleLike(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	userID := middleware.UserIDFromCtx(c)
	resp, err := h.svc.ToggleLike(c.Context(), videoID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to toggle like")
	}
	return c.JSON(resp)
}

// Liked handles GET /api/videos/:videoId/liked: whether the caller has liked
// the video.
func (h *InteractionHandler) Liked(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	userID := middleware.UserIDFromCtx(c)
	liked, err := h.svc.HasLiked(c.Context(), videoID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch like state")
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// ListComments handles GET /api/videos/:videoId/comments?limit&offset.
func (h *InteractionHandler) ListComments(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	limit := parseBoundedInt(fiber.Query[string](c, "limit"), middleware.DefaultPageLimit, middleware.MaxPageLimit)
	offset := parseBoundedInt(fiber.Query[string](c, "offset"), 0, 1<<30)

	comments, err := h.svc.ListComments(c.Context(), videoID, limit, offset)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch comments")
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// ListReplies handles GET /api/comments/:commentId/replies.
func (h *InteractionHandler) ListReplies(c fiber.Ctx) error {
	commentID, errMsg := middleware.ValidateID(c.Params("commentId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	replies, err := h.svc.ListReplies(c.Context(), commentID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch replies")
	}
	return c.JSON(fiber.Map{"replies": replies})
}

// CreateComment handles POST /api/videos/:videoId/comments.
func (h *InteractionHandler) CreateComment(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CreateCommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID := middleware.UserIDFromCtx(c)
	comment, err := h.svc.AddComment(c.Context(), videoID, userID, req)
	if err != nil {
		var verr *service.CommentValidationError
		if errors.As(err, &verr) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", verr.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:commentId (author only).
func (h *InteractionHandler) DeleteComment(c fiber.Ctx) error {
	commentID, errMsg := middleware.ValidateID(c.Params("commentId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	userID := middleware.UserIDFromCtx(c)
	if err := h.svc.DeleteComment(c.Context(), commentID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Comment not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete comment")
	}
	return c.JSON(fiber.Map{"success": true})
}

func parseBoundedInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	if n > max {
		return max
	}
	return n
}
