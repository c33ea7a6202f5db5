package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
)

// MaxCommentLength bounds comment bodies, matching the caption limit.
const MaxCommentLength = 500

// InteractionStore is the database surface of the interaction service.
type InteractionStore interface {
	ToggleLike(ctx context.Context, videoID, userID string) (bool, error)
	HasLiked(ctx context.Context, videoID, userID string) (bool, error)
	CountLikes(ctx context.Context, videoID string) (int, error)
	CreateComment(ctx context.Context, videoID, userID, body string, parentID *string) (*model.Comment, error)
	ListTopLevel(ctx context.Context, videoID string, limit, offset int) ([]model.CommentWithProfile, error)
	ListReplies(ctx context.Context, parentID string) ([]model.CommentWithProfile, error)
	DeleteComment(ctx context.Context, commentID, userID string) (string, error)
}

type InteractionService struct {
	repo  InteractionStore
	cache *CacheService
	log   zerolog.Logger
}

func NewInteractionService(repo InteractionStore, cache *CacheService, log zerolog.Logger) *InteractionService {
	return &InteractionService{repo: repo, cache: cache, log: log}
}

// ToggleLike flips the caller's like on a video and returns the resulting
// state plus the server-side like count. Clients treat any optimistic local
// count as a guess that this response overwrites.
func (s *InteractionService) ToggleLike(ctx context.Context, videoID, userID string) (*model.ToggleLikeResponse, error) {
	liked, err := s.repo.ToggleLike(ctx, videoID, userID)
	if err != nil {
		return nil, err
	}

	// The denormalized counter converges async via the reconciliation
	// worker; answer with table truth now.
	count, err := s.repo.CountLikes(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		s.log.Warn().Err(err).Str("video_id", videoID).Msg("cache: invalidate video failed")
	}

	return &model.ToggleLikeResponse{Liked: liked, LikeCount: count}, nil
}

// HasLiked reports whether the caller has liked a video. Clients use this to
// render initial liked state before any toggle happens.
func (s *InteractionService) HasLiked(ctx context.Context, videoID, userID string) (bool, error) {
	return s.repo.HasLiked(ctx, videoID, userID)
}

// AddComment validates and inserts a comment or reply.
func (s *InteractionService) AddComment(ctx context.Context, videoID, userID string, req model.CreateCommentRequest) (*model.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" || len([]rune(body)) > MaxCommentLength {
		return nil, &CommentValidationError{Reason: "Comment must be between 1 and 500 characters."}
	}

	comment, err := s.repo.CreateComment(ctx, videoID, userID, body, req.ParentID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		s.log.Warn().Err(err).Str("video_id", videoID).Msg("cache: invalidate video failed")
	}
	return comment, nil
}

// ListComments returns the top-level comments of a video, newest first.
func (s *InteractionService) ListComments(ctx context.Context, videoID string, limit, offset int) ([]model.CommentWithProfile, error) {
	return s.repo.ListTopLevel(ctx, videoID, limit, offset)
}

// ListReplies returns the replies to a comment, oldest first.
func (s *InteractionService) ListReplies(ctx context.Context, parentID string) ([]model.CommentWithProfile, error) {
	return s.repo.ListReplies(ctx, parentID)
}

// DeleteComment removes the caller's own comment.
func (s *InteractionService) DeleteComment(ctx context.Context, commentID, userID string) error {
	videoID, err := s.repo.DeleteComment(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		s.log.Warn().Err(err).Str("video_id", videoID).Msg("cache: invalidate video failed")
	}
	return nil
}

// CommentValidationError reports a rejected comment body.
type CommentValidationError struct {
	Reason string
}

func (e *CommentValidationError) Error() string {
	return e.Reason
}
