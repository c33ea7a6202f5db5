package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
	"github.com/Arionyxx/PupClips/internal/storage"
	"github.com/Arionyxx/PupClips/internal/upload"
)

// VideoStore is the database surface of the video service.
type VideoStore interface {
	List(ctx context.Context, q model.FeedQuery) ([]model.FeedEntry, error)
	FindByID(ctx context.Context, videoID string) (*model.FeedEntry, error)
	Delete(ctx context.Context, videoID, userID string) error
	IncrementViews(ctx context.Context, videoID string) error
}

type VideoService struct {
	repo  VideoStore
	store storage.ObjectStore
	cache *CacheService
	log   zerolog.Logger
}

func NewVideoService(repo VideoStore, store storage.ObjectStore, cache *CacheService, log zerolog.Logger) *VideoService {
	return &VideoService{repo: repo, store: store, cache: cache, log: log}
}

// ListFeed returns one feed page. hasMore is computed purely as
// returnedCount == limit: an approximation, not an exact signal. Anonymous
// default-order pages go through the cache.
func (s *VideoService) ListFeed(ctx context.Context, q model.FeedQuery) (*model.FeedPageResponse, error) {
	cacheable := q.UserID == ""
	if cacheable {
		if data, err := s.cache.GetFeedPage(ctx, q.OrderBy, q.Order, q.Limit, q.Offset); err == nil && data != nil {
			var page model.FeedPageResponse
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
		}
	}

	entries, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	page := &model.FeedPageResponse{
		Videos:  entries,
		HasMore: len(entries) == q.Limit,
	}

	if cacheable {
		if err := s.cache.SetFeedPage(ctx, q.OrderBy, q.Order, q.Limit, q.Offset, page); err != nil {
			s.log.Warn().Err(err).Msg("cache: feed page store failed")
		}
	}
	return page, nil
}

// Lookup returns a single feed entry by video id, cache-aside.
func (s *VideoService) Lookup(ctx context.Context, videoID string) (*model.FeedEntry, error) {
	if data, err := s.cache.GetVideo(ctx, videoID); err == nil && data != nil {
		var entry model.FeedEntry
		if err := json.Unmarshal(data, &entry); err == nil {
			return &entry, nil
		}
	}

	entry, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetVideo(ctx, videoID, entry); err != nil {
		s.log.Warn().Err(err).Str("video_id", videoID).Msg("cache: video store failed")
	}
	return entry, nil
}

// RecordView bumps a video's view counter. Views are fire-and-forget from
// the client's perspective; the cached copy is dropped so the new count is
// visible on the next lookup.
func (s *VideoService) RecordView(ctx context.Context, videoID string) error {
	if err := s.repo.IncrementViews(ctx, videoID); err != nil {
		return err
	}
	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		s.log.Warn().Err(err).Str("video_id", videoID).Msg("cache: video invalidation failed")
	}
	return nil
}

// Delete removes a video owned by the caller: the row first, then the storage
// objects best-effort. Storage paths are deleted only inside the caller's
// namespace.
func (s *VideoService) Delete(ctx context.Context, videoID, authUserID string) error {
	entry, err := s.repo.FindByID(ctx, videoID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, videoID, authUserID); err != nil {
		return err
	}

	if upload.OwnedBy(entry.StoragePath, authUserID) {
		if err := s.store.Delete(ctx, entry.StoragePath); err != nil {
			s.log.Error().Err(err).Str("path", entry.StoragePath).Msg("video object delete failed")
		}
		posterPath := upload.PosterPath(authUserID, entry.StoragePath)
		if entry.PosterURL != nil {
			if err := s.store.Delete(ctx, posterPath); err != nil {
				s.log.Warn().Err(err).Str("path", posterPath).Msg("poster object delete failed")
			}
		}
	} else {
		s.log.Error().Str("path", entry.StoragePath).Msg("refusing to delete storage object outside caller namespace")
	}

	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		s.log.Warn().Err(err).Msg("cache: video invalidation failed")
	}
	if err := s.cache.InvalidateFeed(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache: feed invalidation failed")
	}
	return nil
}
