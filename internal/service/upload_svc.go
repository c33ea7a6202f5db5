package service

import (
	"bytes"
	"context"
	"io"
	"math"

	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/model"
	"github.com/Arionyxx/PupClips/internal/storage"
	"github.com/Arionyxx/PupClips/internal/upload"
)

// UnauthorizedError is the user ID mismatch message. It is surfaced verbatim
// and never downgraded to a generic error.
const UnauthorizedError = "Unauthorized: User ID mismatch"

// VideoCreator is the record-creation step's database surface.
type VideoCreator interface {
	Create(ctx context.Context, userID, storagePath string, posterURL *string, caption string, durationSeconds int) (string, error)
}

// CommitInput carries a validated upload into the commit sequence.
type CommitInput struct {
	UserID   string
	Filename string // original filename; its extension names the stored object
	Video    io.Reader
	Metadata model.VideoMetadata
	Poster   []byte // nil when poster generation failed upstream
	Caption  string
}

// UploadService runs the upload commit sequence: a saga of ordered steps
// across object storage and the database, with one compensating action in
// place of a cross-system transaction.
type UploadService struct {
	store  storage.ObjectStore
	videos VideoCreator
	cache  *CacheService
	log    zerolog.Logger
}

func NewUploadService(store storage.ObjectStore, videos VideoCreator, cache *CacheService, log zerolog.Logger) *UploadService {
	return &UploadService{store: store, videos: videos, cache: cache, log: log}
}

// Commit turns a validated upload into a persisted video record, or fails
// leaving no orphaned artifacts visible to the user. Steps run strictly in
// order: video upload, poster upload, poster URL resolution, record insert.
// Poster upload failure is tolerated (the record is created without a
// poster); any other failure aborts. If the insert fails after the video
// object was written, the object is deleted best-effort. Commit always
// returns a result, never panics.
func (s *UploadService) Commit(ctx context.Context, authUserID string, in CommitInput) model.UploadResult {
	caption, err := upload.ValidateCaption(in.Caption)
	if err != nil {
		return model.UploadResult{Success: false, Error: err.Error()}
	}

	videoPath := upload.VideoPath(in.UserID, in.Filename)
	posterPath := upload.PosterPath(in.UserID, videoPath)

	// The video object first. Failure here aborts; nothing was written.
	if err := s.store.Upload(ctx, videoPath, in.Video, in.Metadata.Type); err != nil {
		s.log.Error().Err(err).Str("path", videoPath).Msg("video upload failed")
		return model.UploadResult{Success: false, Error: "Failed to upload video"}
	}

	// Then the poster. Optional: failure is logged and the sequence
	// proceeds without one.
	var posterURL *string
	if len(in.Poster) > 0 {
		if err := s.store.Upload(ctx, posterPath, bytes.NewReader(in.Poster), "image/jpeg"); err != nil {
			s.log.Warn().Err(err).Str("path", posterPath).Msg("poster upload failed, continuing without poster")
		} else {
			u := s.store.PublicURL(posterPath)
			posterURL = &u
		}
	}

	// The record insert is the single atomic commit point. The
	// caller's identity must match the claimed owner; this is re-verified
	// here, not cached.
	if authUserID != in.UserID {
		s.compensate(ctx, videoPath, authUserID)
		return model.UploadResult{Success: false, Error: UnauthorizedError}
	}

	durationSeconds := int(math.Round(in.Metadata.Duration))
	videoID, err := s.videos.Create(ctx, in.UserID, videoPath, posterURL, caption, durationSeconds)
	if err != nil {
		s.log.Error().Err(err).Str("path", videoPath).Msg("video record creation failed")
		s.compensate(ctx, videoPath, authUserID)
		return model.UploadResult{Success: false, Error: "Failed to create video record"}
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFeed(ctx); err != nil {
			s.log.Warn().Err(err).Msg("cache: feed invalidation failed")
		}
	}

	return model.UploadResult{Success: true, VideoID: videoID}
}

// compensate deletes the just-uploaded video object after a failed insert.
// Ownership is re-verified by path prefix; the delete is best-effort and its
// own failure is logged, not surfaced.
func (s *UploadService) compensate(ctx context.Context, videoPath, authUserID string) {
	if !upload.OwnedBy(videoPath, authUserID) {
		s.log.Error().Str("path", videoPath).Msg("refusing to delete storage object outside caller namespace")
		return
	}
	if err := s.store.Delete(ctx, videoPath); err != nil {
		s.log.Error().Err(err).Str("path", videoPath).Msg("compensating storage delete failed")
	}
}
