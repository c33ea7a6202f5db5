package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/Arionyxx/PupClips/internal/middleware"
	"github.com/Arionyxx/PupClips/internal/service"
	"github.com/Arionyxx/PupClips/internal/upload"
	"github.com/Arionyxx/PupClips/pkg/format"
)

// UploadSigner issues pre-signed PUT URLs for direct-to-storage uploads.
type UploadSigner interface {
	PresignUpload(ctx context.Context, key string, expires time.Duration) (string, error)
}

type UploadHandler struct {
	svc    *service.UploadService
	prober *upload.Prober
	signer UploadSigner
	log    zerolog.Logger
}

func NewUploadHandler(svc *service.UploadService, prober *upload.Prober, signer UploadSigner, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, prober: prober, signer: signer, log: log}
}

// Create handles POST /api/videos: a multipart form with a "file" part, a
// "caption" field, and an optional "userId" claiming the owner. The file is
// spooled to disk so ffprobe and ffmpeg can read it by path. Validation runs
// before any byte reaches storage; the commit sequence runs after.
func (h *UploadHandler) Create(c fiber.Ctx) error {
	authUserID := middleware.UserIDFromCtx(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FILE", "No video file provided")
	}

	claimedUserID := c.FormValue("userId")
	if claimedUserID == "" {
		claimedUserID = authUserID
	}

	tracker := upload.NewTracker()
	if err := tracker.To(upload.StatusValidating); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Upload state error")
	}

	tmpPath, err := spoolToTemp(fileHeader)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to spool upload to disk")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
	}
	defer os.Remove(tmpPath)

	declaredType := fileHeader.Header.Get("Content-Type")
	meta, err := h.prober.Probe(c.Context(), tmpPath, declaredType, fileHeader.Size)
	if err != nil {
		_ = tracker.To(upload.StatusError)
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "METADATA_FAILED", "Failed to read video metadata")
	}

	h.log.Debug().
		Str("size", format.FileSize(meta.Size)).
		Str("duration", format.Duration(meta.Duration)).
		Int("width", meta.Width).
		Int("height", meta.Height).
		Msg("probed upload")

	if err := upload.ValidateFile(meta); err != nil {
		_ = tracker.To(upload.StatusError)
		Metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", verr.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	}

	poster, err := h.prober.PosterFrame(c.Context(), tmpPath, upload.DefaultPosterTime, meta.Duration)
	if err != nil {
		_ = tracker.To(upload.StatusError)
		return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "POSTER_FAILED", "Failed to generate video poster")
	}

	if err := tracker.To(upload.StatusReady); err != nil || !tracker.CanCommit() {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Upload state error")
	}

	videoFile, err := os.Open(tmpPath)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to reopen spooled upload")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read uploaded file")
	}
	defer videoFile.Close()

	_ = tracker.To(upload.StatusUploading)

	result := h.svc.Commit(c.Context(), authUserID, service.CommitInput{
		UserID:   claimedUserID,
		Filename: fileHeader.Filename,
		Video:    videoFile,
		Metadata: meta,
		Poster:   poster,
		Caption:  c.FormValue("caption"),
	})
	if !result.Success {
		_ = tracker.To(upload.StatusError)
		if result.Error == service.UnauthorizedError {
			Metrics.UploadsTotal.WithLabelValues("unauthorized").Inc()
			return middleware.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", result.Error)
		}
		Metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "UPLOAD_FAILED", result.Error)
	}

	_ = tracker.To(upload.StatusProcessing)
	_ = tracker.To(upload.StatusSuccess)

	Metrics.UploadsTotal.WithLabelValues("accepted").Inc()
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Sign handles POST /api/videos/sign: returns a pre-signed PUT URL so large
// files can go straight to storage. The object key is forced under the
// caller's own prefix regardless of the requested filename.
func (h *UploadHandler) Sign(c fiber.Ctx) error {
	authUserID := middleware.UserIDFromCtx(c)

	var req struct {
		Filename string `json:"filename"`
	}
	if err := c.Bind().JSON(&req); err != nil || req.Filename == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "A filename is required")
	}

	key := upload.VideoPath(authUserID, req.Filename)
	url, err := h.signer.PresignUpload(c.Context(), key, 15*time.Minute)
	if err != nil {
		h.log.Error().Err(err).Str("key", key).Msg("failed to presign upload")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign upload")
	}

	return c.JSON(fiber.Map{"url": url, "path": key})
}

func spoolToTemp(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "pupclips-upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
