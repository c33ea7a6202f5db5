package upload

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Arionyxx/PupClips/internal/model"
)

// Upload constraints.
const (
	MaxSizeMB          = 100
	MaxSizeBytes       = MaxSizeMB * 1024 * 1024
	MaxDurationSeconds = 60
	MinDurationSeconds = 1
	CaptionMinLength   = 1
	CaptionMaxLength   = 500
)

// AllowedTypes lists the accepted declared MIME types.
var AllowedTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
}

// ValidateFile checks the probed metadata against the upload constraints.
// Checks run in a fixed order (type, size, max duration, min duration) and the
// first violation's message is returned; a file violating several constraints
// surfaces only the first one. Pure: no I/O, deterministic.
func ValidateFile(meta model.VideoMetadata) error {
	if !AllowedTypes[meta.Type] {
		return &ValidationError{Reason: "Invalid file type. Please upload MP4 or WebM videos."}
	}
	if meta.Size > MaxSizeBytes {
		return &ValidationError{Reason: fmt.Sprintf("File is too large. Maximum size is %dMB.", MaxSizeMB)}
	}
	if meta.Duration > MaxDurationSeconds {
		return &ValidationError{Reason: fmt.Sprintf("Video is too long. Maximum duration is %d seconds.", MaxDurationSeconds)}
	}
	if meta.Duration < MinDurationSeconds {
		return &ValidationError{Reason: fmt.Sprintf("Video is too short. Minimum duration is %d second.", MinDurationSeconds)}
	}
	return nil
}

// ValidateCaption trims the caption and checks its length. The trimmed caption
// is returned so callers persist exactly what was validated. A length of
// exactly CaptionMaxLength is valid; all-whitespace captions are not.
func ValidateCaption(caption string) (string, error) {
	trimmed := strings.TrimSpace(caption)
	n := utf8.RuneCountInString(trimmed)
	if n < CaptionMinLength || n > CaptionMaxLength {
		return "", &ValidationError{Reason: fmt.Sprintf(
			"Caption must be between %d and %d characters.", CaptionMinLength, CaptionMaxLength)}
	}
	return trimmed, nil
}
