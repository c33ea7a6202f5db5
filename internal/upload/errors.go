package upload

import "errors"

// ValidationError reports a constraint the selected file or caption violates.
// The message is user-facing: the caller surfaces it as an inline error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	// ErrMetadata indicates the file's container metadata could not be decoded.
	ErrMetadata = errors.New("failed to read video metadata")

	// ErrPosterGeneration indicates poster frame decoding or encoding failed.
	ErrPosterGeneration = errors.New("failed to generate poster frame")
)
