package model

// VideoMetadata holds container metadata probed from a selected video file.
type VideoMetadata struct {
	Duration float64 `json:"duration"` // seconds
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Size     int64   `json:"size"` // bytes
	Type     string  `json:"type"` // declared MIME type
}

// CreateVideoRecordInput is the input for the record-creation step of the
// upload commit sequence.
type CreateVideoRecordInput struct {
	UserID          string  `json:"userId"`
	StoragePath     string  `json:"storagePath"`
	PosterURL       *string `json:"posterUrl"`
	Caption         string  `json:"caption"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// UploadResult is the outcome of an upload commit. Failures are reported
// here, not panicked: the saga always returns a result to its caller.
type UploadResult struct {
	Success bool   `json:"success"`
	VideoID string `json:"videoId,omitempty"`
	Error   string `json:"error,omitempty"`
}
