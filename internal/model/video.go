package model

import "time"

// Video represents a persisted video record.
type Video struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	StoragePath     string    `json:"storage_path"`
	PosterURL       *string   `json:"poster_url"`
	Caption         string    `json:"caption"`
	DurationSeconds int       `json:"duration_seconds"`
	LikeCount       int       `json:"like_count"`
	CommentCount    int       `json:"comment_count"`
	ViewsCount      int       `json:"views_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FeedEntry is a video plus an optional denormalized author profile,
// as shown in the feed.
type FeedEntry struct {
	Video
	Profile *ProfileSnippet `json:"profile,omitempty"`
}

// ProfileSnippet is the slice of a profile the feed needs to render an entry.
type ProfileSnippet struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// FeedPageResponse is the API response for GET /api/videos.
// HasMore is an approximation: true exactly when the page came back full.
type FeedPageResponse struct {
	Videos  []FeedEntry `json:"videos"`
	HasMore bool        `json:"hasMore"`
}

// FeedQuery holds validated pagination parameters for feed fetches.
type FeedQuery struct {
	Limit   int
	Offset  int
	OrderBy string // created_at | views_count | likes_count
	Order   string // asc | desc
	UserID  string // optional owner filter
}
