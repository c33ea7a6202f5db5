package model

import "time"

// Like represents a single user's like on a video.
// (video_id, user_id) is unique: a user likes a video at most once.
type Like struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment represents a comment on a video. ParentID is set for replies.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentWithProfile is a comment plus its author's profile snippet.
type CommentWithProfile struct {
	Comment
	Profile *ProfileSnippet `json:"profile,omitempty"`
}

// ToggleLikeResponse is the API response for POST /api/videos/:videoId/like.
// LikeCount is the server's count after the toggle; clients treat their
// optimistic guess as a cache that this value overwrites.
type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// CreateCommentRequest is the body for POST /api/videos/:videoId/comments.
type CreateCommentRequest struct {
	Body     string  `json:"body"`
	ParentID *string `json:"parentId,omitempty"`
}

// InteractionCounts carries the denormalized counters for one video.
type InteractionCounts struct {
	LikeCount    int `json:"like_count"`
	CommentCount int `json:"comment_count"`
}
