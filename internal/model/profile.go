package model

import "time"

// Profile represents a user profile row.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Bio         *string   `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snippet returns the denormalized slice of the profile embedded in feed entries.
func (p *Profile) Snippet() *ProfileSnippet {
	return &ProfileSnippet{
		Username:    p.Username,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
	}
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalVideos   int `json:"totalVideos"`
	TotalProfiles int `json:"totalProfiles"`
	TotalLikes    int `json:"totalLikes"`
	TotalComments int `json:"totalComments"`
}
