package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arionyxx/PupClips/internal/model"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `id, username, display_name, avatar_url, bio, created_at, updated_at`

// FindByID returns a single profile by user id.
func (r *ProfileRepo) FindByID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1`, userID,
	).Scan(&p.ID, &p.Username, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByUsername returns a single profile by its unique username.
func (r *ProfileRepo) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE username = $1`, username,
	).Scan(&p.ID, &p.Username, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetStats returns aggregate totals across all tables.
func (r *ProfileRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM videos) AS total_videos,
			(SELECT COUNT(*) FROM profiles) AS total_profiles,
			(SELECT COUNT(*) FROM likes) AS total_likes,
			(SELECT COUNT(*) FROM comments) AS total_comments`,
	).Scan(&stats.TotalVideos, &stats.TotalProfiles, &stats.TotalLikes, &stats.TotalComments)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
