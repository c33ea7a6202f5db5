package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arionyxx/PupClips/internal/model"
)

// InteractionChannel is the Postgres NOTIFY channel carrying video ids whose
// like/comment counters need reconciliation.
const InteractionChannel = "interaction_changes"

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

// ToggleLike creates the like when absent and removes it when present,
// returning the resulting liked state. Each write notifies the reconciliation
// worker.
func (r *InteractionRepo) ToggleLike(ctx context.Context, videoID, userID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM likes WHERE video_id = $1 AND user_id = $2`, videoID, userID)
	if err != nil {
		return false, err
	}

	liked := false
	if tag.RowsAffected() == 0 {
		// Nothing to remove: this is a like, not an unlike. The unique
		// (video_id, user_id) constraint absorbs a racing duplicate.
		_, err = r.pool.Exec(ctx, `
			INSERT INTO likes (video_id, user_id) VALUES ($1, $2)
			ON CONFLICT (video_id, user_id) DO NOTHING`, videoID, userID)
		if err != nil {
			return false, err
		}
		liked = true
	}

	if err := r.notify(ctx, videoID); err != nil {
		return liked, err
	}
	return liked, nil
}

// HasLiked reports whether the user has liked the video.
func (r *InteractionRepo) HasLiked(ctx context.Context, videoID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM likes WHERE video_id = $1 AND user_id = $2)`,
		videoID, userID,
	).Scan(&exists)
	return exists, err
}

// CountLikes returns the current like count from table truth.
func (r *InteractionRepo) CountLikes(ctx context.Context, videoID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM likes WHERE video_id = $1`, videoID).Scan(&n)
	return n, err
}

// CreateComment inserts a comment (top-level or reply) and returns it.
func (r *InteractionRepo) CreateComment(ctx context.Context, videoID, userID, body string, parentID *string) (*model.Comment, error) {
	var c model.Comment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (video_id, user_id, body, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, video_id, user_id, body, parent_id, created_at`,
		videoID, userID, body, parentID,
	).Scan(&c.ID, &c.VideoID, &c.UserID, &c.Body, &c.ParentID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.notify(ctx, videoID); err != nil {
		return &c, err
	}
	return &c, nil
}

const commentColumns = `
	c.id, c.video_id, c.user_id, c.body, c.parent_id, c.created_at,
	p.username, p.display_name, p.avatar_url`

// ListTopLevel returns top-level comments for a video, newest first.
func (r *InteractionRepo) ListTopLevel(ctx context.Context, videoID string, limit, offset int) ([]model.CommentWithProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.video_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`, videoID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// ListReplies returns the replies to a comment, oldest first.
func (r *InteractionRepo) ListReplies(ctx context.Context, parentID string) ([]model.CommentWithProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// DeleteComment removes a comment owned by the given user and returns the
// video id it belonged to. pgx.ErrNoRows when absent or not owned.
func (r *InteractionRepo) DeleteComment(ctx context.Context, commentID, userID string) (string, error) {
	var videoID string
	err := r.pool.QueryRow(ctx, `
		DELETE FROM comments WHERE id = $1 AND user_id = $2
		RETURNING video_id`, commentID, userID,
	).Scan(&videoID)
	if err != nil {
		return "", err
	}

	if err := r.notify(ctx, videoID); err != nil {
		return videoID, err
	}
	return videoID, nil
}

func (r *InteractionRepo) notify(ctx context.Context, videoID string) error {
	_, err := r.pool.Exec(ctx, `SELECT pg_notify($1, $2)`, InteractionChannel, videoID)
	return err
}

func scanComments(rows pgx.Rows) ([]model.CommentWithProfile, error) {
	var comments []model.CommentWithProfile
	for rows.Next() {
		var c model.CommentWithProfile
		var username, displayName, avatarURL *string
		err := rows.Scan(
			&c.ID, &c.VideoID, &c.UserID, &c.Body, &c.ParentID, &c.CreatedAt,
			&username, &displayName, &avatarURL,
		)
		if err != nil {
			return nil, err
		}
		if username != nil && displayName != nil {
			c.Profile = &model.ProfileSnippet{
				Username:    *username,
				DisplayName: *displayName,
				AvatarURL:   avatarURL,
			}
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
