package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arionyxx/PupClips/internal/model"
)

// feedOrderColumns maps API orderBy values to sortable columns. Anything not
// in this map is rejected before a query is built.
var feedOrderColumns = map[string]string{
	"created_at":  "v.created_at",
	"views_count": "v.views_count",
	"likes_count": "v.like_count",
}

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const feedEntryColumns = `
	v.id, v.user_id, v.storage_path, v.poster_url, v.caption, v.duration_seconds,
	v.like_count, v.comment_count, v.views_count, v.created_at, v.updated_at,
	p.username, p.display_name, p.avatar_url`

// List returns one feed page with the author profile snippet joined in.
// Order column and direction must already be validated; they are interpolated
// from a fixed allowlist, never from raw input.
func (r *VideoRepo) List(ctx context.Context, q model.FeedQuery) ([]model.FeedEntry, error) {
	col, ok := feedOrderColumns[q.OrderBy]
	if !ok {
		return nil, fmt.Errorf("unsupported orderBy: %s", q.OrderBy)
	}
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		LEFT JOIN profiles p ON p.id = v.user_id
		WHERE ($3 = '' OR v.user_id = $3::uuid)
		ORDER BY %s %s
		LIMIT $1 OFFSET $2`, feedEntryColumns, col, dir)

	rows, err := r.pool.Query(ctx, query, q.Limit, q.Offset, q.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.FeedEntry, 0, q.Limit)
	for rows.Next() {
		entry, err := scanFeedEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// FindByID returns a single feed entry by video id.
func (r *VideoRepo) FindByID(ctx context.Context, videoID string) (*model.FeedEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		LEFT JOIN profiles p ON p.id = v.user_id
		WHERE v.id = $1`, feedEntryColumns)

	rows, err := r.pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	entry, err := scanFeedEntry(rows)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create inserts a video record and returns the generated id. This insert is
// the single atomic commit point of the upload sequence: no partial record is
// ever visible to readers.
func (r *VideoRepo) Create(ctx context.Context, userID, storagePath string, posterURL *string, caption string, durationSeconds int) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO videos (user_id, storage_path, poster_url, caption, duration_seconds)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		userID, storagePath, posterURL, caption, durationSeconds,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes a video row owned by the given user. pgx.ErrNoRows is
// returned when the row does not exist or belongs to someone else.
func (r *VideoRepo) Delete(ctx context.Context, videoID, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM videos WHERE id = $1 AND user_id = $2`, videoID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementViews bumps a video's view counter. pgx.ErrNoRows is returned
// when the video does not exist.
func (r *VideoRepo) IncrementViews(ctx context.Context, videoID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE videos SET views_count = views_count + 1 WHERE id = $1`, videoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RecountInteractions resets the denormalized counters from table truth and
// returns the fresh counts.
func (r *VideoRepo) RecountInteractions(ctx context.Context, videoID string) (model.InteractionCounts, error) {
	var counts model.InteractionCounts
	err := r.pool.QueryRow(ctx, `
		UPDATE videos SET
			like_count = (SELECT COUNT(*) FROM likes WHERE video_id = $1),
			comment_count = (SELECT COUNT(*) FROM comments WHERE video_id = $1),
			updated_at = NOW()
		WHERE id = $1
		RETURNING like_count, comment_count`, videoID,
	).Scan(&counts.LikeCount, &counts.CommentCount)
	if err != nil {
		return model.InteractionCounts{}, err
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedEntry(row rowScanner) (model.FeedEntry, error) {
	var e model.FeedEntry
	var username, displayName *string
	var avatarURL *string

	err := row.Scan(
		&e.ID, &e.UserID, &e.StoragePath, &e.PosterURL, &e.Caption, &e.DurationSeconds,
		&e.LikeCount, &e.CommentCount, &e.ViewsCount, &e.CreatedAt, &e.UpdatedAt,
		&username, &displayName, &avatarURL,
	)
	if err != nil {
		return model.FeedEntry{}, err
	}

	if username != nil && displayName != nil {
		p := model.Profile{
			ID:          e.UserID,
			Username:    *username,
			DisplayName: *displayName,
			AvatarURL:   avatarURL,
		}
		e.Profile = p.Snippet()
	}
	return e, nil
}
