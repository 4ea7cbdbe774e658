package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
)

// VideoRepository persists videos. Videos have no owner of their own, so reads are always joined
// through the parent playlist's user_id.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// create inserts video using q, which is the enclosing playlist transaction.
func (r *VideoRepository) create(ctx context.Context, q execer, video *models.Video) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO videos (playlist_id, title, video_id, description, thumbnail_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		video.PlaylistID,
		video.Title,
		video.VideoID,
		video.Description,
		video.ThumbnailURL,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	if video.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read video id: %w", err)
	}
	return nil
}

// deleteForPlaylist removes the videos of an owned playlist using q.
func (r *VideoRepository) deleteForPlaylist(ctx context.Context, q execer, playlistID, userID int64) error {
	_, err := q.ExecContext(ctx, `
		DELETE FROM videos
		WHERE playlist_id IN (SELECT id FROM playlists WHERE id = ? AND user_id = ?)
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete videos: %w", err)
	}
	return nil
}

// ListForPlaylist returns the videos of a playlist owned by userID, in insertion order.
func (r *VideoRepository) ListForPlaylist(ctx context.Context, playlistID, userID int64) ([]models.Video, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT v.id, v.playlist_id, v.title, v.video_id, v.description, v.thumbnail_url, v.created_at, v.updated_at
		FROM videos v
		JOIN playlists p ON p.id = v.playlist_id
		WHERE v.playlist_id = ? AND p.user_id = ?
		ORDER BY v.id ASC
	`, playlistID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		err := rows.Scan(&v.ID, &v.PlaylistID, &v.Title, &v.VideoID, &v.Description, &v.ThumbnailURL, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// Count returns the total number of stored videos.
func (r *VideoRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "videos")
}
