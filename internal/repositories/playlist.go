package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
)

const playlistColumns = `id, user_id, title, playlist_id, description, thumbnail_url, created_at, updated_at`

// PlaylistRepository implements [models.PlaylistStore].
//
// Every read and write is scoped by the owner; see the package documentation.
type PlaylistRepository struct {
	db     *sql.DB
	videos *VideoRepository
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db, videos: NewVideoRepository(db)}
}

var _ models.PlaylistStore = (*PlaylistRepository)(nil)

// ListByUser returns the playlists owned by userID in insertion order. The result is never nil.
func (r *PlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]models.Playlist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE user_id = ? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, *playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// FindByIDForUser returns the playlist with id when userID owns it.
func (r *PlaylistRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*models.Playlist, error) {
	return r.find(ctx, r.db, id, userID)
}

// CreateWithVideos inserts a playlist owned by userID and one video per entry of attrs.Videos.
//
// The playlist and all of its videos share one transaction: if any insert fails nothing is kept.
func (r *PlaylistRepository) CreateWithVideos(ctx context.Context, userID int64, attrs models.PlaylistAttributes) (*models.Playlist, error) {
	playlist := models.NewPlaylist(userID, attrs)

	if err := playlist.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO playlists (user_id, title, playlist_id, description, thumbnail_url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			playlist.UserID,
			playlist.Title,
			playlist.PlaylistID,
			playlist.Description,
			playlist.ThumbnailURL,
			playlist.CreatedAt,
			playlist.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert playlist: %w", err)
		}

		if playlist.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to read playlist id: %w", err)
		}

		for i, video := range attrs.Videos {
			if err := r.videos.create(ctx, tx, models.NewVideo(playlist.ID, video)); err != nil {
				return fmt.Errorf("video %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		playlist.ID = 0
		return nil, err
	}

	return playlist, nil
}

// UpdateFields applies the fields present in patch to an owned playlist and returns the result.
func (r *PlaylistRepository) UpdateFields(ctx context.Context, id, userID int64, patch models.PlaylistPatch) (*models.Playlist, error) {
	var updated *models.Playlist

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		playlist, err := r.find(ctx, tx, id, userID)
		if err != nil {
			return err
		}

		if patch.Empty() {
			updated = playlist
			return nil
		}

		if err := patch.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		playlist.Apply(patch)
		if err := playlist.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		playlist.UpdatedAt = time.Now().UTC()

		result, err := tx.ExecContext(ctx, `
			UPDATE playlists
			SET title = ?, playlist_id = ?, description = ?, thumbnail_url = ?, updated_at = ?
			WHERE id = ? AND user_id = ?
		`,
			playlist.Title,
			playlist.PlaylistID,
			playlist.Description,
			playlist.ThumbnailURL,
			playlist.UpdatedAt,
			id,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update playlist: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, id)
		}

		updated = playlist
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DestroyCascade deletes an owned playlist and its videos in one transaction.
//
// A playlist that is missing or owned by someone else yields [shared.ErrPlaylistNotFound]; a
// delete the database refuses yields [shared.ErrDeleteFailed] and leaves every row in place.
func (r *PlaylistRepository) DestroyCascade(ctx context.Context, id, userID int64) error {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.videos.deleteForPlaylist(ctx, tx, id, userID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ? AND user_id = ?`, id, userID)
		if err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, id)
		}
		return nil
	})
	if err != nil && !errors.Is(err, shared.ErrPlaylistNotFound) {
		return fmt.Errorf("%w: %v", shared.ErrDeleteFailed, err)
	}
	return err
}

// VideosForPlaylist returns the videos of an owned playlist.
func (r *PlaylistRepository) VideosForPlaylist(ctx context.Context, id, userID int64) ([]models.Video, error) {
	if _, err := r.FindByIDForUser(ctx, id, userID); err != nil {
		return nil, err
	}
	return r.videos.ListForPlaylist(ctx, id, userID)
}

// Count returns the total number of stored playlists across all users.
func (r *PlaylistRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "playlists")
}

func (r *PlaylistRepository) find(ctx context.Context, q execer, id, userID int64) (*models.Playlist, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE id = ? AND user_id = ?`, id, userID)

	playlist, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func scanPlaylist(row scanner) (*models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.PlaylistID, &p.Description, &p.ThumbnailURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}
	return &p, nil
}
