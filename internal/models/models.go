// package models defines the data model for the playlist API
package models

import (
	"context"
)

// Model defines the base interface for all persistent models and request attributes.
type Model interface {
	Validate() error // Validate checks if the model's data is valid and returns [ValidationErrors] if not
}

var (
	_ Model = (*Playlist)(nil)
	_ Model = (*Video)(nil)
	_ Model = (*User)(nil)
	_ Model = PlaylistAttributes{}
	_ Model = PlaylistPatch{}
)

// PlaylistStore defines ownership-scoped persistence for playlists and their videos.
//
// Every lookup is scoped by the owning user: a playlist that does not exist and one owned by
// somebody else both yield [shared.ErrPlaylistNotFound].
type PlaylistStore interface {
	// ListByUser returns the user's playlists in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]Playlist, error)
	// FindByIDForUser returns one owned playlist.
	FindByIDForUser(ctx context.Context, id, userID int64) (*Playlist, error)
	// CreateWithVideos inserts a playlist and its videos atomically.
	CreateWithVideos(ctx context.Context, userID int64, attrs PlaylistAttributes) (*Playlist, error)
	// UpdateFields applies a partial update and returns the full record.
	UpdateFields(ctx context.Context, id, userID int64, patch PlaylistPatch) (*Playlist, error)
	// DestroyCascade deletes a playlist together with its videos.
	DestroyCascade(ctx context.Context, id, userID int64) error
	// VideosForPlaylist lists an owned playlist's videos in insertion order.
	VideosForPlaylist(ctx context.Context, id, userID int64) ([]Video, error)
}

// UserLookup resolves user ids carried by verified tokens.
type UserLookup interface {
	Get(ctx context.Context, id int64) (*User, error)
}
