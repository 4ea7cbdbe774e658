package models

import (
	"fmt"
	"time"
)

// Playlist is a user's saved YouTube playlist.
//
// PlaylistID is the external (YouTube) identifier; ID is the storage key. UserID never changes
// after creation. Timestamps are kept for ordering and auditing but are not serialized.
type Playlist struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	PlaylistID   string    `json:"playlist_id"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// NewPlaylist builds an unsaved playlist owned by userID from attrs.
func NewPlaylist(userID int64, attrs PlaylistAttributes) *Playlist {
	now := time.Now().UTC()
	return &Playlist{
		Title:        attrs.Title,
		PlaylistID:   attrs.PlaylistID,
		Description:  attrs.Description,
		ThumbnailURL: attrs.ThumbnailURL,
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Apply copies every field present in patch onto p.
func (p *Playlist) Apply(patch PlaylistPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.PlaylistID != nil {
		p.PlaylistID = *patch.PlaylistID
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ThumbnailURL != nil {
		p.ThumbnailURL = *patch.ThumbnailURL
	}
}

// Validate checks the persisted form of the playlist.
func (p *Playlist) Validate() error {
	problems := ValidationErrors{}
	if p.UserID <= 0 {
		problems.Add("user_id", "must exist")
	}
	problems.Merge("", validateStruct(playlistFields{
		Title:        p.Title,
		PlaylistID:   p.PlaylistID,
		Description:  p.Description,
		ThumbnailURL: p.ThumbnailURL,
	}))
	return problems.Err()
}

func (p *Playlist) String() string {
	return fmt.Sprintf("playlist #%d %q (%s)", p.ID, p.Title, p.PlaylistID)
}

type playlistFields struct {
	Title        string `json:"title" validate:"notblank,max=255"`
	PlaylistID   string `json:"playlist_id" validate:"notblank,max=255"`
	Description  string `json:"description" validate:"max=5000"`
	ThumbnailURL string `json:"thumbnail_url" validate:"max=2048"`
}

// PlaylistAttributes is the create payload: playlist fields plus nested videos.
//
// Any user_id sent by a client is dropped during decoding; ownership comes from the token.
type PlaylistAttributes struct {
	Title        string            `json:"title"`
	PlaylistID   string            `json:"playlist_id"`
	Description  string            `json:"description"`
	ThumbnailURL string            `json:"thumbnail_url"`
	Videos       []VideoAttributes `json:"videos_attributes"`
}

// Validate checks the playlist fields and each nested video.
func (a PlaylistAttributes) Validate() error {
	problems := validateStruct(playlistFields{
		Title:        a.Title,
		PlaylistID:   a.PlaylistID,
		Description:  a.Description,
		ThumbnailURL: a.ThumbnailURL,
	})
	for _, v := range a.Videos {
		problems.Merge("videos.", validateStruct(videoFields(v)))
	}
	return problems.Err()
}

// PlaylistPatch carries the fields of a partial update; nil fields are left unchanged.
type PlaylistPatch struct {
	Title        *string `json:"title" validate:"omitnil,notblank,max=255"`
	PlaylistID   *string `json:"playlist_id" validate:"omitnil,notblank,max=255"`
	Description  *string `json:"description" validate:"omitnil,max=5000"`
	ThumbnailURL *string `json:"thumbnail_url" validate:"omitnil,max=2048"`
}

// Empty reports whether the patch changes nothing.
func (p PlaylistPatch) Empty() bool {
	return p.Title == nil && p.PlaylistID == nil && p.Description == nil && p.ThumbnailURL == nil
}

// Validate checks only the fields present in the patch.
func (p PlaylistPatch) Validate() error {
	return validateStruct(p).Err()
}

// PlaylistExport bundles a playlist with its videos for offline export.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Videos   []Video  `json:"videos"`
}
