package models

import "time"

// Video belongs to exactly one playlist and is only visible through the playlist's owner.
type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	VideoID      string    `json:"video_id"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	PlaylistID   int64     `json:"playlist_id"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// NewVideo builds an unsaved video for playlistID.
func NewVideo(playlistID int64, attrs VideoAttributes) *Video {
	now := time.Now().UTC()
	return &Video{
		Title:        attrs.Title,
		VideoID:      attrs.VideoID,
		Description:  attrs.Description,
		ThumbnailURL: attrs.ThumbnailURL,
		PlaylistID:   playlistID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks the persisted form of the video.
func (v *Video) Validate() error {
	problems := ValidationErrors{}
	if v.PlaylistID <= 0 {
		problems.Add("playlist_id", "must exist")
	}
	problems.Merge("", validateStruct(videoFields{
		Title:        v.Title,
		VideoID:      v.VideoID,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
	}))
	return problems.Err()
}

// VideoAttributes is one entry of a playlist's videos_attributes payload.
type VideoAttributes struct {
	Title        string `json:"title"`
	VideoID      string `json:"video_id"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type videoFields struct {
	Title        string `json:"title" validate:"notblank,max=255"`
	VideoID      string `json:"video_id" validate:"notblank,max=255"`
	Description  string `json:"description" validate:"max=5000"`
	ThumbnailURL string `json:"thumbnail_url" validate:"max=2048"`
}
