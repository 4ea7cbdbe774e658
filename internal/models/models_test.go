package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
)

func strPtr(s string) *string { return &s }

func TestPlaylistAttributes(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		attrs := PlaylistAttributes{
			Title:        "My Playlist",
			PlaylistID:   "123456",
			ThumbnailURL: "demo.jpg",
			Videos: []VideoAttributes{
				{Title: "My first video", VideoID: "jklior", ThumbnailURL: "vid1.jpg"},
			},
		}

		if err := attrs.Validate(); err != nil {
			t.Errorf("expected valid attributes, got %v", err)
		}
	})

	t.Run("Blank fields", func(t *testing.T) {
		attrs := PlaylistAttributes{
			Title:      "  ",
			PlaylistID: "",
			Videos:     []VideoAttributes{{Title: "ok"}},
		}

		err := attrs.Validate()
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		var problems ValidationErrors
		if !errors.As(err, &problems) {
			t.Fatalf("expected ValidationErrors, got %T", err)
		}

		for _, field := range []string{"title", "playlist_id", "videos.video_id"} {
			if got := problems[field]; len(got) != 1 || got[0] != "can't be blank" {
				t.Errorf("expected %s to be blank, got %v", field, got)
			}
		}

		if _, ok := problems["videos.title"]; ok {
			t.Error("video title was present and should not be reported")
		}
	})

	t.Run("Too long", func(t *testing.T) {
		attrs := PlaylistAttributes{Title: strings.Repeat("a", 256), PlaylistID: "x"}

		var problems ValidationErrors
		if !errors.As(attrs.Validate(), &problems) {
			t.Fatal("expected ValidationErrors")
		}

		if got := problems["title"]; len(got) != 1 || got[0] != "is too long (maximum is 255 characters)" {
			t.Errorf("unexpected title problems: %v", got)
		}
	})

	t.Run("Ignores user_id in payload", func(t *testing.T) {
		var attrs PlaylistAttributes
		if err := json.Unmarshal([]byte(`{"title":"t","playlist_id":"p","user_id":99}`), &attrs); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		p := NewPlaylist(7, attrs)
		if p.UserID != 7 {
			t.Errorf("expected owner 7, got %d", p.UserID)
		}
	})
}

func TestPlaylistPatch(t *testing.T) {
	t.Run("Apply only present fields", func(t *testing.T) {
		p := &Playlist{Title: "title", PlaylistID: "abcd123", Description: "", ThumbnailURL: "this.jpg", UserID: 1}
		p.Apply(PlaylistPatch{Description: strPtr("I have a description now")})

		if p.Description != "I have a description now" {
			t.Errorf("expected description to change, got %q", p.Description)
		}
		if p.Title != "title" || p.PlaylistID != "abcd123" || p.ThumbnailURL != "this.jpg" {
			t.Errorf("unexpected change to other fields: %+v", p)
		}
	})

	t.Run("Validate present fields only", func(t *testing.T) {
		if err := (PlaylistPatch{Description: strPtr("")}).Validate(); err != nil {
			t.Errorf("empty description is allowed, got %v", err)
		}

		if err := (PlaylistPatch{}).Validate(); err != nil {
			t.Errorf("empty patch is valid, got %v", err)
		}

		err := PlaylistPatch{Title: strPtr("")}.Validate()
		var problems ValidationErrors
		if !errors.As(err, &problems) || len(problems["title"]) == 0 {
			t.Errorf("expected blank title to be rejected, got %v", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if !(PlaylistPatch{}).Empty() {
			t.Error("zero patch should be empty")
		}
		if (PlaylistPatch{Title: strPtr("x")}).Empty() {
			t.Error("patch with title should not be empty")
		}
	})
}

func TestPlaylistJSON(t *testing.T) {
	p := Playlist{ID: 3, Title: "title", PlaylistID: "abcd123", ThumbnailURL: "this.jpg", UserID: 9}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"id":3,"title":"title","playlist_id":"abcd123","description":"","thumbnail_url":"this.jpg","user_id":9}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestEntityValidation(t *testing.T) {
	t.Run("Playlist without owner", func(t *testing.T) {
		p := NewPlaylist(0, PlaylistAttributes{Title: "t", PlaylistID: "p"})
		var problems ValidationErrors
		if !errors.As(p.Validate(), &problems) || len(problems["user_id"]) == 0 {
			t.Errorf("expected user_id problem, got %v", problems)
		}
	})

	t.Run("Video without playlist", func(t *testing.T) {
		v := NewVideo(0, VideoAttributes{Title: "t", VideoID: "v"})
		var problems ValidationErrors
		if !errors.As(v.Validate(), &problems) || len(problems["playlist_id"]) == 0 {
			t.Errorf("expected playlist_id problem, got %v", problems)
		}
	})

	t.Run("User", func(t *testing.T) {
		u := NewUser("")
		var problems ValidationErrors
		if !errors.As(u.Validate(), &problems) {
			t.Fatal("expected ValidationErrors")
		}
		if len(problems["username"]) == 0 || len(problems["password"]) == 0 {
			t.Errorf("expected username and password problems, got %v", problems)
		}

		u = NewUser("NewUser")
		u.PasswordDigest = "digest"
		if err := u.Validate(); err != nil {
			t.Errorf("expected valid user, got %v", err)
		}
	})
}

func TestValidationErrorsMessage(t *testing.T) {
	problems := ValidationErrors{}
	problems.Add("title", "can't be blank")
	problems.Add("title", "can't be blank")
	problems.Add("playlist_id", "can't be blank")

	if got := len(problems["title"]); got != 1 {
		t.Errorf("expected duplicate messages to collapse, got %d", got)
	}

	want := "invalid input: playlist_id can't be blank; title can't be blank"
	if problems.Error() != want {
		t.Errorf("got %q, want %q", problems.Error(), want)
	}

	if (ValidationErrors{}).Err() != nil {
		t.Error("empty ValidationErrors should convert to a nil error")
	}
}

func TestModelValidate(t *testing.T) {
	valid := []Model{
		NewPlaylist(1, PlaylistAttributes{Title: "t", PlaylistID: "p"}),
		NewVideo(1, VideoAttributes{Title: "t", VideoID: "v"}),
		PlaylistPatch{Description: strPtr("d")},
	}
	for _, m := range valid {
		if err := m.Validate(); err != nil {
			t.Errorf("%T: expected valid, got %v", m, err)
		}
	}

	invalid := []Model{
		NewUser(""),
		PlaylistAttributes{},
		PlaylistPatch{Title: strPtr(" ")},
	}
	for _, m := range invalid {
		if err := m.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("%T: expected ErrInvalidInput, got %v", m, err)
		}
	}
}
