package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	th "github.com/achasveachas/yt-tutorial-dashboard/internal/testing"
	"golang.org/x/crypto/bcrypt"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return th.MustDatabase(t, shared.MemoryDatabase)
}

func createUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	user, err := NewUserRepository(db, WithBcryptCost(bcrypt.MinCost)).Create(context.Background(), username, "password")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func samplePlaylist(title string, videos ...string) models.PlaylistAttributes {
	attrs := models.PlaylistAttributes{
		Title:        title,
		PlaylistID:   "123456",
		ThumbnailURL: "demo.jpg",
	}
	for _, id := range videos {
		attrs.Videos = append(attrs.Videos, models.VideoAttributes{
			Title:        "Video " + id,
			VideoID:      id,
			ThumbnailURL: id + ".jpg",
		})
	}
	return attrs
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		user := createUser(t, db, "NewUser")

		if user.ID == 0 {
			t.Error("user ID should be set after creation")
		}
		if user.PasswordDigest == "password" || user.PasswordDigest == "" {
			t.Error("password should be stored as a digest")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		created := createUser(t, db, "NewUser")

		user, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if user.Username != "NewUser" {
			t.Errorf("expected username NewUser, got %s", user.Username)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		if _, err := repo.Get(ctx, 42); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Duplicate username", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db, WithBcryptCost(bcrypt.MinCost))
		createUser(t, db, "NewUser")

		if _, err := repo.Create(ctx, "NewUser", "other"); !errors.Is(err, shared.ErrDuplicateRecord) {
			t.Errorf("expected ErrDuplicateRecord, got %v", err)
		}
	})

	t.Run("Blank password", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		if _, err := repo.Create(ctx, "NewUser", ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		created := createUser(t, db, "NewUser")

		user, err := repo.Authenticate(ctx, "NewUser", "password")
		if err != nil {
			t.Fatalf("expected credentials to be accepted: %v", err)
		}
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}

		if _, err := repo.Authenticate(ctx, "NewUser", "wrong"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
		}
		if _, err := repo.Authenticate(ctx, "nobody", "password"); !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		createUser(t, db, "first")
		createUser(t, db, "second")

		users, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 2 || users[0].Username != "first" || users[1].Username != "second" {
			t.Errorf("unexpected users: %+v", users)
		}
	})
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("ListByUser is scoped to the owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")
		other := createUser(t, db, "NewUser2")

		for _, title := range []string{"first", "second"} {
			if _, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist(title)); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
		}
		if _, err := repo.CreateWithVideos(ctx, other.ID, samplePlaylist("theirs")); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlists, err := repo.ListByUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].Title != "first" || playlists[1].Title != "second" {
			t.Errorf("expected insertion order, got %s, %s", playlists[0].Title, playlists[1].Title)
		}
		for _, p := range playlists {
			if p.UserID != owner.ID {
				t.Errorf("playlist %d belongs to user %d", p.ID, p.UserID)
			}
		}
	})

	t.Run("ListByUser with no playlists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")

		playlists, err := repo.ListByUser(ctx, owner.ID)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if playlists == nil || len(playlists) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", playlists)
		}
	})

	t.Run("CreateWithVideos", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		videos := NewVideoRepository(db)
		owner := createUser(t, db, "NewUser")

		playlist, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("My Playlist", "jklior", "vid2"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if playlist.ID == 0 {
			t.Fatal("playlist ID should be set after creation")
		}
		if playlist.UserID != owner.ID || playlist.Title != "My Playlist" || playlist.Description != "" {
			t.Errorf("unexpected playlist: %+v", playlist)
		}

		n, err := videos.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count videos: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 videos, got %d", n)
		}

		list, err := repo.VideosForPlaylist(ctx, playlist.ID, owner.ID)
		if err != nil {
			t.Fatalf("failed to list videos: %v", err)
		}
		if len(list) != 2 || list[0].VideoID != "jklior" || list[1].VideoID != "vid2" {
			t.Errorf("unexpected videos: %+v", list)
		}
		for _, v := range list {
			if v.PlaylistID != playlist.ID {
				t.Errorf("video %d points at playlist %d", v.ID, v.PlaylistID)
			}
		}
	})

	t.Run("CreateWithVideos rejects invalid input", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")

		attrs := samplePlaylist("", "jklior")
		if _, err := repo.CreateWithVideos(ctx, owner.ID, attrs); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		attrs = samplePlaylist("ok")
		attrs.Videos = []models.VideoAttributes{{Title: "no id"}}
		if _, err := repo.CreateWithVideos(ctx, owner.ID, attrs); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for invalid video, got %v", err)
		}

		if n, _ := repo.Count(ctx); n != 0 {
			t.Errorf("expected no playlists after rejected creates, got %d", n)
		}
	})

	t.Run("CreateWithVideos is atomic", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		videos := NewVideoRepository(db)
		owner := createUser(t, db, "NewUser")

		_, err := db.Exec(`
			CREATE TRIGGER reject_video BEFORE INSERT ON videos
			WHEN NEW.video_id = 'boom'
			BEGIN SELECT RAISE(ABORT, 'rejected'); END;
		`)
		if err != nil {
			t.Fatalf("failed to create trigger: %v", err)
		}

		if _, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("My Playlist", "ok", "boom")); err == nil {
			t.Fatal("expected create to fail")
		}

		if n, _ := repo.Count(ctx); n != 0 {
			t.Errorf("expected playlist insert to be rolled back, got %d playlists", n)
		}
		if n, _ := videos.Count(ctx); n != 0 {
			t.Errorf("expected video inserts to be rolled back, got %d videos", n)
		}
	})

	t.Run("FindByIDForUser", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")
		other := createUser(t, db, "NewUser2")

		created, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("My Playlist"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		found, err := repo.FindByIDForUser(ctx, created.ID, owner.ID)
		if err != nil {
			t.Fatalf("failed to find playlist: %v", err)
		}
		if found.ID != created.ID || found.Title != created.Title || found.PlaylistID != created.PlaylistID {
			t.Errorf("expected %+v, got %+v", created, found)
		}

		cases := []struct {
			name   string
			id     int64
			userID int64
		}{
			{"other owner", created.ID, other.ID},
			{"missing id", created.ID + 100, owner.ID},
			{"zero id", 0, owner.ID},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := repo.FindByIDForUser(ctx, tc.id, tc.userID); !errors.Is(err, shared.ErrPlaylistNotFound) {
					t.Errorf("expected ErrPlaylistNotFound, got %v", err)
				}
			})
		}
	})

	t.Run("UpdateFields", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")

		attrs := models.PlaylistAttributes{Title: "title", PlaylistID: "abcd123", ThumbnailURL: "this.jpg"}
		created, err := repo.CreateWithVideos(ctx, owner.ID, attrs)
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		description := "I have a description now"
		updated, err := repo.UpdateFields(ctx, created.ID, owner.ID, models.PlaylistPatch{Description: &description})
		if err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}
		if updated.Description != description {
			t.Errorf("expected description %q, got %q", description, updated.Description)
		}
		if updated.Title != "title" || updated.PlaylistID != "abcd123" || updated.ThumbnailURL != "this.jpg" {
			t.Errorf("absent fields should be unchanged, got %+v", updated)
		}

		reloaded, err := repo.FindByIDForUser(ctx, created.ID, owner.ID)
		if err != nil {
			t.Fatalf("failed to reload playlist: %v", err)
		}
		if reloaded.Description != description {
			t.Errorf("update was not persisted: %+v", reloaded)
		}
	})

	t.Run("UpdateFields with empty patch", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")

		created, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("title"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		updated, err := repo.UpdateFields(ctx, created.ID, owner.ID, models.PlaylistPatch{})
		if err != nil {
			t.Fatalf("empty patch should succeed: %v", err)
		}
		if updated.Title != "title" {
			t.Errorf("expected unchanged playlist, got %+v", updated)
		}
	})

	t.Run("UpdateFields rejects invalid values", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")

		created, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("title"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		blank := ""
		if _, err := repo.UpdateFields(ctx, created.ID, owner.ID, models.PlaylistPatch{Title: &blank}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		reloaded, _ := repo.FindByIDForUser(ctx, created.ID, owner.ID)
		if reloaded == nil || reloaded.Title != "title" {
			t.Errorf("rejected update should leave the row unchanged, got %+v", reloaded)
		}
	})

	t.Run("UpdateFields for another owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		owner := createUser(t, db, "NewUser")
		other := createUser(t, db, "NewUser2")

		created, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("title"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		title := "stolen"
		_, err = repo.UpdateFields(ctx, created.ID, other.ID, models.PlaylistPatch{Title: &title})
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}

		reloaded, _ := repo.FindByIDForUser(ctx, created.ID, owner.ID)
		if reloaded == nil || reloaded.Title != "title" {
			t.Errorf("foreign update should not change the row, got %+v", reloaded)
		}
	})

	t.Run("DestroyCascade", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		videos := NewVideoRepository(db)
		owner := createUser(t, db, "NewUser")

		doomed, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("doomed", "a", "b"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		kept, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("kept", "c"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if err := repo.DestroyCascade(ctx, doomed.ID, owner.ID); err != nil {
			t.Fatalf("failed to destroy playlist: %v", err)
		}

		if _, err := repo.FindByIDForUser(ctx, doomed.ID, owner.ID); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected playlist to be gone, got %v", err)
		}
		if n, _ := videos.Count(ctx); n != 1 {
			t.Errorf("expected 1 remaining video, got %d", n)
		}
		remaining, err := repo.VideosForPlaylist(ctx, kept.ID, owner.ID)
		if err != nil || len(remaining) != 1 {
			t.Errorf("other playlist's videos should survive, got %v (%v)", remaining, err)
		}

		if err := repo.DestroyCascade(ctx, doomed.ID, owner.ID); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("second destroy should report ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("DestroyCascade for another owner", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		videos := NewVideoRepository(db)
		owner := createUser(t, db, "NewUser")
		other := createUser(t, db, "NewUser2")

		created, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("mine", "a"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if err := repo.DestroyCascade(ctx, created.ID, other.ID); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
		}
		if n, _ := repo.Count(ctx); n != 1 {
			t.Errorf("expected playlist to survive, got %d playlists", n)
		}
		if n, _ := videos.Count(ctx); n != 1 {
			t.Errorf("expected video to survive, got %d videos", n)
		}
	})

	t.Run("DestroyCascade refused by the database", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		videos := NewVideoRepository(db)
		owner := createUser(t, db, "NewUser")

		created, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("locked", "a", "b"))
		if err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		_, err = db.Exec(`
			CREATE TRIGGER lock_playlists BEFORE DELETE ON playlists
			BEGIN SELECT RAISE(ABORT, 'locked'); END;
		`)
		if err != nil {
			t.Fatalf("failed to create trigger: %v", err)
		}

		err = repo.DestroyCascade(ctx, created.ID, owner.ID)
		if !errors.Is(err, shared.ErrDeleteFailed) {
			t.Fatalf("expected ErrDeleteFailed, got %v", err)
		}
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Error("a refused delete is not a missing playlist")
		}

		if _, err := repo.FindByIDForUser(ctx, created.ID, owner.ID); err != nil {
			t.Errorf("playlist should still exist: %v", err)
		}
		if n, _ := videos.Count(ctx); n != 2 {
			t.Errorf("video deletes should be rolled back, got %d videos", n)
		}
	})

	t.Run("Deleting a user cascades", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)
		videos := NewVideoRepository(db)
		owner := createUser(t, db, "NewUser")

		if _, err := repo.CreateWithVideos(ctx, owner.ID, samplePlaylist("mine", "a")); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}
		if _, err := db.Exec(`DELETE FROM users WHERE id = ?`, owner.ID); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if n, _ := repo.Count(ctx); n != 0 {
			t.Errorf("expected playlists to be removed with their owner, got %d", n)
		}
		if n, _ := videos.Count(ctx); n != 0 {
			t.Errorf("expected videos to be removed with their playlist, got %d", n)
		}
	})

	t.Run("Unknown owner is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlaylistRepository(db)

		if _, err := repo.CreateWithVideos(ctx, 999, samplePlaylist("orphan")); err == nil {
			t.Error("expected foreign key violation for unknown user")
		}
	})
}

func TestPlaylistRepositoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	db := th.MustDatabase(t, filepath.Join(t.TempDir(), "concurrent.db"))
	repo := NewPlaylistRepository(db)

	users := []*models.User{createUser(t, db, "first"), createUser(t, db, "second")}

	const perUser = 8
	var wg sync.WaitGroup
	errs := make(chan error, perUser*len(users))

	for _, user := range users {
		for i := range perUser {
			wg.Add(1)
			go func(userID int64, i int) {
				defer wg.Done()
				attrs := samplePlaylist(fmt.Sprintf("playlist %d", i), fmt.Sprintf("v%d", i))
				if _, err := repo.CreateWithVideos(ctx, userID, attrs); err != nil {
					errs <- err
				}
			}(user.ID, i)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent create failed: %v", err)
	}

	for _, user := range users {
		playlists, err := repo.ListByUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != perUser {
			t.Errorf("user %s: expected %d playlists, got %d", user.Username, perUser, len(playlists))
		}
	}

	if n, _ := NewVideoRepository(db).Count(ctx); n != perUser*len(users) {
		t.Errorf("expected %d videos, got %d", perUser*len(users), n)
	}
}
