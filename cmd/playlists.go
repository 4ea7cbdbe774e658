package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/formatter"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/repositories"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/ui"
	"github.com/urfave/cli/v3"
)

// ListPlaylists prints a table of a user's playlists.
func (r *Runner) ListPlaylists(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	exports, err := r.collectExports(ctx, db, cmd.String("username"))
	if err != nil {
		return err
	}

	if len(exports) == 0 {
		return r.writePlain("%s\n", ui.Warning("No playlists"))
	}

	playlists := make([]models.Playlist, 0, len(exports))
	counts := make(map[int64]int, len(exports))
	for _, export := range exports {
		playlists = append(playlists, export.Playlist)
		counts[export.Playlist.ID] = len(export.Videos)
	}
	return r.writePlain("%s\n", ui.PlaylistTable(playlists, counts))
}

// ExportPlaylists writes a user's playlists and videos to stdout or a file.
func (r *Runner) ExportPlaylists(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	exports, err := r.collectExports(ctx, db, cmd.String("username"))
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		data, err := formatter.Render(format, exports)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(format, exports, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported playlists", "count", len(exports), "format", format, "path", path)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("Exported %d playlists to %s", len(exports), path)))
}

// collectExports loads every playlist of username with its videos, going through the same
// owner-scoped store the API uses.
func (r *Runner) collectExports(ctx context.Context, db *sql.DB, username string) ([]models.PlaylistExport, error) {
	user, err := repositories.NewUserRepository(db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var store models.PlaylistStore = repositories.NewPlaylistRepository(db)

	playlists, err := store.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	exports := make([]models.PlaylistExport, 0, len(playlists))
	for _, p := range playlists {
		videos, err := store.VideosForPlaylist(ctx, p.ID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load videos for %s: %w", p.String(), err)
		}
		exports = append(exports, models.PlaylistExport{Playlist: p, Videos: videos})
	}
	return exports, nil
}
