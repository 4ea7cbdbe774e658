package main

import (
	"context"
	"fmt"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/api"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/auth"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/repositories"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/server"
	"github.com/achasveachas/yt-tutorial-dashboard/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the API until the process receives an interrupt.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = int(port)
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	tokens, err := auth.NewTokenService(config.Auth.Secret, config.Auth.Issuer, config.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure tokens: %w", err)
	}

	if config.Auth.Secret == "change-me-in-production" {
		r.logger.Warn("using the example auth secret; set YTDASH_AUTH_SECRET before exposing the server")
	}

	router := api.NewRouter(api.Deps{
		Playlists: repositories.NewPlaylistRepository(db),
		Users:     repositories.NewUserRepository(db),
		Tokens:    tokens,
		Logger:    shared.WithLogger(r.logger, "component", "api"),
	})

	return server.New(config.Server, router, r.logger).ListenAndServe(ctx)
}
